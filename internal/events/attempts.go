// Package events publishes and audits completed sign-in attempts.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/nfrund/signin/internal/login"
	"github.com/nfrund/signin/internal/pubsub"
)

// Attempts is the topic carrying one message per completed submit.
var Attempts = pubsub.NewTopic[Attempt]("login.attempts")

// Outcome values for Attempt.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

// Attempt describes the result of one submit.
type Attempt struct {
	FormID  string    `json:"form_id"`
	Email   string    `json:"email"`
	Outcome string    `json:"outcome"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// NewAttempt builds the event for a form that finished submitting in st.
// ok is false when st is not a completed outcome.
func NewAttempt(formID, email string, st login.State, at time.Time) (Attempt, bool) {
	a := Attempt{FormID: formID, Email: email, Reason: st.Message(), At: at.UTC()}
	switch st.Phase {
	case login.PhaseSucceeded:
		a.Outcome = OutcomeSucceeded
	case login.PhaseInvalid:
		a.Outcome = OutcomeInvalid
	case login.PhaseFailed:
		a.Outcome = OutcomeFailed
	default:
		return Attempt{}, false
	}
	return a, true
}

// Recorder records completed attempts.
type Recorder interface {
	Record(ctx context.Context, a Attempt)
}

// Publisher records attempts by publishing them on the bus.
type Publisher struct {
	pub pubsub.Publisher
}

// NewPublisher returns a Recorder publishing to pub.
func NewPublisher(pub pubsub.Publisher) *Publisher {
	return &Publisher{pub: pub}
}

// Record implements Recorder. Publish failures are logged only.
func (p *Publisher) Record(ctx context.Context, a Attempt) {
	err := Attempts.Publish(ctx, p.pub, a, map[string]string{"form_id": a.FormID})
	if err != nil {
		slog.Error("Failed to publish sign-in attempt", "form_id", a.FormID, "error", err)
	}
}

// Discard is a Recorder that drops every attempt.
type Discard struct{}

// Record implements Recorder.
func (Discard) Record(context.Context, Attempt) {}
