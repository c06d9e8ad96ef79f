package events

import (
	"context"
	"log/slog"

	"github.com/nfrund/signin/internal/pubsub"
)

// Audit logs every sign-in attempt it receives.
type Audit struct {
	logger *slog.Logger
}

// NewAudit returns an audit subscriber writing to logger.
func NewAudit(logger *slog.Logger) *Audit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Audit{logger: logger.With("component", "audit")}
}

// Start subscribes to the attempts topic until ctx is cancelled.
func (a *Audit) Start(ctx context.Context, sub pubsub.Subscriber) error {
	return Attempts.Subscribe(ctx, sub, a.handle)
}

func (a *Audit) handle(ctx context.Context, at Attempt, _ pubsub.Message) error {
	level := slog.LevelInfo
	if at.Outcome != OutcomeSucceeded {
		level = slog.LevelWarn
	}
	a.logger.Log(ctx, level, "Sign-in attempt",
		"form_id", at.FormID,
		"email", at.Email,
		"outcome", at.Outcome,
		"reason", at.Reason,
		"at", at.At,
	)
	return nil
}
