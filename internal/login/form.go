package login

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Button labels for the submit control.
const (
	LabelSignIn    = "Sign In"
	LabelSigningIn = "Signing in..."
)

// View is an immutable snapshot of a form, ready to be rendered.
type View struct {
	ID       string
	Email    string
	Password string
	Phase    Phase
	Error    string
	// FocusError is true on the first presentation of a new error message.
	FocusError bool
}

// InFlight reports whether the submit button should be disabled.
func (v View) InFlight() bool { return v.Phase == PhaseSubmitting }

// Succeeded reports whether the success view replaces the form.
func (v View) Succeeded() bool { return v.Phase == PhaseSucceeded }

// ButtonLabel is the submit button's text for the current phase.
func (v View) ButtonLabel() string {
	if v.InFlight() {
		return LabelSigningIn
	}
	return LabelSignIn
}

// Form is one sign-in form instance. It is safe for concurrent use; all
// methods serialize on an internal mutex, and Submit releases it while the
// operation runs so the in-flight state can be observed.
type Form struct {
	id string
	op Operation

	mu       sync.Mutex
	email    string
	password string
	state    State
	// shown is the last committed error message; focus is pending when a
	// different non-empty message replaces it.
	shown     string
	focus     bool
	touchedAt time.Time
}

// NewForm returns an idle form that authenticates through op.
func NewForm(id string, op Operation) *Form {
	if op == nil {
		op = DelayedOperation{Delay: DefaultDelay}
	}
	return &Form{id: id, op: op, touchedAt: time.Now()}
}

// ID returns the identifier the form was created with.
func (f *Form) ID() string { return f.id }

// SetEmail replaces the email text. Edits after success are ignored.
func (f *Form) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Succeeded() {
		return
	}
	f.email = email
	f.touchedAt = time.Now()
}

// SetPassword replaces the password text. Edits after success are ignored.
func (f *Form) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Succeeded() {
		return
	}
	f.password = password
	f.touchedAt = time.Now()
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit runs the submit protocol with the current field values and returns
// the resulting state. Validation and operation failures are recorded in the
// state and are not returned as errors. The returned error is non-nil only
// when the submit was refused (ErrInFlight, ErrAlreadySignedIn) or ctx was
// cancelled during the operation.
func (f *Form) Submit(ctx context.Context) (State, error) {
	f.mu.Lock()
	switch f.state.Phase {
	case PhaseSubmitting:
		st := f.state
		f.mu.Unlock()
		return st, ErrInFlight
	case PhaseSucceeded:
		st := f.state
		f.mu.Unlock()
		return st, ErrAlreadySignedIn
	}

	creds := Credentials{Email: f.email, Password: f.password}
	if err := Validate(creds); err != nil {
		f.commit(invalid(err))
		st := f.state
		f.mu.Unlock()
		return st, nil
	}
	f.commit(submitting())
	f.mu.Unlock()

	// The deferred commit is the only way out of PhaseSubmitting, whatever
	// the operation does (including panic).
	next := idle()
	defer func() {
		f.mu.Lock()
		f.commit(next)
		f.mu.Unlock()
	}()

	err := f.op.Authenticate(ctx, creds)
	switch {
	case err == nil:
		next = succeeded()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return next, err
	default:
		next = failed(ErrOperationFailed)
	}
	return next, nil
}

// Present returns a snapshot for rendering and consumes the pending focus
// marker, so FocusError is true for exactly one presentation per new error.
func (f *Form) Present() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		ID:         f.id,
		Email:      f.email,
		Password:   f.password,
		Phase:      f.state.Phase,
		Error:      f.state.Message(),
		FocusError: f.focus,
	}
	f.focus = false
	return v
}

// idleSince reports when the form was last edited or submitted.
func (f *Form) idleSince() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touchedAt
}

// commit must be called with f.mu held.
func (f *Form) commit(s State) {
	f.state = s
	f.touchedAt = time.Now()

	msg := s.Message()
	switch {
	case msg == "":
		f.focus = false
	case msg != f.shown:
		f.focus = true
	}
	f.shown = msg
}
