package login

// Phase is the tag of a form's State.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInvalid
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInvalid:
		return "invalid"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the tagged form state. Reason is set only for PhaseInvalid and
// PhaseFailed.
type State struct {
	Phase  Phase
	Reason error
}

// InFlight reports whether the operation is running.
func (s State) InFlight() bool { return s.Phase == PhaseSubmitting }

// Succeeded reports whether the form reached its terminal state.
func (s State) Succeeded() bool { return s.Phase == PhaseSucceeded }

// Message is the text for the alert region, or "" when there is no error.
func (s State) Message() string {
	if s.Reason == nil {
		return ""
	}
	if s.Phase != PhaseInvalid && s.Phase != PhaseFailed {
		return ""
	}
	return s.Reason.Error()
}

func idle() State                { return State{Phase: PhaseIdle} }
func invalid(reason error) State { return State{Phase: PhaseInvalid, Reason: reason} }
func submitting() State          { return State{Phase: PhaseSubmitting} }
func succeeded() State           { return State{Phase: PhaseSucceeded} }
func failed(reason error) State  { return State{Phase: PhaseFailed, Reason: reason} }
