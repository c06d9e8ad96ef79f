package login

import "errors"

// User-facing messages shown in the form's alert region.
const (
	MsgInvalidEmail    = "Invalid email address"
	MsgInvalidPassword = "Password must be at least 8 characters long and contain number, both uppercase and lowercase letters"
	MsgNetworkError    = "Network error"
)

// Sentinel errors for the submit protocol. The first three are recorded in
// the form state; the rest are refusals returned to the caller.
var (
	ErrInvalidEmail    = errors.New(MsgInvalidEmail)
	ErrInvalidPassword = errors.New(MsgInvalidPassword)
	ErrOperationFailed = errors.New(MsgNetworkError)

	// ErrInFlight is returned when Submit is called while a previous submit
	// is still waiting on its operation.
	ErrInFlight = errors.New("sign-in already in progress")

	// ErrAlreadySignedIn is returned when Submit is called on a form that
	// has already succeeded.
	ErrAlreadySignedIn = errors.New("already signed in")

	// ErrSimulatedFailure is what DelayedOperation reports when configured to fail.
	ErrSimulatedFailure = errors.New("simulated network failure")
)
