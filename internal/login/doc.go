// Package login implements the sign-in form: credential validation, the
// submit protocol and the per-session form state that the HTTP layer renders.
//
// A Form holds a single tagged State instead of independent loading, error
// and success flags, so combinations such as "succeeded with an error" are
// unrepresentable. The authentication call is an injected Operation; the
// default DelayedOperation only waits and reports success.
package login
