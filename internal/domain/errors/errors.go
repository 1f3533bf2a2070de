package errors

import "errors"

// Sentinel errors for callers and handlers to branch on. Handlers map these
// to HTTP status and a stable error code; nothing user-facing depends on the
// message text.
var (
	// ErrValidation covers malformed input caught before any store call.
	ErrValidation = errors.New("invalid input")
	// ErrAuthenticationRequired is returned by mutating collection
	// operations attempted with no active session.
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAlreadyExists          = errors.New("an account with this email already exists")
	ErrAlreadySaved           = errors.New("plant is already saved")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUnconfirmedAccount     = errors.New("email address not confirmed")
	ErrRateLimited            = errors.New("too many attempts")
	ErrInvalidToken           = errors.New("invalid or expired token")
	// ErrProvider is the catch-all for unmapped store-side rejections.
	ErrProvider = errors.New("provider error")
	// ErrNetwork marks transport-level failures, distinct from a
	// provider-level rejection that made it across the wire.
	ErrNetwork = errors.New("network error")
)
