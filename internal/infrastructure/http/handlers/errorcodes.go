package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } so
// clients branch on a stable kind, not message text.
const (
	ErrCodeValidation         = "validation_error"
	ErrCodeAuthRequired       = "authentication_required"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeUnconfirmed        = "unconfirmed_account"
	ErrCodeAlreadyExists      = "already_exists"
	ErrCodeAlreadySaved       = "already_saved"
	ErrCodeNotFound           = "not_found"
	ErrCodeRateLimited        = "rate_limited"
	ErrCodeInvalidToken       = "invalid_token"
	ErrCodeNetwork            = "network_error"
	ErrCodeProvider           = "provider_error"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeConflict           = "conflict"
	ErrCodeForbidden          = "forbidden"
	ErrCodeInternal           = "internal_error"
)
