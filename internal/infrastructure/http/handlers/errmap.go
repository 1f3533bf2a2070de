package handlers

import (
	"errors"
	"net/http"

	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

// writeDomainErr maps a domain sentinel to its HTTP status and stable code.
// Unmapped errors become 500 with a generic body; callers log them first.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domerrors.ErrValidation):
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, domerrors.ErrAuthenticationRequired):
		writeErr(w, http.StatusUnauthorized, ErrCodeAuthRequired, err.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrUnconfirmedAccount):
		writeErr(w, http.StatusForbidden, ErrCodeUnconfirmed, err.Error())
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domerrors.ErrAlreadyExists):
		writeErr(w, http.StatusConflict, ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, domerrors.ErrAlreadySaved):
		writeErr(w, http.StatusConflict, ErrCodeAlreadySaved, err.Error())
	case errors.Is(err, domerrors.ErrRateLimited):
		writeErr(w, http.StatusTooManyRequests, ErrCodeRateLimited, err.Error())
	case errors.Is(err, domerrors.ErrNetwork):
		writeErr(w, http.StatusBadGateway, ErrCodeNetwork, "upstream unreachable")
	case errors.Is(err, domerrors.ErrProvider):
		writeErr(w, http.StatusBadGateway, ErrCodeProvider, "upstream rejected the request")
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
