package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
)

// AuthValidator validates the JWT and sets the session in context (see
// SessionFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

// Handler rejects requests without a valid bearer token.
func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := m.sessionFromRequest(r)
		if session == nil {
			writeAuthErr(w, "missing or invalid authorization")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// Optional sets the session when a valid bearer token is present and passes
// the request through either way. Read paths that merely annotate per-user
// state use this.
func (m *AuthValidator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session := m.sessionFromRequest(r); session != nil {
			r = r.WithContext(WithSession(r.Context(), session))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthValidator) sessionFromRequest(r *http.Request) *domain.Session {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return nil
	}
	tokenString := strings.TrimPrefix(auth, "Bearer ")
	userID, email, err := m.issuer.ValidateAccessToken(tokenString)
	if err != nil {
		return nil
	}
	id, err := domain.ParseUserID(userID)
	if err != nil {
		return nil
	}
	return &domain.Session{UserID: id, Email: email, AccessToken: tokenString}
}

func writeAuthErr(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
