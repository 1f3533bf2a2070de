package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/application/auth"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	signUp   *auth.SignUp
	login    *auth.Login
	logout   *auth.Logout
	refresh  *auth.Refresh
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(signUp *auth.SignUp, login *auth.Login, logout *auth.Logout, refresh *auth.Refresh, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signUp:   signUp,
		login:    login,
		logout:   logout,
		refresh:  refresh,
		validate: validator.New(),
		log:      log,
	}
}

type sessionBody struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         userBody  `json:"user"`
}

type userBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
		FullName string `json:"full_name" validate:"required,max=200"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	result, err := h.signUp.Execute(r.Context(), auth.SignUpInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
		FullName: body.FullName,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         result.User.ID.String(),
		"email":      result.User.Email,
		"full_name":  result.Profile.FullName,
		"created_at": result.User.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		writeDomainErr(w, err)
		return
	}
	session := result.Session
	AuditLog(h.log, r, "user.login", session.UserID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, sessionBody{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
		User:         userBody{ID: session.UserID.String(), Email: session.Email},
	})
}

// Logout revokes the posted refresh token. Logging out twice, or with no
// token, still returns 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token" validate:"max=1024"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.logout.Execute(r.Context(), auth.LogoutInput{RefreshToken: body.RefreshToken}); err != nil {
		AuditLog(h.log, r, "user.logout", "", false, err.Error())
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "user.logout", "", true, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token" validate:"required,max=1024"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	result, err := h.refresh.Execute(r.Context(), auth.RefreshInput{RefreshToken: body.RefreshToken})
	if err != nil {
		AuditLog(h.log, r, "auth.refresh", "", false, err.Error())
		middleware.RecordAuthAttempt("refresh", false)
		writeDomainErr(w, err)
		return
	}
	session := result.Session
	AuditLog(h.log, r, "auth.refresh", session.UserID.String(), true, "")
	middleware.RecordAuthAttempt("refresh", true)
	writeJSON(w, http.StatusOK, sessionBody{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
		User:         userBody{ID: session.UserID.String(), Email: session.Email},
	})
}

// Session echoes the authenticated identity; the auth middleware has already
// validated the token by the time this runs.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": userBody{ID: session.UserID.String(), Email: session.Email},
	})
}
