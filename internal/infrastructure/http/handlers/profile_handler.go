package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http/middleware"
)

type ProfileHandler struct {
	profiles ports.ProfileRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewProfileHandler(profiles ports.ProfileRepository, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, validate: validator.New(), log: log}
}

type profileBody struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newProfileBody(p *domain.UserProfile) profileBody {
	return profileBody{
		UserID:    p.UserID.String(),
		FullName:  p.FullName,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "no active session")
		return
	}
	profile, err := h.profiles.GetByUserID(r.Context(), session.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if profile == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, newProfileBody(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "no active session")
		return
	}
	var body struct {
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
	profile, err := h.profiles.Update(r.Context(), session.UserID, body.FullName)
	if err != nil {
		AuditLog(h.log, r, "profile.update", session.UserID.String(), false, err.Error())
		writeDomainErr(w, err)
		return
	}
	if profile == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "profile not found")
		return
	}
	AuditLog(h.log, r, "profile.update", session.UserID.String(), true, "")
	writeJSON(w, http.StatusOK, newProfileBody(profile))
}
