package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http/middleware"
)

type stubProfileRepo struct {
	profiles map[domain.UserID]*domain.UserProfile
}

func (r *stubProfileRepo) Create(ctx context.Context, profile *domain.UserProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *stubProfileRepo) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.UserProfile, error) {
	return r.profiles[userID], nil
}

func (r *stubProfileRepo) Update(ctx context.Context, userID domain.UserID, fullName string) (*domain.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	p.FullName = fullName
	p.UpdatedAt = time.Now()
	return p, nil
}

func profileRequest(method, body string, session *domain.Session) *http.Request {
	req := httptest.NewRequest(method, "/profile", strings.NewReader(body))
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), session))
	}
	return req
}

func TestProfileUpdateMissingRowIs404(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[domain.UserID]*domain.UserProfile{}}
	h := NewProfileHandler(repo, zerolog.Nop())
	session := &domain.Session{UserID: domain.NewUserID(uuid.New()), Email: "ada@example.com"}

	rec := httptest.NewRecorder()
	h.Update(rec, profileRequest(http.MethodPut, `{"full_name":"Pat"}`, session))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestProfileGetMissingRowIs404(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[domain.UserID]*domain.UserProfile{}}
	h := NewProfileHandler(repo, zerolog.Nop())
	session := &domain.Session{UserID: domain.NewUserID(uuid.New()), Email: "ada@example.com"}

	rec := httptest.NewRecorder()
	h.Get(rec, profileRequest(http.MethodGet, "", session))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestProfileUpdate(t *testing.T) {
	userID := domain.NewUserID(uuid.New())
	repo := &stubProfileRepo{profiles: map[domain.UserID]*domain.UserProfile{
		userID: {UserID: userID, FullName: "Ada"},
	}}
	h := NewProfileHandler(repo, zerolog.Nop())
	session := &domain.Session{UserID: userID, Email: "ada@example.com"}

	rec := httptest.NewRecorder()
	h.Update(rec, profileRequest(http.MethodPut, `{"full_name":"Ada Lovelace"}`, session))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := repo.profiles[userID].FullName; got != "Ada Lovelace" {
		t.Errorf("full name = %q, want %q", got, "Ada Lovelace")
	}
}

func TestProfileRequiresSession(t *testing.T) {
	repo := &stubProfileRepo{profiles: map[domain.UserID]*domain.UserProfile{}}
	h := NewProfileHandler(repo, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Update(rec, profileRequest(http.MethodPut, `{"full_name":"Pat"}`, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("update status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, profileRequest(http.MethodGet, "", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("get status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
