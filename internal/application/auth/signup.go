package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength matches the store-side auth policy.
const MinPasswordLength = 6

type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

type SignUpResult struct {
	User    *domain.User
	Profile *domain.UserProfile
}

type SignUp struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	hasher   ports.PasswordHasher
}

func NewSignUp(users ports.UserRepository, profiles ports.ProfileRepository, hasher ports.PasswordHasher) *SignUp {
	return &SignUp{users: users, profiles: profiles, hasher: hasher}
}

// ValidateSignUp checks the input locally. Validation failures never reach
// the store.
func ValidateSignUp(input SignUpInput) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return fmt.Errorf("%w: email is required", domerrors.ErrValidation)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: %q is not a valid email address", domerrors.ErrValidation, email)
	}
	if len(input.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domerrors.ErrValidation, MinPasswordLength)
	}
	if strings.TrimSpace(input.FullName) == "" {
		return fmt.Errorf("%w: full name is required", domerrors.ErrValidation)
	}
	return nil
}

func (uc *SignUp) Execute(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	if err := ValidateSignUp(input); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrAlreadyExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The unique index on users.email is the authority when two sign-ups
	// race past the pre-check; the repository maps that to ErrAlreadyExists.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	profile := &domain.UserProfile{
		UserID:    user.ID,
		FullName:  strings.TrimSpace(input.FullName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return &SignUpResult{User: user, Profile: profile}, nil
}
