package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID parses the canonical string form.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID{UUID: id}, nil
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an authenticated account.
type User struct {
	ID              UserID
	Email           string
	PasswordHash    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	EmailVerifiedAt *time.Time
}

// Confirmed reports whether the account's email address has been verified.
func (u *User) Confirmed() bool { return u.EmailVerifiedAt != nil }

// UserProfile is the display profile created alongside an account at sign-up.
type UserProfile struct {
	UserID    UserID
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
