package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return NewTokenIssuer(key, "plantpals", "plantpals")
}

func TestIssueAndValidate(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.IssueAccessToken("user-123", "ada@example.com", 900)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	userID, email, err := issuer.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("userID = %q, want user-123", userID)
	}
	if email != "ada@example.com" {
		t.Errorf("email = %q, want ada@example.com", email)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.IssueAccessToken("user-123", "ada@example.com", -60)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, _, err := issuer.ValidateAccessToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	issuer := newTestIssuer(t)
	other := newTestIssuer(t)

	token, err := other.IssueAccessToken("user-123", "ada@example.com", 900)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, _, err := issuer.ValidateAccessToken(token); err == nil {
		t.Error("token signed by a different key accepted")
	}
	if _, _, err := issuer.ValidateAccessToken("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}
