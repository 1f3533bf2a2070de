package ports

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// TokenIssuer issues and validates access tokens.
type TokenIssuer interface {
	IssueAccessToken(userID, email string, expiresInSeconds int64) (string, error)
	ValidateAccessToken(tokenString string) (userID, email string, err error)
}
