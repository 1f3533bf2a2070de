package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

func TestRefreshRotatesToken(t *testing.T) {
	users := newFakeUserRepo()
	store := newFakeTokenStore()
	user := seedUser(t, users, "ada@example.com", "secret1")
	login := newLoginForTest(users, store, nil, false)
	refresh := NewRefresh(users, fakeIssuer{}, store, 0, 0)

	loginResult, err := login.Execute(context.Background(), LoginInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	oldToken := loginResult.Session.RefreshToken

	refreshResult, err := refresh.Execute(context.Background(), RefreshInput{RefreshToken: oldToken})
	require.NoError(t, err)
	session := refreshResult.Session
	assert.Equal(t, user.ID, session.UserID)
	assert.NotEqual(t, oldToken, session.RefreshToken)

	// The rotated-out token is single use.
	_, err = refresh.Execute(context.Background(), RefreshInput{RefreshToken: oldToken})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)

	// The replacement still works.
	_, err = refresh.Execute(context.Background(), RefreshInput{RefreshToken: session.RefreshToken})
	require.NoError(t, err)
}

func TestRefreshUnknownToken(t *testing.T) {
	refresh := NewRefresh(newFakeUserRepo(), fakeIssuer{}, newFakeTokenStore(), 0, 0)

	_, err := refresh.Execute(context.Background(), RefreshInput{RefreshToken: "deadbeef"})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)

	_, err = refresh.Execute(context.Background(), RefreshInput{})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestLogoutIdempotent(t *testing.T) {
	users := newFakeUserRepo()
	store := newFakeTokenStore()
	seedUser(t, users, "ada@example.com", "secret1")
	login := newLoginForTest(users, store, nil, false)
	logout := NewLogout(store)

	result, err := login.Execute(context.Background(), LoginInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	token := result.Session.RefreshToken

	require.NoError(t, logout.Execute(context.Background(), LogoutInput{RefreshToken: token}))
	require.NoError(t, logout.Execute(context.Background(), LogoutInput{RefreshToken: token}))
	require.NoError(t, logout.Execute(context.Background(), LogoutInput{}))

	refresh := NewRefresh(users, fakeIssuer{}, store, 0, 0)
	_, err = refresh.Execute(context.Background(), RefreshInput{RefreshToken: token})
	require.ErrorIs(t, err, domerrors.ErrInvalidToken)
}
