package service

import (
	"context"
	"testing"
	"time"

	"mockmatch/internal/common"
	"mockmatch/internal/common/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *security.TokenService {
	return security.NewTokenService([]byte("test-secret"), time.Hour)
}

func TestRegister_Success(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newTestTokens())

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "ada",
		Password: "hunter22",
		Nickname: "Ada",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ada", user.Username)
	assert.Empty(t, user.HashedPassword, "hash must never leave the service")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newTestTokens())

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "ada", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "ada", Password: "other-pass"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newTestTokens())

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "", Password: "hunter22"})
	assert.ErrorIs(t, err, common.ErrBadRequest)

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "ada", Password: "short"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestLogin_RoundTrip(t *testing.T) {
	tokens := newTestTokens()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, tokens)

	registered, err := svc.Register(context.Background(), RegisterRequest{Username: "ada", Password: "hunter22"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "ada", Password: "hunter22"})
	require.NoError(t, err)
	assert.Empty(t, resp.User.HashedPassword)

	userID, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestLogin_GenericFailure(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newTestTokens())

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "ada", Password: "hunter22"})
	require.NoError(t, err)

	// Unknown username and wrong password collapse to the same error so the
	// API cannot be used to enumerate accounts.
	_, unknownErr := svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "hunter22"})
	assert.ErrorIs(t, unknownErr, common.ErrUnauthorized)

	_, wrongPassErr := svc.Login(context.Background(), LoginRequest{Username: "ada", Password: "wrong"})
	assert.ErrorIs(t, wrongPassErr, common.ErrUnauthorized)

	assert.Equal(t, unknownErr, wrongPassErr)
}

func TestCurrentUser_MissingAccount(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newTestTokens())

	// A token can verify while its account is gone; the lookup must fail
	// cleanly rather than the gate pretending the user exists.
	_, err := svc.CurrentUser(context.Background(), 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
