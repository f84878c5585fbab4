package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"mockmatch/internal/common/security"
	"mockmatch/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pagePrefixes = []string{"/profile", "/dashboard", "/matching", "/interviews"}

func newTokens(t *testing.T) *security.TokenService {
	t.Helper()
	return security.NewTokenService([]byte("test-secret"), time.Hour)
}

func okHandler() (http.Handler, *bool) {
	called := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}), called
}

func TestSessionGate_RedirectsWithCallbackURL(t *testing.T) {
	tokens := newTokens(t)
	next, called := okHandler()
	gate := SessionGate(tokens, pagePrefixes)(next)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/dashboard/stats?tab=upcoming", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.False(t, *called)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, LoginPath, loc.Path)
	assert.Equal(t, "http://example.com/dashboard/stats?tab=upcoming", loc.Query().Get("callbackUrl"))
}

func TestSessionGate_InvalidTokenRedirects(t *testing.T) {
	tokens := newTokens(t)
	next, called := okHandler()
	gate := SessionGate(tokens, pagePrefixes)(next)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.False(t, *called)
}

func TestSessionGate_ValidTokenPassesThrough(t *testing.T) {
	tokens := newTokens(t)
	tok, err := tokens.Issue(&model.User{ID: 42, Username: "ada"})
	require.NoError(t, err)

	next, called := okHandler()
	gate := SessionGate(tokens, pagePrefixes)(next)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/matching", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tok})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestSessionGate_UnprotectedPathPassesWithoutToken(t *testing.T) {
	tokens := newTokens(t)
	next, called := okHandler()
	gate := SessionGate(tokens, pagePrefixes)(next)

	for _, path := range []string{"/", "/login", "/about", "/api/v1/auth/login"} {
		*called = false
		req := httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		assert.True(t, *called, "path %s", path)
	}
}

func TestSessionGate_PrefixMatchingIsSegmentAware(t *testing.T) {
	tokens := newTokens(t)
	next, called := okHandler()
	gate := SessionGate(tokens, pagePrefixes)(next)

	// "/profiles" is not "/profile"; it must not be gated.
	req := httptest.NewRequest(http.MethodGet, "http://example.com/profiles", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func apiChain(tokens *security.TokenService, next http.Handler) http.Handler {
	verifier := jwtauth.Verify(tokens.Auth(), jwtauth.TokenFromHeader, TokenFromCookie)
	return verifier(Authenticator(next))
}

func TestAuthenticator_NoToken401(t *testing.T) {
	tokens := newTokens(t)
	next, called := okHandler()
	chain := apiChain(tokens, next)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/matching", nil)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticator_BadToken401(t *testing.T) {
	tokens := newTokens(t)
	next, called := okHandler()
	chain := apiChain(tokens, next)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/matching", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticator_InjectsUserID(t *testing.T) {
	tokens := newTokens(t)
	tok, err := tokens.Issue(&model.User{ID: 42, Username: "ada"})
	require.NoError(t, err)

	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		gotID = id
		w.WriteHeader(http.StatusOK)
	})
	chain := apiChain(tokens, next)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/matching", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tok})
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotID)
}
