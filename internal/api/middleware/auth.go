package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"mockmatch/internal/common"
	"mockmatch/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const UserIDCtxKey contextKey = "userID"

// TokenCookieName is the session cookie the login handler sets and both
// gates read.
const TokenCookieName = "token"

// LoginPath is where unauthenticated page requests get redirected.
const LoginPath = "/login"

// TokenFromCookie is a jwtauth find function reading the session cookie.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Authenticator guards API routes. It relies on jwtauth.Verifier having run
// earlier in the chain, collapses every failure mode to a plain 401, and
// injects the verified user ID into the request context so handlers never
// re-parse the cookie themselves.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		userID, err := security.UserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionGate guards browser page routes. Requests to a protected prefix
// without a valid session cookie are redirected to the login page with the
// original URL preserved as a callback parameter; everything else passes
// through untouched.
func SessionGate(tokens *security.TokenService, protectedPrefixes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if strings.HasPrefix(path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			protected := false
			for _, prefix := range protectedPrefixes {
				if path == prefix || strings.HasPrefix(path, prefix+"/") {
					protected = true
					break
				}
			}
			if !protected {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := TokenFromCookie(r)
			if tokenString == "" {
				redirectToLogin(w, r)
				return
			}
			if _, err := tokens.Verify(tokenString); err != nil {
				redirectToLogin(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := url.URL{Path: LoginPath}
	q := target.Query()
	q.Set("callbackUrl", requestURL(r))
	target.RawQuery = q.Encode()
	http.Redirect(w, r, target.String(), http.StatusFound)
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

// GetUserIDFromContext returns the verified user ID the Authenticator stored.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
