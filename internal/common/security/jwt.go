package security

import (
	"context"
	"errors"
	"strconv"
	"time"

	"mockmatch/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: malformed token, bad
// signature, expired. Callers must not distinguish between them.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies the signed session tokens. It is stateless;
// a token stays valid for its full TTL and there is no revocation list.
type TokenService struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
	}
}

// Auth exposes the underlying authority for the router's jwtauth.Verifier.
func (ts *TokenService) Auth() *jwtauth.JWTAuth {
	return ts.auth
}

func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

// Issue produces a token asserting the user's identity. The user ID claim is
// stored as a string to survive the float64 round-trip JSON numbers take.
func (ts *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"nickname": user.Nickname,
		"iat":      now.Unix(),
		"exp":      now.Add(ts.ttl).Unix(),
	}
	_, tokenString, err := ts.auth.Encode(claims)
	return tokenString, err
}

// Verify validates signature and expiry and returns the embedded user ID.
// Any failure collapses to ErrInvalidToken; absence of a valid token always
// denies, never default-allows.
func (ts *TokenService) Verify(tokenString string) (int64, error) {
	token, err := jwtauth.VerifyToken(ts.auth, tokenString)
	if err != nil {
		return 0, ErrInvalidToken
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return 0, ErrInvalidToken
	}
	userID, err := UserIDFromClaims(claims)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// UserIDFromClaims extracts the user ID from a verified claims map.
func UserIDFromClaims(claims map[string]interface{}) (int64, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, errors.New("user_id claim is missing or not a string")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("user_id claim is not a valid integer")
	}
	return id, nil
}
