package service

import (
	"context"
	"errors"
	"fmt"

	"mockmatch/internal/common"
	"mockmatch/internal/common/security"
	"mockmatch/internal/domain/model"
	"mockmatch/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrBadRequest)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Nickname:       req.Nickname,
		PracticeAreas:  []string{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate username
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = "" // Clear password before returning
	return user, nil
}

// Login authenticates a username/password pair and issues a session token.
// Unknown username and wrong password both come back as ErrUnauthorized so
// the client cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// CurrentUser loads the profile behind a verified session. A token can
// outlive its account, so a missing user surfaces as ErrNotFound here even
// though the token itself verified.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}
