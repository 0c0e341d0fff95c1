package services

import (
	"context"
	"errors"
	"time"

	"yatube/app/access"
	"yatube/app/apperrors"
	"yatube/app/auth"
	"yatube/app/logger"
	"yatube/app/models"
	"yatube/app/repositories"
)

// Credentials is a signup or login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is an issued bearer token.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// AccountService registers users and logs them in.
type AccountService struct {
	users  repositories.UserRepository
	tokens *auth.TokenManager
}

// NewAccountService creates a new AccountService. tokens may be nil when
// only registration is needed.
func NewAccountService(users repositories.UserRepository, tokens *auth.TokenManager) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

// Signup creates a user with a bcrypt-hashed password.
func (s *AccountService) Signup(ctx context.Context, in Credentials) (*models.User, error) {
	user := &models.User{Username: in.Username}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewFieldError("username", "a user with that username already exists")
		}
		return nil, err
	}

	logger.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login checks credentials and issues a bearer token.
func (s *AccountService) Login(ctx context.Context, in Credentials) (*Session, error) {
	if s.tokens == nil {
		return nil, errors.New("token issuing is not configured")
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, in.Password); err != nil {
		return nil, err
	}

	token, exp, err := s.tokens.Issue(access.Actor{ID: user.ID, Username: user.Username})
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: user}, nil
}
