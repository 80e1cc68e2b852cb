package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/notezipper/notezipper-go/internal/apperr"
	"github.com/notezipper/notezipper-go/internal/crypto"
	"github.com/notezipper/notezipper-go/internal/model"
	"github.com/notezipper/notezipper-go/internal/repository"
)

const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
)

// AuthService handles account registration, login and profile updates.
type AuthService struct {
	users   UserStore
	hasher  *crypto.PasswordHasher
	tokens  *crypto.TokenIssuer
	welcome WelcomeNotifier
	logger  *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher *crypto.PasswordHasher, tokens *crypto.TokenIssuer, welcome WelcomeNotifier, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		welcome: welcome,
		logger:  logger,
	}
}

// Register creates a new account and returns it with an auth token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Pic = strings.TrimSpace(req.Pic)
	if strings.TrimSpace(req.Password) == "" {
		req.Password = ""
	}
	if err := model.Validate(req); err != nil {
		return model.AuthResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, apperr.Internal(err)
	}

	pic := req.Pic
	if pic == "" {
		pic = model.DefaultPic
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Pic:          pic,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, apperr.Validation(msgUserExists)
		}
		return model.AuthResponse{}, apperr.Internal(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return s.authResponse(user)
}

// Login authenticates a user and returns an auth token. The first successful
// login of an account also schedules the welcome email.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := model.Validate(req); err != nil {
		return model.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, apperr.Auth(msgInvalidCredentials)
		}
		return model.AuthResponse{}, apperr.Internal(err)
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, apperr.Internal(err)
	}
	if !match {
		return model.AuthResponse{}, apperr.Auth(msgInvalidCredentials)
	}

	if !user.Welcomed {
		s.sendWelcome(ctx, user)
	}

	return s.authResponse(user)
}

func (s *AuthService) sendWelcome(ctx context.Context, user *model.User) {
	first, err := s.users.MarkWelcomed(ctx, user.ID)
	if err != nil {
		s.logger.Warn("failed to mark user welcomed", zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	if first {
		s.welcome.Welcome(user.Email, user.Name)
	}
}

// Me returns the account behind a verified identity.
func (s *AuthService) Me(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, apperr.NotFound(msgUserNotFound)
		}
		return model.UserResponse{}, apperr.Internal(err)
	}
	return model.NewUserResponse(user), nil
}

// UpdateProfile overwrites the supplied profile fields and returns the
// account with a fresh token. Blank fields keep their current value.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req model.ProfileRequest) (model.AuthResponse, error) {
	var patch model.UserPatch

	if name := trimmed(req.Name); name != "" {
		patch.Name = &name
	}
	if email := normalizeEmail(deref(req.Email)); email != "" {
		if !model.ValidEmail(email) {
			return model.AuthResponse{}, apperr.Validation("email must be a valid email")
		}
		patch.Email = &email
	}
	if pic := trimmed(req.Pic); pic != "" {
		patch.Pic = &pic
	}
	if password := deref(req.Password); strings.TrimSpace(password) != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return model.AuthResponse{}, apperr.Internal(err)
		}
		patch.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return model.AuthResponse{}, apperr.NotFound(msgUserNotFound)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.AuthResponse{}, apperr.Validation(msgUserExists)
		}
		return model.AuthResponse{}, apperr.Internal(err)
	}

	return s.authResponse(user)
}

func (s *AuthService) authResponse(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.AuthResponse{}, apperr.Internal(err)
	}
	return model.AuthResponse{UserResponse: model.NewUserResponse(user), Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func trimmed(s *string) string {
	return strings.TrimSpace(deref(s))
}
