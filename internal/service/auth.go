package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

// AuthConfig controls signup verification and credential handling.
type AuthConfig struct {
	VerifyIdentity bool // require name, NRIC and email to match the roster entry
	PasswordMode   PasswordMode
	AdminUsername  string
	AdminPassword  string
}

// RegisterInput is the signup form.
type RegisterInput struct {
	Username   string
	Password   string
	AccessCode string
	entities.Identity
}

type AuthService struct {
	users       UserRepository
	accessCodes AccessCodeRepository
	cfg         AuthConfig
	logger      *zap.Logger
}

func NewAuthService(users UserRepository, accessCodes AccessCodeRepository, cfg AuthConfig, logger *zap.Logger) *AuthService {
	if cfg.PasswordMode == "" {
		cfg.PasswordMode = PasswordPlaintext
	}
	return &AuthService{
		users:       users,
		accessCodes: accessCodes,
		cfg:         cfg,
		logger:      logger,
	}
}

// Register creates a user bound to an activated, unused access code.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	username := strings.TrimSpace(in.Username)
	code := strings.TrimSpace(in.AccessCode)
	if username == "" || in.Password == "" || code == "" {
		return nil, entities.ErrMissingFields
	}
	if s.cfg.VerifyIdentity && !in.Identity.Complete() {
		return nil, entities.ErrMissingFields
	}

	if s.IsAdmin(username) {
		return nil, entities.ErrDuplicateUsername
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return nil, entities.ErrDuplicateUsername
		}
	}

	entry, err := s.accessCodes.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.Activated {
		return nil, entities.ErrInvalidAccessCode
	}
	if s.cfg.VerifyIdentity && !entry.Matches(in.Identity) {
		return nil, entities.ErrInvalidAccessCode
	}

	for _, u := range users {
		if strings.TrimSpace(u.AccessCode) == code {
			return nil, entities.ErrAccessCodeAlreadyUsed
		}
	}

	password, err := s.cfg.PasswordMode.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := entities.NewUser(username, password, code)
	user.FullName = strings.TrimSpace(in.FullName)
	user.NRIC = strings.TrimSpace(in.NRIC)
	user.Email = strings.TrimSpace(in.Email)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("username", username),
		zap.String("access_code", code),
	)
	return user, nil
}

// Authenticate checks credentials. The admin account lives in config, not in the users sheet.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if s.IsAdmin(username) {
		if s.cfg.AdminPassword == "" || password != s.cfg.AdminPassword {
			return nil, entities.ErrInvalidCredentials
		}
		return &entities.User{Username: username}, nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, entities.ErrUserNotFound) {
		return nil, entities.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.cfg.PasswordMode.matches(user.Password, password) {
		return nil, entities.ErrInvalidCredentials
	}
	return user, nil
}

// IsAdmin reports whether username is the configured admin account.
func (s *AuthService) IsAdmin(username string) bool {
	return s.cfg.AdminUsername != "" && username == s.cfg.AdminUsername
}
