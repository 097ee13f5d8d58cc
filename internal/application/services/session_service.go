package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// SessionService handles the login/signup/settings flows. There is no
// authentication here: logging in writes an unvalidated user record and
// presence of that record is the whole session model.
type SessionService struct {
	sessionRepo ports.SessionRepository
	logger      *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo ports.SessionRepository, logger *logger.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Login writes the session user. The display name is derived from the email
// local part; the password is required but never checked against anything.
func (s *SessionService) Login(ctx context.Context, req ports.LoginRequest) (*entities.User, error) {
	name := req.Email
	if at := strings.Index(req.Email, "@"); at > 0 {
		name = req.Email[:at]
	}

	user := &entities.User{Name: name, Email: req.Email}
	if err := s.sessionRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Infow("User logged in", "email", user.Email)

	return user, nil
}

// Signup writes the session user and records the submission under the
// write-only registeredUser key. The stored password is bcrypt-hashed at the
// boundary; nothing ever reads it back.
func (s *SessionService) Signup(ctx context.Context, req ports.SignupRequest) (*entities.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	audit := &entities.User{Name: req.Name, Email: req.Email, Password: string(hashed)}
	if err := s.sessionRepo.RecordSignup(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to record signup: %w", err)
	}

	user := &entities.User{Name: req.Name, Email: req.Email}
	if err := s.sessionRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Infow("User signed up", "email", user.Email)

	return user, nil
}

// Logout clears the session user.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.sessionRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Infow("User logged out")

	return nil
}

// Current returns the session user, or entities.ErrNotLoggedIn.
func (s *SessionService) Current(ctx context.Context) (*entities.User, error) {
	return s.sessionRepo.Current(ctx)
}

// SaveProfile overwrites the session user with the settings form values.
func (s *SessionService) SaveProfile(ctx context.Context, req ports.SaveProfileRequest) (*entities.User, error) {
	user := &entities.User{Name: req.Name, Email: req.Email}
	if err := s.sessionRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Infow("Profile saved", "email", user.Email)

	return user, nil
}
