package service

import (
	"context"
	"fmt"
	"time"

	"eliteshop/internal/model"
	"eliteshop/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Default bootstrap credentials, created once via the create-default
// endpoint and expected to be changed immediately in any real deployment.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminEmail    = "admin@eliteshop.com"
)

// authService implements AuthService with bcrypt password verification.
type authService struct {
	adminRepo repository.AdminRepository
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(adminRepo repository.AdminRepository, logger zerolog.Logger) AuthService {
	return &authService{
		adminRepo: adminRepo,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

// Login verifies the credentials against the stored hash. A missing admin,
// a wrong password and an inactive account are indistinguishable to the
// caller.
func (s *authService) Login(ctx context.Context, username, password string) (*model.Admin, error) {
	if username == "" || password == "" {
		return nil, model.NewValidationError("Username and password required")
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin == nil || !admin.IsActive {
		s.logger.Warn().Str("username", username).Msg("login attempt for unknown or inactive admin")
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn().Str("username", username).Msg("login attempt with wrong password")
		return nil, model.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		// Login still succeeds; the stamp is best-effort.
		s.logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("failed to stamp last login")
	} else {
		admin.LastLogin = &now
	}

	s.logger.Info().Str("username", username).Msg("admin logged in")
	return admin, nil
}

// VerifyAdmin checks that the admin behind a session still exists and is
// active. Deactivating an admin invalidates their session on the next
// guarded call.
func (s *authService) VerifyAdmin(ctx context.Context, adminID int64) (*model.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin == nil || !admin.IsActive {
		return nil, model.ErrAdminInactive
	}

	return admin, nil
}

// CreateDefaultAdmin bootstraps the single default admin account.
func (s *authService) CreateDefaultAdmin(ctx context.Context) (*model.Admin, error) {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil, model.ErrAdminExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create default admin: %w", err)
	}

	return admin, nil
}
