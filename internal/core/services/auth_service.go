package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/glowslot/salon_ledger/internal/platform/config"
	"github.com/glowslot/salon_ledger/internal/utils"
	"github.com/google/uuid"
)

// authService handles user registration and token issuance.
type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates a user with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "user registered", slog.String("user_id", user.UserID))
	user.PasswordHash = ""
	return &user, nil
}

// Login verifies credentials and returns a signed JWT. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "login failed, bad password", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:  token,
		UserID: user.UserID,
		Name:   user.Name,
	}, nil
}

// GetUserByID retrieves a user without the password hash.
func (s *authService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
