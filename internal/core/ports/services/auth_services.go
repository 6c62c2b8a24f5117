package services

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/glowslot/salon_ledger/internal/dto"
)

// AuthSvcFacade defines user registration and token issuance.
type AuthSvcFacade interface {
	// Register creates a user with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and returns a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
