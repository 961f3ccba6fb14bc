package services

import (
	"context"

	"github.com/caixazul/treasury_backend/internal/dto"
)

// AuthSvcFacade exposes authentication operations.
type AuthSvcFacade interface {
	// Login validates credentials and issues a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Register creates a new user with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
}
