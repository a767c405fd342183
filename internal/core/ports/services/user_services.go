package services

import (
	"context"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/dto"
)

// UserSvcFacade defines user registration and authentication.
type UserSvcFacade interface {
	// RegisterUser creates a user with a bcrypt password hash.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AuthenticateUser checks credentials and returns a signed JWT.
	AuthenticateUser(ctx context.Context, email, password string) (string, *domain.User, error)

	// GetUserByID retrieves a specific user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
