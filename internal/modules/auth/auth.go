package auth

import (
	"context"
	"errors"

	"github.com/davidrojas/tienda-backend/internal/modules/user"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password,
// so a login failure never reveals which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (*user.User, error)
}
