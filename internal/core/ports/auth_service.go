package ports

import (
	"context"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Signin(ctx context.Context, email, password string) (*domain.User, error)
}
