package ports

import (
	"context"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

// UserService exposes account management operations. Authorization
// (self-or-admin, role changes) is enforced by the caller; the service
// assumes the request was already authorized.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) (*domain.User, error)
}
