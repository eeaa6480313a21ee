package ports

import (
	"context"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditTrail is the asynchronous entry point handlers use to emit audit
// events. Enqueue must never block the request path.
type AuditTrail interface {
	Enqueue(event domain.AuditEvent)
}
