package ports

import (
	"context"

	"github.com/blendpos/pos-backend/internal/core/domain"
)

// AuditEventInput is one auth event on its way to the audit trail.
type AuditEventInput struct {
	Action  string
	Email   string
	UserID  int64
	Success bool
	Detail  string
}

// AuditRecorder accepts events without blocking the request path. The
// dispatcher implementation shards by email so entries for one actor are
// written in order.
type AuditRecorder interface {
	Record(event AuditEventInput)
}

// AuditService persists audit events; called by dispatcher workers.
type AuditService interface {
	Process(ctx context.Context, event AuditEventInput) error
}

// AuditRepository stores audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
