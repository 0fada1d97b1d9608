package ports

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// AuditRepository appends audit events to durable storage.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService persists a single audit event.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditRecorder accepts audit events without blocking the caller on storage.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
