package domain

import "time"

// AuditAction is the kind of write recorded in the audit trail.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditUpdated AuditAction = "updated"
	AuditDeleted AuditAction = "deleted"
)

// Entity names used for cache namespaces, audit records and metrics labels.
const (
	EntityUser    = "user"
	EntityProduct = "product"
	EntityOffer   = "offer"
)

// AuditEvent records a successful write to a catalog or profile entity.
type AuditEvent struct {
	Entity   string
	EntityID string
	Action   AuditAction
	ActorID  string // empty for writes made outside a request (seed, migrate)
	At       time.Time
}
