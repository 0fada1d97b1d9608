package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("audit %s %s: %w", event.Entity, event.Action, err)
	}
	s.log.Debug().
		Str("entity", event.Entity).
		Str("entity_id", event.EntityID).
		Str("action", string(event.Action)).
		Str("actor_id", event.ActorID).
		Msg("audit event stored")
	return nil
}

// NopRecorder drops every event.
type NopRecorder struct{}

func (NopRecorder) Record(domain.AuditEvent) {}

// record builds an audit event for the actor found in ctx.
func record(ctx context.Context, rec ports.AuditRecorder, entity, id string, action domain.AuditAction, at func() time.Time) {
	actor, _ := domain.SubjectFrom(ctx)
	rec.Record(domain.AuditEvent{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		ActorID:  actor,
		At:       at().UTC(),
	})
}
