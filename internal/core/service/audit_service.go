package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) used to skip
// already-recorded audit events on redelivery.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, reference, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, reference, status string, ts time.Time) error
}

type auditService struct {
	auditRepo ports.AuditRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(auditRepo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{auditRepo: auditRepo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single booking status event. The
// transition itself was already validated and applied synchronously by the
// booking lifecycle; this pipeline only keeps the audit trail.
func (s *auditService) Process(ctx context.Context, in ports.BookingEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.Reference, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("reference", in.Reference).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("reference", in.Reference).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, in.Reference, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("reference", in.Reference).Msg("failed to set dedup key")
	}

	event := &domain.BookingEvent{
		Reference: in.Reference,
		Status:    domain.BookingStatus(in.Status),
		Timestamp: in.Timestamp,
		Actor:     in.Actor,
		Notes:     in.Notes,
	}
	if err := s.auditRepo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	s.log.Info().
		Str("reference", in.Reference).
		Str("status", in.Status).
		Str("actor", in.Actor).
		Msg("audit event recorded")

	return nil
}
