package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

const maxListLimit = 100

// AuditEnqueuer is the interface the lifecycle uses to hand status changes to
// the async audit pipeline.
type AuditEnqueuer interface {
	Enqueue(event ports.BookingEventInput)
}

// BookingService implements the booking lifecycle: creation in pending status
// and the pending → confirmed → completed/cancelled state machine.
type BookingService struct {
	bookings     ports.BookingRepository
	physicians   ports.PhysicianRepository
	availability *AvailabilityEngine
	audit        AuditEnqueuer
	logger       zerolog.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	physicians ports.PhysicianRepository,
	availability *AvailabilityEngine,
	audit AuditEnqueuer,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		physicians:   physicians,
		availability: availability,
		audit:        audit,
		logger:       logger,
	}
}

// CreateBooking validates the form input, resolves the physician and the slot
// instant, and persists a new pending booking. If an idempotency key is
// provided and already seen, the previously created booking is returned
// without side effects.
func (s *BookingService) CreateBooking(ctx context.Context, input ports.CreateBookingInput) (*ports.BookingResult, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	if input.IdempotencyKey != "" {
		existing, err := s.bookings.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		switch {
		case err != nil && !errors.Is(err, domain.ErrBookingNotFound):
			// A store failure here must not fall through to a fresh insert:
			// the key may already be recorded.
			return nil, err
		case err == nil && existing != nil:
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("reference", existing.Reference).Msg("idempotent replay")
			return &ports.BookingResult{
				Reference:      existing.Reference,
				Status:         string(existing.Status),
				StartAt:        existing.StartAt,
				PhysicianID:    existing.PhysicianID,
				PhysicianName:  existing.PhysicianName,
				CreatedAt:      existing.CreatedAt,
				AlreadyExisted: true,
			}, nil
		}
	}

	slots := s.availability.SlotsFor(input.Date)
	if !containsSlot(slots, input.SlotLabel) {
		return nil, fmt.Errorf("%w: slot %q is not bookable on %s",
			domain.ErrValidation, input.SlotLabel, input.Date.Format("2006-01-02"))
	}

	physician, err := s.physicians.FindByID(ctx, input.PhysicianID)
	if err != nil {
		return nil, err
	}

	startAt, err := s.availability.ResolveInstant(input.Date, input.SlotLabel)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		Reference:      generateReference(),
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		PhysicianID:    physician.ID,
		PhysicianName:  physician.Name,
		StartAt:        startAt,
		ServiceType:    input.ServiceType,
		Status:         domain.StatusPending,
		Notes:          input.Notes,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Notes: "created"},
		},
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.logger.Error().Err(err).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().
		Str("reference", booking.Reference).
		Str("physician_id", physician.ID).
		Time("start_at", startAt).
		Msg("booking created")

	return &ports.BookingResult{
		Reference:     booking.Reference,
		Status:        string(booking.Status),
		StartAt:       booking.StartAt,
		PhysicianID:   physician.ID,
		PhysicianName: physician.Name,
		CreatedAt:     booking.CreatedAt,
	}, nil
}

// GetBooking retrieves a single booking by reference.
func (s *BookingService) GetBooking(ctx context.Context, reference string) (*ports.BookingDetail, error) {
	booking, err := s.bookings.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	return toDetail(booking), nil
}

// ConfirmBooking transitions a pending booking to confirmed.
func (s *BookingService) ConfirmBooking(ctx context.Context, reference, actor string) (*ports.BookingDetail, error) {
	return s.transition(ctx, reference, domain.StatusConfirmed, actor)
}

// CancelBooking transitions a pending or confirmed booking to cancelled.
func (s *BookingService) CancelBooking(ctx context.Context, reference, actor string) (*ports.BookingDetail, error) {
	return s.transition(ctx, reference, domain.StatusCancelled, actor)
}

// CompleteBooking transitions a confirmed booking to completed.
func (s *BookingService) CompleteBooking(ctx context.Context, reference, actor string) (*ports.BookingDetail, error) {
	return s.transition(ctx, reference, domain.StatusCompleted, actor)
}

func (s *BookingService) transition(ctx context.Context, reference string, target domain.BookingStatus, actor string) (*ports.BookingDetail, error) {
	booking, err := s.bookings.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, target)
	}

	ts := time.Now().UTC()
	notes := "by " + actor
	if actor == "" {
		notes = ""
	}
	if err := s.bookings.UpdateStatus(ctx, reference, target, ts, notes); err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Enqueue(ports.BookingEventInput{
			Reference: reference,
			Status:    string(target),
			Timestamp: ts,
			Actor:     actor,
			Notes:     notes,
		})
	}

	s.logger.Info().
		Str("reference", reference).
		Str("from", string(booking.Status)).
		Str("to", string(target)).
		Str("actor", actor).
		Msg("booking transitioned")

	booking.Status = target
	booking.StatusHistory = append(booking.StatusHistory, domain.StatusHistoryEntry{
		Status: target, Timestamp: ts, Notes: notes,
	})
	return toDetail(booking), nil
}

// ListBookings returns a filtered, paginated page of bookings.
func (s *BookingService) ListBookings(ctx context.Context, input ports.ListBookingsInput) (*ports.ListBookingsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, total, err := s.bookings.List(ctx, ports.ListBookingsFilter{
		Status:      input.Status,
		ServiceType: input.ServiceType,
		PhysicianID: input.PhysicianID,
		Search:      input.Search,
		DateFrom:    input.DateFrom,
		DateTo:      input.DateTo,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.BookingSummary, 0, len(items))
	for _, b := range items {
		summaries = append(summaries, ports.BookingSummary{
			Reference:     b.Reference,
			Status:        string(b.Status),
			ServiceType:   b.ServiceType,
			CustomerName:  b.CustomerName,
			PhysicianID:   b.PhysicianID,
			PhysicianName: b.PhysicianName,
			StartAt:       b.StartAt,
			CreatedAt:     b.CreatedAt,
		})
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListBookingsResult{
		Items:      summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func validateCreateInput(input ports.CreateBookingInput) error {
	switch {
	case strings.TrimSpace(input.CustomerName) == "":
		return fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	case strings.TrimSpace(input.CustomerEmail) == "":
		return fmt.Errorf("%w: customer email is required", domain.ErrValidation)
	case input.PhysicianID == "":
		return fmt.Errorf("%w: physician is required", domain.ErrValidation)
	case input.Date.IsZero():
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	case input.SlotLabel == "":
		return fmt.Errorf("%w: time slot is required", domain.ErrValidation)
	}
	if input.ServiceType != "" && input.ServiceType != domain.ServicePhysical && input.ServiceType != domain.ServiceOnline {
		return fmt.Errorf("%w: unknown service type %q", domain.ErrValidation, input.ServiceType)
	}
	return nil
}

func containsSlot(slots []string, label string) bool {
	for _, s := range slots {
		if s == label {
			return true
		}
	}
	return false
}

func toDetail(b *domain.Booking) *ports.BookingDetail {
	history := make([]ports.StatusHistoryItem, 0, len(b.StatusHistory))
	for _, h := range b.StatusHistory {
		history = append(history, ports.StatusHistoryItem{
			Status:    string(h.Status),
			Timestamp: h.Timestamp,
			Notes:     h.Notes,
		})
	}
	return &ports.BookingDetail{
		Reference:     b.Reference,
		Status:        string(b.Status),
		ServiceType:   b.ServiceType,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		PhysicianID:   b.PhysicianID,
		PhysicianName: b.PhysicianName,
		StartAt:       b.StartAt,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		StatusHistory: history,
	}
}

// generateReference returns a unique booking reference in the format APT-XXXXXXXX.
func generateReference() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("APT-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("APT-%08X", b)
}
