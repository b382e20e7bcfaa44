package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// PhysicianService manages physicians. Deletes are guarded against bookings
// that still reference the physician, whatever their status.
type PhysicianService struct {
	physicians ports.PhysicianRepository
	bookings   ports.BookingRepository
	logger     zerolog.Logger
}

func NewPhysicianService(physicians ports.PhysicianRepository, bookings ports.BookingRepository, logger zerolog.Logger) *PhysicianService {
	return &PhysicianService{physicians: physicians, bookings: bookings, logger: logger}
}

func (s *PhysicianService) CreatePhysician(ctx context.Context, input ports.PhysicianInput) (*domain.Physician, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: physician name is required", domain.ErrValidation)
	}
	if input.Specialty == "" {
		return nil, fmt.Errorf("%w: specialty is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	created, err := s.physicians.Create(ctx, &domain.Physician{
		Name:         input.Name,
		Specialty:    input.Specialty,
		RatePhysical: input.RatePhysical,
		RateOnline:   input.RateOnline,
		Email:        input.Email,
		Phone:        input.Phone,
		Bio:          input.Bio,
		AvatarURL:    input.AvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("physician_id", created.ID).Str("name", created.Name).Msg("physician created")
	return created, nil
}

func (s *PhysicianService) GetPhysician(ctx context.Context, id string) (*domain.Physician, error) {
	return s.physicians.FindByID(ctx, id)
}

func (s *PhysicianService) UpdatePhysician(ctx context.Context, id string, input ports.PhysicianInput) (*domain.Physician, error) {
	p, err := s.physicians.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		p.Name = input.Name
	}
	if input.Specialty != "" {
		p.Specialty = input.Specialty
	}
	p.RatePhysical = input.RatePhysical
	p.RateOnline = input.RateOnline
	p.Email = input.Email
	p.Phone = input.Phone
	p.Bio = input.Bio
	p.AvatarURL = input.AvatarURL
	p.UpdatedAt = time.Now().UTC()

	updated, err := s.physicians.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("physician_id", id).Msg("physician updated")
	return updated, nil
}

// DeletePhysician fails when any booking references the physician. The error
// carries the count so the console can render it.
func (s *PhysicianService) DeletePhysician(ctx context.Context, id string) error {
	if _, err := s.physicians.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.bookings.CountByPhysician(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.PhysicianHasBookingsError{Count: count}
	}

	if err := s.physicians.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("physician_id", id).Msg("physician deleted")
	return nil
}

func (s *PhysicianService) ListPhysicians(ctx context.Context) ([]*domain.Physician, error) {
	return s.physicians.List(ctx)
}
