package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// PaymentService manages the payment transaction history backing the console's
// payment screen.
type PaymentService struct {
	payments ports.PaymentRepository
	logger   zerolog.Logger
}

func NewPaymentService(payments ports.PaymentRepository, logger zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, logger: logger}
}

// RecordPayment persists a new payment record. Status defaults to pending when
// unset.
func (s *PaymentService) RecordPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	switch {
	case p.CustomerName == "":
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	case p.PhysicianName == "":
		return nil, fmt.Errorf("%w: physician name is required", domain.ErrValidation)
	case p.Amount < 0:
		return nil, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	case p.PaymentDate.IsZero():
		return nil, fmt.Errorf("%w: payment date is required", domain.ErrValidation)
	}
	if !validPaymentType(p.Type) {
		return nil, fmt.Errorf("%w: unknown payment type %q", domain.ErrValidation, p.Type)
	}
	if p.Status == "" {
		p.Status = domain.PaymentPending
	} else if !validPaymentStatus(p.Status) {
		return nil, fmt.Errorf("%w: unknown payment status %q", domain.ErrValidation, p.Status)
	}
	p.CreatedAt = time.Now().UTC()

	created, err := s.payments.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("payment_id", created.ID).
		Str("status", string(created.Status)).
		Float64("amount", created.Amount).
		Msg("payment recorded")
	return created, nil
}

// ListPayments returns a filtered, paginated page of payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, input ports.ListPaymentsInput) (*ports.ListPaymentsResult, error) {
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

	items, total, err := s.payments.List(ctx, ports.ListPaymentsFilter{
		Status:     input.Status,
		Type:       input.Type,
		BookingRef: input.BookingRef,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListPaymentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func validPaymentType(t string) bool {
	switch t {
	case domain.PaymentTypeOnline, domain.PaymentTypePhysicalCard, domain.PaymentTypePhysicalCash:
		return true
	}
	return false
}

func validPaymentStatus(s domain.PaymentStatus) bool {
	switch s {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed, domain.PaymentRefunded:
		return true
	}
	return false
}
