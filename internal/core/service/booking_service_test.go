package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	byReference   map[string]*domain.Booking
	byIdempotency map[string]*domain.Booking
	physicianRefs map[string]int64 // physicianID → booking count
	createErr     error            // if set, Create returns this error
	lookupErr     error            // if set, FindByIdempotencyKey returns this error
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{
		byReference:   make(map[string]*domain.Booking),
		byIdempotency: make(map[string]*domain.Booking),
		physicianRefs: make(map[string]int64),
	}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *b
	r.byReference[b.Reference] = &clone
	if b.IdempotencyKey != "" {
		r.byIdempotency[b.IdempotencyKey] = &clone
	}
	r.physicianRefs[b.PhysicianID]++
	return nil
}

func (r *stubBookingRepo) FindByReference(_ context.Context, reference string) (*domain.Booking, error) {
	b, ok := r.byReference[reference]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Booking, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	b, ok := r.byIdempotency[key]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, reference string, status domain.BookingStatus, ts time.Time, notes string) error {
	b, ok := r.byReference[reference]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	b.StatusHistory = append(b.StatusHistory, domain.StatusHistoryEntry{Status: status, Timestamp: ts, Notes: notes})
	return nil
}

func (r *stubBookingRepo) CountByPhysician(_ context.Context, physicianID string) (int64, error) {
	return r.physicianRefs[physicianID], nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubBookingRepo) List(_ context.Context, f ports.ListBookingsFilter) ([]*domain.Booking, int64, error) {
	var matched []*domain.Booking
	for _, b := range r.byReference {
		if f.Status != "" && string(b.Status) != f.Status {
			continue
		}
		if f.ServiceType != "" && b.ServiceType != f.ServiceType {
			continue
		}
		if f.PhysicianID != "" && b.PhysicianID != f.PhysicianID {
			continue
		}
		if !f.DateFrom.IsZero() && b.StartAt.Before(f.DateFrom) {
			continue
		}
		if !f.DateTo.IsZero() && b.StartAt.After(f.DateTo) {
			continue
		}
		if f.Search != "" {
			refMatch := strings.Contains(strings.ToLower(b.Reference), strings.ToLower(f.Search))
			nameMatch := strings.Contains(strings.ToLower(b.CustomerName), strings.ToLower(f.Search))
			if !refMatch && !nameMatch {
				continue
			}
		}
		clone := *b
		matched = append(matched, &clone)
	}

	total := int64(len(matched))

	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Booking{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

type stubPhysicianRepo struct {
	byID      map[string]*domain.Physician
	deleteErr error
}

func newStubPhysicianRepo() *stubPhysicianRepo {
	return &stubPhysicianRepo{byID: make(map[string]*domain.Physician)}
}

func (r *stubPhysicianRepo) Create(_ context.Context, p *domain.Physician) (*domain.Physician, error) {
	clone := *p
	if clone.ID == "" {
		clone.ID = "phys_" + p.Name
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPhysicianRepo) FindByID(_ context.Context, id string) (*domain.Physician, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPhysicianNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPhysicianRepo) Update(_ context.Context, p *domain.Physician) (*domain.Physician, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrPhysicianNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPhysicianRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPhysicianNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPhysicianRepo) List(_ context.Context) ([]*domain.Physician, error) {
	out := make([]*domain.Physician, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type stubEnqueuer struct {
	events []ports.BookingEventInput
}

func (e *stubEnqueuer) Enqueue(event ports.BookingEventInput) {
	e.events = append(e.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

// fixedNow pins the availability clock to Monday 2026-03-02 08:00 UTC.
var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newBookingService(repo *stubBookingRepo, physicians *stubPhysicianRepo, audit AuditEnqueuer) *BookingService {
	return NewBookingService(repo, physicians, NewAvailabilityEngine(fixedClock), audit, discardLogger)
}

func seedPhysician(physicians *stubPhysicianRepo, id, name string) {
	physicians.byID[id] = &domain.Physician{ID: id, Name: name, Specialty: "General"}
}

func weekdayInput(physicianID string) ports.CreateBookingInput {
	return ports.CreateBookingInput{
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		PhysicianID:   physicianID,
		Date:          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), // Monday
		SlotLabel:     "09:30 AM",
		ServiceType:   domain.ServicePhysical,
	}
}

// ---------------------------------------------------------------------------
// CreateBooking tests
// ---------------------------------------------------------------------------

func TestBookingService_Create_Success(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	result, err := svc.CreateBooking(context.Background(), weekdayInput("phys_1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(result.Reference, "APT-") {
		t.Errorf("reference format wrong: %s", result.Reference)
	}
	if result.Status != string(domain.StatusPending) {
		t.Errorf("expected status %q, got %q", domain.StatusPending, result.Status)
	}
	if result.PhysicianName != "Dr. Sofia Reyes" {
		t.Errorf("expected resolved physician name, got %q", result.PhysicianName)
	}
	if result.AlreadyExisted {
		t.Error("expected AlreadyExisted=false for new booking")
	}

	want := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	if !result.StartAt.Equal(want) {
		t.Errorf("expected start_at %v, got %v", want, result.StartAt)
	}
}

func TestBookingService_Create_SetsInitialStatusHistory(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	result, err := svc.CreateBooking(context.Background(), weekdayInput("phys_1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.byReference[result.Reference]
	if len(stored.StatusHistory) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(stored.StatusHistory))
	}
	if stored.StatusHistory[0].Status != domain.StatusPending {
		t.Errorf("expected initial status %q, got %q", domain.StatusPending, stored.StatusHistory[0].Status)
	}
}

func TestBookingService_Create_ValidationErrors(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	cases := []struct {
		name   string
		mutate func(*ports.CreateBookingInput)
	}{
		{"missing customer name", func(i *ports.CreateBookingInput) { i.CustomerName = " " }},
		{"missing customer email", func(i *ports.CreateBookingInput) { i.CustomerEmail = "" }},
		{"missing physician", func(i *ports.CreateBookingInput) { i.PhysicianID = "" }},
		{"missing date", func(i *ports.CreateBookingInput) { i.Date = time.Time{} }},
		{"missing slot", func(i *ports.CreateBookingInput) { i.SlotLabel = "" }},
		{"unknown service type", func(i *ports.CreateBookingInput) { i.ServiceType = "telepathy" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := weekdayInput("phys_1")
			tc.mutate(&input)
			_, err := svc.CreateBooking(context.Background(), input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestBookingService_Create_SlotNotBookable(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	// 12:30 PM falls in the weekday lunch gap.
	input := weekdayInput("phys_1")
	input.SlotLabel = "12:30 PM"

	_, err := svc.CreateBooking(context.Background(), input)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for lunch-gap slot, got %v", err)
	}
}

func TestBookingService_Create_WeekendSlotOnWeekday(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	// 09:00 AM is a weekday-only label; Saturday offers 10:00 and 11:00 AM.
	input := weekdayInput("phys_1")
	input.Date = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC) // Saturday
	input.SlotLabel = "09:00 AM"

	_, err := svc.CreateBooking(context.Background(), input)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for off-schedule weekend slot, got %v", err)
	}
}

func TestBookingService_Create_PastDate(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	input := weekdayInput("phys_1")
	input.Date = fixedNow.AddDate(0, 0, -1)

	_, err := svc.CreateBooking(context.Background(), input)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for past date, got %v", err)
	}
}

func TestBookingService_Create_PhysicianNotFound(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	svc := newBookingService(repo, physicians, nil)

	_, err := svc.CreateBooking(context.Background(), weekdayInput("phys_missing"))
	if !errors.Is(err, domain.ErrPhysicianNotFound) {
		t.Errorf("expected ErrPhysicianNotFound, got %v", err)
	}
}

func TestBookingService_Create_RepoError(t *testing.T) {
	repo := newStubBookingRepo()
	repo.createErr = errors.New("db unavailable")
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	_, err := svc.CreateBooking(context.Background(), weekdayInput("phys_1"))
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// Idempotency tests
// ---------------------------------------------------------------------------

func TestBookingService_Create_IdempotencyReplay(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	input := weekdayInput("phys_1")
	input.IdempotencyKey = "key-abc-123"

	first, err := svc.CreateBooking(context.Background(), input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second, err := svc.CreateBooking(context.Background(), input)
	if err != nil {
		t.Fatalf("second create (replay) failed: %v", err)
	}

	if second.Reference != first.Reference {
		t.Errorf("replay must return same reference: got %q, want %q", second.Reference, first.Reference)
	}
	if !second.AlreadyExisted {
		t.Error("replay must set AlreadyExisted=true")
	}
	if len(repo.byReference) != 1 {
		t.Errorf("expected 1 stored booking, got %d", len(repo.byReference))
	}
}

func TestBookingService_Create_IdempotencyLookupFailure_NoDuplicate(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	input := weekdayInput("phys_1")
	input.IdempotencyKey = "key-abc-123"
	repo.lookupErr = &domain.PersistenceError{Op: "find booking by idempotency key", Err: errors.New("connection reset")}

	_, err := svc.CreateBooking(context.Background(), input)
	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("a failed key lookup must propagate, got %v", err)
	}
	if len(repo.byReference) != 0 {
		t.Errorf("a failed key lookup must not create a booking; got %d stored", len(repo.byReference))
	}
}

func TestBookingService_Create_NoIdempotencyKey_AlwaysCreates(t *testing.T) {
	repo := newStubBookingRepo()
	physicians := newStubPhysicianRepo()
	seedPhysician(physicians, "phys_1", "Dr. Sofia Reyes")
	svc := newBookingService(repo, physicians, nil)

	_, _ = svc.CreateBooking(context.Background(), weekdayInput("phys_1"))
	_, _ = svc.CreateBooking(context.Background(), weekdayInput("phys_1"))

	if len(repo.byReference) != 2 {
		t.Errorf("without idempotency key, each call must create a new booking; got %d", len(repo.byReference))
	}
}

// ---------------------------------------------------------------------------
// Lifecycle transition tests
// ---------------------------------------------------------------------------

func seedBooking(repo *stubBookingRepo, reference string, status domain.BookingStatus) {
	now := time.Now().UTC()
	repo.byReference[reference] = &domain.Booking{
		Reference:     reference,
		CustomerName:  "Ana Torres",
		CustomerEmail: "ana@example.com",
		PhysicianID:   "phys_1",
		PhysicianName: "Dr. Sofia Reyes",
		StartAt:       now.AddDate(0, 0, 1),
		Status:        status,
		CreatedAt:     now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Notes: "created"},
		},
	}
}

func TestBookingService_Confirm_FromPending(t *testing.T) {
	repo := newStubBookingRepo()
	audit := &stubEnqueuer{}
	svc := newBookingService(repo, newStubPhysicianRepo(), audit)
	seedBooking(repo, "APT-AAAA1111", domain.StatusPending)

	detail, err := svc.ConfirmBooking(context.Background(), "APT-AAAA1111", "admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Status != string(domain.StatusConfirmed) {
		t.Errorf("expected status confirmed, got %q", detail.Status)
	}
	if got := len(detail.StatusHistory); got != 2 {
		t.Errorf("expected 2 history entries, got %d", got)
	}
	if len(audit.events) != 1 || audit.events[0].Status != string(domain.StatusConfirmed) {
		t.Errorf("expected one confirmed audit event, got %+v", audit.events)
	}
}

func TestBookingService_Complete_FromPending_Fails(t *testing.T) {
	repo := newStubBookingRepo()
	svc := newBookingService(repo, newStubPhysicianRepo(), nil)
	seedBooking(repo, "APT-AAAA1111", domain.StatusPending)

	_, err := svc.CompleteBooking(context.Background(), "APT-AAAA1111", "admin@example.com")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBookingService_TransitionMatrix(t *testing.T) {
	cases := []struct {
		from    domain.BookingStatus
		op      string
		wantErr bool
	}{
		{domain.StatusPending, "confirm", false},
		{domain.StatusPending, "cancel", false},
		{domain.StatusPending, "complete", true},
		{domain.StatusConfirmed, "complete", false},
		{domain.StatusConfirmed, "cancel", false},
		{domain.StatusConfirmed, "confirm", true},
		{domain.StatusCancelled, "confirm", true},
		{domain.StatusCancelled, "complete", true},
		{domain.StatusCompleted, "cancel", true},
		{domain.StatusCompleted, "confirm", true},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_"+tc.op, func(t *testing.T) {
			repo := newStubBookingRepo()
			svc := newBookingService(repo, newStubPhysicianRepo(), nil)
			seedBooking(repo, "APT-AAAA1111", tc.from)

			var err error
			switch tc.op {
			case "confirm":
				_, err = svc.ConfirmBooking(context.Background(), "APT-AAAA1111", "admin@example.com")
			case "cancel":
				_, err = svc.CancelBooking(context.Background(), "APT-AAAA1111", "admin@example.com")
			case "complete":
				_, err = svc.CompleteBooking(context.Background(), "APT-AAAA1111", "admin@example.com")
			}

			if tc.wantErr && !errors.Is(err, domain.ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBookingService_Transition_NotFound(t *testing.T) {
	repo := newStubBookingRepo()
	svc := newBookingService(repo, newStubPhysicianRepo(), nil)

	_, err := svc.ConfirmBooking(context.Background(), "APT-MISSING", "admin@example.com")
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingService_InvalidTransition_NoAuditEvent(t *testing.T) {
	repo := newStubBookingRepo()
	audit := &stubEnqueuer{}
	svc := newBookingService(repo, newStubPhysicianRepo(), audit)
	seedBooking(repo, "APT-AAAA1111", domain.StatusCompleted)

	_, _ = svc.CancelBooking(context.Background(), "APT-AAAA1111", "admin@example.com")
	if len(audit.events) != 0 {
		t.Errorf("rejected transition must not enqueue audit events, got %d", len(audit.events))
	}
}

// ---------------------------------------------------------------------------
// ListBookings tests
// ---------------------------------------------------------------------------

func TestBookingService_List_DefaultsAndCaps(t *testing.T) {
	repo := newStubBookingRepo()
	svc := newBookingService(repo, newStubPhysicianRepo(), nil)
	seedBooking(repo, "APT-AAAA1111", domain.StatusPending)
	seedBooking(repo, "APT-BBBB2222", domain.StatusConfirmed)

	result, err := svc.ListBookings(context.Background(), ports.ListBookingsInput{Page: 0, Limit: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Page != 1 {
		t.Errorf("page must default to 1, got %d", result.Page)
	}
	if result.Limit != 100 {
		t.Errorf("limit must cap at 100, got %d", result.Limit)
	}
	if result.Total != 2 {
		t.Errorf("expected total 2, got %d", result.Total)
	}
	if result.TotalPages != 1 {
		t.Errorf("expected 1 total page, got %d", result.TotalPages)
	}
}

func TestBookingService_List_StatusFilter(t *testing.T) {
	repo := newStubBookingRepo()
	svc := newBookingService(repo, newStubPhysicianRepo(), nil)
	seedBooking(repo, "APT-AAAA1111", domain.StatusPending)
	seedBooking(repo, "APT-BBBB2222", domain.StatusConfirmed)

	result, err := svc.ListBookings(context.Background(), ports.ListBookingsInput{Status: "confirmed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Reference != "APT-BBBB2222" {
		t.Errorf("expected the single confirmed booking, got %+v", result.Items)
	}
}
