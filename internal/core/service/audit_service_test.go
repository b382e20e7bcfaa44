package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

type stubAuditRepo struct {
	events    []*domain.BookingEvent
	insertErr error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.BookingEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(reference, status string, ts time.Time) string {
	return reference + ":" + status + ":" + ts.UTC().Format(time.RFC3339)
}

func (d *stubDedup) IsDuplicate(_ context.Context, reference, status string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[d.key(reference, status, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, reference, status string, ts time.Time) error {
	d.seen[d.key(reference, status, ts)] = true
	return nil
}

func sampleEvent() ports.BookingEventInput {
	return ports.BookingEventInput{
		Reference: "APT-AAAA1111",
		Status:    string(domain.StatusConfirmed),
		Timestamp: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Actor:     "admin@example.com",
		Notes:     "by admin@example.com",
	}
}

func TestAuditService_Process_RecordsEvent(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), discardLogger)

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(repo.events))
	}
	if repo.events[0].Status != domain.StatusConfirmed || repo.events[0].Actor != "admin@example.com" {
		t.Errorf("event fields wrong: %+v", repo.events[0])
	}
}

func TestAuditService_Process_SkipsDuplicate(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), discardLogger)

	event := sampleEvent()
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("first process failed: %v", err)
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("redelivery must not error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Errorf("redelivered event must be skipped, got %d records", len(repo.events))
	}
}

func TestAuditService_Process_DedupFailureStillRecords(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := newStubDedup()
	dedup.checkErr = errors.New("redis down")
	svc := NewAuditService(repo, dedup, discardLogger)

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Error("a failed dedup check must not drop the event")
	}
}

func TestAuditService_Process_InsertError(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("db unavailable")}
	svc := NewAuditService(repo, newStubDedup(), discardLogger)

	if err := svc.Process(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected error when insert fails, got nil")
	}
}
