package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medibook/appointment-system/internal/core/service"
)

func fixedEngine() *service.AvailabilityEngine {
	// Monday, March 2nd 2026.
	return service.NewAvailabilityEngine(func() time.Time {
		return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	})
}

func requestSlots(t *testing.T, date string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	handler := NewAvailabilityHandler(fixedEngine())

	req := httptest.NewRequest(http.MethodGet, "/v1/availability?date="+date, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Slots(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestAvailabilityHandler_WeekdaySlots(t *testing.T) {
	rec := requestSlots(t, "2026-03-04")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Date != "2026-03-04" {
		t.Errorf("unexpected date: %q", resp.Date)
	}
	if len(resp.Slots) != 13 {
		t.Errorf("expected 13 weekday slots, got %d", len(resp.Slots))
	}
}

func TestAvailabilityHandler_PastDateReturnsEmptyArray(t *testing.T) {
	rec := requestSlots(t, "2026-02-27")

	// The body must carry [], not null.
	body := rec.Body.String()
	if !json.Valid([]byte(body)) {
		t.Fatalf("invalid json: %s", body)
	}
	var resp struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Slots == nil || len(resp.Slots) != 0 {
		t.Errorf("past date must give an empty slot list, got %v (body %s)", resp.Slots, body)
	}
}

func TestAvailabilityHandler_MissingDate(t *testing.T) {
	e := newTestEcho()
	handler := NewAvailabilityHandler(fixedEngine())

	req := httptest.NewRequest(http.MethodGet, "/v1/availability", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Slots(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 HTTPError, got %v", err)
	}
}

func TestAvailabilityHandler_MalformedDate(t *testing.T) {
	e := newTestEcho()
	handler := NewAvailabilityHandler(fixedEngine())

	req := httptest.NewRequest(http.MethodGet, "/v1/availability?date=March+4", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Slots(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 HTTPError, got %v", err)
	}
}
