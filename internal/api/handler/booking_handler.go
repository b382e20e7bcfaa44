package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medibook/appointment-system/internal/api/metrics"
	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// dateLayout is the wire format for calendar dates (query params and bodies).
const dateLayout = "2006-01-02"

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /v1/bookings.
//
// @Summary      Create a new booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createBookingRequest  true   "Booking details"
// @Success      201              {object}  createBookingResponse
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must match format "+dateLayout)
	}

	result, err := h.service.CreateBooking(c.Request().Context(), ports.CreateBookingInput{
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		PhysicianID:    req.PhysicianID,
		Date:           date,
		SlotLabel:      req.Slot,
		ServiceType:    req.ServiceType,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	} else {
		metrics.BookingsCreatedTotal.WithLabelValues(serviceTypeLabel(req.ServiceType)).Inc()
	}

	return c.JSON(status, createBookingResponse{
		Reference:     result.Reference,
		Status:        result.Status,
		StartAt:       result.StartAt,
		PhysicianID:   result.PhysicianID,
		PhysicianName: result.PhysicianName,
		CreatedAt:     result.CreatedAt,
		Links:         bookingLinks{Self: "/v1/bookings/" + result.Reference},
	})
}

// Get handles GET /v1/bookings/:reference.
//
// @Summary      Get a booking by reference
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Booking reference (e.g. APT-7A8B9C2D)"
// @Success      200        {object}  getBookingResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /v1/bookings/{reference} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	detail, err := h.service.GetBooking(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(detail))
}

// List handles GET /v1/bookings.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status        query     string  false  "Filter by status"
// @Param        service_type  query     string  false  "Filter by service type"
// @Param        physician_id  query     string  false  "Filter by physician"
// @Param        search        query     string  false  "Search reference or customer name"
// @Param        date_from     query     string  false  "Start of date range (YYYY-MM-DD)"
// @Param        date_to       query     string  false  "End of date range (YYYY-MM-DD)"
// @Param        page          query     int     false  "Page number (default 1)"
// @Param        limit         query     int     false  "Page size (default 20, max 100)"
// @Success      200           {object}  listBookingsResponse
// @Failure      400           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /v1/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	input := ports.ListBookingsInput{
		Status:      c.QueryParam("status"),
		ServiceType: c.QueryParam("service_type"),
		PhysicianID: c.QueryParam("physician_id"),
		Search:      c.QueryParam("search"),
	}

	var err error
	if input.DateFrom, err = parseDateParam(c.QueryParam("date_from")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_from must match format "+dateLayout)
	}
	if input.DateTo, err = parseDateParam(c.QueryParam("date_to")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_to must match format "+dateLayout)
	}
	input.Page, _ = strconv.Atoi(c.QueryParam("page"))
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListBookings(c.Request().Context(), input)
	if err != nil {
		return err
	}

	items := make([]bookingSummaryResponse, 0, len(result.Items))
	for _, s := range result.Items {
		items = append(items, bookingSummaryResponse{
			Reference:     s.Reference,
			Status:        s.Status,
			ServiceType:   s.ServiceType,
			CustomerName:  s.CustomerName,
			PhysicianID:   s.PhysicianID,
			PhysicianName: s.PhysicianName,
			StartAt:       s.StartAt,
			CreatedAt:     s.CreatedAt,
			Links:         bookingLinks{Self: "/v1/bookings/" + s.Reference},
		})
	}

	return c.JSON(http.StatusOK, listBookingsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Confirm handles POST /v1/bookings/:reference/confirm.
//
// @Summary      Confirm a pending booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Booking reference"
// @Success      200        {object}  getBookingResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/bookings/{reference}/confirm [post]
func (h *BookingHandler) Confirm(c echo.Context) error {
	return h.transition(c, domain.StatusConfirmed, h.service.ConfirmBooking)
}

// Cancel handles POST /v1/bookings/:reference/cancel.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Booking reference"
// @Success      200        {object}  getBookingResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/bookings/{reference}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, domain.StatusCancelled, h.service.CancelBooking)
}

// Complete handles POST /v1/bookings/:reference/complete.
//
// @Summary      Complete a confirmed booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Booking reference"
// @Success      200        {object}  getBookingResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/bookings/{reference}/complete [post]
func (h *BookingHandler) Complete(c echo.Context) error {
	return h.transition(c, domain.StatusCompleted, h.service.CompleteBooking)
}

func (h *BookingHandler) transition(
	c echo.Context,
	target domain.BookingStatus,
	op func(ctx context.Context, reference, actor string) (*ports.BookingDetail, error),
) error {
	detail, err := op(c.Request().Context(), c.Param("reference"), claimEmail(c))
	if err != nil {
		return err
	}
	if n := len(detail.StatusHistory); n >= 2 {
		metrics.BookingTransitionsTotal.
			WithLabelValues(detail.StatusHistory[n-2].Status, string(target)).Inc()
	}
	return c.JSON(http.StatusOK, toBookingResponse(detail))
}

func toBookingResponse(detail *ports.BookingDetail) getBookingResponse {
	history := make([]statusHistoryItemResponse, 0, len(detail.StatusHistory))
	for _, h := range detail.StatusHistory {
		history = append(history, statusHistoryItemResponse{
			Status:    h.Status,
			Timestamp: h.Timestamp,
			Notes:     h.Notes,
		})
	}
	return getBookingResponse{
		Reference:     detail.Reference,
		Status:        detail.Status,
		ServiceType:   detail.ServiceType,
		CustomerName:  detail.CustomerName,
		CustomerEmail: detail.CustomerEmail,
		PhysicianID:   detail.PhysicianID,
		PhysicianName: detail.PhysicianName,
		StartAt:       detail.StartAt,
		Notes:         detail.Notes,
		CreatedAt:     detail.CreatedAt,
		StatusHistory: history,
		Links:         bookingLinks{Self: "/v1/bookings/" + detail.Reference},
	}
}

func serviceTypeLabel(serviceType string) string {
	if serviceType == "" {
		return "unspecified"
	}
	return serviceType
}

func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, raw, time.UTC)
}
