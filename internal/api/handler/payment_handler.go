package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// PaymentHandler serves the console's payment transaction history.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List handles GET /v1/payments.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Filter by status"
// @Param        type         query     string  false  "Filter by payment type"
// @Param        booking_ref  query     string  false  "Filter by booking reference"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 20, max 100)"
// @Success      200          {object}  listPaymentsResponse
// @Failure      401          {object}  errorResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	input := ports.ListPaymentsInput{
		Status:     c.QueryParam("status"),
		Type:       c.QueryParam("type"),
		BookingRef: c.QueryParam("booking_ref"),
	}
	input.Page, _ = strconv.Atoi(c.QueryParam("page"))
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListPayments(c.Request().Context(), input)
	if err != nil {
		return err
	}

	items := make([]paymentResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toPaymentResponse(p))
	}
	return c.JSON(http.StatusOK, listPaymentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Create handles POST /v1/payments.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordPaymentRequest  true  "Payment details"
// @Success      201   {object}  paymentResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := time.ParseInLocation(dateLayout, req.PaymentDate, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payment_date must match format "+dateLayout)
	}

	created, err := h.service.RecordPayment(c.Request().Context(), &domain.Payment{
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		PhysicianName:    req.PhysicianName,
		BookingReference: req.BookingReference,
		PaymentDate:      date,
		Amount:           req.Amount,
		Type:             req.Type,
		Status:           domain.PaymentStatus(req.Status),
		TransactionID:    req.TransactionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPaymentResponse(created))
}
