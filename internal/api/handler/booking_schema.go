package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Count int64  `json:"count,omitempty"`
}

// --- Request / Response types ---

type createBookingRequest struct {
	CustomerName  string `json:"customer_name"  validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	PhysicianID   string `json:"physician_id"   validate:"required"`
	Date          string `json:"date"           validate:"required,datetime=2006-01-02"`
	Slot          string `json:"slot"           validate:"required"`
	ServiceType   string `json:"service_type"   validate:"omitempty,oneof=physical online"`
	Notes         string `json:"notes"`
}

type bookingLinks struct {
	Self string `json:"self"`
}

type createBookingResponse struct {
	Reference     string       `json:"reference"`
	Status        string       `json:"status"`
	StartAt       time.Time    `json:"start_at"`
	PhysicianID   string       `json:"physician_id"`
	PhysicianName string       `json:"physician_name"`
	CreatedAt     time.Time    `json:"created_at"`
	Links         bookingLinks `json:"_links"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type getBookingResponse struct {
	Reference     string                      `json:"reference"`
	Status        string                      `json:"status"`
	ServiceType   string                      `json:"service_type,omitempty"`
	CustomerName  string                      `json:"customer_name"`
	CustomerEmail string                      `json:"customer_email"`
	PhysicianID   string                      `json:"physician_id"`
	PhysicianName string                      `json:"physician_name"`
	StartAt       time.Time                   `json:"start_at"`
	Notes         string                      `json:"notes,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	StatusHistory []statusHistoryItemResponse `json:"status_history"`
	Links         bookingLinks                `json:"_links"`
}

// bookingSummaryResponse is the lightweight item used in list responses.
// It intentionally omits status_history to keep payloads small.
type bookingSummaryResponse struct {
	Reference     string       `json:"reference"`
	Status        string       `json:"status"`
	ServiceType   string       `json:"service_type,omitempty"`
	CustomerName  string       `json:"customer_name"`
	PhysicianID   string       `json:"physician_id"`
	PhysicianName string       `json:"physician_name"`
	StartAt       time.Time    `json:"start_at"`
	CreatedAt     time.Time    `json:"created_at"`
	Links         bookingLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listBookingsResponse struct {
	Data       []bookingSummaryResponse `json:"data"`
	Pagination paginationResponse       `json:"pagination"`
}

type availabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
