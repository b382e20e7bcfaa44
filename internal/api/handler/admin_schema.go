package handler

import (
	"time"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// --- Role types ---

type roleRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

type roleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Core        bool   `json:"core"`
}

func toRoleResponse(r *domain.Role) roleResponse {
	return roleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		Core:        domain.IsCoreRole(r.Name),
	}
}

// --- Physician types ---

type physicianRequest struct {
	Name         string   `json:"name"      validate:"required"`
	Specialty    string   `json:"specialty" validate:"required"`
	RatePhysical *float64 `json:"rate_physical"`
	RateOnline   *float64 `json:"rate_online"`
	Email        string   `json:"email"     validate:"omitempty,email"`
	Phone        string   `json:"phone"`
	Bio          string   `json:"bio"`
	AvatarURL    string   `json:"avatar_url"`
}

type physicianResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Specialty    string   `json:"specialty"`
	RatePhysical *float64 `json:"rate_physical,omitempty"`
	RateOnline   *float64 `json:"rate_online,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
}

func toPhysicianResponse(p *domain.Physician) physicianResponse {
	return physicianResponse{
		ID:           p.ID,
		Name:         p.Name,
		Specialty:    p.Specialty,
		RatePhysical: p.RatePhysical,
		RateOnline:   p.RateOnline,
		Email:        p.Email,
		Phone:        p.Phone,
		Bio:          p.Bio,
		AvatarURL:    p.AvatarURL,
	}
}

// --- User types ---

type createUserRequest struct {
	Name      string `json:"name"     validate:"required"`
	Email     string `json:"email"    validate:"required,email"`
	RoleID    string `json:"role_id"  validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	Status    string `json:"status"   validate:"omitempty,oneof=active inactive"`
	AvatarURL string `json:"avatar_url"`
}

type updateUserRequest struct {
	Name      string `json:"name"     validate:"required"`
	Email     string `json:"email"    validate:"required,email"`
	RoleID    string `json:"role_id"  validate:"required"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	Status    string `json:"status"   validate:"omitempty,oneof=active inactive"`
	AvatarURL string `json:"avatar_url"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    string    `json:"role_id"`
	Status    string    `json:"status"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RoleID:    u.RoleID,
		Status:    string(u.Status),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// --- Payment types ---

type recordPaymentRequest struct {
	CustomerName     string  `json:"customer_name"  validate:"required"`
	CustomerEmail    string  `json:"customer_email" validate:"omitempty,email"`
	PhysicianName    string  `json:"physician_name" validate:"required"`
	BookingReference string  `json:"booking_reference"`
	PaymentDate      string  `json:"payment_date"   validate:"required,datetime=2006-01-02"`
	Amount           float64 `json:"amount"         validate:"min=0"`
	Type             string  `json:"type"           validate:"required,oneof=online physical_card physical_cash"`
	Status           string  `json:"status"         validate:"omitempty,oneof=pending paid failed refunded"`
	TransactionID    string  `json:"transaction_id"`
}

type paymentResponse struct {
	ID               string    `json:"id"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email,omitempty"`
	PhysicianName    string    `json:"physician_name"`
	BookingReference string    `json:"booking_reference,omitempty"`
	PaymentDate      time.Time `json:"payment_date"`
	Amount           float64   `json:"amount"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	TransactionID    string    `json:"transaction_id,omitempty"`
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:               p.ID,
		CustomerName:     p.CustomerName,
		CustomerEmail:    p.CustomerEmail,
		PhysicianName:    p.PhysicianName,
		BookingReference: p.BookingReference,
		PaymentDate:      p.PaymentDate,
		Amount:           p.Amount,
		Type:             p.Type,
		Status:           string(p.Status),
		TransactionID:    p.TransactionID,
	}
}

type listPaymentsResponse struct {
	Data       []paymentResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
