package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medibook/appointment-system/internal/core/ports"
)

// PhysicianHandler handles HTTP requests for physician management.
type PhysicianHandler struct {
	service ports.PhysicianService
}

func NewPhysicianHandler(service ports.PhysicianService) *PhysicianHandler {
	return &PhysicianHandler{service: service}
}

// List handles GET /v1/physicians.
//
// @Summary      List physicians
// @Tags         physicians
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   physicianResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/physicians [get]
func (h *PhysicianHandler) List(c echo.Context) error {
	physicians, err := h.service.ListPhysicians(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]physicianResponse, 0, len(physicians))
	for _, p := range physicians {
		resp = append(resp, toPhysicianResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /v1/physicians/:id.
//
// @Summary      Get a physician
// @Tags         physicians
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Physician id"
// @Success      200  {object}  physicianResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/physicians/{id} [get]
func (h *PhysicianHandler) Get(c echo.Context) error {
	physician, err := h.service.GetPhysician(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPhysicianResponse(physician))
}

// Create handles POST /v1/physicians.
//
// @Summary      Create a physician
// @Tags         physicians
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      physicianRequest  true  "Physician details"
// @Success      201   {object}  physicianResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/physicians [post]
func (h *PhysicianHandler) Create(c echo.Context) error {
	var req physicianRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	physician, err := h.service.CreatePhysician(c.Request().Context(), physicianInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPhysicianResponse(physician))
}

// Update handles PUT /v1/physicians/:id.
//
// @Summary      Update a physician
// @Tags         physicians
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Physician id"
// @Param        body  body      physicianRequest  true  "Physician details"
// @Success      200   {object}  physicianResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/physicians/{id} [put]
func (h *PhysicianHandler) Update(c echo.Context) error {
	var req physicianRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	physician, err := h.service.UpdatePhysician(c.Request().Context(), c.Param("id"), physicianInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPhysicianResponse(physician))
}

// Delete handles DELETE /v1/physicians/:id. Fails with 409 when any
// booking still references the physician.
//
// @Summary      Delete a physician
// @Tags         physicians
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Physician id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/physicians/{id} [delete]
func (h *PhysicianHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePhysician(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func physicianInput(req physicianRequest) ports.PhysicianInput {
	return ports.PhysicianInput{
		Name:         req.Name,
		Specialty:    req.Specialty,
		RatePhysical: req.RatePhysical,
		RateOnline:   req.RateOnline,
		Email:        req.Email,
		Phone:        req.Phone,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
	}
}
