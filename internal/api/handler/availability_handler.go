package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medibook/appointment-system/internal/api/metrics"
	"github.com/medibook/appointment-system/internal/core/service"
)

// AvailabilityHandler serves the bookable slots for a calendar date.
type AvailabilityHandler struct {
	engine *service.AvailabilityEngine
}

func NewAvailabilityHandler(engine *service.AvailabilityEngine) *AvailabilityHandler {
	return &AvailabilityHandler{engine: engine}
}

// Slots handles GET /v1/availability.
//
// @Summary      List bookable slots for a date
// @Tags         availability
// @Produce      json
// @Param        date  query     string  true  "Calendar date (YYYY-MM-DD)"
// @Success      200   {object}  availabilityResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/availability [get]
func (h *AvailabilityHandler) Slots(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must match format "+dateLayout)
	}

	slots := h.engine.SlotsFor(date)
	metrics.SlotQueriesTotal.WithLabelValues(slotKind(date, slots)).Inc()
	if slots == nil {
		slots = []string{}
	}

	return c.JSON(http.StatusOK, availabilityResponse{Date: raw, Slots: slots})
}

func slotKind(date time.Time, slots []string) string {
	if len(slots) == 0 {
		return "past"
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return "weekend"
	}
	return "weekday"
}
