package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"apartment_booking_backend/internal/services"
	"apartment_booking_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CalendarHandler serves the month grid projection.
type CalendarHandler struct {
	calendarService services.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(cs services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: cs}
}

// GetMonthGrid returns the 42-cell month view with bookings projected onto
// it. Defaults to the current month when year/month are omitted.
func (h *CalendarHandler) GetMonthGrid(c *gin.Context) {
	now := time.Now()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid year format.", err.Error()))
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid month format.", err.Error()))
		return
	}

	grid, err := h.calendarService.GetMonthGrid(year, time.Month(month))
	if err != nil {
		utils.LogError(err, "GetMonthGrid: calendar service error")
		if errors.Is(err, services.ErrInvalidMonth) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build calendar.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, grid)
}
