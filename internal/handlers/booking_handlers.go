package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"apartment_booking_backend/internal/services"
	"apartment_booking_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler holds the booking service.
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// currentUserID extracts the authenticated user's id from the gin context.
func currentUserID(c *gin.Context) (int64, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := raw.(int64)
	return id, ok
}

func respondBookingError(c *gin.Context, err error, action string) {
	utils.LogError(err, action+": booking service error")
	switch {
	case errors.Is(err, services.ErrPeriodUnavailable):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
	case errors.Is(err, services.ErrBookingValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	case errors.Is(err, services.ErrBookingNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Booking not found.", err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process booking request.", "Internal error"))
	}
}

// CreateBooking handles the creation of a new booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateBooking: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return
	}

	booking, err := h.bookingService.CreateBooking(req, userID)
	if err != nil {
		respondBookingError(c, err, "CreateBooking")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookings returns all bookings reshaped per-date into morning/evening
// summaries.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	byDate, err := h.bookingService.GetBookingsByDay()
	if err != nil {
		respondBookingError(c, err, "GetBookings")
		return
	}
	c.JSON(http.StatusOK, byDate)
}

// GetBookingsByDate handles fetching bookings for an exact date.
func (h *BookingHandler) GetBookingsByDate(c *gin.Context) {
	bookings, err := h.bookingService.GetBookingsByDate(c.Param("date"))
	if err != nil {
		respondBookingError(c, err, "GetBookingsByDate")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingsByRange handles fetching bookings in an inclusive date range.
func (h *BookingHandler) GetBookingsByRange(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "startDate and endDate query parameters are required.", ""))
		return
	}

	bookings, err := h.bookingService.GetBookingsByDateRange(startDate, endDate)
	if err != nil {
		respondBookingError(c, err, "GetBookingsByRange")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetRecentBookings handles fetching the most recently created bookings.
func (h *BookingHandler) GetRecentBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	bookings, err := h.bookingService.GetRecentBookings(limit)
	if err != nil {
		respondBookingError(c, err, "GetRecentBookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID handles fetching a single booking by ID.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	bookingID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	booking, err := h.bookingService.GetBookingByID(bookingID)
	if err != nil {
		respondBookingError(c, err, "GetBookingByID")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking handles updating a booking.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateBooking: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateBooking(bookingID, req)
	if err != nil {
		respondBookingError(c, err, "UpdateBooking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles deleting a booking.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid booking ID format.", err.Error()))
		return
	}

	if err := h.bookingService.DeleteBooking(bookingID); err != nil {
		respondBookingError(c, err, "DeleteBooking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// saveBookingForm is the legacy form payload of POST /api/save_booking.
// Numeric fields arrive as strings and are parsed leniently.
type saveBookingForm struct {
	Date   string `json:"date" binding:"required"`
	Period string `json:"period" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Paid   string `json:"paid"`
	Rest   string `json:"rest"`
	People string `json:"people"`
	Notes  string `json:"notes"`
}

// SaveBooking handles the legacy booking form endpoint. The creator is bound
// to the session user.
func (h *BookingHandler) SaveBooking(c *gin.Context) {
	var form saveBookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.LogError(err, "SaveBooking: Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid booking form: " + err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not authenticated."})
		return
	}

	paid := utils.AtoiOrDefault(form.Paid, 0)
	remaining := utils.AtoiOrDefault(form.Rest, 0)
	people := utils.AtoiOrDefault(form.People, 1)

	req := services.CreateBookingRequest{
		Date:        form.Date,
		Period:      form.Period,
		TenantName:  form.Name,
		PhoneNumber: form.Phone,
		Paid:        &paid,
		Remaining:   &remaining,
		PeopleCount: &people,
		Notes:       utils.NewNullString(form.Notes),
	}

	booking, err := h.bookingService.CreateBooking(req, userID)
	if err != nil {
		utils.LogError(err, "SaveBooking: booking service error")
		if errors.Is(err, services.ErrPeriodUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})
		} else if errors.Is(err, services.ErrBookingValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create booking."})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "booking": booking})
}
