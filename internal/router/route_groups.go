package router

import (
	"apartment_booking_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes sets up the session routes that need no
// authenticated session.
func SetupPublicAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	apiGroup.POST("/register", authHandler.RegisterUser)
	apiGroup.POST("/login", authHandler.LoginUser)
	apiGroup.POST("/logout", authHandler.LogoutUser)
}

// SetupAuthenticatedAuthRoutes sets up the session routes that require an
// authenticated session.
func SetupAuthenticatedAuthRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authenticatedGroup.GET("/user", authHandler.GetCurrentUser)
}

// SetupBookingRoutes sets up the booking routes.
func SetupBookingRoutes(authenticatedGroup *gin.RouterGroup, bookingHandler *handlers.BookingHandler) {
	bookingRoutes := authenticatedGroup.Group("/bookings")
	{
		bookingRoutes.GET("", bookingHandler.GetBookings)
		bookingRoutes.GET("/date/:date", bookingHandler.GetBookingsByDate)
		bookingRoutes.GET("/range", bookingHandler.GetBookingsByRange)
		bookingRoutes.GET("/recent", bookingHandler.GetRecentBookings)
		bookingRoutes.GET("/:id", bookingHandler.GetBookingByID)
		bookingRoutes.POST("", bookingHandler.CreateBooking)
		bookingRoutes.PUT("/:id", bookingHandler.UpdateBooking)
		bookingRoutes.DELETE("/:id", bookingHandler.DeleteBooking)
	}

	// Legacy form endpoint kept for older clients.
	authenticatedGroup.POST("/save_booking", bookingHandler.SaveBooking)
}

// SetupStatsRoutes sets up the stats routes.
func SetupStatsRoutes(authenticatedGroup *gin.RouterGroup, statsHandler *handlers.StatsHandler) {
	authenticatedGroup.GET("/stats", statsHandler.GetStats)
}

// SetupCalendarRoutes sets up the calendar routes.
func SetupCalendarRoutes(authenticatedGroup *gin.RouterGroup, calendarHandler *handlers.CalendarHandler) {
	authenticatedGroup.GET("/calendar", calendarHandler.GetMonthGrid)
}
