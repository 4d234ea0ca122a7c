package router

import (
	"apartment_booking_backend/internal/handlers"
	"apartment_booking_backend/internal/middleware"
	"apartment_booking_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application. The store-backed
// services are constructed in main (where the store driver is selected) and
// injected here.
func Setup(
	engine *gin.Engine,
	authService services.AuthService,
	bookingService services.BookingService,
	statsService services.StatsService,
	calendarService services.CalendarService,
) {
	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	statsHandler := handlers.NewStatsHandler(statsService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)

	api := engine.Group("/api")

	// Public session routes
	SetupPublicAuthRoutes(api, authHandler)

	// Everything else requires an authenticated session, mutating routes
	// included.
	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated, authHandler)
		SetupBookingRoutes(authenticated, bookingHandler)
		SetupStatsRoutes(authenticated, statsHandler)
		SetupCalendarRoutes(authenticated, calendarHandler)
	}
}
