package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"apartment_booking_backend/internal/database"
	"apartment_booking_backend/internal/repositories"
	router_pkg "apartment_booking_backend/internal/router"
	"apartment_booking_backend/internal/services"
	"apartment_booking_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	sessionTTLHours, err := strconv.Atoi(utils.Getenv("SESSION_TTL_HOURS", "24"))
	if err != nil || sessionTTLHours <= 0 {
		sessionTTLHours = 24
	}
	utils.InitSessionAuth(
		utils.Getenv("SESSION_SECRET", "apartment-booking-secret"),
		time.Duration(sessionTTLHours)*time.Hour,
	)

	// Store selection: the in-memory store matches the original behavior;
	// Postgres adds durability.
	var bookingRepo repositories.BookingRepository
	var authRepo repositories.AuthRepository

	storeDriver := utils.Getenv("STORE_DRIVER", "memory")
	switch storeDriver {
	case "postgres":
		database.InitDB(
			utils.Getenv("DB_HOST", "localhost"),
			utils.Getenv("DB_PORT", "5432"),
			utils.Getenv("DB_USER", "booking_user"),
			utils.Getenv("DB_PASSWORD", "booking_password"),
			utils.Getenv("DB_NAME", "apartment_booking_db"),
			utils.Getenv("DB_SSLMODE", "disable"),
			utils.Getenv("DB_SCHEMA_PATH", ""),
		)
		db := database.GetDB()
		bookingRepo = repositories.NewBookingRepository(db)
		authRepo = repositories.NewAuthRepository(db)
	case "memory":
		bookingRepo = repositories.NewMemoryBookingRepository()
		authRepo = repositories.NewMemoryAuthRepository()
	default:
		log.Fatalf("Unknown STORE_DRIVER %q (expected 'memory' or 'postgres')", storeDriver)
	}
	utils.LogInfo("Store initialized", map[string]interface{}{"driver": storeDriver})

	// Initialize Services
	authService := services.NewAuthService(authRepo)
	statsService := services.NewStatsService(bookingRepo)
	bookingService := services.NewBookingService(bookingRepo, statsService)
	calendarService := services.NewCalendarService(bookingRepo)

	// Seed the default admin account so a fresh store is usable.
	err = authService.EnsureDefaultAdmin(
		utils.Getenv("ADMIN_USERNAME", "admin"),
		utils.Getenv("ADMIN_PASSWORD", "admin123"),
		utils.Getenv("ADMIN_NAME", "System Administrator"),
	)
	if err != nil {
		utils.LogError(err, "Failed to seed default admin account")
		log.Fatalf("Failed to seed default admin account: %v", err)
	}

	engine := gin.Default()

	// Request logging through zerolog.
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router_pkg.Setup(engine, authService, bookingService, statsService, calendarService)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
