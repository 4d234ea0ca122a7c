package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// APIError is the standardized error response body.
type APIError struct {
	StatusCode int    `json:"-"` // HTTP status code, not included in the JSON body
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// NewAPIError creates a new APIError instance.
func NewAPIError(statusCode int, code string, message string, details string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Details:    details,
	}
}

// RespondWithError sends a standardized JSON error response.
func RespondWithError(c *gin.Context, err *APIError) {
	c.JSON(err.StatusCode, gin.H{"error": err})
	c.Abort()
}

// Common error codes.
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
)

// Validation functions

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// phoneRegex matches local mobile numbers: "05" followed by 8 digits.
var phoneRegex = regexp.MustCompile(`^05\d{8}$`)

// IsValidPhoneNumber checks the booking phone number format.
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidISODate checks a YYYY-MM-DD date string.
func IsValidISODate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
