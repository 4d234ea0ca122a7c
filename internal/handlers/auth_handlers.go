package handlers

import (
	"errors"
	"net/http"

	"apartment_booking_backend/internal/services"
	"apartment_booking_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// setSessionCookie binds the signed session token to an httpOnly cookie.
func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(utils.SessionCookieName, token, int(utils.SessionTTL().Seconds()), "/", "", false, true)
}

// clearSessionCookie removes the session cookie unconditionally.
func clearSessionCookie(c *gin.Context) {
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
}

// RegisterUser handles user registration. A successful registration
// authenticates the new session immediately.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req services.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "RegisterUser: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	user, token, err := h.authService.RegisterUser(req)
	if err != nil {
		utils.LogError(err, "RegisterUser: Error from authService.RegisterUser")
		if errors.Is(err, services.ErrUsernameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username already exists.", err.Error()))
		} else if errors.Is(err, services.ErrUserValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register user.", "Internal error"))
		}
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "LoginUser: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	user, token, err := h.authService.LoginUser(req)
	if err != nil {
		utils.LogError(err, "LoginUser: Error from authService.LoginUser")
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to login.", "Internal error"))
		}
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

// LogoutUser clears the session binding unconditionally.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userIDRaw, exists := c.Get("userID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return
	}

	userID, ok := userIDRaw.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User ID format incorrect.", "Invalid user ID format in context"))
		return
	}

	user, err := h.authService.GetUserProfile(userID)
	if err != nil {
		utils.LogError(err, "GetCurrentUser: Error from authService.GetUserProfile for userID "+utils.Int64ToStr(userID))
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User profile not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve user profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, user)
}
