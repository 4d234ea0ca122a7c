package services

import (
	"errors"
	"fmt"

	"apartment_booking_backend/internal/models"
	"apartment_booking_backend/internal/repositories"
	"apartment_booking_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUserValidation     = errors.New("user data validation error")
	ErrTokenGeneration    = errors.New("failed to generate session token")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO. Name defaults to the username and Role to "user"
// when omitted.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// --- AuthService Interface ---
// Login and Register return the authenticated user together with a signed
// session token; the handler binds the token to the session cookie.
type AuthService interface {
	RegisterUser(req RegisterUserRequest) (*models.User, string, error)
	LoginUser(req LoginRequest) (*models.User, string, error)
	GetUserProfile(userID int64) (*models.User, error)
	EnsureDefaultAdmin(username, password, name string) error
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository) AuthService {
	return &authService{authRepo: authRepo}
}

func (s *authService) sessionTokenFor(user *models.User) (string, error) {
	token, err := utils.GenerateSessionToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return token, nil
}

// RegisterUser creates a new account and immediately authenticates it.
func (s *authService) RegisterUser(req RegisterUserRequest) (*models.User, string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return nil, "", fmt.Errorf("%w: unknown role '%s'", ErrUserValidation, req.Role)
	}

	name := req.Name
	if utils.IsEmpty(name) {
		name = req.Username
	}

	user := &models.User{
		Username: req.Username,
		Name:     name,
		Role:     role,
	}

	userID, err := s.authRepo.CreateUser(user, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, "", ErrUsernameExists
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}
	user.ID = userID

	token, err := s.sessionTokenFor(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginUser verifies credentials and issues a session token. The error never
// reveals whether the username existed.
func (s *authService) LoginUser(req LoginRequest) (*models.User, string, error) {
	user, storedHash, err := s.authRepo.FindUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessionTokenFor(user)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// EnsureDefaultAdmin creates the seed admin account when it does not exist
// yet. Called once at startup.
func (s *authService) EnsureDefaultAdmin(username, password, name string) error {
	_, _, err := s.authRepo.FindUserByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{Username: username, Name: name, Role: models.RoleAdmin}
	if _, err := s.authRepo.CreateUser(admin, string(hashedPasswordBytes)); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	return nil
}
