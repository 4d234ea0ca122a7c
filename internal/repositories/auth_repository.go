package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"apartment_booking_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// AuthRepository defines the interface for user storage.
type AuthRepository interface {
	CreateUser(user *models.User, hashedPassword string) (int64, error)
	FindUserByUsername(username string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(userID int64) (*models.User, error)
}

// authRepository implements AuthRepository against Postgres.
type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a Postgres-backed AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (username, password_hash, name, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	var userID int64
	err := r.db.QueryRow(query, user.Username, hashedPassword, user.Name, user.Role).Scan(&userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return userID, nil
}

func (r *authRepository) FindUserByUsername(username string) (*models.User, string, error) {
	user := &models.User{}
	var hashedPassword string

	query := `SELECT id, username, password_hash, name, role FROM users WHERE username = $1`
	err := r.db.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &hashedPassword, &user.Name, &user.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, hashedPassword, nil
}

func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	user := &models.User{}

	query := `SELECT id, username, name, role FROM users WHERE id = $1`
	err := r.db.QueryRow(query, userID).Scan(&user.ID, &user.Username, &user.Name, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}
