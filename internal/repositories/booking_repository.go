package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"apartment_booking_backend/internal/models"
)

// BookingRepository defines the interface for booking storage. Implementations
// own the period-overlap invariant: CreateBooking and UpdateBooking perform
// the conflict check and the write as one critical section and return
// ErrPeriodConflict when the date/period is already taken.
type BookingRepository interface {
	CreateBooking(booking *models.Booking) (*models.Booking, error)
	GetBookingByID(id int64) (*models.Booking, error)
	GetBookingsByDate(date string) ([]models.Booking, error)
	GetBookingsByDateRange(startDate, endDate string) ([]models.Booking, error)
	GetRecentBookings(limit int) ([]models.Booking, error)
	GetAllBookings() ([]models.Booking, error)
	UpdateBooking(booking *models.Booking) (*models.Booking, error)
	DeleteBooking(id int64) error
}

type bookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a Postgres-backed BookingRepository.
func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const selectBookingFields = `id, date, period, tenant_name, phone_number, paid, remaining, people_count, notes, created_at, created_by`

// scanBooking scans a single booking row.
func scanBooking(row scanner) (*models.Booking, error) {
	var booking models.Booking
	var notes sql.NullString

	err := row.Scan(
		&booking.ID, &booking.Date, &booking.Period, &booking.TenantName, &booking.PhoneNumber,
		&booking.Paid, &booking.Remaining, &booking.PeopleCount, &notes,
		&booking.CreatedAt, &booking.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning booking: %v", ErrDatabaseError, err)
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	return &booking, nil
}

func (r *bookingRepository) queryBookings(query string, args ...interface{}) ([]models.Booking, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying bookings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		booking, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		bookings = append(bookings, *booking)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating booking rows: %v", ErrDatabaseError, err)
	}
	return bookings, nil
}

// periodOccupied evaluates the symmetric overlap rule in SQL: two periods
// overlap when either is 'both' or they are equal. excludeID 0 excludes
// nothing (ids start at 1).
func periodOccupied(executor SQLExecutor, date, period string, excludeID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
	          WHERE date = $1 AND id != $2
	          AND (period = 'both' OR $3 = 'both' OR period = $3)`

	var count int
	if err := executor.QueryRow(query, date, excludeID, period).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: checking period availability: %v", ErrDatabaseError, err)
	}
	return count > 0, nil
}

func (r *bookingRepository) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	// Serializable so two concurrent creates cannot both pass the conflict
	// check before either commits.
	tx, err := r.db.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("%w: beginning create transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	occupied, err := periodOccupied(tx, booking.Date, booking.Period, 0)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, ErrPeriodConflict
	}

	booking.CreatedAt = time.Now()
	query := `INSERT INTO bookings
	            (date, period, tenant_name, phone_number, paid, remaining, people_count, notes, created_at, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at`
	err = tx.QueryRow(query,
		booking.Date, booking.Period, booking.TenantName, booking.PhoneNumber,
		booking.Paid, booking.Remaining, booking.PeopleCount, booking.Notes,
		booking.CreatedAt, booking.CreatedBy,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating booking: %v", ErrDatabaseError, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing booking create: %v", ErrDatabaseError, err)
	}
	return booking, nil
}

func (r *bookingRepository) GetBookingByID(id int64) (*models.Booking, error) {
	query := "SELECT " + selectBookingFields + " FROM bookings WHERE id = $1"
	return scanBooking(r.db.QueryRow(query, id))
}

func (r *bookingRepository) GetBookingsByDate(date string) ([]models.Booking, error) {
	query := "SELECT " + selectBookingFields + " FROM bookings WHERE date = $1"
	return r.queryBookings(query, date)
}

func (r *bookingRepository) GetBookingsByDateRange(startDate, endDate string) ([]models.Booking, error) {
	// Inclusive on both ends; the text column sorts lexicographically which
	// matches chronological order for ISO dates.
	query := "SELECT " + selectBookingFields + " FROM bookings WHERE date >= $1 AND date <= $2"
	return r.queryBookings(query, startDate, endDate)
}

func (r *bookingRepository) GetRecentBookings(limit int) ([]models.Booking, error) {
	query := "SELECT " + selectBookingFields + " FROM bookings ORDER BY created_at DESC, id DESC LIMIT $1"
	return r.queryBookings(query, limit)
}

func (r *bookingRepository) GetAllBookings() ([]models.Booking, error) {
	query := "SELECT " + selectBookingFields + " FROM bookings"
	return r.queryBookings(query)
}

func (r *bookingRepository) UpdateBooking(booking *models.Booking) (*models.Booking, error) {
	tx, err := r.db.BeginTx(context.Background(), &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("%w: beginning update transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	occupied, err := periodOccupied(tx, booking.Date, booking.Period, booking.ID)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, ErrPeriodConflict
	}

	query := `UPDATE bookings SET
	            date = $1, period = $2, tenant_name = $3, phone_number = $4,
	            paid = $5, remaining = $6, people_count = $7, notes = $8
	          WHERE id = $9
	          RETURNING id`
	var id int64
	err = tx.QueryRow(query,
		booking.Date, booking.Period, booking.TenantName, booking.PhoneNumber,
		booking.Paid, booking.Remaining, booking.PeopleCount, booking.Notes,
		booking.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating booking ID %d: %v", ErrDatabaseError, booking.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing booking update: %v", ErrDatabaseError, err)
	}
	return booking, nil
}

func (r *bookingRepository) DeleteBooking(id int64) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting booking ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
