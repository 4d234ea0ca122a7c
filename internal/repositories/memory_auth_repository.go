package repositories

import (
	"fmt"
	"sync"

	"apartment_booking_backend/internal/models"
)

// memoryAuthRepository keeps users in a mutex-guarded map with monotonically
// assigned ids.
type memoryAuthRepository struct {
	mu     sync.Mutex
	users  map[int64]models.User
	nextID int64
}

// NewMemoryAuthRepository creates an empty in-memory AuthRepository.
func NewMemoryAuthRepository() AuthRepository {
	return &memoryAuthRepository{
		users:  make(map[int64]models.User),
		nextID: 1,
	}
}

func (r *memoryAuthRepository) CreateUser(user *models.User, hashedPassword string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, fmt.Errorf("%w: username %q already taken", ErrDuplicateKey, user.Username)
		}
	}

	id := r.nextID
	r.nextID++

	stored := *user
	stored.ID = id
	stored.PasswordHash = hashedPassword
	r.users[id] = stored

	return id, nil
}

func (r *memoryAuthRepository) FindUserByUsername(username string) (*models.User, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			hash := u.PasswordHash
			found := u
			found.PasswordHash = ""
			return &found, hash, nil
		}
	}
	return nil, "", ErrNotFound
}

func (r *memoryAuthRepository) FindUserByID(userID int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}
