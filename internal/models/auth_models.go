package models

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account that can manage bookings.
// PasswordHash is never serialized; repository methods that need the hash
// return it separately.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// IsValidRole reports whether role is one of the known role names.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
