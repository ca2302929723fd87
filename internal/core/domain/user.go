package domain

import (
	"errors"
	"time"
)

const (
	RoleUser     = "user"
	RoleDesigner = "designer"
	RoleWorker   = "worker"
	RoleAdmin    = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleDesigner, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserChanges is a partial update applied by an admin. Password is never
// changed through this path.
type UserChanges struct {
	Name  *string
	Email *string
	Role  *string
}

// Empty reports whether no field is set.
func (c UserChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.Role == nil
}
