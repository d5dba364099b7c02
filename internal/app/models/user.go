package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the account model based on the "user" table
type User struct {
	ID           uuid.UUID `db:"user_id"`
	RealName     string    `db:"real_name"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password"`
	Nickname     string    `db:"nickname"`
	Role         Role      `db:"role"`
	IsAdmin      bool      `db:"is_admin"`
	RegisteredAt time.Time `db:"registered_at"`
	DeletedAt    time.Time `db:"deleted_at"` // ActiveSentinel unless soft deleted

	// Generator-only attributes, never written to "user"
	CompanyName      string // company contacts
	MainDepartmentID string // students
}

// IsDeleted reports whether the account carries a real deletion timestamp.
func (u User) IsDeleted() bool {
	return !u.DeletedAt.Equal(ActiveSentinel)
}

// FilterByRole returns the users with the given role, preserving order.
func FilterByRole(users []User, roles ...Role) []User {
	var out []User
	for _, u := range users {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
				break
			}
		}
	}
	return out
}
