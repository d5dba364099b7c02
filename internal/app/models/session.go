package models

import (
	"time"

	"github.com/google/uuid"
)

// Session defines a row of auth_session, one per issued refresh token
type Session struct {
	TokenHash string    `db:"token_hash"` // hex SHA-256 of the refresh token
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
