package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/dberrors"
)

// SessionRepository stores refresh token sessions and failed login counters
type SessionRepository struct {
	db  *pgxpool.Pool
	lgr zerolog.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool, lgr zerolog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		lgr: lgr,
	}
}

// Create stores a session.
func (r *SessionRepository) Create(ctx context.Context, s models.Session) error {
	query := `
		INSERT INTO auth_session (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, s.TokenHash, s.UserID, s.ExpiresAt, s.CreatedAt)
	if dberrors.IsDuplicateConstraintError(err, "auth_session_pkey") {
		r.lgr.Warn().Str("userID", s.UserID.String()).Msg("Attempted to create duplicate session")
		return apperrors.ErrTokenInvalid
	}
	if err != nil {
		r.lgr.Error().Err(err).Str("userID", s.UserID.String()).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// UserOf returns the owner of the live session stored under tokenHash.
func (r *SessionRepository) UserOf(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error) {
	query := `SELECT user_id FROM auth_session WHERE token_hash = $1 AND expires_at > $2`

	var userID uuid.UUID
	err := r.db.QueryRow(ctx, query, tokenHash, now).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, apperrors.ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return userID, nil
}

// Delete ends one session. Deleting an unknown session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM auth_session WHERE token_hash = $1`, tokenHash); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// DeleteByUser ends every session of an account.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM auth_session WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting user sessions: %w", err)
	}
	return nil
}

// CleanupExpired removes expired sessions and stale failure counters.
func (r *SessionRepository) CleanupExpired(ctx context.Context, now time.Time, window time.Duration) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM auth_session WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("error cleaning up sessions: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM login_failure WHERE window_start <= $1`, now.Add(-window)); err != nil {
		return 0, fmt.Errorf("error cleaning up login failures: %w", err)
	}

	deleted := tag.RowsAffected()
	r.lgr.Info().Int64("deletedCount", deleted).Msg("Cleaned up expired sessions")
	return deleted, nil
}

// Failures returns the failed attempts of identifier inside the window ending at now, and when that window opened.
func (r *SessionRepository) Failures(ctx context.Context, identifier string, now time.Time, window time.Duration) (int, time.Time, error) {
	query := `SELECT failures, window_start FROM login_failure WHERE identifier = $1 AND window_start > $2`

	var (
		failures int
		start    time.Time
	)
	err := r.db.QueryRow(ctx, query, identifier, now.Add(-window)).Scan(&failures, &start)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("error retrieving login failures: %w", err)
	}
	return failures, start, nil
}

// RecordFailure counts a failed attempt and returns the count inside the current window.
// A failure after the window has lapsed opens a new window.
func (r *SessionRepository) RecordFailure(ctx context.Context, identifier string, now time.Time, window time.Duration) (int, error) {
	query := `
		INSERT INTO login_failure (identifier, failures, window_start)
		VALUES ($1, 1, $2)
		ON CONFLICT (identifier) DO UPDATE SET
			failures = CASE WHEN login_failure.window_start <= $3 THEN 1 ELSE login_failure.failures + 1 END,
			window_start = CASE WHEN login_failure.window_start <= $3 THEN $2 ELSE login_failure.window_start END
		RETURNING failures
	`

	var failures int
	if err := r.db.QueryRow(ctx, query, identifier, now, now.Add(-window)).Scan(&failures); err != nil {
		return 0, fmt.Errorf("error recording login failure: %w", err)
	}
	return failures, nil
}

// ClearFailures resets the counter of identifier after a successful login.
func (r *SessionRepository) ClearFailures(ctx context.Context, identifier string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM login_failure WHERE identifier = $1`, identifier); err != nil {
		return fmt.Errorf("error clearing login failures: %w", err)
	}
	return nil
}
