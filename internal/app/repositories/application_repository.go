package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/dberrors"
)

// ApplicationRepository handles database operations for resource applications
type ApplicationRepository struct {
	db  *pgxpool.Pool
	lgr zerolog.Logger
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool, lgr zerolog.Logger) *ApplicationRepository {
	return &ApplicationRepository{
		db:  db,
		lgr: lgr,
	}
}

// ListByUser returns the applications of a student, most recent first.
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ApplicationListing, error) {
	query := `
		SELECT a.resource_id, r.title, COALESCE(dp.department_name, cp.company_name, ''), a.apply_date, a.review_status
		FROM application a
		JOIN resource r ON r.resource_id = a.resource_id
		LEFT JOIN department_profile dp ON dp.department_id = r.department_supplier_id
		LEFT JOIN company_profile cp ON cp.company_id = r.company_supplier_id
		WHERE a.user_id = $1
		ORDER BY a.apply_date DESC, r.title
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var out []models.ApplicationListing
	for rows.Next() {
		var (
			l     models.ApplicationListing
			apply time.Time
		)
		if err := rows.Scan(&l.ResourceID, &l.ResourceTitle, &l.SupplierName, &apply, &l.Status); err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		l.ApplyDate = localDate(&apply)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return out, nil
}

// Exists reports whether the student already applied for the resource.
func (r *ApplicationRepository) Exists(ctx context.Context, userID, resourceID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM application WHERE user_id = $1 AND resource_id = $2)`
	if err := r.db.QueryRow(ctx, query, userID, resourceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking application: %w", err)
	}
	return exists, nil
}

// Create inserts an application.
func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) error {
	query := `
		INSERT INTO application (user_id, resource_id, apply_date, review_status)
		VALUES ($1, $2, $3::date, $4)
	`
	_, err := r.db.Exec(ctx, query, a.UserID, a.ResourceID, dateArg(a.ApplyDate), a.ReviewStatus)
	if dberrors.IsDuplicateConstraintError(err, "application_pkey") {
		return apperrors.ErrAlreadyApplied
	}
	if dberrors.IsForeignKeyConstraintError(err, "application_resource_id_fkey") {
		return apperrors.ErrResourceNotFound
	}
	if err != nil {
		r.lgr.Error().Err(err).Str("userID", a.UserID.String()).Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// Delete withdraws an application.
func (r *ApplicationRepository) Delete(ctx context.Context, userID, resourceID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM application WHERE user_id = $1 AND resource_id = $2`, userID, resourceID)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}
