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
	"github.com/shopspring/decimal"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/db"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/dberrors"
)

const resourceSelect = `
	SELECT r.resource_id, r.resource_type, r.quota, r.department_supplier_id, r.company_supplier_id,
	       r.title, r.deadline, r.description, r.status, r.is_deleted,
	       COALESCE(dp.department_name, cp.company_name, '') AS supplier_name,
	       COALESCE(dp.contact_person, cp.contact_person) AS supplier_contact
	FROM resource r
	LEFT JOIN department_profile dp ON dp.department_id = r.department_supplier_id
	LEFT JOIN company_profile cp ON cp.company_id = r.company_supplier_id
`

// Students counted by a condition: active, in the condition's department and above both thresholds.
// A condition that requires poverty only counts students flagged as poor.
const eligibleStudentsQuery = `
	SELECT COUNT(DISTINCT sp.user_id)
	FROM student_profile sp
	JOIN "user" u ON u.user_id = sp.user_id AND u.deleted_at = $2
	JOIN resource_condition rc ON rc.resource_id = $1 AND rc.department_id = sp.department_id
	LEFT JOIN student_gpa_summary g ON g.user_id = sp.user_id
	WHERE (rc.avg_gpa IS NULL OR g.avg_gpa >= rc.avg_gpa)
	  AND (rc.current_gpa IS NULL OR g.current_gpa >= rc.current_gpa)
	  AND (NOT rc.is_poor OR sp.is_poor)
`

// ResourceRepository handles database operations for resources and their conditions
type ResourceRepository struct {
	db  *pgxpool.Pool
	lgr zerolog.Logger
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *pgxpool.Pool, lgr zerolog.Logger) *ResourceRepository {
	return &ResourceRepository{
		db:  db,
		lgr: lgr,
	}
}

// numericArg passes an optional decimal as text for a ::numeric placeholder.
func numericArg(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

// parseNumeric converts a NUMERIC read as text back into a decimal.
func parseNumeric(v *string) (*decimal.Decimal, error) {
	if v == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*v)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric %q: %w", *v, err)
	}
	return &d, nil
}

// dateArg formats a date-only value; the zero time is NULL.
func dateArg(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}

// localDate re-anchors a DATE column, read at UTC midnight, to midnight of the local zone.
func localDate(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, models.LocalZone)
}

func scanListing(row pgx.Row) (*models.ResourceListing, error) {
	var (
		l            models.ResourceListing
		departmentID *string
		companyID    *uuid.UUID
		deadline     *time.Time
		contact      *uuid.UUID
	)
	err := row.Scan(
		&l.ID,
		&l.Type,
		&l.Quota,
		&departmentID,
		&companyID,
		&l.Title,
		&deadline,
		&l.Description,
		&l.Status,
		&l.IsDeleted,
		&l.SupplierName,
		&contact,
	)
	if err != nil {
		return nil, err
	}

	var contactID uuid.UUID
	if contact != nil {
		contactID = *contact
	}
	switch {
	case departmentID != nil:
		l.Supplier = models.DepartmentSupplier{DepartmentID: *departmentID, Contact: contactID, Name: l.SupplierName}
	case companyID != nil:
		l.Supplier = models.CompanySupplier{CompanyID: *companyID, Contact: contactID, Name: l.SupplierName}
	}
	l.Deadline = localDate(deadline)
	return &l, nil
}

func collectListings(rows pgx.Rows) ([]models.ResourceListing, error) {
	defer rows.Close()

	var out []models.ResourceListing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning resource row: %w", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}
	return out, nil
}

// Create inserts a resource.
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) error {
	departmentID, companyID := res.SupplierColumns()
	query := `
		INSERT INTO resource (resource_id, resource_type, quota, department_supplier_id, company_supplier_id,
		                      title, deadline, description, status, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		res.ID, res.Type, res.Quota, departmentID, companyID,
		res.Title, dateArg(res.Deadline), res.Description, res.Status, res.IsDeleted,
	)
	if err != nil {
		r.lgr.Error().Err(err).Str("resourceID", res.ID.String()).Msg("Error executing create resource query")
		return fmt.Errorf("error creating resource: %w", err)
	}
	return nil
}

// FindByID returns a resource that has not been soft deleted, with its supplier name.
func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ResourceListing, error) {
	query := resourceSelect + ` WHERE r.resource_id = $1 AND NOT r.is_deleted`

	l, err := scanListing(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving resource: %w", err)
	}
	return l, nil
}

// ListAvailable returns every open resource, soonest deadline first, with its conditions.
func (r *ResourceRepository) ListAvailable(ctx context.Context) ([]models.ResourceListing, error) {
	query := resourceSelect + `
		WHERE r.status = $1 AND NOT r.is_deleted
		ORDER BY r.deadline ASC NULLS LAST, r.resource_id
	`
	rows, err := r.db.Query(ctx, query, models.StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	listings, err := collectListings(rows)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return listings, nil
	}

	ids := make([]uuid.UUID, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	conds, err := r.conditionsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range listings {
		listings[i].Conditions = conds[listings[i].ID]
	}
	return listings, nil
}

// ListBySupplier returns the resources offered by s, soonest deadline first.
// Department suppliers match on department code.
func (r *ResourceRepository) ListBySupplier(ctx context.Context, s models.Supplier) ([]models.ResourceListing, error) {
	var (
		where string
		arg   interface{}
	)
	switch sup := s.(type) {
	case models.DepartmentSupplier:
		where = `split_part(r.department_supplier_id, '-', 1) = $1`
		arg = models.CodeOf(sup.DepartmentID)
	case models.CompanySupplier:
		where = `r.company_supplier_id = $1`
		arg = sup.CompanyID
	default:
		return nil, apperrors.ErrProfileNotFound
	}

	query := resourceSelect + ` WHERE ` + where + ` AND NOT r.is_deleted ORDER BY r.deadline ASC NULLS LAST, r.resource_id`
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error listing supplier resources: %w", err)
	}
	return collectListings(rows)
}

// SetStatus changes the status column of a resource.
func (r *ResourceRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.ResourceStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE resource SET status = $2 WHERE resource_id = $1 AND NOT is_deleted`, id, status)
	if err != nil {
		return fmt.Errorf("error updating resource status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

const conditionColumns = `resource_id, department_id, avg_gpa::text, current_gpa::text, is_poor`

func scanCondition(row pgx.Row) (models.ResourceCondition, error) {
	var (
		c           models.ResourceCondition
		avg, curr   *string
		errAvg, err error
	)
	if err = row.Scan(&c.ResourceID, &c.DepartmentID, &avg, &curr, &c.IsPoor); err != nil {
		return c, err
	}
	if c.AvgGPA, errAvg = parseNumeric(avg); errAvg != nil {
		return c, errAvg
	}
	c.CurrentGPA, err = parseNumeric(curr)
	return c, err
}

// ListConditions returns the conditions of a resource ordered by department.
func (r *ResourceRepository) ListConditions(ctx context.Context, resourceID uuid.UUID) ([]models.ResourceCondition, error) {
	conds, err := r.conditionsOf(ctx, []uuid.UUID{resourceID})
	if err != nil {
		return nil, err
	}
	return conds[resourceID], nil
}

func (r *ResourceRepository) conditionsOf(ctx context.Context, resourceIDs []uuid.UUID) (map[uuid.UUID][]models.ResourceCondition, error) {
	query := `SELECT ` + conditionColumns + ` FROM resource_condition WHERE resource_id = ANY($1) ORDER BY resource_id, department_id`
	rows, err := r.db.Query(ctx, query, resourceIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing conditions: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.ResourceCondition, len(resourceIDs))
	for rows.Next() {
		c, err := scanCondition(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning condition row: %w", err)
		}
		out[c.ResourceID] = append(out[c.ResourceID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating condition rows: %w", err)
	}
	return out, nil
}

// UpsertCondition writes the condition of one department and returns how many students the
// resource's conditions admit afterwards. A change that admits nobody is rolled back.
func (r *ResourceRepository) UpsertCondition(ctx context.Context, c models.ResourceCondition) (int64, error) {
	query := `
		INSERT INTO resource_condition (resource_id, department_id, avg_gpa, current_gpa, is_poor)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5)
		ON CONFLICT (resource_id, department_id) DO UPDATE SET
			avg_gpa = EXCLUDED.avg_gpa,
			current_gpa = EXCLUDED.current_gpa,
			is_poor = EXCLUDED.is_poor
	`

	var eligible int64
	err := db.WithTransaction(ctx, r.db, r.lgr, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, c.ResourceID, c.DepartmentID, numericArg(c.AvgGPA), numericArg(c.CurrentGPA), c.IsPoor); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, eligibleStudentsQuery, c.ResourceID, models.ActiveSentinel).Scan(&eligible); err != nil {
			return err
		}
		if eligible == 0 {
			return apperrors.ErrNoEligibleStudents
		}
		return nil
	})

	switch {
	case err == nil:
		return eligible, nil
	case errors.Is(err, apperrors.ErrNoEligibleStudents):
		return 0, err
	case dberrors.IsForeignKeyConstraintError(err, "resource_condition_department_id_fkey"):
		return 0, fmt.Errorf("%w: %s", apperrors.ErrUnknownDepartment, c.DepartmentID)
	case dberrors.IsForeignKeyConstraintError(err, "resource_condition_resource_id_fkey"):
		return 0, apperrors.ErrResourceNotFound
	}
	return 0, fmt.Errorf("error upserting condition: %w", err)
}

// CountEligible returns how many students the conditions of a resource admit.
func (r *ResourceRepository) CountEligible(ctx context.Context, resourceID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, eligibleStudentsQuery, resourceID, models.ActiveSentinel).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting eligible students: %w", err)
	}
	return n, nil
}

// DeleteCondition removes the condition of one department.
func (r *ResourceRepository) DeleteCondition(ctx context.Context, resourceID uuid.UUID, departmentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resource_condition WHERE resource_id = $1 AND department_id = $2`, resourceID, departmentID)
	if err != nil {
		return fmt.Errorf("error deleting condition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: department %s", apperrors.ErrConditionNotFound, departmentID)
	}
	return nil
}

// DeleteConditions removes every condition of a resource and returns how many there were.
func (r *ResourceRepository) DeleteConditions(ctx context.Context, resourceID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM resource_condition WHERE resource_id = $1`, resourceID)
	if err != nil {
		return 0, fmt.Errorf("error deleting conditions: %w", err)
	}
	return tag.RowsAffected(), nil
}
