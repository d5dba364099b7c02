package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/dberrors"
)

const userColumns = `user_id, real_name, email, username, password, nickname, role, is_admin, registered_at, deleted_at`

// UserRepository handles database operations for accounts
type UserRepository struct {
	db  *pgxpool.Pool
	lgr zerolog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool, lgr zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		lgr: lgr,
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.RealName,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Nickname,
		&u.Role,
		&u.IsAdmin,
		&u.RegisteredAt,
		&u.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &u, nil
}

// FindByIdentifier returns the active account whose username or email equals identifier.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM "user"
		WHERE (username = $1 OR email = $1) AND deleted_at = $2
		LIMIT 1
	`
	return scanUser(r.db.QueryRow(ctx, query, identifier, models.ActiveSentinel))
}

// FindByID returns an active account.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM "user"
		WHERE user_id = $1 AND deleted_at = $2
	`
	return scanUser(r.db.QueryRow(ctx, query, id, models.ActiveSentinel))
}

// ExistsByEmailOrUsername checks every account, soft deleted ones included, since both columns are unique.
func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM "user" WHERE email = $1 OR username = $2)`
	if err := r.db.QueryRow(ctx, query, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking for existing user: %w", err)
	}
	return exists, nil
}

// Create inserts a new account.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO "user" (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.RealName, u.Email, u.Username, u.PasswordHash, u.Nickname,
		u.Role, u.IsAdmin, u.RegisteredAt, u.DeletedAt,
	)
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("%w: email or username", apperrors.ErrAlreadyExists)
	}
	if err != nil {
		r.lgr.Error().Err(err).Str("username", u.Username).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// HasProfile reports whether the profile row matching role exists for the account.
func (r *UserRepository) HasProfile(ctx context.Context, id uuid.UUID, role models.Role) (bool, error) {
	var query string
	switch role {
	case models.RoleStudent:
		query = `SELECT EXISTS(SELECT 1 FROM student_profile WHERE user_id = $1)`
	case models.RoleDepartment:
		query = `SELECT EXISTS(SELECT 1 FROM department_profile WHERE contact_person = $1)`
	case models.RoleCompany:
		query = `SELECT EXISTS(SELECT 1 FROM company_profile WHERE contact_person = $1)`
	default:
		return false, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking profile: %w", err)
	}
	return exists, nil
}

// SupplierOf resolves the department or company an active contact account manages.
func (r *UserRepository) SupplierOf(ctx context.Context, id uuid.UUID) (models.Supplier, error) {
	query := `
		SELECT u.role, u.department_id, dp.department_name, u.company_id, cp.company_name
		FROM "user" u
		LEFT JOIN department_profile dp ON dp.department_id = u.department_id
		LEFT JOIN company_profile cp ON cp.company_id = u.company_id
		WHERE u.user_id = $1 AND u.deleted_at = $2
	`

	var (
		role           models.Role
		departmentID   *string
		departmentName *string
		companyID      *uuid.UUID
		companyName    *string
	)
	err := r.db.QueryRow(ctx, query, id, models.ActiveSentinel).Scan(&role, &departmentID, &departmentName, &companyID, &companyName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving supplier: %w", err)
	}

	switch {
	case role == models.RoleDepartment && departmentID != nil && departmentName != nil:
		return models.DepartmentSupplier{DepartmentID: *departmentID, Contact: id, Name: *departmentName}, nil
	case role == models.RoleCompany && companyID != nil && companyName != nil:
		return models.CompanySupplier{CompanyID: *companyID, Contact: id, Name: *companyName}, nil
	}
	return nil, apperrors.ErrProfileNotFound
}
