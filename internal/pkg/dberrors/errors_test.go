package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestCodes(t *testing.T) {
	unique := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "schema_migrations_pkey"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "resource_condition_department_id_fkey"}
	missing := &pgconn.PgError{Code: "42P01"}

	if !IsUniqueViolation(unique) || IsUniqueViolation(fk) {
		t.Error("IsUniqueViolation mismatch")
	}
	if !IsDuplicateConstraintError(unique, "schema_migrations_pkey") || IsDuplicateConstraintError(unique, "user_email_key") {
		t.Error("IsDuplicateConstraintError mismatch")
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(missing) {
		t.Error("IsForeignKeyViolation mismatch")
	}
	if !IsForeignKeyConstraintError(fk, "resource_condition_department_id_fkey") ||
		IsForeignKeyConstraintError(fk, "resource_condition_resource_id_fkey") ||
		IsForeignKeyConstraintError(unique, "schema_migrations_pkey") {
		t.Error("IsForeignKeyConstraintError mismatch")
	}
	if !IsUndefinedTable(missing) || IsUndefinedTable(errors.New("42P01")) {
		t.Error("IsUndefinedTable mismatch")
	}
	if IsUniqueViolation(nil) {
		t.Error("nil error reported as a violation")
	}
}
