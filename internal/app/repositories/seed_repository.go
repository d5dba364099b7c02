package repositories

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/db"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/dberrors"
)

// ErrEmptyScript is returned for a script with no statements left to run.
var ErrEmptyScript = errors.New("seed script is empty")

// SeedRepository applies generated scripts and inspects the loaded tables
type SeedRepository struct {
	db  *pgxpool.Pool
	lgr zerolog.Logger
}

// NewSeedRepository creates a new seed repository
func NewSeedRepository(db *pgxpool.Pool, lgr zerolog.Logger) *SeedRepository {
	return &SeedRepository{
		db:  db,
		lgr: lgr,
	}
}

// ApplyScript runs a generated script as one transaction. The BEGIN/COMMIT pairs of the
// per-table sections are dropped so a failure anywhere rolls back every table.
func (r *SeedRepository) ApplyScript(ctx context.Context, script string) error {
	body := StripTransactionControl(script)
	if strings.TrimSpace(body) == "" {
		return ErrEmptyScript
	}

	err := db.WithTransaction(ctx, r.db, r.lgr, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, body)
		return err
	})
	switch {
	case err == nil:
		return nil
	case dberrors.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", apperrors.ErrAlreadyLoaded, err)
	case dberrors.IsForeignKeyViolation(err):
		return fmt.Errorf("seed script references a missing row, was it merged out of order: %w", err)
	case dberrors.IsUndefinedTable(err):
		return fmt.Errorf("schema is missing a table, run migrations first: %w", err)
	}
	return fmt.Errorf("error applying seed script: %w", err)
}

// CountRows returns the number of rows in table.
func (r *SeedRepository) CountRows(ctx context.Context, table string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{table}.Sanitize())

	var n int64
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting rows of %s: %w", table, err)
	}
	return n, nil
}

// StripTransactionControl removes lines that consist only of BEGIN; or COMMIT;.
func StripTransactionControl(script string) string {
	var b strings.Builder
	b.Grow(len(script))

	sc := bufio.NewScanner(strings.NewReader(script))
	sc.Buffer(make([]byte, 0, 64*1024), len(script)+1)
	for sc.Scan() {
		line := sc.Text()
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "BEGIN;", "COMMIT;":
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
