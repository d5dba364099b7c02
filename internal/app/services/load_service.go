package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/pkg/apperrors"
)

// SeedStore is the persistence the load service needs.
type SeedStore interface {
	ApplyScript(ctx context.Context, script string) error
	CountRows(ctx context.Context, table string) (int64, error)
}

// TableCount is the row count of one table after a load.
type TableCount struct {
	Table string
	Rows  int64
}

// LoadService applies a generated seed script to the database
type LoadService struct {
	store SeedStore
	lgr   zerolog.Logger
}

// NewLoadService creates a new load service instance
func NewLoadService(store SeedStore, lgr zerolog.Logger) *LoadService {
	return &LoadService{
		store: store,
		lgr:   lgr,
	}
}

// Load applies the script at scriptPath and reports the row count of every table in tables.
// The first table is checked beforehand; a non-empty table means the data is already loaded.
func (s *LoadService) Load(ctx context.Context, scriptPath string, tables []string) ([]TableCount, error) {
	script, err := os.ReadFile(scriptPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrScriptNotFound, scriptPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read seed script: %w", err)
	}

	if len(tables) > 0 {
		n, err := s.store.CountRows(ctx, tables[0])
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyLoaded,
				fmt.Sprintf("table %s already holds %d rows", tables[0], n)).
				WithCode("already_loaded").
				WithDetails(map[string]interface{}{"table": tables[0], "rows": n})
		}
	}

	s.lgr.Info().Str("script", scriptPath).Int("bytes", len(script)).Msg("Applying seed script")
	if err := s.store.ApplyScript(ctx, string(script)); err != nil {
		return nil, err
	}

	counts := make([]TableCount, 0, len(tables))
	for _, table := range tables {
		n, err := s.store.CountRows(ctx, table)
		if err != nil {
			return counts, err
		}
		s.lgr.Info().Str("table", table).Int64("rows", n).Msg("Table loaded")
		counts = append(counts, TableCount{Table: table, Rows: n})
	}
	return counts, nil
}
