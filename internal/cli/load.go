package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/group7/resmatch/internal/bootstrap"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/helpers"
	"github.com/group7/resmatch/internal/seed"
)

const defaultLoadTimeout = 5 * time.Minute

var scriptPath string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Apply migrations and load the merged seed script into PostgreSQL",
	Long: `Connects with the database section of the configuration, applies the SQL migrations,
executes the merged script in a single transaction and reports the row count of every table.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Script to load (default <output.dir>/<output.merged_file>)")
}

func runLoad(cmd *cobra.Command, _ []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	path := scriptPath
	if path == "" {
		path = filepath.Join(cfg.Output.Dir, cfg.Output.MergedFile)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), helpers.ParseDuration(cfg.Database.LoadTimeout, defaultLoadTimeout))
	defer cancel()

	deps, err := bootstrap.BuildDependencies(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer deps.Close()

	counts, err := deps.LoadService.Load(ctx, path, seed.Tables())
	if apperrors.Is(err, apperrors.ErrAlreadyLoaded, apperrors.ErrScriptNotFound) {
		lgr.Warn().Err(err).Str("script", path).Msg("Nothing loaded")
		return err
	}
	if err != nil {
		lgr.Error().Err(err).Str("script", path).Msg("Load failed")
		return err
	}

	var total int64
	for _, c := range counts {
		total += c.Rows
	}
	lgr.Info().Int("tables", len(counts)).Int64("rows", total).Msg("Seed data loaded")
	return nil
}
