// Package cli wires the resmatch commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/group7/resmatch/internal/bootstrap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "resmatch [command]",
	Short: "Seed data generator and HTTP API for the resource matching system",
	Long: `Generates a deterministic demo population (departments, companies, students, course history,
affiliations, resources, applications, achievements and push notifications) as PostgreSQL scripts,
loads them into a database, and serves the matching API over that database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.DefaultConfigPath, "Path to the YAML configuration file")
}

// Execute runs the command selected by the process arguments.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
