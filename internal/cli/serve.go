package cli

import (
	"github.com/spf13/cobra"

	"github.com/group7/resmatch/internal/bootstrap"
	"github.com/group7/resmatch/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API over the loaded database",
	Long: `Connects to the database, applies the SQL migrations and serves the authentication, resource,
condition, student and application endpoints under /api/v1 until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides server.port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	deps, err := bootstrap.BuildAPIDependencies(cmd.Context(), cfg, lgr)
	if err != nil {
		return err
	}
	defer deps.Close()

	router := bootstrap.SetupRouter(cfg, deps, lgr)
	lgr.Info().Str("port", cfg.Server.Port).Msg("Starting server...")
	return server.New(cfg, router, lgr).Run(cmd.Context())
}
