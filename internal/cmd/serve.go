package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dendrascience/filesinfo/registry"
	"github.com/dendrascience/filesinfo/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates and returns the serve subcommand for the filesinfo CLI.
// It serves manifests and project files to update clients by registry id.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve manifests and project files over HTTP",
		Long: `Serve the projects recorded in the registry to update clients.

Endpoints:
  GET  /status/               health check
  GET  /files_info/{id}/      files_info.json of a project, with project_name
  POST /files/                {"project": id, "filename": path} returns a file

The registry is read once at startup. Configuration (environment or .env):
  PORT               listen port (default 5000)
  SSL_CERT, SSL_KEY  enable TLS when both are set
  API_URL            extra origin allowed by the Content-Security-Policy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			reg, err := registry.Load(cfg.RegistryPath)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.BasePath); err != nil {
				return err
			}

			srvCfg := server.ConfigFromEnv()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("Serving %d projects from %s on %s (tls: %t)", len(reg), cfg.BasePath, srvCfg.Addr, srvCfg.TLS())
			return server.New(cfg.BasePath, reg, srvCfg.APIURL).ListenAndServe(ctx, srvCfg)
		},
	}

	return cmd
}
