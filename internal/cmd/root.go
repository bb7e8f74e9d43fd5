package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/dendrascience/filesinfo/generator"
	"github.com/dendrascience/filesinfo/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// DotEnvFile is loaded into the environment before configuration is read.
// Variables already present in the environment are not overridden.
const DotEnvFile = ".env"

// NewRootCmd creates and returns the root cobra command for the filesinfo CLI.
// Running it without a subcommand performs a full generation pass.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filesinfo",
		Short: "filesinfo - checksum manifests and a project registry for a directory of projects",
		Long: `filesinfo walks every immediate subdirectory of BASE_PATH, writes a
files_info.json manifest with the SHA-256 checksum and modification time of
each file, and records every project in the registry at PROJECT_DATA_PATH.

Configuration (environment or .env):
  BASE_PATH          directory holding the projects (default ".")
  PROJECT_DATA_PATH  registry file (default "project_data.json")`,
		Version:       version.GetFullVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runGenerate(cfg)
		},
	}

	rootCmd.AddCommand(NewRegistryCmd())
	rootCmd.AddCommand(NewServeCmd())

	return rootCmd
}

func loadConfig() (generator.Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return generator.Config{}, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}
	return generator.ConfigFromEnv(), nil
}

func runGenerate(cfg generator.Config) error {
	log.Printf("filesinfo %s starting (base: %s, registry: %s)", version.GetVersion(), cfg.BasePath, cfg.RegistryPath)
	start := time.Now()

	res, err := generator.New(cfg).Run()
	if err != nil {
		return err
	}

	log.Printf("Processed %d projects, %d files, %d new registry entries in %.2fs",
		len(res.Projects), res.Files, len(res.Added), time.Since(start).Seconds())
	return nil
}
