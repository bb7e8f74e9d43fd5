package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dendrascience/filesinfo/manifest"
	"github.com/dendrascience/filesinfo/registry"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewRegistryCmd creates and returns the registry subcommand for the filesinfo CLI.
// It lists every registered project with the size of its current manifest.
func NewRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "List the projects recorded in the registry",
		Long: `List every project in the registry at PROJECT_DATA_PATH.

Each row shows the project identifier, the number of files in its
files_info.json ("-" if the manifest is missing) and its path relative to
BASE_PATH. Project names are colored unless NO_COLOR is set.`,
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
			_, noColor := os.LookupEnv("NO_COLOR")
			return printRegistry(cmd.OutOrStdout(), cfg.BasePath, reg, !noColor)
		},
	}

	return cmd
}

func printRegistry(w io.Writer, basePath string, reg registry.Registry, color bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILES\tPROJECT")
	for _, e := range reg.Entries() {
		files := "-"
		if m, err := manifest.Load(filepath.Join(basePath, filepath.FromSlash(e.Path))); err == nil {
			files = fmt.Sprint(len(m.Files))
		}
		name := e.Path
		if color {
			name = colorize(name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, files, name)
	}
	return tw.Flush()
}

// colorize wraps name in a 256-color ANSI escape chosen from the name itself,
// so a project keeps its color across runs.
func colorize(name string) string {
	// skip the 16 system colors and the grayscale ramp
	h := colorhash.HashString(name)
	if h < 0 {
		h = -h
	}
	code := 16 + h%216
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, name)
}
