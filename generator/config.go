package generator

import (
	"os"

	"github.com/dendrascience/filesinfo/registry"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvBasePath        = "BASE_PATH"
	EnvProjectDataPath = "PROJECT_DATA_PATH"
)

// Config locates the projects and the registry for a run.
type Config struct {
	// BasePath is the directory whose immediate subdirectories are projects.
	// Defaults to the current directory.
	BasePath string
	// RegistryPath is the project registry file.
	// Defaults to project_data.json in the current directory.
	RegistryPath string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		BasePath:     ".",
		RegistryPath: registry.DefaultFileName,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies BASE_PATH and
// PROJECT_DATA_PATH when they are set to non-empty values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvBasePath); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv(EnvProjectDataPath); v != "" {
		cfg.RegistryPath = v
	}
	return cfg
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BasePath == "" {
		c.BasePath = d.BasePath
	}
	if c.RegistryPath == "" {
		c.RegistryPath = d.RegistryPath
	}
	return c
}
