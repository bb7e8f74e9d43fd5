package generator

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dendrascience/filesinfo/manifest"
	"github.com/dendrascience/filesinfo/registry"
)

// ErrBasePathNotFound is returned when the configured base path does not exist.
var ErrBasePathNotFound = errors.New("BASE_PATH does not exist")

// Result summarizes a completed run.
type Result struct {
	Projects []string          // relative paths of the projects processed
	Files    int               // total file records written across manifests
	Added    map[string]string // registry entries created by this run
	Registry registry.Registry // registry as persisted
}

// Generator writes project manifests and updates the registry.
type Generator struct {
	cfg     Config
	builder manifest.Builder
}

// New returns a Generator for cfg. Empty fields take their DefaultConfig value.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Run processes every project under the base path and saves the registry.
func (g *Generator) Run() (Result, error) {
	base := g.cfg.BasePath
	if _, err := os.Stat(base); err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("%w: %s: %w", ErrBasePathNotFound, base, err)
		}
		return Result{}, err
	}

	reg, err := registry.Load(g.cfg.RegistryPath)
	if err != nil {
		return Result{}, err
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", base, err)
	}

	res := Result{Added: map[string]string{}}
	for _, entry := range entries {
		projectPath := filepath.Join(base, entry.Name())
		info, err := os.Stat(projectPath)
		if os.IsNotExist(err) {
			// dangling symlink
			continue
		}
		if err != nil {
			return Result{}, err
		}
		if !info.IsDir() {
			continue
		}

		log.Printf("Generating %s for project %s", manifest.FileName, projectPath)
		m, err := g.builder.Save(projectPath)
		if err != nil {
			return Result{}, fmt.Errorf("project %s: %w", projectPath, err)
		}

		rel, err := filepath.Rel(base, projectPath)
		if err != nil {
			return Result{}, fmt.Errorf("failed to get relative path: %w", err)
		}
		// registry values must survive a JSON round trip unchanged
		rel = manifest.ValidName(filepath.ToSlash(rel))
		if id, added := reg.AddIfAbsent(rel); added {
			log.Printf("Registered project %s as %s", rel, id)
			res.Added[id] = rel
		}

		res.Projects = append(res.Projects, rel)
		res.Files += len(m.Files)
	}

	if err := registry.Save(g.cfg.RegistryPath, reg); err != nil {
		return Result{}, err
	}
	res.Registry = reg
	return res, nil
}
