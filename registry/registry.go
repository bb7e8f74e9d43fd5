// Package registry maintains the project registry: a JSON object mapping
// generated identifiers to project paths relative to the base directory.
//
// The registry only grows. Entries are never renamed or removed, and a path
// is added only if no existing entry already maps to it, so paths stay unique.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dendrascience/filesinfo/util"
	"github.com/google/uuid"
)

// DefaultFileName is the registry file used when no path is configured.
const DefaultFileName = "project_data.json"

// ErrCorruptRegistry is returned when an existing registry file cannot be parsed.
var ErrCorruptRegistry = errors.New("registry file is not a valid id to path mapping")

// Registry maps a project identifier to the project's relative path.
type Registry map[string]string

// Entry is a single registry row.
type Entry struct {
	ID   string
	Path string
}

// New returns an empty registry.
func New() Registry {
	return Registry{}
}

// Load reads the registry stored at path. A missing file yields an empty
// registry; a file that is not a JSON object of strings is an error.
func Load(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}

	// pointers let a null value be told apart from an empty path
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRegistry, path, err)
	}
	r := make(Registry, len(raw))
	for id, p := range raw {
		if p == nil {
			return nil, fmt.Errorf("%w: %s: null path for id %q", ErrCorruptRegistry, path, id)
		}
		r[id] = *p
	}
	return r, nil
}

// Save writes the full registry to path, replacing previous content.
func Save(path string, r Registry) error {
	if r == nil {
		r = New()
	}
	if err := util.WriteJSONFile(path, r); err != nil {
		return fmt.Errorf("failed to write registry %s: %w", path, err)
	}
	return nil
}

// IDFor returns the identifier mapped to path, if any.
func (r Registry) IDFor(path string) (string, bool) {
	for id, p := range r {
		if p == path {
			return id, true
		}
	}
	return "", false
}

// AddIfAbsent registers path under a new random UUID unless some entry
// already maps to it. It reports the new identifier and whether one was added.
func (r Registry) AddIfAbsent(path string) (string, bool) {
	if _, ok := r.IDFor(path); ok {
		return "", false
	}
	id := uuid.New().String()
	for r[id] != "" {
		id = uuid.New().String()
	}
	r[id] = path
	return id, true
}

// Entries returns the registry rows ordered by path, then identifier.
func (r Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r))
	for id, p := range r {
		entries = append(entries, Entry{ID: id, Path: p})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}
