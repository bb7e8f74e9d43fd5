package manifest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/dendrascience/filesinfo/util"
)

// FileName is the reserved name of the manifest written inside each project.
const FileName = "files_info.json"

// HumanTimeLayout formats LastModifiedHuman in ctime style.
const HumanTimeLayout = time.ANSIC

type (
	FileRecord struct {
		Checksum          string `json:"checksum"`            // hex SHA-256 of the file content
		LastModified      uint64 `json:"last_modified"`       // modification time in epoch seconds
		LastModifiedHuman string `json:"last_modified_human"` // modification time for display
	}
	Manifest struct {
		Version string                `json:"version"` // base name of the project directory
		Files   map[string]FileRecord `json:"files"`   // keyed by slash-separated relative path
	}
)

// NewFileRecord hashes the file at path and captures its modification time.
func NewFileRecord(path string) (FileRecord, error) {
	return Builder{}.record(path)
}

func recordFor(checksum string, modified time.Time) FileRecord {
	var secs uint64
	if unix := modified.Unix(); unix > 0 {
		secs = uint64(unix)
	}
	return FileRecord{
		Checksum:          checksum,
		LastModified:      secs,
		LastModifiedHuman: modified.Local().Format(HumanTimeLayout),
	}
}

// Builder creates manifests. The zero value hashes files with util.GetFileHash.
type Builder struct {
	// Hash computes the checksum of a single file.
	Hash func(path string) (string, error)
}

// ValidName returns name with every invalid UTF-8 byte replaced by U+FFFD,
// the form encoding/json gives it on the way to disk.
func ValidName(name string) string {
	if utf8.ValidString(name) {
		return name
	}
	return string([]rune(name))
}

func (b Builder) record(path string) (FileRecord, error) {
	hash := b.Hash
	if hash == nil {
		hash = util.GetFileHash
	}
	checksum, err := hash(path)
	if err != nil {
		return FileRecord{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return FileRecord{}, err
	}
	return recordFor(checksum, info.ModTime()), nil
}

// Build creates the manifest for root. If root is a file, the manifest holds
// that single file keyed by its base name. Files whose checksum cannot be
// computed are logged and omitted; a failed walk is returned as an error.
func (b Builder) Build(root string) (Manifest, error) {
	m := Manifest{
		Version: ValidName(filepath.Base(root)),
		Files:   map[string]FileRecord{},
	}

	info, err := os.Stat(root)
	if err != nil {
		return Manifest{}, err
	}
	rootIsFile := info.Mode().IsRegular()

	paths, err := util.WalkFiles(root, FileName)
	if err != nil {
		return Manifest{}, err
	}

	for _, path := range paths {
		log.Printf("Generating checksum for file %s", path)
		rec, err := b.record(path)
		if err != nil {
			log.Printf("Error generating checksum for file %s: %v", path, err)
			continue
		}

		key := filepath.Base(path)
		if !rootIsFile {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return Manifest{}, fmt.Errorf("failed to get relative path: %w", err)
			}
			key = filepath.ToSlash(rel)
		}
		key = ValidName(key)
		if _, dup := m.Files[key]; dup {
			log.Printf("Duplicate manifest key %q for file %s, keeping the first", key, path)
			continue
		}
		m.Files[key] = rec
	}
	return m, nil
}

// Save builds the manifest for the project directory root and writes it to
// root/files_info.json, replacing any previous manifest.
func (b Builder) Save(root string) (Manifest, error) {
	m, err := b.Build(root)
	if err != nil {
		return Manifest{}, err
	}
	output := filepath.Join(root, FileName)
	if err := util.WriteJSONFile(output, m); err != nil {
		return Manifest{}, fmt.Errorf("failed to write %s: %w", output, err)
	}
	log.Printf("Saved %s to %s", FileName, output)
	return m, nil
}

// Build creates the manifest for root with the default Builder.
func Build(root string) (Manifest, error) {
	return Builder{}.Build(root)
}

// Save writes the manifest for root with the default Builder.
func Save(root string) (Manifest, error) {
	return Builder{}.Save(root)
}

// Load reads a manifest previously written by Save. path may name the
// manifest file or the project directory holding it.
func Load(path string) (Manifest, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, FileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if m.Files == nil {
		m.Files = map[string]FileRecord{}
	}
	return m, nil
}
