package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WalkFiles returns every regular file under root, skipping files named
// exclude. If root is itself a file, the result is just root.
// Directories and symlinks are never returned. Any error encountered while
// walking aborts the walk.
func WalkFiles(root, exclude string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if info.Mode().IsRegular() {
		return []string{root}, nil
	}

	// WalkDir does not descend into a symlinked root unless it ends in a separator.
	walkRoot := root
	if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(filepath.Separator)
	}

	var files []string
	err = filepath.WalkDir(walkRoot, func(subpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if d.Name() == exclude {
			return nil
		}
		files = append(files, subpath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking path %s: %w", root, err)
	}
	return files, nil
}
