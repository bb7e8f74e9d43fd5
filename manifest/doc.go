// Package manifest builds and persists the per-project files_info.json
// manifest: a version string plus one checksum and modification time record
// for every regular file in the project directory.
//
// A manifest is rebuilt from scratch on every Save and never merged with the
// previous one. Files that cannot be hashed are logged and left out; errors
// walking the directory tree are returned to the caller.
package manifest
