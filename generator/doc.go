// Package generator drives a full filesinfo run.
//
// For every immediate subdirectory of the configured base path it writes a
// fresh files_info.json manifest and makes sure the subdirectory is present
// in the project registry, then persists the registry. Any error other than
// a single unreadable file inside a project aborts the run.
package generator
