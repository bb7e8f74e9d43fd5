// Package main provides the filesinfo command-line interface.
//
// filesinfo treats every immediate subdirectory of BASE_PATH as a project.
// For each project it writes files_info.json, a manifest holding the SHA-256
// checksum and modification time of every file, and it records the project
// under a generated identifier in the registry at PROJECT_DATA_PATH.
//
// The binary supports:
//   - filesinfo: generate manifests and update the registry
//   - filesinfo registry: list registered projects
//   - filesinfo serve: serve manifests and files over HTTP
package main
