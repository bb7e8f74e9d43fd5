// Package cmd provides the command-line interface implementation for filesinfo.
//
// It uses the Cobra library for command structure; main wraps the root
// command with Fang for styled help and error output.
//
// Commands:
//   - root: generate files_info.json for every project and update the registry
//   - registry: print the project registry
//   - serve: serve manifests and project files to update clients
//
// All commands take their paths from BASE_PATH and PROJECT_DATA_PATH, read
// from the process environment or a .env file in the working directory.
package cmd
