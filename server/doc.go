// Package server serves the artifacts filesinfo writes to update clients.
//
// Projects are addressed by their registry identifier, never by path:
//   - GET  /status/                health check
//   - GET  /files_info/{project}/  the project's files_info.json plus project_name
//   - POST /files/                 {"project": id, "filename": path} returns the file
//
// File names are resolved inside the project directory with os.Root, so a
// request cannot reach outside it.
package server
