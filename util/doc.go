// Package util provides the low-level file primitives used by filesinfo.
//
// Key Components:
//
// File Hashing:
//   - SHA-256 content checksums streamed in fixed-size chunks (ChunkSize = 4096)
//   - Lowercase hex output, identical regardless of chunk boundaries
//   - One file handle open at a time; each file is closed before the next is read
//
// Directory Walking:
//   - Recursive enumeration of regular files under a root
//   - Exclusion of a reserved file name so a manifest never lists itself
//   - Strict failure: an unreadable entry aborts the walk
//
// JSON Persistence:
//   - Pretty-printed JSON output that fully replaces previous file content
package util
