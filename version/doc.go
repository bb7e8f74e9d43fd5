// Package version reports build metadata for filesinfo.
//
// Values come from, in order of preference:
//   - variables set at link time with -ldflags "-X .../version.Version=v1.0.0"
//     (likewise Commit and Date)
//   - the VCS stamps in debug.ReadBuildInfo()
//   - development defaults
package version
