package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info contains version information
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

// GetVersion returns the version string, preferring the link-time value.
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// GetInfo returns complete version information
func GetInfo() Info {
	info := Info{Version: GetVersion(), Commit: Commit, Date: Date}
	if info.Commit == "unknown" || info.Commit == "" {
		if rev := buildSetting("vcs.revision"); rev != "" {
			info.Commit = rev
		}
	}
	if info.Date == "unknown" || info.Date == "" {
		if t := buildSetting("vcs.time"); t != "" {
			info.Date = t
		}
	}
	return info
}

// GetFullVersion returns the version with a short commit and build date when known.
func GetFullVersion() string {
	info := GetInfo()
	if len(info.Commit) <= 7 || info.Commit == "unknown" {
		return info.Version
	}
	if info.Date != "unknown" && info.Date != "" {
		return fmt.Sprintf("%s (%s, built %s)", info.Version, info.Commit[:7], info.Date)
	}
	return fmt.Sprintf("%s (%s)", info.Version, info.Commit[:7])
}
