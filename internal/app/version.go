package app

import (
	"fmt"
	"runtime/debug"
)

// Version and Commit may be set via ldflags:
//
//	go build -ldflags "-X github.com/heartmarshall/rastreio-bot/internal/app.Version=1.4.0"
//
// An unset Commit falls back to the VCS revision stamped by the toolchain.
var (
	Version = "dev"
	Commit  = ""
)

// BuildVersion returns "version (commit)" for startup logs and health checks.
func BuildVersion() string {
	return formatVersion(Version, Commit, debug.ReadBuildInfo)
}

func formatVersion(version, commit string, info func() (*debug.BuildInfo, bool)) string {
	modified := false
	if commit == "" {
		if bi, ok := info(); ok {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					commit = s.Value
				case "vcs.modified":
					modified = s.Value == "true"
				}
			}
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	switch {
	case commit == "":
		return version
	case modified:
		return fmt.Sprintf("%s (%s, dirty)", version, commit)
	default:
		return fmt.Sprintf("%s (%s)", version, commit)
	}
}
