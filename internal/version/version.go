// Package version reports the build of the scriptembed binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X .../version.Commit=... -X .../version.BuildTime=...".
var (
	Commit    = ""
	BuildTime = ""
)

// String returns e.g. "scriptembed dev (commit: 0123456, built: 2026-10-18T09:00:00Z)".
// Without ldflags, the VCS stamp embedded by `go build` is used.
func String() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		vcsCommit, vcsTime := vcsStamp()
		if commit == "" {
			commit = vcsCommit
		}
		if built == "" {
			built = vcsTime
		}
	}
	return fmt.Sprintf("scriptembed dev (commit: %s, built: %s)", short(commit), built)
}

func vcsStamp() (commit, built string) {
	commit, built = "unknown", "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, built
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			built = s.Value
		}
	}
	return commit, built
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
