// Package version reports the build identity of the madar binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Stamped with -ldflags "-X github.com/example/madar/internal/version.Commit=...".
// Unstamped builds fall back to the VCS settings recorded by the go tool.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// String returns "madar <version> (commit: <sha7>, built: <time>)".
func String() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		vcsCommit, vcsTime := fromBuildInfo()
		if commit == "" {
			commit = vcsCommit
		}
		if built == "" {
			built = vcsTime
		}
	}
	return fmt.Sprintf("madar %s (commit: %s, built: %s)", Version, short(commit), orUnknown(built))
}

func fromBuildInfo() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return orUnknown(commit)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
