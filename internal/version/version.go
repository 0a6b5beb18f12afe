// Package version reports the build version of casttompv.
//
// Release builds stamp the values with ldflags:
//
//	go build -ldflags="-X github.com/magmaskv/casttompv/internal/version.Version=v1.2.3 \
//	                   -X github.com/magmaskv/casttompv/internal/version.Commit=abc123"
//
// Unstamped builds fall back to the VCS settings embedded by the Go toolchain,
// then to a dev-<timestamp> version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the short git commit hash
	Commit = ""
)

// Info is the resolved build identity.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
	Platform  string
}

var (
	resolveOnce sync.Once
	resolved    Info
)

// Get returns the build identity, resolving unstamped values on first use.
func Get() Info {
	resolveOnce.Do(func() {
		var settings []debug.BuildSetting
		if bi, ok := debug.ReadBuildInfo(); ok {
			settings = bi.Settings
		}
		resolved = resolve(Version, Commit, settings, time.Now())
	})
	return resolved
}

func resolve(ver, commit string, settings []debug.BuildSetting, now time.Time) Info {
	var revision, vcsTime string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if commit == "" && revision != "" {
		commit = revision
		if len(commit) > 7 {
			commit = commit[:7]
		}
		if dirty {
			commit += "-dirty"
		}
	}
	if commit == "" {
		commit = "unknown"
	}

	if ver == "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			ver = "dev-" + t.Format("20060102")
		} else {
			ver = "dev-" + now.Format("20060102-150405")
		}
	}

	return Info{
		Version:   ver,
		Commit:    commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns "<version> (commit: <commit>)".
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s)", i.Version, i.Commit)
}

// Full returns the version line printed by the version command.
func Full() string {
	i := Get()
	return fmt.Sprintf("%s, %s %s", i, i.GoVersion, i.Platform)
}
