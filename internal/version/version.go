package version

import (
	"runtime/debug"
	"strings"
)

// Set at build time via -ldflags "-X inspectgrid/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String is "version (commit) date". Without ldflags the commit falls back
// to the VCS revision stamped by the go tool.
func String() string {
	commit := Commit
	if commit == "" {
		commit = vcsRevision()
	}
	parts := []string{Version}
	if commit != "" {
		parts = append(parts, "("+shortRev(commit)+")")
	}
	if Date != "" {
		parts = append(parts, Date)
	}
	return strings.Join(parts, " ")
}

func shortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
