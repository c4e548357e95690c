// Package version reports the build version stamped in by the linker:
//
//	go build -ldflags "-X github.com/inkwell-print/inkwell/internal/shared/version.Version=1.4.0"
package version

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Normalize adds the "v" prefix semver expects: "1.2.3" becomes "v1.2.3".
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// Current returns the canonical semver of this build, or "dev" when the
// binary was not stamped with a valid release version.
func Current() string {
	v := Normalize(Version)
	if !semver.IsValid(v) {
		return "dev"
	}
	return semver.Canonical(v)
}

// IsRelease reports whether the build carries a release version without a
// prerelease suffix.
func IsRelease() bool {
	v := Normalize(Version)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

func String() string {
	return fmt.Sprintf("inkwell %s (commit %s, built %s, %s)", Current(), Commit, BuildTime, runtime.Version())
}
