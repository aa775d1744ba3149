// Package version reports the build version of the binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time:
//
//	go build -ldflags "-X github.com/perkloop/perkloop/internal/shared/version.Version=1.4.0"
var Version = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Current returns the normalized build version, or "dev" for local builds.
func Current() string {
	if !IsRelease(Version) {
		return "dev"
	}
	return semver.Canonical(Normalize(Version))
}

// IsRelease reports whether v is a valid semantic version.
func IsRelease(v string) bool {
	return semver.IsValid(Normalize(v))
}
