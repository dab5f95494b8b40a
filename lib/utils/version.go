package utils

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedAPIVersions lists the HTTP API versions this client speaks, oldest first.
var SupportedAPIVersions = []string{
	"1", "1.1", "1.2", "1.2.1", "1.2.7", "1.2.8", "1.2.9", "1.2.10",
	"1.2.11", "1.2.12", "1.2.13", "1.2.14", "1.2.15",
}

func LatestAPIVersion() string {
	return SupportedAPIVersions[len(SupportedAPIVersions)-1]
}

func IsSupportedAPIVersion(version string) bool {
	for _, v := range SupportedAPIVersions {
		if v == version {
			return true
		}
	}
	return false
}

// VersionAtLeast reports whether version is the same as or newer than minimum.
func VersionAtLeast(version, minimum string) (bool, error) {
	have, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("invalid api version %q: %w", version, err)
	}
	want, err := semver.NewVersion(minimum)
	if err != nil {
		return false, fmt.Errorf("invalid api version %q: %w", minimum, err)
	}
	return !have.LessThan(want), nil
}

// HighestCommonVersion picks the newest supported version not newer than the
// server's current version.
func HighestCommonVersion(serverVersion string) (string, error) {
	server, err := semver.NewVersion(serverVersion)
	if err != nil {
		return "", fmt.Errorf("invalid server api version %q: %w", serverVersion, err)
	}
	for i := len(SupportedAPIVersions) - 1; i >= 0; i-- {
		candidate := semver.MustParse(SupportedAPIVersions[i])
		if !candidate.GreaterThan(server) {
			return SupportedAPIVersions[i], nil
		}
	}
	return "", fmt.Errorf("server api version %s is older than every supported version", serverVersion)
}
