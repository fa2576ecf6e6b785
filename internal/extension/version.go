// Package extension checks that the PgDD catalog extension installed in the
// target database is new enough for pgddui to trust its catalog functions.
package extension

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// MinSupported is the oldest PgDD release whose dd_ui functions are understood.
const MinSupported = "0.3"

// Version is a parsed dotted extension version (major.minor[.patch]).
// Missing segments compare as zero, so "1" == "1.0" == "1.0.0".
type Version struct {
	Major int
	Minor int
	Patch int

	raw string
	sv  string
}

// ParseVersion parses a dotted version string. An optional leading "v" and a
// pre-release suffix ("0.4.0-dev") are accepted.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	sv := "v" + strings.TrimPrefix(raw, "v")
	if raw == "" || !semver.IsValid(sv) {
		return Version{}, fmt.Errorf("invalid extension version %q", s)
	}

	canonical := strings.TrimPrefix(semver.Canonical(sv), "v")
	release, _, _ := strings.Cut(canonical, "-")
	parts := strings.SplitN(release, ".", 3)

	v := Version{raw: raw, sv: sv}
	for i, dst := range []*int{&v.Major, &v.Minor, &v.Patch} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Version{}, fmt.Errorf("invalid extension version %q: %w", s, err)
		}
		*dst = n
	}
	return v, nil
}

// MustParseVersion is like ParseVersion but panics on malformed input.
// Use only with constants.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0, or +1 using semantic version precedence.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.semver(), other.semver())
}

// AtLeast reports whether v >= min.
func (v Version) AtLeast(minimum Version) bool {
	return v.Compare(minimum) >= 0
}

// String returns the version as it was reported.
func (v Version) String() string {
	if v.raw != "" {
		return v.raw
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return v.sv == "" && v.Major == 0 && v.Minor == 0 && v.Patch == 0
}

func (v Version) semver() string {
	if v.sv != "" {
		return v.sv
	}
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsCompatible reports whether installed satisfies the minimum supported version.
func IsCompatible(installed, minimum Version) bool {
	return installed.AtLeast(minimum)
}
