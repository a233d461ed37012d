package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
type Version struct {
	v *mm.Version
}

// Constraint is a semantic version range.
//
// Examples:
// - "1.2.3"
// - ">1.3.2 <=2.3.4"
// - "^1.2.0"
// - "~1.4"
// - "0.2.x"
// - "1.0.0 - 2.0.0 || >=3.1.0"
type Constraint struct {
	c *mm.Constraints
}

// ParseVersion parses an installed version leniently: a leading "v" and
// missing minor or patch segments are accepted.
func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseExactVersion accepts only a complete MAJOR.MINOR.PATCH version,
// optionally prefixed with a literal "v".
func ParseExactVersion(raw string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	v, err := mm.StrictNewVersion(trimmed)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse exact version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func ParseConstraint(raw string) (Constraint, error) {
	c, err := mm.NewConstraint(strings.TrimSpace(raw))
	if err != nil {
		return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
	}
	return Constraint{c: c}, nil
}

func MustParseConstraint(raw string) Constraint {
	c, err := ParseConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || c.c == nil {
		return false
	}
	return c.c.Check(v.v)
}

// Equal reports whether a and b denote the same version, ignoring build metadata.
func Equal(a, b Version) bool {
	if a.v == nil || b.v == nil {
		return false
	}
	return a.v.Equal(b.v)
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}
