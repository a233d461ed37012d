// Package specifier classifies raw dependency specifiers into the kind of
// check they require.
package specifier

import (
	"regexp"
	"strings"

	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/semver"
)

var (
	downloadPrefixes = []string{"http://", "https://"}

	vcsPrefixes = []string{
		"git://",
		"git+ssh://",
		"git+https://",
		"git+http://",
		"git+file://",
		"ssh://",
		"github:",
		"gitlab:",
		"bitbucket:",
		"gist:",
	}

	pathPrefixes = []string{"~/", "./", "../", "/", "file:", "link:"}

	// scpLikePattern matches git@host:owner/repo style remotes
	scpLikePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:`)

	// shorthandPattern matches hosted shorthands like owner/repo#ref
	shorthandPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*/[A-Za-z0-9_.-]+(#.*)?$`)

	windowsPathPattern = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
)

// Classify returns the kind of check raw requires. It never fails: anything
// not recognised is treated as a semantic version range.
func Classify(raw string) models.SpecifierKind {
	s := strings.TrimSpace(raw)

	switch {
	case s == "*" || s == "":
		return models.KindWildcard
	case hasAnyPrefix(s, downloadPrefixes):
		return models.KindDownloadURL
	case isVersionControl(s):
		return models.KindVersionControlRef
	case hasAnyPrefix(s, pathPrefixes) || windowsPathPattern.MatchString(s):
		return models.KindLocalPath
	default:
		return models.KindExactOrRange
	}
}

// Parse classifies raw and, for version-control specifiers, extracts the ref
// and any semantic version it implies.
func Parse(name, raw string) models.DependencySpecifier {
	spec := models.DependencySpecifier{
		Name: name,
		Raw:  raw,
		Kind: Classify(raw),
	}

	if spec.Kind != models.KindVersionControlRef {
		return spec
	}

	spec.Ref = refOf(strings.TrimSpace(raw))
	if spec.Ref == "" {
		return spec
	}

	if v, err := semver.ParseExactVersion(spec.Ref); err == nil {
		spec.RefVersion = v.String()
	}

	return spec
}

func isVersionControl(s string) bool {
	return hasAnyPrefix(s, vcsPrefixes) ||
		scpLikePattern.MatchString(s) ||
		shorthandPattern.MatchString(s)
}

// refOf returns the ref after '#', without the npm "semver:" marker
func refOf(s string) string {
	idx := strings.LastIndex(s, "#")
	if idx < 0 {
		return ""
	}
	ref := strings.TrimSpace(s[idx+1:])
	return strings.TrimPrefix(ref, "semver:")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
