package models

// SpecifierKind describes how a declared specifier must be checked
type SpecifierKind string

const (
	KindExactOrRange      SpecifierKind = "exact-or-range"
	KindVersionControlRef SpecifierKind = "vcs"
	KindDownloadURL       SpecifierKind = "url"
	KindLocalPath         SpecifierKind = "path"
	KindWildcard          SpecifierKind = "wildcard"
)

// DependencySpecifier is a classified dependency requirement
type DependencySpecifier struct {
	Name string
	Raw  string
	Kind SpecifierKind

	// Ref is the text after '#' in a version-control specifier
	Ref string
	// RefVersion is set when Ref parses as a semantic version; it then acts as
	// an exact version requirement
	RefVersion string
}

// Versioned reports whether the specifier constrains the installed version
func (s DependencySpecifier) Versioned() bool {
	switch s.Kind {
	case KindExactOrRange:
		return true
	case KindVersionControlRef:
		return s.RefVersion != ""
	default:
		return false
	}
}
