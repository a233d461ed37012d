package models

// Ecosystem represents a package ecosystem
type Ecosystem string

const (
	EcosystemNpm   Ecosystem = "npm"
	EcosystemBower Ecosystem = "bower"
	EcosystemGo    Ecosystem = "go"
	EcosystemPyPI  Ecosystem = "pypi"
)

// DeclaredDependency represents a single dependency entry read from a manifest
type DeclaredDependency struct {
	Name       string
	Raw        string // Specifier exactly as the project author wrote it
	Ecosystem  Ecosystem
	SourceFile string // Manifest this dependency was declared in
	Line       int    // Line number in source file (if available)
	Dev        bool   // Declared as a development-only dependency
}

// String returns a human-readable representation
func (d DeclaredDependency) String() string {
	return d.Name + "@" + d.Raw
}

// InstalledPackage describes what is actually present on disk for a dependency
type InstalledPackage struct {
	Name       string
	Version    string
	Found      bool   // False when no searched root contains the package
	SourceRoot string // Install directory the package was found in
}

// VersionOrAbsent returns the installed version, or "(absent)" when not found
func (p InstalledPackage) VersionOrAbsent() string {
	if !p.Found {
		return "(absent)"
	}
	if p.Version == "" {
		return "(unknown)"
	}
	return p.Version
}
