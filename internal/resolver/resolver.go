// Package resolver locates installed packages across an ordered list of
// install directories.
package resolver

import (
	"github.com/ethanolivertroy/dep-check/internal/models"
)

// Layout knows how one ecosystem lays out installed packages inside an
// install directory.
type Layout interface {
	// InstalledVersion returns the version of name installed under installDir.
	// ok is false when the package is not there or cannot be read.
	InstalledVersion(installDir, name string) (version string, ok bool)
}

// Resolver searches install directories in order and reports the first hit.
type Resolver struct {
	layout Layout
}

// New creates a Resolver for the given layout.
func New(layout Layout) *Resolver {
	return &Resolver{layout: layout}
}

// Resolve looks for name under each install directory in order. The primary
// directory comes first; later entries (a sibling install directory, a
// hoisted workspace install) are only consulted when earlier ones miss.
// Absence is reported as data, never as an error.
func (r *Resolver) Resolve(name string, installDirs []string) models.InstalledPackage {
	for _, dir := range installDirs {
		if dir == "" {
			continue
		}
		if version, ok := r.layout.InstalledVersion(dir, name); ok {
			return models.InstalledPackage{
				Name:       name,
				Version:    version,
				Found:      true,
				SourceRoot: dir,
			}
		}
	}

	return models.InstalledPackage{Name: name}
}
