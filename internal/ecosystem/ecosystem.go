// Package ecosystem describes the package-management conventions the checker
// understands: which manifest declares dependencies, where packages are
// installed and how an installed package reports its version.
package ecosystem

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/parsers"
	"github.com/ethanolivertroy/dep-check/internal/resolver"
)

// Spec bundles everything the checker needs to know about one ecosystem.
type Spec struct {
	Name models.Ecosystem
	// ManifestFiles are tried in order; the first one present is read.
	ManifestFiles []string
	// InstallDir is the conventional install directory, relative to the
	// project root.
	InstallDir string
	Parser     parsers.Parser
	Layout     resolver.Layout
}

// InstallRoots returns the ordered install directories to search for a
// project rooted at projectRoot: the conventional directory first, then any
// alternates in the order given.
func (s Spec) InstallRoots(projectRoot string, alternates ...string) []string {
	roots := []string{filepath.Join(projectRoot, s.InstallDir)}
	for _, alt := range alternates {
		if alt != "" {
			roots = append(roots, alt)
		}
	}
	return roots
}

// ParserFor returns the parser able to read manifestFile.
func (s Spec) ParserFor(manifestFile string) (parsers.Parser, bool) {
	if s.Parser != nil && s.Parser.CanParse(manifestFile) {
		return s.Parser, true
	}
	return nil, false
}

// Registry maps ecosystem names to their specs.
type Registry struct {
	specs map[models.Ecosystem]Spec
}

// NewRegistry returns a registry holding the built-in ecosystems configured
// with opts.
func NewRegistry(opts parsers.Options) *Registry {
	r := &Registry{specs: make(map[models.Ecosystem]Spec)}
	r.Register(Npm(opts))
	r.Register(Bower(opts))
	r.Register(Go(opts))
	r.Register(PyPI(opts))
	return r
}

// Register adds or replaces an ecosystem.
func (r *Registry) Register(spec Spec) {
	r.specs[spec.Name] = spec
}

// Get returns the spec registered under name.
func (r *Registry) Get(name models.Ecosystem) (Spec, error) {
	spec, ok := r.specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("unknown ecosystem %q", name)
	}
	return spec, nil
}

// Names lists registered ecosystems in a stable order.
func (r *Registry) Names() []models.Ecosystem {
	names := make([]models.Ecosystem, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// KnownNames lists the built-in ecosystem names.
func KnownNames() []string {
	return []string{
		string(models.EcosystemBower),
		string(models.EcosystemGo),
		string(models.EcosystemNpm),
		string(models.EcosystemPyPI),
	}
}
