package parsers

import (
	"encoding/json"

	"github.com/ethanolivertroy/dep-check/internal/models"
)

// NodePackageJSONParser parses package.json files (direct dependencies only)
type NodePackageJSONParser struct {
	ExcludeDev bool // Skip devDependencies
}

// CanParse returns true for package.json files
func (p *NodePackageJSONParser) CanParse(filename string) bool {
	return filename == "package.json"
}

// jsonManifest is the dependency-bearing part of package.json and bower.json
type jsonManifest struct {
	Dependencies    orderedSpecs `json:"dependencies"`
	DevDependencies orderedSpecs `json:"devDependencies"`
}

// Parse extracts dependencies from package.json content
func (p *NodePackageJSONParser) Parse(filepath string, content []byte) ([]models.DeclaredDependency, error) {
	return parseJSONManifest(filepath, content, models.EcosystemNpm, p.ExcludeDev)
}

// parseJSONManifest returns dependencies followed by devDependencies, each in
// document order. A name declared in both keeps its first declaration.
func parseJSONManifest(filepath string, content []byte, eco models.Ecosystem, excludeDev bool) ([]models.DeclaredDependency, error) {
	var manifest jsonManifest
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, err
	}

	var deps []models.DeclaredDependency
	seen := make(map[string]bool)

	add := func(entries orderedSpecs, dev bool) {
		for _, e := range entries {
			if seen[e.Name] {
				continue
			}
			seen[e.Name] = true
			deps = append(deps, models.DeclaredDependency{
				Name:       e.Name,
				Raw:        e.Raw,
				Ecosystem:  eco,
				SourceFile: filepath,
				Dev:        dev,
			})
		}
	}

	// Add production dependencies
	add(manifest.Dependencies, false)

	// Add dev dependencies
	if !excludeDev {
		add(manifest.DevDependencies, true)
	}

	return deps, nil
}
