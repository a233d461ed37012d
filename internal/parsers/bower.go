package parsers

import "github.com/ethanolivertroy/dep-check/internal/models"

// BowerJSONParser parses bower.json files
type BowerJSONParser struct {
	ExcludeDev bool // Skip devDependencies
}

// CanParse returns true for bower.json files
func (p *BowerJSONParser) CanParse(filename string) bool {
	return filename == "bower.json"
}

// Parse extracts dependencies from bower.json content
func (p *BowerJSONParser) Parse(filepath string, content []byte) ([]models.DeclaredDependency, error) {
	return parseJSONManifest(filepath, content, models.EcosystemBower, p.ExcludeDev)
}
