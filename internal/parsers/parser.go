package parsers

import "github.com/ethanolivertroy/dep-check/internal/models"

// Parser is the interface for dependency manifest readers
type Parser interface {
	// CanParse returns true if this parser can handle the given filename
	CanParse(filename string) bool

	// Parse extracts declared dependencies from the file content, in the
	// order the manifest lists them
	Parse(filepath string, content []byte) ([]models.DeclaredDependency, error)
}

// Options tunes which declarations the parsers report
type Options struct {
	ExcludeDev      bool // Skip devDependencies and similar sections
	IncludeIndirect bool // Include "// indirect" go.mod requirements
}

// GetAllParsers returns all available parsers
func GetAllParsers(opts Options) []Parser {
	return []Parser{
		&NodePackageJSONParser{ExcludeDev: opts.ExcludeDev},
		&BowerJSONParser{ExcludeDev: opts.ExcludeDev},
		&GoModParser{IncludeIndirect: opts.IncludeIndirect},
		&PythonRequirementsParser{},
		&PythonPyProjectParser{ExcludeDev: opts.ExcludeDev},
	}
}
