package parsers

import (
	"github.com/ethanolivertroy/dep-check/internal/models"
	"golang.org/x/mod/modfile"
)

// GoModParser parses go.mod files
type GoModParser struct {
	IncludeIndirect bool // Whether to include indirect dependencies
}

// CanParse returns true for go.mod files
func (p *GoModParser) CanParse(filename string) bool {
	return filename == "go.mod"
}

// Parse extracts dependencies from go.mod content. A requirement replaced by
// a local directory is reported with the directory as its specifier.
func (p *GoModParser) Parse(filepath string, content []byte) ([]models.DeclaredDependency, error) {
	mod, err := modfile.Parse(filepath, content, nil)
	if err != nil {
		return nil, err
	}

	localReplacements := make(map[string]string)
	for _, rep := range mod.Replace {
		if rep.New.Version == "" && modfile.IsDirectoryPath(rep.New.Path) {
			localReplacements[rep.Old.Path] = rep.New.Path
		}
	}

	var deps []models.DeclaredDependency

	for _, req := range mod.Require {
		// Skip indirect deps unless explicitly requested
		if req.Indirect && !p.IncludeIndirect {
			continue
		}

		raw := req.Mod.Version
		if dir, ok := localReplacements[req.Mod.Path]; ok {
			raw = dir
		}

		dep := models.DeclaredDependency{
			Name:       req.Mod.Path,
			Raw:        raw,
			Ecosystem:  models.EcosystemGo,
			SourceFile: filepath,
		}
		if req.Syntax != nil {
			dep.Line = req.Syntax.Start.Line
		}
		deps = append(deps, dep)
	}

	return deps, nil
}
