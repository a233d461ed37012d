// Package project reads a project's declared dependencies for an ecosystem.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ethanolivertroy/dep-check/internal/ecosystem"
	"github.com/ethanolivertroy/dep-check/internal/logger"
	"github.com/ethanolivertroy/dep-check/internal/models"
	apperrors "github.com/ethanolivertroy/dep-check/pkg/errors"
)

// Project is one logical view of a project root through one ecosystem.
type Project struct {
	Root         string
	Ecosystem    ecosystem.Spec
	ManifestPath string
	Dependencies []models.DeclaredDependency
	// InstallRoots are the ordered install directories to search.
	InstallRoots []string
}

// Load reads the first manifest of spec found under root. Alternate install
// directories are searched after the conventional one. A root without any
// manifest returns errors.ErrNoManifest.
func Load(root string, spec ecosystem.Spec, alternates []string, log *logger.Logger) (*Project, error) {
	log = log.WithFields(map[string]any{"root": root, "ecosystem": string(spec.Name)})

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat project root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	for _, name := range spec.ManifestFiles {
		path := filepath.Join(root, name)
		content, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, apperrors.NewManifestError(path, err)
		}

		parser, ok := spec.ParserFor(name)
		if !ok {
			return nil, apperrors.NewManifestError(path, fmt.Errorf("no %s parser for %s", spec.Name, name))
		}

		deps, err := parser.Parse(path, content)
		if err != nil {
			log.Error(err, "failed to parse manifest")
			return nil, apperrors.NewManifestError(path, err)
		}

		log.WithFields(map[string]any{"manifest": path, "dependencies": len(deps)}).Debug("manifest loaded")

		return &Project{
			Root:         root,
			Ecosystem:    spec,
			ManifestPath: path,
			Dependencies: deps,
			InstallRoots: spec.InstallRoots(root, alternates...),
		}, nil
	}

	log.Debug("no manifest found")
	return nil, apperrors.ErrNoManifest
}
