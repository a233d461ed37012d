package ecosystem

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/parsers"
)

// Npm describes package.json projects installed into node_modules.
func Npm(opts parsers.Options) Spec {
	return Spec{
		Name:          models.EcosystemNpm,
		ManifestFiles: []string{"package.json"},
		InstallDir:    "node_modules",
		Parser:        &parsers.NodePackageJSONParser{ExcludeDev: opts.ExcludeDev},
		Layout:        PackageDirLayout{Manifests: []string{"package.json"}},
	}
}

// PackageDirLayout finds <installDir>/<name>/ and reads the version field of
// the first of Manifests that decodes.
type PackageDirLayout struct {
	Manifests []string
}

type versionManifest struct {
	Version string `json:"version"`
}

// InstalledVersion implements resolver.Layout.
func (l PackageDirLayout) InstalledVersion(installDir, name string) (string, bool) {
	pkgDir := filepath.Join(installDir, filepath.FromSlash(name))

	for _, manifest := range l.Manifests {
		data, err := os.ReadFile(filepath.Join(pkgDir, manifest))
		if err != nil {
			continue
		}
		var m versionManifest
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		return m.Version, true
	}

	return "", false
}
