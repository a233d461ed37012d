package ecosystem

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/parsers"
)

// pypiManifests lists the supported manifests, in lookup order
var pypiManifests = []string{"pyproject.toml", "requirements.txt"}

// PyPI describes Python projects installed into a .venv virtualenv.
func PyPI(opts parsers.Options) Spec {
	return Spec{
		Name:          models.EcosystemPyPI,
		ManifestFiles: pypiManifests,
		InstallDir:    ".venv",
		Parser:        pythonParsers{opts: opts},
		Layout:        SitePackagesLayout{},
	}
}

// pythonParsers dispatches to the requirements.txt or pyproject.toml parser
type pythonParsers struct {
	opts parsers.Options
}

func (p pythonParsers) pick(filename string) parsers.Parser {
	for _, c := range parsers.GetAllParsers(p.opts) {
		if c.CanParse(filename) {
			return c
		}
	}
	return nil
}

func (p pythonParsers) CanParse(filename string) bool {
	for _, name := range pypiManifests {
		if filename == name {
			return true
		}
	}
	return false
}

func (p pythonParsers) Parse(path string, content []byte) ([]models.DeclaredDependency, error) {
	parser := p.pick(filepath.Base(path))
	if parser == nil {
		return nil, fmt.Errorf("unsupported python manifest %s", path)
	}
	return parser.Parse(path, content)
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// normalizeName applies PEP 503 name normalization
func normalizeName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(name, "-"))
}

// SitePackagesLayout finds *.dist-info and *.egg-info entries. The install
// directory may be a virtualenv root or a site-packages directory.
type SitePackagesLayout struct{}

// InstalledVersion implements resolver.Layout.
func (SitePackagesLayout) InstalledVersion(installDir, name string) (string, bool) {
	dirs := []string{installDir}
	if matches, err := filepath.Glob(filepath.Join(installDir, "lib", "python*", "site-packages")); err == nil {
		dirs = append(dirs, matches...)
	}
	// Windows virtualenvs
	dirs = append(dirs, filepath.Join(installDir, "Lib", "site-packages"))

	want := normalizeName(name)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			base := entry.Name()
			var stem string
			switch {
			case strings.HasSuffix(base, ".dist-info"):
				stem = strings.TrimSuffix(base, ".dist-info")
			case strings.HasSuffix(base, ".egg-info"):
				stem = strings.TrimSuffix(base, ".egg-info")
			default:
				continue
			}

			// Distribution names in these directories use '_' for '-', so
			// the first '-' separates name and version.
			distName, version, ok := strings.Cut(stem, "-")
			if !ok || normalizeName(distName) != want {
				continue
			}
			// egg-info may append -pyX.Y
			version, _, _ = strings.Cut(version, "-py")
			return version, true
		}
	}

	return "", false
}
