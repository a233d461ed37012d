package ecosystem

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/parsers"
)

// Go describes go.mod projects vendored into vendor/.
func Go(opts parsers.Options) Spec {
	return Spec{
		Name:          models.EcosystemGo,
		ManifestFiles: []string{"go.mod"},
		InstallDir:    "vendor",
		Parser:        &parsers.GoModParser{IncludeIndirect: opts.IncludeIndirect},
		Layout:        VendorLayout{},
	}
}

// VendorLayout reads vendor/modules.txt.
type VendorLayout struct{}

// InstalledVersion implements resolver.Layout. Module lines look like
// "# example.com/mod v1.2.3" or "# example.com/mod v1.2.3 => ../mod".
func (VendorLayout) InstalledVersion(installDir, name string) (string, bool) {
	f, err := os.Open(filepath.Join(installDir, "modules.txt"))
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "# "))
		if len(fields) < 2 || fields[0] != name {
			continue
		}
		if !semver.IsValid(fields[1]) {
			// Only a replacement is recorded, e.g. "# mod => ../mod"
			return "", true
		}
		return fields[1], true
	}

	return "", false
}
