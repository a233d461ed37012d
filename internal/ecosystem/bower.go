package ecosystem

import (
	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/parsers"
)

// Bower describes bower.json projects installed into bower_components. Bower
// writes the resolved metadata to .bower.json; packages copied in by hand
// only have their own bower.json.
func Bower(opts parsers.Options) Spec {
	return Spec{
		Name:          models.EcosystemBower,
		ManifestFiles: []string{"bower.json"},
		InstallDir:    "bower_components",
		Parser:        &parsers.BowerJSONParser{ExcludeDev: opts.ExcludeDev},
		Layout:        PackageDirLayout{Manifests: []string{".bower.json", "bower.json"}},
	}
}
