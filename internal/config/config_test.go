package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/ethanolivertroy/dep-check/pkg/errors"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.True(t, cfg.IncludeDev)
	require.True(t, cfg.FailOnUnsatisfied)
	require.Equal(t, []string{"."}, cfg.ProjectRoots)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "dep-check.yaml", `
project_roots: [app]
ecosystems: [npm, bower]
install_paths:
  npm: [../node_modules]
include_dev: false
format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"app"}, cfg.ProjectRoots)
	require.Equal(t, []string{"npm", "bower"}, cfg.Ecosystems)
	require.Equal(t, []string{"../node_modules"}, cfg.InstallPaths["npm"])
	require.False(t, cfg.IncludeDev)
	require.Equal(t, "json", cfg.OutputFormat)
	// Unset keys keep their defaults
	require.True(t, cfg.FailOnUnsatisfied)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, ".dep-check.toml", `
ecosystems = ["go"]
include_indirect = true
fail_on_unsatisfied = false
log_level = "debug"

[install_paths]
go = ["/srv/vendor"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"go"}, cfg.Ecosystems)
	require.True(t, cfg.IncludeIndirect)
	require.False(t, cfg.FailOnUnsatisfied)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"/srv/vendor"}, cfg.InstallPaths["go"])
}

func TestLoadRejectsUnknownEcosystem(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "dep-check.yaml", "ecosystems: [npm, cargo]\n")

	_, err := Load(path)
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "ecosystems[1]", validationErr.Field)
	require.Contains(t, validationErr.Message, `unknown ecosystem "cargo"`)
}

func TestLoadRejectsUnknownInstallPathEcosystem(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "dep-check.yaml", "install_paths:\n  cargo: [target]\n")

	_, err := Load(path)
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Message, "cargo")
}

func TestLoadRejectsBadFormat(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "dep-check.yaml", "format: xml\n")

	_, err := Load(path)
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "format", validationErr.Field)
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "dep-check.yaml", "ecosystems: [npm\n"))
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "invalid YAML", validationErr.Message)

	_, err = Load(writeConfig(t, ".dep-check.toml", "ecosystems = [\n"))
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "invalid TOML", validationErr.Message)

	_, err = Load(writeConfig(t, "dep-check.json", "{}"))
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Message, "unsupported")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.Empty(t, Discover(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dep-check.toml"), []byte(""), 0o644))
	require.Equal(t, filepath.Join(dir, ".dep-check.toml"), Discover(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dep-check.yaml"), []byte(""), 0o644))
	require.Equal(t, filepath.Join(dir, "dep-check.yaml"), Discover(dir))
}

func TestValidateNil(t *testing.T) {
	t.Parallel()
	require.Error(t, Validate(nil))
}
