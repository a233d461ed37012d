package project

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/dep-check/internal/ecosystem"
	"github.com/ethanolivertroy/dep-check/internal/logger"
	"github.com/ethanolivertroy/dep-check/internal/parsers"
	apperrors "github.com/ethanolivertroy/dep-check/pkg/errors"
)

func TestLoadReadsManifestAndInstallRoots(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"dependencies": {"ember-cli": "^1.2.0", "foo": "0.1.1"}}`), 0o644))

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	sibling := filepath.Join(filepath.Dir(root), "node_modules")
	p, err := Load(root, ecosystem.Npm(parsers.Options{}), []string{sibling}, log)
	require.NoError(t, err)

	require.Equal(t, filepath.Join(root, "package.json"), p.ManifestPath)
	require.Len(t, p.Dependencies, 2)
	require.Equal(t, "ember-cli", p.Dependencies[0].Name)
	require.Equal(t, []string{filepath.Join(root, "node_modules"), sibling}, p.InstallRoots)
	require.Contains(t, buf.String(), "manifest loaded")
}

func TestLoadWithoutManifest(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir(), ecosystem.Bower(parsers.Options{}), nil, nil)
	require.ErrorIs(t, err, apperrors.ErrNoManifest)
}

func TestLoadPicksFirstAvailablePythonManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "requirements.txt"), []byte("requests>=2\n"), 0o644))

	p, err := Load(root, ecosystem.PyPI(parsers.Options{}), nil, nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "requirements.txt"), p.ManifestPath)
	require.Equal(t, ">=2", p.Dependencies[0].Raw)
}

func TestLoadReportsMalformedManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"dependencies": `), 0o644))

	_, err := Load(root, ecosystem.Npm(parsers.Options{}), nil, nil)

	var manifestErr *apperrors.ManifestError
	require.ErrorAs(t, err, &manifestErr)
	require.Equal(t, filepath.Join(root, "package.json"), manifestErr.Path)
}

func TestLoadRejectsMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing"), ecosystem.Npm(parsers.Options{}), nil, nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, apperrors.ErrNoManifest)
}
