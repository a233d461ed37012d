package checker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/dep-check/internal/ecosystem"
	"github.com/ethanolivertroy/dep-check/internal/gate"
	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/parsers"
	"github.com/ethanolivertroy/dep-check/internal/project"
	apperrors "github.com/ethanolivertroy/dep-check/pkg/errors"
)

var npm = ecosystem.Npm(parsers.Options{})

// installPackage writes <installDir>/<name>/package.json with version
func installPackage(t *testing.T, installDir, name, version string) {
	t.Helper()
	dir := filepath.Join(installDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "`+name+`", "version": "`+version+`"}`), 0o644))
}

// npmCheckFixture is a project with ember-cli 1.2.3 installed
func npmCheckFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	installPackage(t, filepath.Join(root, "node_modules"), "ember-cli", "1.2.3")
	return root
}

func declare(pairs ...string) []models.DeclaredDependency {
	var deps []models.DeclaredDependency
	for i := 0; i+1 < len(pairs); i += 2 {
		deps = append(deps, models.DeclaredDependency{Name: pairs[i], Raw: pairs[i+1], Ecosystem: models.EcosystemNpm, SourceFile: "package.json"})
	}
	return deps
}

func check(t *testing.T, root string, deps []models.DeclaredDependency) []models.Verdict {
	t.Helper()
	return New(gate.New()).CheckUnsatisfied(npm, deps, npm.InstallRoots(root))
}

func TestReportsUnsatisfiedNpmDependencies(t *testing.T) {
	t.Parallel()
	root := npmCheckFixture(t)

	cases := []struct {
		name    string
		deps    []models.DeclaredDependency
		failure models.FailureKind
	}{
		{"package not installed", declare("foo", "0.1.1", "ember-cli", "1.2.3"), models.FailureNotInstalled},
		{"version mismatch", declare("ember-cli", "0.1.1"), models.FailureVersionMismatch},
		{"range not satisfied", declare("ember-cli", ">1.3.2 <=2.3.4"), models.FailureVersionMismatch},
		{"x-range not compatible", declare("ember-cli", "0.2.x"), models.FailureVersionMismatch},
		{"git semver tag mismatch", declare("ember-cli", "git://github.com/stefanpenner/ember-cli.git#v0.1.0"), models.FailureVersionMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			unsatisfied := check(t, root, tc.deps)
			require.Len(t, unsatisfied, 1)
			require.Equal(t, tc.failure, unsatisfied[0].Failure)
			require.Equal(t, models.EcosystemNpm, unsatisfied[0].Ecosystem)
		})
	}
}

func TestDoesNotReportSatisfiedNpmDependencies(t *testing.T) {
	t.Parallel()
	root := npmCheckFixture(t)

	specs := []string{
		"1.2.3",
		">1.0.0",
		"^1.2.0",
		"http://ember-cli.com/ember-cli.tar.gz",
		"git://github.com/stefanpenner/ember-cli.git#master",
		"~/projects/ember-cli",
		"*",
	}

	for _, raw := range specs {
		require.Empty(t, check(t, root, declare("ember-cli", raw)), "raw %q", raw)
	}
}

func TestNotInstalledReasonAndError(t *testing.T) {
	t.Parallel()
	root := npmCheckFixture(t)

	unsatisfied := check(t, root, declare("foo", "0.1.1"))
	require.Len(t, unsatisfied, 1)
	require.Equal(t, "foo", unsatisfied[0].Name)
	require.Equal(t, "not installed", unsatisfied[0].Reason)
	require.False(t, unsatisfied[0].Installed.Found)

	err := Errors(unsatisfied)
	require.True(t, errors.Is(err, apperrors.ErrNotInstalled))

	var unsatisfiedErr *apperrors.UnsatisfiedError
	require.ErrorAs(t, err, &unsatisfiedErr)
	require.Equal(t, "npm", unsatisfiedErr.Ecosystem)
}

func TestSiblingNodeModules(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	app := filepath.Join(base, "app")
	siblings := filepath.Join(base, "node_modules")
	require.NoError(t, os.MkdirAll(app, 0o755))
	installPackage(t, siblings, "ember-cli", "1.2.3")

	roots := npm.InstallRoots(app, siblings)

	require.Empty(t, New(gate.New()).CheckUnsatisfied(npm, declare("ember-cli", "*"), roots))
	require.Empty(t, New(gate.New()).CheckUnsatisfied(npm, declare("ember-cli", "^1.2.0"), roots))

	verdicts := New(nil).Evaluate(npm, declare("ember-cli", "^1.2.0"), roots)
	require.Equal(t, siblings, verdicts[0].Installed.SourceRoot)

	// Without the sibling root the package is missing.
	missing := New(gate.New()).CheckUnsatisfied(npm, declare("ember-cli", "^1.2.0"), npm.InstallRoots(app))
	require.Len(t, missing, 1)
	require.Equal(t, models.FailureNotInstalled, missing[0].Failure)
}

func TestEvaluateKeepsDeclarationOrder(t *testing.T) {
	t.Parallel()
	root := npmCheckFixture(t)

	deps := declare("zeta", "1.0.0", "ember-cli", "^1.2.0", "alpha", "2.0.0", "ember-data", "*")
	verdicts := New(nil).Evaluate(npm, deps, npm.InstallRoots(root))

	require.Len(t, verdicts, 4)
	for i, dep := range deps {
		require.Equal(t, dep.Name, verdicts[i].Name)
		require.Equal(t, "package.json", verdicts[i].SourceFile)
	}

	unsatisfied := Unsatisfied(verdicts)
	require.Equal(t, "zeta", unsatisfied[0].Name)
	require.Equal(t, "alpha", unsatisfied[1].Name)
}

func TestGateSkipsRepeatedSweeps(t *testing.T) {
	t.Parallel()
	root := npmCheckFixture(t)

	g := gate.New()
	c := New(g)

	first := c.CheckUnsatisfied(npm, declare("ember-cli", "0.1.1"), npm.InstallRoots(root))
	require.Len(t, first, 1)
	require.False(t, g.ShouldRun())

	// A second project view over the same gate does not sweep again, even
	// with different declarations.
	second := New(g).CheckUnsatisfied(npm, declare("foo", "0.1.1"), npm.InstallRoots(root))
	require.Empty(t, second)

	g.Reset()
	third := c.CheckUnsatisfied(npm, declare("foo", "0.1.1"), npm.InstallRoots(root))
	require.Len(t, third, 1)
}

func TestGateClosesAfterSuccessfulSweep(t *testing.T) {
	t.Parallel()
	root := npmCheckFixture(t)

	c := New(gate.New())
	require.Empty(t, c.CheckUnsatisfied(npm, declare("ember-cli", "1.2.3"), npm.InstallRoots(root)))
	require.False(t, c.Gate().ShouldRun())
}

func TestSweepAcrossEcosystems(t *testing.T) {
	t.Parallel()

	root := npmCheckFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"dependencies": {"ember-cli": "^1.2.0", "foo": "0.1.1"}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bower.json"), []byte(`{"dependencies": {"jquery": "~2.1.0"}}`), 0o644))
	bowerDir := filepath.Join(root, "bower_components", "jquery")
	require.NoError(t, os.MkdirAll(bowerDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bowerDir, ".bower.json"), []byte(`{"version": "2.0.3"}`), 0o644))

	var targets []Target
	for _, spec := range []ecosystem.Spec{npm, ecosystem.Bower(parsers.Options{})} {
		p, err := project.Load(root, spec, nil, nil)
		require.NoError(t, err)
		targets = append(targets, TargetFor(p))
	}

	g := gate.New()
	unsatisfied := New(g).Sweep(targets)
	require.Len(t, unsatisfied, 2)
	require.Equal(t, "foo", unsatisfied[0].Name)
	require.Equal(t, models.EcosystemNpm, unsatisfied[0].Ecosystem)
	require.Equal(t, "jquery", unsatisfied[1].Name)
	require.Equal(t, models.EcosystemBower, unsatisfied[1].Ecosystem)

	require.Empty(t, New(g).Sweep(targets))
}

func TestErrorsIsNilWhenSatisfied(t *testing.T) {
	t.Parallel()
	require.NoError(t, Errors(nil))
	require.NoError(t, Errors([]models.Verdict{{Name: "a", Satisfied: true}}))
}

func TestSweepAllReturnsFullDetailOnce(t *testing.T) {
	t.Parallel()
	root := npmCheckFixture(t)

	c := New(gate.New())
	targets := []Target{{Ecosystem: npm, Declared: declare("ember-cli", "^1.2.0", "foo", "1.0.0"), Roots: npm.InstallRoots(root)}}

	all := c.SweepAll(targets)
	require.Len(t, all, 2)
	require.True(t, all[0].Satisfied)
	require.False(t, all[1].Satisfied)

	require.Empty(t, c.SweepAll(targets))
}

func TestPipGitRefsMustMatchInstalledVersion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "requirements.txt"), []byte(`git+https://github.com/org/tool.git@v1.0.0#egg=tool
tool2 @ git+https://github.com/org/tool2.git@v1.0.0
tool3 @ git+https://github.com/org/tool3.git@v0.9.0
tool4 @ git+https://github.com/org/tool4.git@main
`), 0o644))
	site := filepath.Join(root, ".venv", "lib", "python3.12", "site-packages")
	for _, dist := range []string{"tool-0.9.0", "tool2-0.9.0", "tool3-0.9.0", "tool4-0.9.0"} {
		require.NoError(t, os.MkdirAll(filepath.Join(site, dist+".dist-info"), 0o755))
	}

	p, err := project.Load(root, ecosystem.PyPI(parsers.Options{}), nil, nil)
	require.NoError(t, err)
	require.Len(t, p.Dependencies, 4)

	verdicts := New(gate.New()).SweepAll([]Target{TargetFor(p)})
	require.Len(t, verdicts, 4)

	for _, v := range verdicts[:2] {
		require.Equal(t, models.KindVersionControlRef, v.Specifier.Kind, v.Name)
		require.Equal(t, "1.0.0", v.Specifier.RefVersion, v.Name)
		require.False(t, v.Satisfied, v.Name)
		require.Equal(t, models.FailureVersionMismatch, v.Failure, v.Name)
	}
	require.True(t, verdicts[2].Satisfied)
	require.True(t, verdicts[3].Satisfied)
	require.Equal(t, "main", verdicts[3].Specifier.Ref)
}
