// Package evaluator decides whether an installed package satisfies a
// classified dependency specifier.
package evaluator

import (
	"fmt"

	"github.com/ethanolivertroy/dep-check/internal/models"
	"github.com/ethanolivertroy/dep-check/internal/semver"
)

const reasonNotInstalled = "not installed"

// Evaluate returns the verdict for spec against what is installed.
//
// Wildcards, download URLs, local paths and version-control refs that are not
// semantic versions are trusted as declared, whether or not anything is
// installed.
func Evaluate(spec models.DependencySpecifier, installed models.InstalledPackage) models.Verdict {
	verdict := models.Verdict{
		Name:      spec.Name,
		Specifier: spec,
		Installed: installed,
	}

	if !spec.Versioned() {
		return satisfied(verdict)
	}
	if spec.Kind == models.KindVersionControlRef {
		return evaluateExactRef(verdict)
	}
	return evaluateRange(verdict)
}

func evaluateExactRef(verdict models.Verdict) models.Verdict {
	spec, installed := verdict.Specifier, verdict.Installed
	if !installed.Found {
		return notInstalled(verdict)
	}

	want, err := semver.ParseExactVersion(spec.RefVersion)
	if err != nil {
		return mismatch(verdict, fmt.Sprintf("ref %q is not a valid version", spec.Ref))
	}
	have, err := semver.ParseVersion(installed.Version)
	if err != nil {
		return mismatch(verdict, fmt.Sprintf("installed version %q is not a valid version", installed.Version))
	}
	if !semver.Equal(have, want) {
		return mismatch(verdict, fmt.Sprintf("installed version %s does not match ref %s", installed.Version, spec.Ref))
	}

	return satisfied(verdict)
}

func evaluateRange(verdict models.Verdict) models.Verdict {
	spec, installed := verdict.Specifier, verdict.Installed
	if !installed.Found {
		return notInstalled(verdict)
	}

	constraint, err := semver.ParseConstraint(spec.Raw)
	if err != nil {
		return mismatch(verdict, fmt.Sprintf("requirement %q is not a valid version range (installed %s)", spec.Raw, installed.VersionOrAbsent()))
	}
	have, err := semver.ParseVersion(installed.Version)
	if err != nil {
		return mismatch(verdict, fmt.Sprintf("installed version %q is not a valid version", installed.Version))
	}
	if !semver.Satisfies(have, constraint) {
		return mismatch(verdict, fmt.Sprintf("installed version %s does not satisfy requirement %s", installed.Version, spec.Raw))
	}

	return satisfied(verdict)
}

func satisfied(v models.Verdict) models.Verdict {
	v.Satisfied = true
	v.Failure = models.FailureNone
	v.Reason = ""
	return v
}

func notInstalled(v models.Verdict) models.Verdict {
	v.Satisfied = false
	v.Failure = models.FailureNotInstalled
	v.Reason = reasonNotInstalled
	return v
}

func mismatch(v models.Verdict, reason string) models.Verdict {
	v.Satisfied = false
	v.Failure = models.FailureVersionMismatch
	v.Reason = reason
	return v
}
