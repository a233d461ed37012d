package models

import (
	apperrors "github.com/ethanolivertroy/dep-check/pkg/errors"
)

// FailureKind classifies an unsatisfied verdict
type FailureKind string

const (
	FailureNone            FailureKind = ""
	FailureNotInstalled    FailureKind = "not-installed"
	FailureVersionMismatch FailureKind = "version-mismatch"
)

// Verdict is the outcome of checking one declared dependency
type Verdict struct {
	Ecosystem  Ecosystem
	Name       string
	Specifier  DependencySpecifier
	Installed  InstalledPackage
	Satisfied  bool
	Failure    FailureKind
	Reason     string
	SourceFile string
	Line       int
}

// Err returns nil for satisfied verdicts, otherwise an *errors.UnsatisfiedError
// wrapping ErrNotInstalled or ErrVersionMismatch
func (v Verdict) Err() error {
	if v.Satisfied {
		return nil
	}

	cause := apperrors.ErrVersionMismatch
	if v.Failure == FailureNotInstalled {
		cause = apperrors.ErrNotInstalled
	}

	installed := ""
	if v.Installed.Found {
		installed = v.Installed.Version
	}

	return apperrors.NewUnsatisfiedError(string(v.Ecosystem), v.Name, v.Specifier.Raw, installed, v.Reason, cause)
}
