package errors

import (
	stdErrors "errors"
	"fmt"
)

var (
	// ErrNotInstalled marks a dependency that no searched install root contains.
	ErrNotInstalled = stdErrors.New("not installed")
	// ErrVersionMismatch marks an installed version that fails the declared requirement.
	ErrVersionMismatch = stdErrors.New("version mismatch")
	// ErrNoManifest reports that a project root has no manifest for an ecosystem.
	ErrNoManifest = stdErrors.New("no manifest found")
)

// UnsatisfiedError describes one dependency whose requirement is not met.
type UnsatisfiedError struct {
	Ecosystem string
	Name      string
	Required  string
	Installed string
	Reason    string
	Err       error
}

// NewUnsatisfiedError constructs an UnsatisfiedError.
func NewUnsatisfiedError(ecosystem, name, required, installed, reason string, err error) error {
	return &UnsatisfiedError{
		Ecosystem: ecosystem,
		Name:      name,
		Required:  required,
		Installed: installed,
		Reason:    reason,
		Err:       err,
	}
}

func (e *UnsatisfiedError) Error() string {
	if e == nil {
		return ""
	}
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Ecosystem != "" {
		return fmt.Sprintf("unsatisfied %s dependency %s@%s: %s", e.Ecosystem, e.Name, e.Required, reason)
	}
	return fmt.Sprintf("unsatisfied dependency %s@%s: %s", e.Name, e.Required, reason)
}

// Unwrap exposes the failure kind sentinel.
func (e *UnsatisfiedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ManifestError represents an unreadable or malformed dependency manifest.
type ManifestError struct {
	Path string
	Err  error
}

// NewManifestError constructs a ManifestError.
func NewManifestError(path string, err error) error {
	return &ManifestError{Path: path, Err: err}
}

func (e *ManifestError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("manifest error: %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ManifestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
