package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnsatisfiedErrorWrapsFailureKind(t *testing.T) {
	t.Parallel()

	err := NewUnsatisfiedError("npm", "ember-cli", "0.1.1", "1.2.3", "installed version 1.2.3 does not satisfy requirement 0.1.1", ErrVersionMismatch)

	var unsatisfied *UnsatisfiedError
	require.ErrorAs(t, err, &unsatisfied)
	require.Equal(t, "ember-cli", unsatisfied.Name)
	require.Equal(t, "1.2.3", unsatisfied.Installed)
	require.True(t, stdErrors.Is(err, ErrVersionMismatch))
	require.False(t, stdErrors.Is(err, ErrNotInstalled))
	require.Contains(t, err.Error(), "npm dependency ember-cli@0.1.1")
}

func TestUnsatisfiedErrorFallsBackToCause(t *testing.T) {
	t.Parallel()

	err := NewUnsatisfiedError("", "foo", "0.1.1", "", "", ErrNotInstalled)
	require.Equal(t, "unsatisfied dependency foo@0.1.1: not installed", err.Error())
}

func TestManifestErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected end of JSON input")
	err := NewManifestError("package.json", underlying)

	var manifestErr *ManifestError
	require.ErrorAs(t, err, &manifestErr)
	require.Equal(t, "package.json", manifestErr.Path)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "package.json")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("ecosystems[0]", "unknown ecosystem \"cargo\"", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "ecosystems[0]", validationErr.Field)
	require.Equal(t, "validation error: ecosystems[0]: unknown ecosystem \"cargo\"", err.Error())
}

func TestNilReceiversAreSafe(t *testing.T) {
	t.Parallel()

	var unsatisfied *UnsatisfiedError
	var manifestErr *ManifestError
	var validationErr *ValidationError

	require.Empty(t, unsatisfied.Error())
	require.Nil(t, unsatisfied.Unwrap())
	require.Empty(t, manifestErr.Error())
	require.Nil(t, manifestErr.Unwrap())
	require.Empty(t, validationErr.Error())
	require.Nil(t, validationErr.Unwrap())
}
