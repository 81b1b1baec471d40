package serrors_test

import (
	"errors"
	"intergen/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNoMatch,
		serrors.ErrNoTransform,
		serrors.ErrDegenerate,
		serrors.ErrPartition,
		serrors.ErrBadRequest,
		serrors.ErrInternal,
		serrors.ErrCanceled,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	// Ensure some expected inequalities
	require.NotEqual(t, serrors.ErrNoMatch, serrors.ErrNoTransform, "NoMatch should not equal NoTransform")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("singular lattice")

	e1 := serrors.With(serrors.ErrNoMatch, "no match for pair %d", 42)
	require.Equal(t, "no match for pair 42", e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrNoMatch, base, "matching")
	require.Equal(t, "matching: singular lattice", e2.Error(), "Wrap() Error() mismatch")

	e3 := serrors.KindOnly(serrors.ErrNoMatch)
	require.Equal(t, "NO_MATCH", e3.Error(), "KindOnly Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNoMatch, base, "matching")

	require.ErrorIs(t, e, serrors.ErrNoMatch)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrNoTransform, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNoMatch, base, "matching")

	var k serrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, serrors.ErrNoMatch, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce, "extracted cause pointer mismatch")
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrPartition, base, "split counts")
	require.Equal(t, serrors.ErrPartition, e.Kind())
	require.Equal(t, "split counts", e.Message())
	require.Equal(t, base, e.Cause())
}
