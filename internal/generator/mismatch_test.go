package generator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"intergen/internal/generator"
	"intergen/pkg/geom"
	"intergen/pkg/serrors"
)

func TestEvaluateMismatchIdentity(t *testing.T) {
	basis := [2]geom.Vec3{{2.7, 0, 0}, {0, 2.7, 0}}

	mis, err := generator.EvaluateMismatch(basis, basis)
	require.NoError(t, err)

	require.InDelta(t, 0, mis.U, 1e-12)
	require.InDelta(t, 0, mis.V, 1e-12)
	require.InDelta(t, 0, mis.AngleDeg, 1e-12)
	require.InDelta(t, 2.7*2.7, mis.Area1, 1e-12)
	require.Equal(t, mis.Area1, mis.Area2)
}

func TestEvaluateMismatchScaled(t *testing.T) {
	sub := [2]geom.Vec3{{2, 0, 0}, {0, 4, 0}}
	film := [2]geom.Vec3{{2.1, 0, 0}, {0, 3.8, 0}}

	mis, err := generator.EvaluateMismatch(sub, film)
	require.NoError(t, err)

	require.InDelta(t, 0.05, mis.U, 1e-12)
	require.InDelta(t, -0.05, mis.V, 1e-12)
	require.InDelta(t, 0, mis.AngleDeg, 1e-12)
	require.InDelta(t, 8, mis.Area1, 1e-12)
	require.InDelta(t, 2.1*3.8, mis.Area2, 1e-12)
}

func TestEvaluateMismatchAngle(t *testing.T) {
	sub := [2]geom.Vec3{{1, 0, 0}, {0, 1, 0}}
	// film second vector leans 45 degrees toward the first
	film := [2]geom.Vec3{{1, 0, 0}, {1, 1, 0}}

	mis, err := generator.EvaluateMismatch(sub, film)
	require.NoError(t, err)
	require.InDelta(t, 45, mis.AngleDeg, 1e-9)
}

func TestEvaluateMismatchDegenerate(t *testing.T) {
	sub := [2]geom.Vec3{{0, 0, 0}, {0, 1, 0}}
	film := [2]geom.Vec3{{1, 0, 0}, {0, 1, 0}}

	_, err := generator.EvaluateMismatch(sub, film)
	require.ErrorIs(t, err, serrors.ErrDegenerate)
}
