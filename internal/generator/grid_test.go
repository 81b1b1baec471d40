package generator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"intergen/internal/generator"
	"intergen/pkg/serrors"
)

func TestDisplacementGridDegenerate(t *testing.T) {
	grid, err := generator.DisplacementGrid(0)
	require.NoError(t, err)
	require.Equal(t, [][2]float64{{0, 0}}, grid)
}

func TestDisplacementGridHalfStep(t *testing.T) {
	grid, err := generator.DisplacementGrid(0.5)
	require.NoError(t, err)

	// 2x2 mesh spanning the unit cell, x-major
	require.Equal(t, [][2]float64{
		{0, 0},
		{0, 0.5},
		{0.5, 0},
		{0.5, 0.5},
	}, grid)
}

func TestDisplacementGridSize(t *testing.T) {
	cases := []struct {
		step float64
		want int
	}{
		{step: 0.25, want: 16},
		{step: 0.1, want: 100},
		{step: 0.2, want: 25},
	}

	for _, tc := range cases {
		grid, err := generator.DisplacementGrid(tc.step)
		require.NoError(t, err)
		require.Len(t, grid, tc.want, "step %g", tc.step)

		// offsets stay inside (-0.5, 0.5+step]
		for _, d := range grid {
			for c := 0; c < 2; c++ {
				require.Greater(t, d[c], -0.5)
				require.LessOrEqual(t, d[c], 0.5+tc.step)
			}
		}
	}
}

func TestDisplacementGridNegativeStep(t *testing.T) {
	_, err := generator.DisplacementGrid(-0.1)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}
