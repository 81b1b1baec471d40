package geom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"intergen/pkg/geom"
)

func TestVecOps(t *testing.T) {
	v := geom.Vec3{1, 2, 3}
	w := geom.Vec3{4, 5, 6}

	require.Equal(t, geom.Vec3{5, 7, 9}, v.Add(w))
	require.Equal(t, geom.Vec3{-3, -3, -3}, v.Sub(w))
	require.Equal(t, geom.Vec3{2, 4, 6}, v.Scale(2))
	require.InDelta(t, 32, v.Dot(w), 1e-12)
	require.Equal(t, geom.Vec3{-3, 6, -3}, v.Cross(w))
	require.InDelta(t, 5, geom.Vec3{3, 4, 0}.Norm(), 1e-12)
}

func TestAngleDeg(t *testing.T) {
	cases := []struct {
		name string
		v, w geom.Vec3
		want float64
	}{
		{name: "orthogonal", v: geom.Vec3{1, 0, 0}, w: geom.Vec3{0, 1, 0}, want: 90},
		{name: "parallel", v: geom.Vec3{2, 0, 0}, w: geom.Vec3{5, 0, 0}, want: 0},
		{name: "antiparallel", v: geom.Vec3{1, 0, 0}, w: geom.Vec3{-3, 0, 0}, want: 180},
		{name: "diagonal", v: geom.Vec3{1, 0, 0}, w: geom.Vec3{1, 1, 0}, want: 45},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, geom.AngleDeg(tc.v, tc.w), 1e-9)
		})
	}
}

func TestMat3Inverse(t *testing.T) {
	m := geom.Mat3{
		{2, 0, 0},
		{1, 3, 0},
		{0, -1, 4},
	}

	inv, ok := m.Inverse()
	require.True(t, ok)

	// m · m⁻¹ must be the identity
	id := m.Mul(inv)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			require.InDelta(t, want, id[i][j], 1e-12, "entry (%d,%d)", i, j)
		}
	}
}

func TestMat3InverseSingular(t *testing.T) {
	m := geom.Mat3{
		{1, 2, 3},
		{2, 4, 6},
		{0, 0, 1},
	}
	_, ok := m.Inverse()
	require.False(t, ok)
}

func TestMulVecFractionalToCartesian(t *testing.T) {
	lattice := geom.Mat3{
		{2, 0, 0},
		{0, 3, 0},
		{0, 0, 4},
	}
	cart := lattice.MulVec(geom.Vec3{0.5, 0.5, 0.25})
	require.Equal(t, geom.Vec3{1, 1.5, 1}, cart)
}

func TestIntMat3(t *testing.T) {
	tr := geom.IntMat3{{2, 0, 0}, {0, 2, 0}, {0, 0, 1}}
	require.Equal(t, 4, tr.Det())

	lattice := geom.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 3}}
	got := tr.Apply(lattice)
	require.Equal(t, geom.Mat3{{2, 0, 0}, {0, 2, 0}, {0, 0, 3}}, got)

	require.Equal(t, 1, geom.Identity.Det())
}
