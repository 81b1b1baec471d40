// Package geom provides the small linear-algebra vocabulary used throughout
// the interface generator: 3-component vectors, 3x3 lattice matrices whose
// rows are lattice vectors, and integer supercell transforms. All operations
// are pure; values are never mutated in place.
package geom

import (
	"math"
)

// Vec3 is a 3-component vector of Cartesian or fractional coordinates.
type Vec3 [3]float64

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the scalar product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the vector product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector along v. The zero vector is returned
// unchanged; callers that cannot tolerate a zero direction must check Norm
// themselves.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}

	return v.Scale(1 / n)
}

// AngleDeg returns the angle between v and w in degrees, in [0, 180].
// Both vectors must be non-zero; a zero vector yields NaN, which callers
// are expected to preclude via their own degeneracy checks.
func AngleDeg(v, w Vec3) float64 {
	cos := v.Dot(w) / (v.Norm() * w.Norm())
	// clamp against floating-point drift outside [-1, 1]
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * 180 / math.Pi
}

// Mat3 is a 3x3 matrix whose rows are lattice vectors.
type Mat3 [3]Vec3

// Row returns the i-th row vector.
func (m Mat3) Row(i int) Vec3 { return m[i] }

// Det returns the determinant of m.
func (m Mat3) Det() float64 {
	return m[0].Dot(m[1].Cross(m[2]))
}

// Inverse returns the inverse of m and whether m is invertible. Singular
// matrices report ok == false and an unspecified matrix value.
func (m Mat3) Inverse() (Mat3, bool) {
	det := m.Det()
	if det == 0 {
		return Mat3{}, false
	}
	inv := 1 / det
	c0 := m[1].Cross(m[2])
	c1 := m[2].Cross(m[0])
	c2 := m[0].Cross(m[1])

	// The cofactor rows become columns of the inverse.
	return Mat3{
		Vec3{c0[0] * inv, c1[0] * inv, c2[0] * inv},
		Vec3{c0[1] * inv, c1[1] * inv, c2[1] * inv},
		Vec3{c0[2] * inv, c1[2] * inv, c2[2] * inv},
	}, true
}

// MulVec returns the row vector v transformed by m: v · m. With fractional
// coordinates as v and lattice vectors as rows of m this yields Cartesian
// coordinates.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		v[0]*m[0][0] + v[1]*m[1][0] + v[2]*m[2][0],
		v[0]*m[0][1] + v[1]*m[1][1] + v[2]*m[2][1],
		v[0]*m[0][2] + v[1]*m[1][2] + v[2]*m[2][2],
	}
}

// Mul returns the matrix product m · n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		out[i] = n.MulVec(m[i])
	}

	return out
}

// IntMat3 is an integer 3x3 transform mapping a lattice to a supercell of
// itself: supercell lattice = T · lattice.
type IntMat3 [3][3]int

// Identity is the do-nothing supercell transform.
var Identity = IntMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Det returns the determinant of t, which equals the volume multiple of the
// supercell it produces.
func (t IntMat3) Det() int {
	return t[0][0]*(t[1][1]*t[2][2]-t[1][2]*t[2][1]) -
		t[0][1]*(t[1][0]*t[2][2]-t[1][2]*t[2][0]) +
		t[0][2]*(t[1][0]*t[2][1]-t[1][1]*t[2][0])
}

// Float returns t as a Mat3.
func (t IntMat3) Float() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = float64(t[i][j])
		}
	}

	return out
}

// Apply returns the supercell lattice T · m.
func (t IntMat3) Apply(m Mat3) Mat3 {
	return t.Float().Mul(m)
}
