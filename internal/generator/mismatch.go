package generator

import (
	"math"

	"intergen/pkg/domain"
	"intergen/pkg/geom"
	"intergen/pkg/serrors"
)

// EvaluateMismatch computes the strain and angle discrepancy between the
// substrate-side superlattice vectors (a1, a2) and the film-side vectors
// (b1, b2) of a chosen match:
//
//	mismatch_u     = |b1|/|a1| - 1
//	mismatch_v     = |b2|/|a2| - 1
//	mismatch_angle = |angle(a1,a2) - angle(b1,b2)|  (degrees)
//
// together with the areas spanned by each matched cell. It is a pure
// function of its inputs. A zero-length vector violates the matcher's
// contract of non-degenerate matches and is reported as a degeneracy error
// rather than silently producing NaN.
func EvaluateMismatch(sub, film [2]geom.Vec3) (domain.Mismatch, error) {
	a1, a2 := sub[0], sub[1]
	b1, b2 := film[0], film[1]

	for i, v := range []geom.Vec3{a1, a2, b1, b2} {
		if v.Norm() == 0 {
			return domain.Mismatch{}, serrors.With(serrors.ErrDegenerate,
				"superlattice vector %d has zero length", i)
		}
	}

	return domain.Mismatch{
		U:        b1.Norm()/a1.Norm() - 1,
		V:        b2.Norm()/a2.Norm() - 1,
		AngleDeg: math.Abs(geom.AngleDeg(a1, a2) - geom.AngleDeg(b1, b2)),
		Area1:    a1.Cross(a2).Norm(),
		Area2:    b1.Cross(b2).Norm(),
	}, nil
}
