// Package reduced provides a matcher.Matcher implementation that covers
// commensurate film/substrate pairs: bases that already coincide within
// tolerance are matched one-to-one, and integer supercell transforms are
// solved exactly via the lattice inverse. The general superlattice
// enumeration over incommensurate pairs is intentionally out of scope and
// belongs to an external search engine.
package reduced

import (
	"context"
	"math"

	"github.com/go-faster/errors"

	"intergen/pkg/geom"
	"intergen/pkg/matcher"
	"intergen/pkg/serrors"
)

// Matcher implements matcher.Matcher for commensurate lattice pairs. The
// zero value is ready to use and safe for concurrent use.
type Matcher struct{}

// New returns a ready-to-use reduced matcher.
func New() *Matcher { return &Matcher{} }

var _ matcher.Matcher = (*Matcher)(nil)

// Match reports the one-to-one match between the two in-plane bases when
// they coincide within the length and angle tolerances, or an empty slice
// when they do not. Area bounds from opts are enforced on the result.
func (m *Matcher) Match(_ context.Context, film, subs [2]geom.Vec3, opts matcher.Options) ([]matcher.Match, error) {
	for i := 0; i < 2; i++ {
		an := subs[i].Norm()
		bn := film[i].Norm()
		if an == 0 || bn == 0 {
			return nil, serrors.With(serrors.ErrDegenerate, "zero-length in-plane basis vector %d", i)
		}
		if math.Abs(bn/an-1) > opts.LengthTol {
			return nil, nil
		}
	}

	angleSub := geom.AngleDeg(subs[0], subs[1])
	angleFilm := geom.AngleDeg(film[0], film[1])
	if math.Abs(angleSub-angleFilm) > opts.AngleTol {
		return nil, nil
	}

	areaSub := subs[0].Cross(subs[1]).Norm()
	areaFilm := film[0].Cross(film[1]).Norm()
	if opts.MaxArea > 0 && (areaSub > opts.MaxArea || areaFilm > opts.MaxArea) {
		return nil, nil
	}
	if opts.MaxAreaRatioTol > 0 && math.Abs(areaFilm/areaSub-1) > opts.MaxAreaRatioTol {
		return nil, nil
	}

	return []matcher.Match{{SubVecs: subs, FilmVecs: film}}, nil
}

// FindTransform solves T = target · native⁻¹, rounds it to integers, and
// verifies that the rounded transform reproduces the target within the
// length and angle tolerances.
func (m *Matcher) FindTransform(_ context.Context,
	native, target geom.Mat3,
	lengthTol, angleTol float64) (geom.IntMat3, error) {
	inv, ok := native.Inverse()
	if !ok {
		return geom.IntMat3{}, serrors.With(serrors.ErrDegenerate, "native lattice is singular")
	}

	exact := target.Mul(inv)
	var t geom.IntMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = int(math.Round(exact[i][j]))
		}
	}
	if t.Det() == 0 {
		return geom.IntMat3{}, serrors.With(serrors.ErrNoTransform,
			"rounded transform is singular for target lattice")
	}

	if err := verify(t.Apply(native), target, lengthTol, angleTol); err != nil {
		return geom.IntMat3{}, serrors.Wrap(serrors.ErrNoTransform, err,
			"no integer transform within tolerance")
	}

	return t, nil
}

// verify checks that got reproduces want row by row: relative length error
// within lengthTol and direction within angleTol degrees.
func verify(got, want geom.Mat3, lengthTol, angleTol float64) error {
	for i := 0; i < 3; i++ {
		gn := got[i].Norm()
		wn := want[i].Norm()
		if wn == 0 {
			return errors.Errorf("target lattice vector %d has zero length", i)
		}
		if math.Abs(gn/wn-1) > lengthTol {
			return errors.Errorf("lattice vector %d length off by %g", i, gn/wn-1)
		}
		if a := geom.AngleDeg(got[i], want[i]); a > angleTol {
			return errors.Errorf("lattice vector %d direction off by %g degrees", i, a)
		}
	}

	return nil
}
