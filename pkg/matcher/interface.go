// Package matcher defines the interfaces and data types of the
// lattice-matching collaborator: the search for matching two-dimensional
// superlattices between film and substrate, and the integer-transform finder
// that maps a bulk lattice onto a requested target lattice. The search
// itself is an external concern; this package fixes its contract and ships a
// reduced implementation covering commensurate pairs.
package matcher

import (
	"context"

	"intergen/pkg/geom"
)

// Options bound the superlattice search. They mirror the tolerance
// configuration of a generation run and are passed through unchanged.
type Options struct {
	// MaxArea is the largest matched-cell area considered, in square Angstrom.
	MaxArea float64
	// MaxAreaRatioTol is the allowed relative deviation between the two
	// sides' matched-cell areas.
	MaxAreaRatioTol float64
	// LengthTol is the relative length tolerance for matching vectors.
	LengthTol float64
	// AngleTol is the angular tolerance in degrees.
	AngleTol float64
	// Lowest requests matches ordered by ascending mismatch, so the first
	// returned match is the globally best one. When false the search's
	// natural order is kept and callers take the first returned match.
	Lowest bool
}

// Match is one matching pair of two-dimensional superlattices. Both vector
// pairs are expressed in Cartesian coordinates of the common matched basis.
// Implementations guarantee both spanned areas are within Options.MaxArea
// and their ratio within Options.MaxAreaRatioTol; consumers only see
// already-filtered candidates.
type Match struct {
	// SubVecs spans the substrate-side matched cell.
	SubVecs [2]geom.Vec3
	// FilmVecs spans the film-side matched cell.
	FilmVecs [2]geom.Vec3
}

// Matcher is the abstraction over the lattice-matching collaborator.
//
//go:generate mockgen -package mockmatcher -source=interface.go -destination=mock/mockmatcher.go *
type Matcher interface {
	// Match returns the ranked sequence of superlattice matches between the
	// film and substrate in-plane bases. The returned slice may be empty;
	// callers treat that as geometric infeasibility for the pair.
	Match(ctx context.Context, film, subs [2]geom.Vec3, opts Options) ([]Match, error)

	// FindTransform returns the integer transform T with T · native ≈ target
	// within the given length and angle tolerances. No such transform is a
	// failure; the match that produced the target is expected to guarantee
	// feasibility.
	FindTransform(ctx context.Context, native, target geom.Mat3, lengthTol, angleTol float64) (geom.IntMat3, error)
}
