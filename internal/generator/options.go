// Package generator implements the interface-candidate generation core: the
// displacement grid, mismatch evaluation, supercell derivation, interface
// assembly, and the combinatorial sweep that drives them. The lattice-match
// search and surface construction are consumed through the matcher and
// surface collaborator interfaces; everything here is deterministic and free
// of shared mutable state, so single combinations can be built concurrently.
package generator

import (
	"intergen/internal/config"
	"intergen/pkg/matcher"
)

// Options is the immutable tolerance configuration of a whole generation
// run. It is validated at config load time and passed by value; the
// generator never mutates it.
type Options struct {
	// LengthTol is the relative length tolerance for lattice matching.
	LengthTol float64
	// AngleTol is the angular matching tolerance in degrees.
	AngleTol float64
	// MaxArea bounds the matched-cell area in square Angstrom.
	MaxArea float64
	// MaxAreaRatioTol bounds the relative deviation between the two sides'
	// matched-cell areas.
	MaxAreaRatioTol float64
	// RoundDigits is the decimal precision applied to every sweep parameter
	// before use, keeping candidate names stable across runs.
	RoundDigits int
	// Vacuum is the padding added on both sides of the interface normal.
	Vacuum float64
	// SurfaceVacuum is passed to the surface-construction collaborator.
	SurfaceVacuum float64
	// ApplyStrain strains the film onto the substrate's in-plane cell
	// instead of keeping each side's own Cartesian geometry.
	ApplyStrain bool
	// LowestMismatch requests matches ordered by ascending mismatch from the
	// matcher so the first returned match is the globally best one.
	LowestMismatch bool
	// RotateXZ permutes axes 0 and 2 of the assembled interface so the
	// periodic transport direction lies on the first lattice vector.
	RotateXZ bool
	// LeadRatio enables the left/middle/right lead partition along axis 0
	// when non-negative.
	LeadRatio float64
	// ContinueOnFailure collects per-combination failures and continues the
	// sweep instead of aborting on the first one.
	ContinueOnFailure bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		LengthTol:         cfg.Generator.LengthTol,
		AngleTol:          cfg.Generator.AngleTol,
		MaxArea:           cfg.Generator.MaxArea,
		MaxAreaRatioTol:   cfg.Generator.MaxAreaRatioTol,
		RoundDigits:       cfg.Generator.RoundDigits,
		Vacuum:            cfg.Generator.Vacuum,
		SurfaceVacuum:     cfg.Generator.SurfaceVacuum,
		ApplyStrain:       cfg.Generator.ApplyStrain,
		LowestMismatch:    cfg.Generator.LowestMismatch,
		RotateXZ:          cfg.Generator.RotateXZ,
		LeadRatio:         cfg.Generator.LeadRatio,
		ContinueOnFailure: cfg.ContinueOnFailure,
	}
}

// matcherOptions projects the run tolerances onto the matcher collaborator's
// option set.
func (o Options) matcherOptions() matcher.Options {
	return matcher.Options{
		MaxArea:         o.MaxArea,
		MaxAreaRatioTol: o.MaxAreaRatioTol,
		LengthTol:       o.LengthTol,
		AngleTol:        o.AngleTol,
		Lowest:          o.LowestMismatch,
	}
}
