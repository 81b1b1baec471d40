// Package energy defines the contract for total-energy evaluators and the
// evaluator-agnostic work-of-adhesion metric. Concrete evaluators (classical
// potentials, machine-learned potentials, first-principles codes) live
// outside this module and are injected by the caller; every one of them is
// interchangeable behind the single Evaluator interface, so the adhesion
// formula is implemented exactly once.
package energy

import (
	"context"
	"sort"
	"sync"

	"github.com/go-faster/errors"

	"intergen/pkg/domain"
	"intergen/pkg/serrors"
)

// DefaultConversion converts eV/Angstrom^2 to J/m^2 in the work-of-adhesion
// formula.
const DefaultConversion = 16.0

// Evaluator computes the total energy of a structure.
type Evaluator interface {
	// Energy returns the total energy of the structure in eV.
	Energy(ctx context.Context, s domain.Structure) (float64, error)
}

// Func adapts an ordinary function to the Evaluator interface.
type Func func(ctx context.Context, s domain.Structure) (float64, error)

// Energy implements Evaluator.
func (f Func) Energy(ctx context.Context, s domain.Structure) (float64, error) {
	return f(ctx, s)
}

// Constructor builds an Evaluator from an opaque option map. Options are
// evaluator-specific (potential file paths, model names) and interpreted by
// the concrete implementation alone.
type Constructor func(opts map[string]string) (Evaluator, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{} //nolint: gochecknoglobals
)

// Register makes an evaluator constructor available under the given name.
// Registration typically happens from an init function of the package that
// provides the evaluator. Registering the same name twice panics.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic("energy: duplicate evaluator registration: " + name)
	}
	registry[name] = c
}

// New constructs the named evaluator with the given options. Unknown names
// report a bad-request error listing the registered evaluators.
func New(name string, opts map[string]string) (Evaluator, error) {
	registryMu.RLock()
	c, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, serrors.With(serrors.ErrBadRequest,
			"unknown energy evaluator %q, registered: %v", name, Names())
	}

	return c(opts)
}

// Names returns the sorted names of all registered evaluators.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// WorkOfAdhesion evaluates the interface-area-normalized bonding energy of a
// candidate:
//
//	W = k · (E_interface − E_film − E_substrate) / |L0 × L1|
//
// where the energies are the evaluator's results for the displaced combined
// structure and the two isolated supercells, and L0, L1 are the combined
// structure's in-plane lattice vectors. The conversion constant k defaults
// to DefaultConversion when zero.
func WorkOfAdhesion(ctx context.Context, ev Evaluator, c domain.Candidate, k float64) (float64, error) {
	if k == 0 {
		k = DefaultConversion
	}

	filmEn, err := ev.Energy(ctx, c.FilmSupercell)
	if err != nil {
		return 0, errors.Wrap(err, "film supercell energy")
	}
	subsEn, err := ev.Energy(ctx, c.SubsSupercell)
	if err != nil {
		return 0, errors.Wrap(err, "substrate supercell energy")
	}
	intfEn, err := ev.Energy(ctx, c.Displaced)
	if err != nil {
		return 0, errors.Wrap(err, "interface energy")
	}

	area := c.Displaced.Lattice[0].Cross(c.Displaced.Lattice[1]).Norm()
	if area == 0 {
		return 0, serrors.With(serrors.ErrDegenerate, "interface has zero in-plane area")
	}

	return k * (intfEn - subsEn - filmEn) / area, nil
}
