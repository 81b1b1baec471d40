// Package surface defines the contract for the surface-construction
// collaborator: cutting a bulk crystal along a Miller plane to expose a slab
// of a given thickness. Real slab construction (conventional-cell reduction,
// termination search) is an external concern; this package fixes the
// interface the generator consumes and ships a pass-through implementation
// for inputs that are already slabs.
package surface

import (
	"context"

	"intergen/pkg/domain"
)

// Builder cuts surface slabs from bulk structures.
//
//go:generate mockgen -package mocksurface -source=surface.go -destination=mock/mocksurface.go *
type Builder interface {
	// MakeSurface returns the slab exposed by cutting bulk along the given
	// Miller plane with the requested thickness, padded by vacuum on both
	// sides of the surface normal.
	MakeSurface(ctx context.Context, bulk domain.Structure, miller [3]int, thickness, vacuum float64) (domain.Structure, error)
}

// Prebuilt is a Builder for inputs that are already surface slabs: it
// returns the bulk structure unchanged, ignoring the Miller plane and
// thickness. It is the default for sweeps whose structures were cut by an
// upstream tool.
type Prebuilt struct{}

var _ Builder = Prebuilt{}

// MakeSurface returns bulk as-is.
func (Prebuilt) MakeSurface(_ context.Context, bulk domain.Structure, _ [3]int, _, _ float64) (domain.Structure, error) {
	return bulk, nil
}
