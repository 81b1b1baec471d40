package generator

import (
	"math"

	"intergen/pkg/serrors"
)

// DisplacementGrid returns the ordered lateral offsets of a sliding-energy
// scan with the given step: a regular two-dimensional mesh covering the unit
// cell from -0.5+step (inclusive) to 0.5+step (exclusive) along each axis,
// flattened x-major. A zero step degenerates to the single offset (0, 0),
// disabling the lateral scan; otherwise the grid has ceil(1/step)^2 offsets.
// A negative step is invalid input.
func DisplacementGrid(step float64) ([][2]float64, error) {
	if step < 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "displacement interval must be >= 0, got %g", step)
	}
	if step == 0 {
		return [][2]float64{{0, 0}}, nil
	}

	n := int(math.Ceil(1 / step))
	axis := make([]float64, n)
	for k := 0; k < n; k++ {
		axis[k] = -0.5 + step + float64(k)*step
	}

	grid := make([][2]float64, 0, n*n)
	for _, x := range axis {
		for _, y := range axis {
			grid = append(grid, [2]float64{x, y})
		}
	}

	return grid, nil
}
