package domain

// Mismatch holds the strain and angle discrepancy between the substrate and
// film sides of a matched in-plane superlattice, plus the area each matched
// cell spans.
type Mismatch struct {
	// U and V are the relative length mismatches along the two in-plane
	// directions: |film| / |substrate| - 1.
	U float64 `json:"mismatchU"`
	V float64 `json:"mismatchV"`
	// AngleDeg is the absolute angular mismatch between the two matched
	// cells, in degrees.
	AngleDeg float64 `json:"mismatchAngle"`
	// Area1 is the substrate matched-cell area, Area2 the film's.
	Area1 float64 `json:"area1"`
	Area2 float64 `json:"area2"`
}

// Max returns the worst-axis length mismatch, max(|U|, |V|). It is the
// quantity used to decide which of the two film/substrate orientations of a
// pair is the better matched one.
func (m Mismatch) Max() float64 {
	u, v := m.U, m.V
	if u < 0 {
		u = -u
	}
	if v < 0 {
		v = -v
	}
	if u > v {
		return u
	}

	return v
}

// Candidate is one point of the enumerated interface parameter space: the
// assembled heterostructure together with its constituents, mismatch
// metrics, and the metadata that makes the candidate a stable, reproducible
// key. Candidates are never mutated after creation; they are the hand-off
// record to persistence, energy evaluation and job staging.
type Candidate struct {
	// Name is the deterministic identifier encoding material IDs, Miller
	// indices, thicknesses, separation and displacement.
	Name string `json:"name"`
	// FilmSurfaceName and SubsSurfaceName identify the two constituent
	// surfaces the interface was built from.
	FilmSurfaceName string `json:"filmSurfaceName"`
	SubsSurfaceName string `json:"subsSurfaceName"`

	// Mismatch holds the chosen orientation's lattice-match quality.
	Mismatch Mismatch `json:"mismatch"`

	// FilmSupercell and SubsSupercell are the matched three-dimensional
	// supercells of the two slabs.
	FilmSupercell Structure `json:"filmSupercell"`
	SubsSupercell Structure `json:"subsSupercell"`

	// Interface is the combined structure before lateral displacement.
	Interface Structure `json:"interface"`
	// Displaced is the combined structure after shifting the bottom slab
	// by the combination's lateral offset. With a zero offset it equals
	// Interface.
	Displaced Structure `json:"generatedInterface"`

	// Left, Middle and Right hold the lead partition of the interface when
	// a lead ratio is configured, and are nil otherwise.
	Left   *Structure `json:"left,omitempty"`
	Middle *Structure `json:"middle,omitempty"`
	Right  *Structure `json:"right,omitempty"`
}
