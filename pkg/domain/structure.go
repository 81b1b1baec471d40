package domain

import (
	"errors"
	"fmt"
	"math"

	"intergen/pkg/geom"
)

// Site provenance tags used when two slabs are merged into one structure.
// The substrate keeps TagBottom and the film TagTop, so later rigid in-plane
// displacement can be applied to one slab only.
const (
	TagBottom = "bottom"
	TagTop    = "top"
)

// Site is one atom in a periodic structure: a chemical species label, a
// fractional coordinate in the owning structure's lattice, and an optional
// provenance tag.
type Site struct {
	// Species is the chemical element symbol, e.g. "Si".
	Species string `json:"species"`
	// Frac is the fractional coordinate in the owning lattice.
	Frac geom.Vec3 `json:"frac"`
	// Tag marks which slab the site came from when structures are merged.
	// Empty for structures that were never merged.
	Tag string `json:"tag,omitempty"`
}

// Structure is a periodic atomic arrangement: a lattice whose rows are the
// three lattice vectors, and an ordered sequence of sites in fractional
// coordinates. Structures are value objects; every method returns a new
// instance and leaves the receiver untouched.
type Structure struct {
	// ID identifies the source material, e.g. a database identifier.
	// May be empty, in which case callers fall back to positional indices.
	ID string `json:"id,omitempty"`
	// Lattice rows are the lattice vectors in Angstrom.
	Lattice geom.Mat3 `json:"lattice"`
	// Sites is the ordered atom list.
	Sites []Site `json:"sites"`
}

// NumSites returns the number of atoms in the structure.
func (s Structure) NumSites() int { return len(s.Sites) }

// Cart returns the Cartesian coordinate of site i.
func (s Structure) Cart(i int) geom.Vec3 {
	return s.Lattice.MulVec(s.Sites[i].Frac)
}

// clone returns a deep copy of s with an independent site slice.
func (s Structure) clone() Structure {
	out := s
	out.Sites = make([]Site, len(s.Sites))
	copy(out.Sites, s.Sites)

	return out
}

// Center translates all sites so their mean fractional coordinate equals
// target. No periodic folding is applied: centering before any wrap is what
// keeps slab geometry free of fold artifacts at the cell boundary.
func (s Structure) Center(target geom.Vec3) Structure {
	out := s.clone()
	if len(out.Sites) == 0 {
		return out
	}

	var mean geom.Vec3
	for _, site := range out.Sites {
		mean = mean.Add(site.Frac)
	}
	mean = mean.Scale(1 / float64(len(out.Sites)))

	shift := target.Sub(mean)
	for i := range out.Sites {
		out.Sites[i].Frac = out.Sites[i].Frac.Add(shift)
	}

	return out
}

// Translate shifts every site by delta in fractional coordinates.
func (s Structure) Translate(delta geom.Vec3) Structure {
	out := s.clone()
	for i := range out.Sites {
		out.Sites[i].Frac = out.Sites[i].Frac.Add(delta)
	}

	return out
}

// SpanCart returns the minimum and maximum Cartesian coordinate of the
// structure's sites along the given axis (0, 1 or 2). An empty structure
// spans [0, 0].
func (s Structure) SpanCart(axis int) (min, max float64) {
	if len(s.Sites) == 0 {
		return 0, 0
	}
	min, max = math.Inf(1), math.Inf(-1)
	for i := range s.Sites {
		c := s.Cart(i)[axis]
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}

	return min, max
}

// PermuteAxes swaps lattice rows a and b and the corresponding fractional
// coordinate components of every site. Atomic positions relative to the new
// axes are preserved; applying the same permutation twice restores the
// original geometry.
func (s Structure) PermuteAxes(a, b int) Structure {
	out := s.clone()
	out.Lattice[a], out.Lattice[b] = out.Lattice[b], out.Lattice[a]
	for i := range out.Sites {
		f := out.Sites[i].Frac
		f[a], f[b] = f[b], f[a]
		out.Sites[i].Frac = f
	}

	return out
}

// ErrSingularTransform indicates a supercell transform with zero determinant.
var ErrSingularTransform = errors.New("domain: supercell transform is singular")

// supercellEps is the fractional tolerance used when deciding whether a
// candidate lattice point lies inside the supercell.
const supercellEps = 1e-6

// Supercell expands the structure by the integer transform t: the new
// lattice is t applied to the old one, and each original site is replicated
// onto every lattice point of the old cell that falls inside the new cell.
// The site count of the result is |det t| times the original count; any
// other outcome means the replication enumeration lost or duplicated sites
// and is reported as an error.
func (s Structure) Supercell(t geom.IntMat3) (Structure, error) {
	n := t.Det()
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return Structure{}, ErrSingularTransform
	}

	newLat := t.Apply(s.Lattice)
	inv, ok := t.Float().Inverse()
	if !ok {
		return Structure{}, ErrSingularTransform
	}

	// Bound the integer translations by the corners of the supercell
	// expressed in units of the original lattice.
	lo, hi := translationBounds(t)

	want := n * len(s.Sites)
	out := Structure{ID: s.ID, Lattice: newLat, Sites: make([]Site, 0, want)}
	seen := make(map[[4]int64]struct{}, want)

	for si, site := range s.Sites {
		for i := lo[0]; i <= hi[0]; i++ {
			for j := lo[1]; j <= hi[1]; j++ {
				for k := lo[2]; k <= hi[2]; k++ {
					p := site.Frac.Add(geom.Vec3{float64(i), float64(j), float64(k)})
					q := inv.MulVec(p)
					frac, inside := wrapFrac(q)
					if !inside {
						continue
					}
					key := fracKey(si, frac)
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					out.Sites = append(out.Sites, Site{Species: site.Species, Frac: frac, Tag: site.Tag})
				}
			}
		}
	}

	if len(out.Sites) != want {
		return Structure{}, fmt.Errorf("domain: supercell replication produced %d sites, want %d", len(out.Sites), want)
	}

	return out, nil
}

// translationBounds returns the integer translation range that covers the
// parallelepiped spanned by the rows of t, padded by one cell on each side.
func translationBounds(t geom.IntMat3) (lo, hi [3]int) {
	for axis := 0; axis < 3; axis++ {
		min, max := 0, 0
		// corners are all subset sums of the three transform rows
		for mask := 1; mask < 8; mask++ {
			sum := 0
			for r := 0; r < 3; r++ {
				if mask&(1<<r) != 0 {
					sum += t[r][axis]
				}
			}
			if sum < min {
				min = sum
			}
			if sum > max {
				max = sum
			}
		}
		lo[axis] = min - 1
		hi[axis] = max + 1
	}

	return lo, hi
}

// wrapFrac folds q into [0, 1) per component and reports whether q was
// inside the half-open unit cell to within supercellEps.
func wrapFrac(q geom.Vec3) (geom.Vec3, bool) {
	var out geom.Vec3
	for c := 0; c < 3; c++ {
		r := q[c] - math.Floor(q[c])
		if r >= 1-supercellEps {
			r = 0
		}
		// Only accept points whose pre-wrap coordinate was within the
		// unit cell; everything else is a neighboring image.
		if q[c] < -supercellEps || q[c] >= 1-supercellEps {
			return geom.Vec3{}, false
		}
		out[c] = r
	}

	return out, true
}

// fracKey quantizes a fractional coordinate for duplicate detection.
func fracKey(site int, f geom.Vec3) [4]int64 {
	const scale = 1e6

	return [4]int64{
		int64(site),
		int64(math.Round(f[0] * scale)),
		int64(math.Round(f[1] * scale)),
		int64(math.Round(f[2] * scale)),
	}
}
