package generator

import (
	"intergen/pkg/domain"
	"intergen/pkg/geom"
	"intergen/pkg/serrors"
)

// Partition is the lead partition of an assembled interface: three disjoint,
// contiguous regions along fractional axis 0 sharing the interface lattice.
type Partition struct {
	Left   domain.Structure
	Middle domain.Structure
	Right  domain.Structure
}

// Assemble stacks a film supercell onto a substrate supercell along the
// interface normal.
//
// Both slabs are first recentered around the origin, before any periodic
// folding, which keeps slab geometry free of fold artifacts. The film is
// then translated along the substrate's normalized out-of-plane direction by
// half of each slab's thickness plus the requested separation, so the gap
// between the substrate's top and the film's bottom equals separation
// regardless of either slab's own extent. Substrate sites are tagged
// "bottom" and film sites "top" for later selective displacement. The
// combined out-of-plane vector is sized to the stacked thickness plus vacuum
// padding on both sides, and the merged structure is recentered at
// fractional [0 0 0.5].
//
// When opts.RotateXZ is set, lattice rows and site coordinates of axes 0 and
// 2 are swapped and the result recentered at [0.5 0 0], putting the periodic
// transport direction on the first lattice vector. When opts.LeadRatio is
// non-negative the rotated structure is additionally partitioned into
// left/middle/right regions; losing or duplicating a site during the split
// is a fatal partition error carrying the offending counts.
func Assemble(film, subs domain.Structure, separation float64, opts Options) (domain.Structure, *Partition, error) {
	film = film.Center(geom.Vec3{})
	subs = subs.Center(geom.Vec3{})

	normal := subs.Lattice[2]
	if normal.Norm() == 0 {
		return domain.Structure{}, nil, serrors.With(serrors.ErrDegenerate,
			"substrate out-of-plane lattice vector has zero length")
	}
	normal = normal.Normalize()

	fmin, fmax := film.SpanCart(2)
	smin, smax := subs.SpanCart(2)
	thicknessFilm := fmax - fmin
	thicknessSubs := smax - smin

	stacked := thicknessFilm + separation + thicknessSubs
	combinedLattice := geom.Mat3{
		subs.Lattice[0],
		subs.Lattice[1],
		normal.Scale(stacked + 2*opts.Vacuum),
	}
	inv, ok := combinedLattice.Inverse()
	if !ok {
		return domain.Structure{}, nil, serrors.With(serrors.ErrDegenerate, "combined lattice is singular")
	}

	shift := normal.Scale(thicknessFilm/2 + separation + thicknessSubs/2)

	sites := make([]domain.Site, 0, subs.NumSites()+film.NumSites())
	for i, site := range subs.Sites {
		sites = append(sites, domain.Site{
			Species: site.Species,
			Frac:    inv.MulVec(subs.Cart(i)),
			Tag:     domain.TagBottom,
		})
	}
	for i, site := range film.Sites {
		cart := film.Cart(i).Add(shift)
		frac := inv.MulVec(cart)
		if opts.ApplyStrain {
			// Strained film: in-plane coordinates are reinterpreted as
			// fractions of the substrate cell, so the film cell deforms to
			// match exactly. Only the normal component keeps its Cartesian
			// position.
			frac[0] = site.Frac[0]
			frac[1] = site.Frac[1]
		}
		sites = append(sites, domain.Site{Species: site.Species, Frac: frac, Tag: domain.TagTop})
	}

	combined := domain.Structure{Lattice: combinedLattice, Sites: sites}.
		Center(geom.Vec3{0, 0, 0.5})

	if opts.RotateXZ {
		combined = combined.PermuteAxes(0, 2).Center(geom.Vec3{0.5, 0, 0})
	}

	if opts.LeadRatio < 0 {
		return combined, nil, nil
	}

	part, err := PartitionLeads(combined, opts.LeadRatio)
	if err != nil {
		return domain.Structure{}, nil, err
	}

	return combined, part, nil
}

// PartitionLeads splits s into three regions by fractional coordinate along
// axis 0: left (x < ratio), right (x > 0.5+ratio) and middle (the rest).
// The regions share the lattice of s. The site counts of the three regions
// must sum to the total; a violation indicates a boundary site landing
// exactly on a partition edge under floating-point rounding, or a tolerance
// misconfiguration, and is reported with the offending counts.
func PartitionLeads(s domain.Structure, ratio float64) (*Partition, error) {
	part := &Partition{
		Left:   domain.Structure{ID: s.ID, Lattice: s.Lattice},
		Middle: domain.Structure{ID: s.ID, Lattice: s.Lattice},
		Right:  domain.Structure{ID: s.ID, Lattice: s.Lattice},
	}

	for _, site := range s.Sites {
		x := site.Frac[0]
		switch {
		case x < ratio:
			part.Left.Sites = append(part.Left.Sites, site)
		case x > 0.5+ratio:
			part.Right.Sites = append(part.Right.Sites, site)
		default:
			part.Middle.Sites = append(part.Middle.Sites, site)
		}
	}

	total := part.Left.NumSites() + part.Middle.NumSites() + part.Right.NumSites()
	if total != s.NumSites() {
		return nil, serrors.With(serrors.ErrPartition,
			"lead partition lost sites: left=%d middle=%d right=%d total=%d want=%d",
			part.Left.NumSites(), part.Middle.NumSites(), part.Right.NumSites(), total, s.NumSites())
	}

	return part, nil
}
