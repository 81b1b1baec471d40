package generator

import (
	"context"
	"errors"

	"intergen/pkg/domain"
	"intergen/pkg/geom"
	"intergen/pkg/matcher"
	"intergen/pkg/serrors"
)

// BuildSupercell derives the three-dimensional supercell of s whose in-plane
// vectors equal the matched target pair while the out-of-plane vector stays
// the structure's own. The integer transform is obtained from the matching
// collaborator against a trial lattice made of the target pair and the
// native third vector; its third row is then forced to [0 0 1] since the
// out-of-plane direction is never supercelled. A missing transform is a
// contract violation of the match that produced the target and is surfaced,
// never swallowed.
func BuildSupercell(ctx context.Context,
	m matcher.Matcher,
	s domain.Structure,
	target [2]geom.Vec3,
	lengthTol, angleTol float64) (domain.Structure, error) {
	trial := geom.Mat3{target[0], target[1], s.Lattice[2]}

	t, err := m.FindTransform(ctx, s.Lattice, trial, lengthTol, angleTol)
	if err != nil {
		if errors.Is(err, serrors.ErrNoTransform) || errors.Is(err, serrors.ErrDegenerate) {
			return domain.Structure{}, err
		}

		return domain.Structure{}, serrors.Wrap(serrors.ErrNoTransform, err,
			"transform finder failed for target lattice")
	}

	t[2] = [3]int{0, 0, 1}

	cell, err := s.Supercell(t)
	if err != nil {
		return domain.Structure{}, serrors.Wrap(serrors.ErrInternal, err, "supercell replication")
	}

	return cell, nil
}
