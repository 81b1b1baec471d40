package generator

import (
	"context"
	"iter"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"intergen/pkg/domain"
	"intergen/pkg/geom"
	"intergen/pkg/logger"
	"intergen/pkg/matcher"
	"intergen/pkg/metrics"
	"intergen/pkg/serrors"
	"intergen/pkg/surface"
)

// Sweep describes the parameter space of one generation run: the candidate
// materials and the axes of the Cartesian product enumerated over them.
// Empty axes fall back to the original defaults via Normalize.
type Sweep struct {
	// FilmStructures and SubsStructures are the candidate materials. Their
	// ID fields name the materials in generated candidates; empty IDs fall
	// back to the positional index.
	FilmStructures []domain.Structure `json:"filmStructures"`
	SubsStructures []domain.Structure `json:"subsStructures"`

	// FilmIndices and SubsIndices are the Miller orientations to sweep.
	FilmIndices [][3]int `json:"filmIndices,omitempty"`
	SubsIndices [][3]int `json:"subsIndices,omitempty"`

	// FilmThicknesses and SubsThicknesses are slab thicknesses in layers.
	FilmThicknesses []float64 `json:"filmThicknesses,omitempty"`
	SubsThicknesses []float64 `json:"subsThicknesses,omitempty"`

	// Separations are the normal-direction gaps between the slabs.
	Separations []float64 `json:"separations,omitempty"`

	// DispIntvl is the lateral displacement grid step; zero disables the
	// sliding scan.
	DispIntvl float64 `json:"dispIntvl,omitempty"`
}

// Normalize fills empty sweep axes with the conventional defaults: (0 0 1)
// orientation, 8-layer slabs, 2.5 Angstrom separation.
func (s Sweep) Normalize() Sweep {
	if len(s.FilmIndices) == 0 {
		s.FilmIndices = [][3]int{{0, 0, 1}}
	}
	if len(s.SubsIndices) == 0 {
		s.SubsIndices = [][3]int{{0, 0, 1}}
	}
	if len(s.FilmThicknesses) == 0 {
		s.FilmThicknesses = []float64{8}
	}
	if len(s.SubsThicknesses) == 0 {
		s.SubsThicknesses = []float64{8}
	}
	if len(s.Separations) == 0 {
		s.Separations = []float64{2.5}
	}

	return s
}

// Validate reports obviously unusable sweeps before any work starts.
func (s Sweep) Validate() error {
	if len(s.FilmStructures) == 0 || len(s.SubsStructures) == 0 {
		return serrors.With(serrors.ErrBadRequest, "sweep needs at least one film and one substrate structure")
	}
	for i, st := range append(append([]domain.Structure{}, s.FilmStructures...), s.SubsStructures...) {
		if st.NumSites() == 0 {
			return serrors.With(serrors.ErrBadRequest, "structure %d has no sites", i)
		}
	}

	return nil
}

// Combination is one point of the enumerated parameter space. All numeric
// fields are already rounded to the run's digit precision, so a Combination
// is a self-contained, order-independent key: its Name depends on nothing
// but its own fields.
type Combination struct {
	// SubsIdx and FilmIdx index into the sweep's structure slices.
	SubsIdx int
	FilmIdx int
	// SubsID and FilmID are the material identifiers used in names:
	// explicit structure IDs when present, positional indices otherwise.
	SubsID string
	FilmID string

	Separation    float64
	FilmMiller    [3]int
	SubsMiller    [3]int
	FilmThickness float64
	SubsThickness float64
	// Disp is the lateral displacement applied to the bottom slab, in
	// fractional in-plane coordinates.
	Disp [2]float64
}

// Name returns the deterministic candidate name for this combination. The
// field order is fixed so the name is a stable, collision-resistant key
// across repeated runs with identical parameters.
func (c Combination) Name() string {
	var b strings.Builder
	b.WriteString("Interface-")
	b.WriteString(c.SubsID)
	b.WriteString("_")
	b.WriteString(c.FilmID)
	b.WriteString("_film_miller_")
	b.WriteString(millerString(c.FilmMiller))
	b.WriteString("_sub_miller_")
	b.WriteString(millerString(c.SubsMiller))
	b.WriteString("_film_thickness_")
	b.WriteString(floatString(c.FilmThickness))
	b.WriteString("_subs_thickness_")
	b.WriteString(floatString(c.SubsThickness))
	b.WriteString("_separation_")
	b.WriteString(floatString(c.Separation))
	b.WriteString("_disp_")
	b.WriteString(floatString(c.Disp[0]))
	b.WriteString("_")
	b.WriteString(floatString(c.Disp[1]))

	return b.String()
}

// FilmSurfaceName identifies the film-side constituent surface.
func (c Combination) FilmSurfaceName() string {
	return "Surface-" + c.FilmID +
		"_film_miller_" + millerString(c.FilmMiller) +
		"_film_thickness_" + floatString(c.FilmThickness)
}

// SubsSurfaceName identifies the substrate-side constituent surface.
func (c Combination) SubsSurfaceName() string {
	return "Surface-" + c.SubsID +
		"_subs_miller_" + millerString(c.SubsMiller) +
		"_subs_thickness_" + floatString(c.SubsThickness)
}

func millerString(m [3]int) string {
	return strconv.Itoa(m[0]) + "_" + strconv.Itoa(m[1]) + "_" + strconv.Itoa(m[2])
}

func floatString(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// roundTo rounds v to the given number of decimal digits.
func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))

	return math.Round(v*p) / p
}

// Failure records one combination that could not be built, together with
// its typed cause.
type Failure struct {
	Combination Combination
	Err         error
}

// Result is the outcome of a sweep: the candidates produced and, under the
// continue-on-failure policy, the combinations that failed.
type Result struct {
	Candidates []domain.Candidate
	Failures   []Failure
}

// Generator drives the combinatorial sweep. It holds the sweep definition,
// the run tolerances, and the matching and surface-construction
// collaborators. A Generator is immutable after New and safe for concurrent
// use: Build is a pure function of its combination.
type Generator struct {
	opts     Options
	sweep    Sweep
	matcher  matcher.Matcher
	surfaces surface.Builder
	grid     [][2]float64
}

// New constructs a Generator for the given sweep. The displacement grid is
// precomputed here so enumeration is a pure replay afterward.
func New(sweep Sweep, m matcher.Matcher, sb surface.Builder, opts Options) (*Generator, error) {
	sweep = sweep.Normalize()
	if err := sweep.Validate(); err != nil {
		return nil, err
	}

	grid, err := DisplacementGrid(sweep.DispIntvl)
	if err != nil {
		return nil, err
	}

	return &Generator{
		opts:     opts,
		sweep:    sweep,
		matcher:  m,
		surfaces: sb,
		grid:     grid,
	}, nil
}

// Options returns the run's tolerance configuration.
func (g *Generator) Options() Options { return g.opts }

// GridSize returns the number of grid points one sweep enumerates.
func (g *Generator) GridSize() int {
	return len(g.sweep.SubsStructures) * len(g.sweep.FilmStructures) *
		len(g.sweep.Separations) * len(g.sweep.FilmIndices) * len(g.sweep.SubsIndices) *
		len(g.sweep.FilmThicknesses) * len(g.sweep.SubsThicknesses) * len(g.grid)
}

// Combinations returns the lazy Cartesian product of the sweep axes in
// deterministic order: substrate material, film material, separation, film
// orientation, substrate orientation, film thickness, substrate thickness,
// lateral displacement. Every numeric field is rounded to the configured
// digit precision before it is yielded.
func (g *Generator) Combinations() iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		for si, subs := range g.sweep.SubsStructures {
			for fi, film := range g.sweep.FilmStructures {
				for _, sep := range g.sweep.Separations {
					for _, fIdx := range g.sweep.FilmIndices {
						for _, sIdx := range g.sweep.SubsIndices {
							for _, fThk := range g.sweep.FilmThicknesses {
								for _, sThk := range g.sweep.SubsThicknesses {
									for _, disp := range g.grid {
										c := Combination{
											SubsIdx:       si,
											FilmIdx:       fi,
											SubsID:        materialID(subs, si),
											FilmID:        materialID(film, fi),
											Separation:    roundTo(sep, g.opts.RoundDigits),
											FilmMiller:    fIdx,
											SubsMiller:    sIdx,
											FilmThickness: roundTo(fThk, g.opts.RoundDigits),
											SubsThickness: roundTo(sThk, g.opts.RoundDigits),
											Disp: [2]float64{
												roundTo(disp[0], g.opts.RoundDigits),
												roundTo(disp[1], g.opts.RoundDigits),
											},
										}
										if !yield(c) {
											return
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

func materialID(s domain.Structure, idx int) string {
	if s.ID != "" {
		return s.ID
	}

	return strconv.Itoa(idx)
}

// direction is the outcome of building the interface with one film/substrate
// role assignment.
type direction struct {
	mismatch  domain.Mismatch
	filmScell domain.Structure
	subsScell domain.Structure
	combined  domain.Structure
	partition *Partition
}

// Build computes one grid point: both film/substrate role assignments are
// built, the one with the smaller worst-axis mismatch is kept, the lateral
// displacement is applied to the bottom slab, and the result is emitted as a
// named candidate. Build is a pure function of its combination and may be
// invoked concurrently for different combinations.
func (g *Generator) Build(ctx context.Context, c Combination) (domain.Candidate, error) {
	film := g.sweep.FilmStructures[c.FilmIdx]
	subs := g.sweep.SubsStructures[c.SubsIdx]

	// Direction one treats the substrate material as film; direction two
	// keeps the roles as labeled. A tie keeps direction two, so labels are
	// preserved when both orientations match equally well.
	dir1, err := g.buildDirection(ctx, subs, film, c)
	if err != nil {
		return domain.Candidate{}, err
	}
	dir2, err := g.buildDirection(ctx, film, subs, c)
	if err != nil {
		return domain.Candidate{}, err
	}

	chosen := dir2
	if dir2.mismatch.Max() > dir1.mismatch.Max() {
		chosen = dir1
	}

	displaced := chosen.combined
	if c.Disp[0] != 0 || c.Disp[1] != 0 {
		displaced = displaceBottom(chosen.combined, c.Disp)
	}

	cand := domain.Candidate{
		Name:            c.Name(),
		FilmSurfaceName: c.FilmSurfaceName(),
		SubsSurfaceName: c.SubsSurfaceName(),
		Mismatch:        chosen.mismatch,
		FilmSupercell:   chosen.filmScell,
		SubsSupercell:   chosen.subsScell,
		Interface:       chosen.combined,
		Displaced:       displaced,
	}
	if chosen.partition != nil {
		cand.Left = &chosen.partition.Left
		cand.Middle = &chosen.partition.Middle
		cand.Right = &chosen.partition.Right
	}

	return cand, nil
}

// buildDirection constructs the interface for one film/substrate role
// assignment: surfaces, lattice match, mismatch metrics, supercells,
// assembly.
func (g *Generator) buildDirection(ctx context.Context, filmMat, subsMat domain.Structure, c Combination) (direction, error) {
	filmSurf, err := g.surfaces.MakeSurface(ctx, filmMat, c.FilmMiller, c.FilmThickness, g.opts.SurfaceVacuum)
	if err != nil {
		return direction{}, serrors.Wrap(serrors.ErrInternal, err, "film surface")
	}
	subsSurf, err := g.surfaces.MakeSurface(ctx, subsMat, c.SubsMiller, c.SubsThickness, g.opts.SurfaceVacuum)
	if err != nil {
		return direction{}, serrors.Wrap(serrors.ErrInternal, err, "substrate surface")
	}

	filmSurf = filmSurf.Center(geom.Vec3{})
	subsSurf = subsSurf.Center(geom.Vec3{})

	filmBasis := [2]geom.Vec3{filmSurf.Lattice[0], filmSurf.Lattice[1]}
	subsBasis := [2]geom.Vec3{subsSurf.Lattice[0], subsSurf.Lattice[1]}

	matches, err := g.matcher.Match(ctx, filmBasis, subsBasis, g.opts.matcherOptions())
	if err != nil {
		return direction{}, err
	}
	if len(matches) == 0 {
		return direction{}, serrors.With(serrors.ErrNoMatch,
			"no superlattice match for film %s on substrate %s", c.FilmID, c.SubsID)
	}
	match := matches[0]

	mis, err := EvaluateMismatch(match.SubVecs, match.FilmVecs)
	if err != nil {
		return direction{}, err
	}

	subsScell, err := BuildSupercell(ctx, g.matcher, subsSurf, match.SubVecs, g.opts.LengthTol, g.opts.AngleTol)
	if err != nil {
		return direction{}, err
	}
	filmScell, err := BuildSupercell(ctx, g.matcher, filmSurf, match.FilmVecs, g.opts.LengthTol, g.opts.AngleTol)
	if err != nil {
		return direction{}, err
	}

	combined, part, err := Assemble(filmScell, subsScell, c.Separation, g.opts)
	if err != nil {
		return direction{}, err
	}

	return direction{
		mismatch:  mis,
		filmScell: filmScell,
		subsScell: subsScell,
		combined:  combined,
		partition: part,
	}, nil
}

// displaceBottom shifts bottom-tagged sites by the lateral offset in
// fractional in-plane coordinates, producing the rigid in-plane shear of a
// sliding-energy scan. Top-tagged sites are untouched.
func displaceBottom(s domain.Structure, disp [2]float64) domain.Structure {
	out := s
	out.Sites = make([]domain.Site, len(s.Sites))
	copy(out.Sites, s.Sites)
	for i := range out.Sites {
		if out.Sites[i].Tag != domain.TagBottom {
			continue
		}
		out.Sites[i].Frac[0] += disp[0]
		out.Sites[i].Frac[1] += disp[1]
	}

	return out
}

// Generate runs the sweep sequentially in deterministic order. Between grid
// points the context is checked so large sweeps cancel cooperatively. Under
// the abort policy the first failure stops the run and is returned alongside
// the partial result; under continue-on-failure every failure is collected
// in the result instead.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	var res Result
	start := time.Now()

	for c := range g.Combinations() {
		if err := ctx.Err(); err != nil {
			return res, serrors.Wrap(serrors.ErrCanceled, err, "sweep canceled")
		}

		buildStart := time.Now()
		cand, err := g.Build(ctx, c)
		metrics.BuildDuration.Observe(time.Since(buildStart).Seconds())
		if err != nil {
			metrics.CombinationFailures.WithLabelValues(errKind(err)).Inc()
			logger.Warn(ctx, "combination failed",
				zap.String("name", c.Name()), zap.Error(err))
			if !g.opts.ContinueOnFailure {
				return res, err
			}
			res.Failures = append(res.Failures, Failure{Combination: c, Err: err})

			continue
		}

		metrics.CandidatesGenerated.Inc()
		res.Candidates = append(res.Candidates, cand)
	}

	logger.Info(ctx, "sweep finished",
		zap.Int("candidates", len(res.Candidates)),
		zap.Int("failures", len(res.Failures)),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

// errKind extracts the semantic error kind label for metrics.
func errKind(err error) string {
	if k := serrors.KindOf(err); k != nil {
		return k.Error()
	}

	return "UNKNOWN"
}
