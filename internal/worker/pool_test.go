package worker_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"intergen/internal/generator"
	"intergen/internal/worker"
	"intergen/pkg/domain"
	"intergen/pkg/geom"
	mockmatcher "intergen/pkg/matcher/mock"
	"intergen/pkg/matcher/reduced"
	"intergen/pkg/serrors"
	"intergen/pkg/surface"
)

func poolSweep() generator.Sweep {
	film := domain.Structure{
		ID: "si",
		Lattice: geom.Mat3{
			{2.7, 0, 0},
			{0, 2.7, 0},
			{0, 0, 5},
		},
		Sites: []domain.Site{
			{Species: "Si", Frac: geom.Vec3{0, 0, 0.2}},
			{Species: "Si", Frac: geom.Vec3{0.5, 0.5, 0.4}},
		},
	}
	subs := domain.Structure{
		ID: "ag",
		Lattice: geom.Mat3{
			{2.7, 0, 0},
			{0, 2.7, 0},
			{0, 0, 5},
		},
		Sites: []domain.Site{
			{Species: "Ag", Frac: geom.Vec3{0, 0, 0}},
		},
	}

	return generator.Sweep{
		FilmStructures:  []domain.Structure{film},
		SubsStructures:  []domain.Structure{subs},
		FilmThicknesses: []float64{1},
		SubsThicknesses: []float64{1},
		Separations:     []float64{2, 2.5},
		DispIntvl:       0.5,
	}
}

func poolOptions() generator.Options {
	return generator.Options{
		LengthTol:       0.08,
		AngleTol:        1,
		MaxArea:         300,
		MaxAreaRatioTol: 1,
		RoundDigits:     3,
		Vacuum:          2.5,
		SurfaceVacuum:   15,
		LowestMismatch:  true,
		LeadRatio:       -1,
	}
}

func TestPoolMatchesSequentialRun(t *testing.T) {
	g, err := generator.New(poolSweep(), reduced.New(), surface.Prebuilt{}, poolOptions())
	require.NoError(t, err)
	require.Equal(t, 8, g.GridSize())

	seq, err := g.Generate(context.Background())
	require.NoError(t, err)

	res, err := worker.New(g, 3).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Failures)
	require.Len(t, res.Candidates, len(seq.Candidates))

	seqNames := make([]string, len(seq.Candidates))
	for i, c := range seq.Candidates {
		seqNames[i] = c.Name
	}
	sort.Strings(seqNames)

	for i, c := range res.Candidates {
		require.Equal(t, seqNames[i], c.Name)
	}
	require.True(t, sort.SliceIsSorted(res.Candidates, func(i, j int) bool {
		return res.Candidates[i].Name < res.Candidates[j].Name
	}))
}

func TestPoolClampsWorkerCount(t *testing.T) {
	g, err := generator.New(poolSweep(), reduced.New(), surface.Prebuilt{}, poolOptions())
	require.NoError(t, err)

	res, err := worker.New(g, 0).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Candidates, 8)
}

func TestPoolAbortsOnFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mockmatcher.NewMockMatcher(ctrl)
	m.EXPECT().
		Match(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		AnyTimes()

	g, err := generator.New(poolSweep(), m, surface.Prebuilt{}, poolOptions())
	require.NoError(t, err)

	res, err := worker.New(g, 2).Run(context.Background())
	require.ErrorIs(t, err, serrors.ErrNoMatch)
	require.Empty(t, res.Candidates)
}

func TestPoolCollectsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mockmatcher.NewMockMatcher(ctrl)
	m.EXPECT().
		Match(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).
		AnyTimes()

	opts := poolOptions()
	opts.ContinueOnFailure = true

	g, err := generator.New(poolSweep(), m, surface.Prebuilt{}, opts)
	require.NoError(t, err)

	res, err := worker.New(g, 2).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Candidates)
	require.Len(t, res.Failures, 8)
	for _, f := range res.Failures {
		require.ErrorIs(t, f.Err, serrors.ErrNoMatch)
	}
	require.True(t, sort.SliceIsSorted(res.Failures, func(i, j int) bool {
		return res.Failures[i].Combination.Name() < res.Failures[j].Combination.Name()
	}))
}

func TestPoolCanceledContext(t *testing.T) {
	g, err := generator.New(poolSweep(), reduced.New(), surface.Prebuilt{}, poolOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = worker.New(g, 2).Run(ctx)
	require.ErrorIs(t, err, serrors.ErrCanceled)
}
