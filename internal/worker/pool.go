// Package worker runs a generation sweep on a bounded goroutine pool. Every
// grid point is an independent pure computation, so the pool simply fans the
// combination sequence out to workers and collects their outcomes; candidate
// names are derived from combination parameters alone, never from arrival
// order, so the result is sorted by name afterward to make output
// deterministic regardless of scheduling.
package worker

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"intergen/internal/generator"
	"intergen/pkg/domain"
	"intergen/pkg/logger"
	"intergen/pkg/metrics"
	"intergen/pkg/serrors"
)

// Pool executes a generator sweep across a fixed number of workers.
type Pool struct {
	gen     *generator.Generator
	workers int
}

// New returns a pool running gen's combinations on the given number of
// workers. A worker count below one is clamped to one, which reproduces the
// strictly sequential sweep.
func New(gen *generator.Generator, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	return &Pool{gen: gen, workers: workers}
}

// outcome pairs one combination with its build result.
type outcome struct {
	comb generator.Combination
	cand domain.Candidate
	err  error
}

// Run executes the sweep and returns the collected result. Cancellation of
// ctx stops feeding new combinations and returns once in-flight builds have
// finished. Under the abort policy the first failure cancels the remaining
// work and is returned with the partial result; under continue-on-failure
// all failures are collected in the result instead.
func (p *Pool) Run(ctx context.Context) (generator.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	combos := make(chan generator.Combination)
	outcomes := make(chan outcome)

	// feeder: replay the deterministic combination sequence until done or
	// canceled.
	go func() {
		defer close(combos)
		for c := range p.gen.Combinations() {
			select {
			case combos <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range combos {
				start := time.Now()
				cand, err := p.gen.Build(ctx, c)
				metrics.BuildDuration.Observe(time.Since(start).Seconds())
				select {
				case outcomes <- outcome{comb: c, cand: cand, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var res generator.Result
	continueOnFailure := p.gen.Options().ContinueOnFailure
	var firstErr error

	for out := range outcomes {
		if out.err != nil {
			metrics.CombinationFailures.WithLabelValues(kindLabel(out.err)).Inc()
			logger.Warn(ctx, "combination failed",
				zap.String("name", out.comb.Name()), zap.Error(out.err))
			if continueOnFailure {
				res.Failures = append(res.Failures, generator.Failure{Combination: out.comb, Err: out.err})

				continue
			}
			if firstErr == nil {
				firstErr = out.err
				cancel()
			}

			continue
		}

		metrics.CandidatesGenerated.Inc()
		res.Candidates = append(res.Candidates, out.cand)
	}

	sortResult(&res)

	if firstErr != nil {
		return res, firstErr
	}
	if err := ctx.Err(); err != nil {
		return res, serrors.Wrap(serrors.ErrCanceled, err, "sweep canceled")
	}

	return res, nil
}

// sortResult orders candidates and failures by name so pool output does not
// depend on goroutine scheduling.
func sortResult(res *generator.Result) {
	sort.Slice(res.Candidates, func(i, j int) bool {
		return res.Candidates[i].Name < res.Candidates[j].Name
	})
	sort.Slice(res.Failures, func(i, j int) bool {
		return res.Failures[i].Combination.Name() < res.Failures[j].Combination.Name()
	})
}

func kindLabel(err error) string {
	if k := serrors.KindOf(err); k != nil {
		return k.Error()
	}

	return "UNKNOWN"
}
