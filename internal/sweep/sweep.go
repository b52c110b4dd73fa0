// Package sweep runs many seeded fire simulations in parallel and summarizes
// how each one burned.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"fire-ca/internal/fire"
)

// Options configures a sweep.
type Options struct {
	Base    fire.Config
	Seeds   []int64
	Ticks   int
	DT      float64
	Workers int
	Logger  *slog.Logger
}

// Result describes one seeded run.
type Result struct {
	Seed int64 `json:"seed"`
	// Draws is the number of initial fire draws, duplicates included.
	Draws int `json:"draws"`
	// Ignited is the number of distinct initially lit cells.
	Ignited int `json:"ignited"`

	PeakLit  int `json:"peak_lit"`
	PeakTick int `json:"peak_tick"`
	// BurnoutTick is the first tick with no lit cell, or -1.
	BurnoutTick int `json:"burnout_tick"`

	Final fire.Stats `json:"final"`
	// Lit holds the lit cell count after each tick, starting with tick 0.
	Lit []int `json:"-"`
}

// Seeds returns count consecutive seeds starting at first.
func Seeds(first int64, count int) []int64 {
	seeds := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		seeds = append(seeds, first+int64(i))
	}
	return seeds
}

// Run simulates every seed and returns the results sorted by peak lit count,
// highest first, then by seed. Each simulation uses a single tick worker; the
// parallelism is across seeds.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if err := opts.Base.Validate(); err != nil {
		return nil, err
	}
	if opts.Ticks < 0 {
		return nil, fmt.Errorf("ticks must be non-negative, got %d", opts.Ticks)
	}
	if opts.DT <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %g", opts.DT)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	type outcome struct {
		res Result
		err error
	}

	jobs := make(chan int64)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				res, err := runScenario(ctx, opts.Base, seed, opts.Ticks, opts.DT)
				results <- outcome{res: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, seed := range opts.Seeds {
			select {
			case jobs <- seed:
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		all      []Result
		firstErr error
	)
	for out := range results {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			continue
		}
		all = append(all, out.res)
		logger.Debug("scenario finished",
			"seed", out.res.Seed,
			"peak_lit", out.res.PeakLit,
			"burnout_tick", out.res.BurnoutTick,
			"done", len(all),
			"total", len(opts.Seeds))
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].PeakLit != all[j].PeakLit {
			return all[i].PeakLit > all[j].PeakLit
		}
		return all[i].Seed < all[j].Seed
	})
	return all, nil
}

func runScenario(ctx context.Context, base fire.Config, seed int64, ticks int, dt float64) (Result, error) {
	cfg := base
	cfg.Seed = seed
	cfg.Workers = 1

	sim, err := fire.New(cfg)
	if err != nil {
		return Result{}, err
	}
	if err := sim.Initialize(); err != nil {
		return Result{}, err
	}

	draws := sim.Ignited()
	distinct := make(map[int]struct{}, len(draws))
	for _, idx := range draws {
		distinct[idx] = struct{}{}
	}

	res := Result{
		Seed:        seed,
		Draws:       len(draws),
		Ignited:     len(distinct),
		BurnoutTick: -1,
		Lit:         make([]int, 0, ticks+1),
	}
	record := func(tick int) {
		st := sim.Stats()
		res.Lit = append(res.Lit, st.Lit)
		if st.Lit > res.PeakLit {
			res.PeakLit = st.Lit
			res.PeakTick = tick
		}
		if st.Lit == 0 && res.BurnoutTick < 0 {
			res.BurnoutTick = tick
		}
	}

	record(0)
	for tick := 1; tick <= ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := sim.Step(dt); err != nil {
			return Result{}, err
		}
		record(tick)
	}
	res.Final = sim.Stats()
	return res, nil
}
