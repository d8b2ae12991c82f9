package main

import (
	"context"
	"sync"

	"sander/internal/sims/sand"
	"sander/internal/telemetry"
)

type runResult struct {
	seed   int64
	frames []telemetry.FrameStats
	final  telemetry.FrameStats
	moves  int
}

// runSeed simulates one world until nothing moves or maxFrames is reached.
// Every sampleEvery-th frame is recorded; zero disables per-frame records.
func runSeed(cfg sand.Config, seed int64, maxFrames, sampleEvery int) runResult {
	cfg.Seed = seed
	world := sand.NewWithConfig(cfg)
	res := runResult{seed: seed}
	for world.Frame() < maxFrames {
		world.Step()
		res.moves += world.LastMoves()
		if sampleEvery > 0 && world.Frame()%sampleEvery == 0 {
			res.frames = append(res.frames, telemetry.Collect(world, seed))
		}
		if world.LastMoves() == 0 {
			break
		}
	}
	res.final = telemetry.Collect(world, seed)
	return res
}

// runAll fans seeds out over workers and hands every result to emit on the
// calling goroutine. It stops handing out seeds once ctx is done or emit
// fails.
func runAll(ctx context.Context, cfg sand.Config, seeds []int64, workers, maxFrames, sampleEvery int, emit func(runResult) error) error {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int64)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				res := runSeed(cfg, seed, maxFrames, sampleEvery)
				select {
				case results <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, seed := range seeds {
			select {
			case jobs <- seed:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for res := range results {
		if firstErr != nil {
			continue
		}
		if err := emit(res); err != nil {
			firstErr = err
			cancel()
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
