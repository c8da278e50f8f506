package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"time"

	"falling-sand/internal/sims/sand"

	"golang.org/x/sync/errgroup"
)

type scenario struct {
	scene     string
	chunkSize int
	workers   int
}

func (s scenario) String() string {
	return fmt.Sprintf("scene=%s chunk=%d workers=%d", s.scene, s.chunkSize, s.workers)
}

type result struct {
	scenario scenario
	elapsed  time.Duration
	start    sand.Stats
	final    sand.Stats
	// idle is the fraction of chunk-frames skipped because nothing moved.
	idle float64
}

func (r result) fps(frames int) float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(frames) / r.elapsed.Seconds()
}

func main() {
	frames := flag.Int("frames", 600, "frames to simulate per scenario")
	width := flag.Int("w", 256, "grid width")
	height := flag.Int("h", 192, "grid height")
	seed := flag.Int64("seed", 1337, "simulation seed")
	jobs := flag.Int("jobs", runtime.NumCPU(), "scenarios run concurrently")
	flag.Parse()

	var sets []scenario
	for _, scene := range []string{sand.SceneDemo, sand.SceneFloor} {
		for _, chunk := range []int{8, 16, 32} {
			for _, workers := range []int{1, 4} {
				sets = append(sets, scenario{scene: scene, chunkSize: chunk, workers: workers})
			}
		}
	}

	base := sand.DefaultConfig()
	base.Width = *width
	base.Height = *height
	base.Seed = *seed
	if err := base.Validate(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Running %d scenarios (%d jobs, %d frames, %dx%d)\n", len(sets), *jobs, *frames, *width, *height)

	results := make([]result, len(sets))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, *jobs))
	for i, sc := range sets {
		g.Go(func() error {
			res, err := runScenario(ctx, base, sc, *frames)
			if err != nil {
				return fmt.Errorf("%s: %w", sc, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].elapsed < results[j].elapsed })
	for i, res := range results {
		fmt.Printf("%2d) %-36s %8.1f fps  cells %d->%d  burning %d  idle %.0f%%  %s\n",
			i+1, res.scenario, res.fps(*frames), res.start.Cells, res.final.Cells,
			res.final.Burning, res.idle*100, res.elapsed.Round(time.Millisecond))
	}
}

// runScenario steps one configuration and verifies the grid index and cell
// conservation afterwards.
func runScenario(ctx context.Context, base sand.Config, sc scenario, frames int) (result, error) {
	cfg := base
	cfg.Scene = sc.scene
	cfg.ChunkSize = sc.chunkSize
	cfg.Workers = sc.workers
	cfg.Params.SmokeEmitChance = 0

	sim := sand.NewSim(cfg, nil)
	m := sim.Matrix()
	res := result{scenario: sc, start: m.Stats()}

	var active, total int
	start := time.Now()
	for f := 0; f < frames; f++ {
		if f%64 == 0 && ctx.Err() != nil {
			return res, ctx.Err()
		}
		sim.Step()
		st := m.Stats()
		active += st.ActiveChunks
		total += st.Chunks
	}
	res.elapsed = time.Since(start)
	res.final = m.Stats()
	if total > 0 {
		res.idle = 1 - float64(active)/float64(total)
	}

	if err := m.Grid().Check(); err != nil {
		return res, err
	}
	if res.final.Cells != res.start.Cells {
		return res, fmt.Errorf("cell count changed from %d to %d", res.start.Cells, res.final.Cells)
	}
	log.Printf("%s done in %s", sc, res.elapsed)
	return res, nil
}
