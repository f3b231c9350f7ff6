package cli

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"growfield/internal/growth"
	"growfield/internal/mesh"
	"growfield/internal/sims/grow"
)

type candidate struct {
	cfg      grow.Config
	ticks    int
	vertices int
	faces    int
	// radius statistics of the final surface around its bounding box center
	radius    float64
	roughness float64
	elapsed   time.Duration
	err       error
}

func (c candidate) String() string {
	return fmt.Sprintf("size=%d grow=%gs fps=%g", c.cfg.X, c.cfg.GrowSeconds, c.cfg.FPS)
}

func newSweepCmd(o *options) *cobra.Command {
	var (
		sizes   []int
		seconds []float64
		rates   []float64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Grow every combination of size and timing.",
		Long: `sweep runs one deterministic session per combination of lattice size,
grow seconds and frame rate, and reports how many ticks each took and the
shape of the final surface.`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := o.config(cmd.Flags())
			if err != nil {
				return err
			}
			jobs := sweepGrid(base, sizes, seconds, rates)
			if len(jobs) == 0 {
				return fmt.Errorf("grow: empty sweep")
			}
			cmd.Printf("Sweeping %d sessions (%d workers)\n", len(jobs), workers)

			start := time.Now()
			all := sweep(cmd.Context(), jobs, workers, o.log)
			var failed int
			for i, c := range all {
				if c.err != nil {
					failed++
					cmd.Printf("%2d) %s failed: %v\n", i+1, c, c.err)
					continue
				}
				cmd.Printf("%2d) %s ticks=%d vertices=%d faces=%d radius=%.2f rough=%.3f (%s)\n",
					i+1, c, c.ticks, c.vertices, c.faces, c.radius, c.roughness, c.elapsed.Round(time.Millisecond))
			}
			cmd.Printf("\nDone in %s\n", time.Since(start).Round(time.Millisecond))
			if failed > 0 {
				return fmt.Errorf("grow: %d of %d sessions failed", failed, len(all))
			}
			return nil
		},
	}
	bindConfigFlags(cmd.Flags())
	fs := cmd.Flags()
	fs.IntSliceVar(&sizes, "sizes", []int{16, 24, 32}, "lattice edge lengths")
	fs.Float64SliceVar(&seconds, "grow-times", []float64{1, 2, 4}, "grow seconds to try")
	fs.Float64SliceVar(&rates, "rates", []float64{12, 24}, "frame rates to try")
	fs.IntVar(&workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	return cmd
}

// sweepGrid expands base into one deterministic config per combination.
func sweepGrid(base grow.Config, sizes []int, seconds, rates []float64) []grow.Config {
	base.Mode = growth.Deterministic.String()
	base.Immediate = false
	var out []grow.Config
	for _, n := range sizes {
		for _, s := range seconds {
			for _, r := range rates {
				c := base
				c.X, c.Y, c.Z = n, n, n
				c.GrowSeconds, c.FPS = s, r
				out = append(out, c)
			}
		}
	}
	return out
}

// sweep runs jobs on a worker pool and returns the results ordered by size,
// then by tick count.
func sweep(ctx context.Context, jobs []grow.Config, workers int, log logrus.FieldLogger) []candidate {
	workers = max(workers, 1)
	in := make(chan grow.Config)
	results := make(chan candidate)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cfg := range in {
				results <- runCandidate(ctx, cfg, log)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(in)
		for _, cfg := range jobs {
			select {
			case in <- cfg:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []candidate
	for res := range results {
		all = append(all, res)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].cfg.X != all[j].cfg.X {
			return all[i].cfg.X < all[j].cfg.X
		}
		if all[i].ticks != all[j].ticks {
			return all[i].ticks < all[j].ticks
		}
		return all[i].String() < all[j].String()
	})
	return all
}

func runCandidate(ctx context.Context, cfg grow.Config, log logrus.FieldLogger) candidate {
	c := candidate{cfg: cfg}
	start := time.Now()
	quiet := logrus.New()
	quiet.SetLevel(logrus.WarnLevel)
	if l, ok := log.(*logrus.Logger); ok {
		quiet.SetOutput(l.Out)
	}

	w, err := grow.NewWithConfig(cfg, grow.WithLogger(quiet))
	if err != nil {
		c.err = err
		return c
	}
	if err := w.Run(ctx, 0); err != nil {
		c.err = err
		return c
	}
	m := w.Mesh()
	c.ticks = w.Ticks()
	c.vertices, c.faces = len(m.Vertices), len(m.Faces)
	c.radius, c.roughness = radiusStats(m)
	c.elapsed = time.Since(start)

	log.WithFields(logrus.Fields{
		"candidate": c.String(),
		"ticks":     c.ticks,
		"vertices":  c.vertices,
	}).Debug("sweep session finished")
	return c
}

// radiusStats returns the mean and standard deviation of vertex distance
// from the bounding box center.
func radiusStats(m mesh.Mesh) (mean, std float64) {
	box, ok := m.Bounds()
	if !ok {
		return 0, 0
	}
	center := box.Center()
	radii := make([]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		radii[i] = r3.Norm(r3.Sub(v, center))
	}
	return stat.MeanStdDev(radii, nil)
}
