package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"growfield/internal/mesh"
	"growfield/internal/record"
	"growfield/internal/sims/grow"
)

type runFlags struct {
	video    string
	obj      string
	interval time.Duration
	width    int
	height   int
	scale    float64
}

func newRunCmd(o *options) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Grow a shape headless.",
		Long: `run grows the configured seed until every cell reaches its target.
In deterministic mode each tick renders one scene frame; --record writes those
frames to an MJPEG AVI file. --obj saves the final placed surface.`,
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return o.run(ctx, cmd, f)
		},
	}
	bindConfigFlags(cmd.Flags())
	fs := cmd.Flags()
	fs.StringVar(&f.video, "record", "", "write frames to this AVI file")
	fs.StringVar(&f.obj, "obj", "", "write the final surface to this OBJ file")
	fs.DurationVar(&f.interval, "interval", 0, "wall time between ticks, 0 runs as fast as possible")
	def := record.DefaultOptions()
	fs.IntVar(&f.width, "width", def.Width, "video width in pixels")
	fs.IntVar(&f.height, "height", def.Height, "video height in pixels")
	fs.Float64Var(&f.scale, "scale", def.Scale, "video pixels per lattice unit")
	return cmd
}

func (o *options) run(ctx context.Context, cmd *cobra.Command, f runFlags) (err error) {
	w, err := o.world(cmd.Flags())
	if err != nil {
		return err
	}
	cfg := w.Config()

	var rec *record.Recorder
	if f.video != "" {
		opts := record.DefaultOptions()
		opts.Width, opts.Height, opts.Scale = f.width, f.height, f.scale
		opts.FPS = max(int(math.Round(cfg.FPS)), 1)
		if rec, err = record.Open(f.video, opts, o.log); err != nil {
			return err
		}
		defer func() {
			if cerr := rec.Close(); err == nil {
				err = cerr
			}
		}()
		w.Scene().SetRenderer(rec)
	}

	if err := w.Run(ctx, f.interval); err != nil {
		return err
	}
	// immediate and interactive runs never advance frames
	if rec != nil && rec.Frames() == 0 && !w.Mesh().Empty() {
		if err := w.Scene().RenderFrame(); err != nil {
			return err
		}
	}

	if f.obj != "" {
		if err := writePlacedOBJ(w, f.obj); err != nil {
			return err
		}
	}

	m := w.Mesh()
	cmd.Printf("%s %s: %d ticks, %d vertices, %d faces\n",
		cfg.Seed, w.Lattice(), w.Ticks(), len(m.Vertices), len(m.Faces))
	if rec != nil {
		o.log.WithFields(logrus.Fields{"file": f.video, "frames": rec.Frames()}).Info("video written")
	}
	return nil
}

// writePlacedOBJ saves the scene object with its offset applied.
func writePlacedOBJ(w *grow.World, path string) (err error) {
	obj, err := w.Scene().Object(w.Config().Object)
	if err != nil {
		return err
	}
	if len(obj.Vertices) == 0 {
		return fmt.Errorf("grow: write %s: %w", path, mesh.ErrEmptyGeometry)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()
	return mesh.WriteOBJ(fh, mesh.Mesh{Vertices: obj.Placed(), Faces: obj.Faces}, obj.Name)
}
