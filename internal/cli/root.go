// Package cli holds the commands of the grow tool: headless runs that write
// video and OBJ output, timing sweeps, a terminal viewer and a parameter
// dump.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"growfield/internal/sims/grow"
)

// overrides maps command-line flags onto config keys. A flag only replaces
// the config value when it was set explicitly.
var overrides = []struct{ flag, key string }{
	{"size", "size"},
	{"seed", "seed"},
	{"mode", "mode"},
	{"immediate", "immediate"},
	{"grow-seconds", "grow_seconds"},
	{"fps", "fps"},
	{"recenter", "recenter"},
	{"object", "object"},
	{"max-ticks", "max_ticks"},
}

type options struct {
	configPath string
	logLevel   string
	set        map[string]string

	log *logrus.Logger
}

// NewRoot builds the grow command tree. Output and logs go to out.
func NewRoot(out io.Writer) *cobra.Command {
	o := &options{set: map[string]string{}, log: logrus.New()}
	o.log.SetOutput(out)
	o.log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	root := &cobra.Command{
		Use:   "grow",
		Short: "Grow a shape through a 3-D lattice and publish its surface.",
		Long: `grow seeds a scalar field on a 3-D lattice and lets the shape spread
outward cell by cell until every cell reaches its target value. Each tick the
field is meshed with surface nets and published to a scene.

Configuration comes from a TOML file given with --config. Flags that are set
explicitly override the file, and --set key=value pairs override both.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			lvl, err := logrus.ParseLevel(o.logLevel)
			if err != nil {
				return err
			}
			o.log.SetLevel(lvl)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "TOML configuration file")
	pf.StringVar(&o.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringToStringVarP(&o.set, "set", "p", o.set, "config values, e.g. -p limit_max=6,background=3")

	for _, cmd := range []*cobra.Command{
		newRunCmd(o),
		newSweepCmd(o),
		newWatchCmd(o),
		newParamsCmd(o),
	} {
		root.AddCommand(cmd)
	}
	return root
}

// bindConfigFlags registers the flags that override config values.
func bindConfigFlags(fs *pflag.FlagSet) {
	d := grow.DefaultConfig()
	fs.Int("size", d.X, "lattice edge length in cells")
	fs.String("seed", d.Seed, "seed shape (ball, stick)")
	fs.String("mode", d.Mode, "timing mode (deterministic, interactive)")
	fs.Bool("immediate", d.Immediate, "snap to the target in one tick")
	fs.Float64("grow-seconds", d.GrowSeconds, "seconds for one cell to grow")
	fs.Float64("fps", d.FPS, "frames per second in deterministic mode")
	fs.Bool("recenter", d.Recenter, "center the mesh over the origin")
	fs.String("object", d.Object, "scene object name")
	fs.Int("max-ticks", d.MaxTicks, "stop after this many ticks, 0 for no limit")
}

// config loads the file (or the defaults), then applies changed flags and
// --set values in that order.
func (o *options) config(fs *pflag.FlagSet) (grow.Config, error) {
	c := grow.DefaultConfig()
	if o.configPath != "" {
		var err error
		if c, err = grow.LoadConfig(o.configPath); err != nil {
			return grow.Config{}, err
		}
	}
	changed := map[string]string{}
	for _, ov := range overrides {
		if f := fs.Lookup(ov.flag); f != nil && f.Changed {
			changed[ov.key] = f.Value.String()
		}
	}
	c = c.Merge(changed).Merge(o.set)
	if err := c.Validate(); err != nil {
		return grow.Config{}, err
	}
	return c, nil
}

func (o *options) world(fs *pflag.FlagSet, opts ...grow.Option) (*grow.World, error) {
	c, err := o.config(fs)
	if err != nil {
		return nil, err
	}
	w, err := grow.NewWithConfig(c, append([]grow.Option{grow.WithLogger(o.log)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("grow: start session: %w", err)
	}
	return w, nil
}
