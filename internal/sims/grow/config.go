package grow

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"

	"growfield/internal/growth"
	"growfield/internal/lattice"
	"growfield/internal/seed"
)

// ErrConfig reports an invalid configuration value.
var ErrConfig = errors.New("grow: invalid config")

// Config controls a growth session.
type Config struct {
	X int `toml:"x"`
	Y int `toml:"y"`
	Z int `toml:"z"`

	// Seed names the seed shape: ball or stick.
	Seed string `toml:"seed"`

	LimitMax float64 `toml:"limit_max"`
	LimitMin float64 `toml:"limit_min"`
	// Background fills cells the seed does not write. It follows LimitMax
	// unless set explicitly.
	Background    float64 `toml:"background"`
	HasBackground bool    `toml:"-"`

	Mode        string  `toml:"mode"`
	Immediate   bool    `toml:"immediate"`
	GrowSeconds float64 `toml:"grow_seconds"`
	FPS         float64 `toml:"fps"`

	Recenter bool   `toml:"recenter"`
	Object   string `toml:"object"`
	// MaxTicks stops a run that is still growing; 0 disables the cap.
	MaxTicks int `toml:"max_ticks"`
}

// DefaultConfig returns the standard configuration: a 32^3 ball grown over
// four seconds at 24 frames per second.
func DefaultConfig() Config {
	return Config{
		X:           32,
		Y:           32,
		Z:           32,
		Seed:        seed.Ball.String(),
		LimitMax:    4,
		LimitMin:    -4,
		Mode:        growth.Deterministic.String(),
		GrowSeconds: 4,
		FPS:         24,
		Recenter:    true,
		Object:      "shape",
		MaxTicks:    100000,
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Values that do not parse are ignored; values that parse but are out
// of range are kept so Validate rejects them.
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Merge(cfg)
}

// Merge returns c with the values in cfg applied on top, using the same keys
// as the TOML file plus "size" for a cube.
func (c Config) Merge(cfg map[string]string) Config {
	if len(cfg) == 0 {
		return c
	}
	setInt := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := cast.ToIntE(v); err == nil {
				*dst = parsed
			}
		}
	}
	setFloat := func(key string, dst *float64) bool {
		if v, ok := cfg[key]; ok {
			if parsed, err := cast.ToFloat64E(v); err == nil {
				*dst = parsed
				return true
			}
		}
		return false
	}
	setBool := func(key string, dst *bool) {
		if v, ok := cfg[key]; ok {
			if parsed, err := cast.ToBoolE(v); err == nil {
				*dst = parsed
			}
		}
	}

	setInt("x", &c.X)
	setInt("y", &c.Y)
	setInt("z", &c.Z)
	if v, ok := cfg["size"]; ok {
		if parsed, err := cast.ToIntE(v); err == nil {
			c.X, c.Y, c.Z = parsed, parsed, parsed
		}
	}
	if v, ok := cfg["seed"]; ok && v != "" {
		c.Seed = v
	}
	setFloat("limit_max", &c.LimitMax)
	setFloat("limit_min", &c.LimitMin)
	if setFloat("background", &c.Background) {
		c.HasBackground = true
	}
	if v, ok := cfg["mode"]; ok && v != "" {
		c.Mode = v
	}
	setBool("immediate", &c.Immediate)
	setFloat("grow_seconds", &c.GrowSeconds)
	setFloat("fps", &c.FPS)
	setBool("recenter", &c.Recenter)
	if v, ok := cfg["object"]; ok && v != "" {
		c.Object = v
	}
	setInt("max_ticks", &c.MaxTicks)
	return c
}

// LoadConfig reads a TOML file over DefaultConfig. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("grow: load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrConfig, path, strings.Join(keys, ", "))
	}
	c.HasBackground = md.IsDefined("background")
	return c, nil
}

// BackgroundValue is the value written into every cell before seeding.
func (c Config) BackgroundValue() float64 {
	if c.HasBackground {
		return c.Background
	}
	return c.LimitMax
}

// Lattice returns the configured lattice.
func (c Config) Lattice() (lattice.Lattice, error) {
	return lattice.New(c.X, c.Y, c.Z)
}

// Strategy parses the seed name.
func (c Config) Strategy() (seed.Strategy, error) {
	return seed.ParseStrategy(c.Seed)
}

// Timing returns the growth timing.
func (c Config) Timing() (growth.Timing, error) {
	mode, err := growth.ParseMode(c.Mode)
	if err != nil {
		return growth.Timing{}, err
	}
	t := growth.Timing{Mode: mode, GrowSeconds: c.GrowSeconds, FPS: c.FPS}
	if c.Immediate {
		// timing is unused when snapping, but keep it valid
		if t.GrowSeconds <= 0 {
			t.GrowSeconds = 1
		}
		if t.FPS <= 0 {
			t.FPS = 1
		}
	}
	return t, t.Validate()
}

// Validate checks every value before anything is allocated.
func (c Config) Validate() error {
	if _, err := c.Lattice(); err != nil {
		return err
	}
	if _, err := c.Strategy(); err != nil {
		return err
	}
	if _, err := c.Timing(); err != nil {
		return err
	}
	if c.LimitMin > c.LimitMax {
		return fmt.Errorf("%w: limit_min %g above limit_max %g", ErrConfig, c.LimitMin, c.LimitMax)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks %d", ErrConfig, c.MaxTicks)
	}
	if c.Object == "" {
		return fmt.Errorf("%w: empty object name", ErrConfig)
	}
	return nil
}
