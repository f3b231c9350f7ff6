package app

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim    string
	Scale  int
	TPS    int
	HUD    int
	Params map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "ball", Scale: 12, TPS: 30, HUD: 240, Params: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (ball, stick)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.HUD, "hud", c.HUD, "HUD panel width in pixels, 0 hides it")
	fs.StringToStringVarP(&c.Params, "set", "p", c.Params, "sim config values, e.g. -p size=24,mode=interactive")
}

// Validate checks the parsed values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sim) == "" {
		return fmt.Errorf("app: empty sim name")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("app: scale %d must be positive", c.Scale)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("app: tps %d must be positive", c.TPS)
	}
	if c.HUD < 0 {
		c.HUD = 0
	}
	return nil
}
