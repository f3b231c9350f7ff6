package grow

import (
	"growfield/internal/core"
	"growfield/internal/growth"
)

// Parameters reports the session configuration grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	c := w.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("x", "Size X", c.X),
				core.IntParam("y", "Size Y", c.Y),
				core.IntParam("z", "Size Z", c.Z),
			},
			Summary: w.lat.String(),
		},
		{
			Name: "Seed",
			Params: []core.Parameter{
				core.StringParam("seed", "Shape", w.strategy.String()),
				core.FloatParam("limit_max", "Limit max", c.LimitMax),
				core.FloatParam("limit_min", "Limit min", c.LimitMin),
				core.FloatParam("background", "Background", c.BackgroundValue()),
			},
		},
		{
			Name: "Timing",
			Params: []core.Parameter{
				core.StringParam("mode", "Mode", w.state.Timing.Mode.String()),
				core.BoolParam("immediate", "Immediate", w.state.Immediate),
				core.FloatParam("grow_seconds", "Grow seconds", w.state.Timing.GrowSeconds),
				core.FloatParam("fps", "Frames per second", w.state.Timing.FPS),
				core.IntParam("max_ticks", "Max ticks", c.MaxTicks),
			},
		},
		{
			Name: "Publishing",
			Params: []core.Parameter{
				core.StringParam("object", "Object", c.Object),
				core.BoolParam("recenter", "Recenter", c.Recenter),
			},
		},
	}}
}

// ParameterControls lists the values that can change while growing.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "grow_seconds", Label: "Grow s", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, HasMin: true, Max: 120, HasMax: true},
		{Key: "fps", Label: "FPS", Type: core.ParamTypeFloat, Step: 1, Min: 1, HasMin: true, Max: 240, HasMax: true},
		{Key: "max_ticks", Label: "Max ticks", Type: core.ParamTypeInt, Step: 1000, Min: 0, HasMin: true},
	}
}

// SetFloatParameter updates a timing value in place. Growth already in
// progress continues at the new rate.
func (w *World) SetFloatParameter(key string, value float64) bool {
	next := w.state.Timing
	switch key {
	case "grow_seconds":
		next.GrowSeconds = value
	case "fps":
		next.FPS = value
	default:
		return false
	}
	if err := next.Validate(); err != nil {
		return false
	}
	w.state.Timing = next
	w.cfg.GrowSeconds, w.cfg.FPS = next.GrowSeconds, next.FPS
	return true
}

// SetIntParameter updates the tick cap.
func (w *World) SetIntParameter(key string, value int) bool {
	if key != "max_ticks" || value < 0 {
		return false
	}
	w.cfg.MaxTicks = value
	return true
}

// SetMode switches between deterministic and interactive timing. Switching
// to interactive restarts the clock so the next tick does not jump.
func (w *World) SetMode(m growth.Mode) bool {
	next := w.state.Timing
	next.Mode = m
	if err := next.Validate(); err != nil {
		return false
	}
	w.state.Timing = next
	w.cfg.Mode = m.String()
	if m == growth.Interactive {
		w.state.LastTick = w.now()
	}
	return true
}
