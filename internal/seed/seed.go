// Package seed writes the initial target field and the first growing cells.
package seed

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"growfield/internal/lattice"
)

// ErrUnknownStrategy reports a seed name that ParseStrategy does not know.
var ErrUnknownStrategy = errors.New("seed: unknown strategy")

// ErrFieldSize reports target or state slices that do not match the lattice.
var ErrFieldSize = errors.New("seed: field size does not match lattice")

const (
	// Interior is the target value written into seed cells.
	Interior = -1.0
	// Active is the growth progress of a cell that starts growing immediately.
	Active = 0.0

	ballRadius    = 3.0
	ballCoreLimit = 1.0
	stickLength   = 10
)

// Strategy selects the seed shape.
type Strategy int

const (
	// Ball grows a sphere from the lattice center.
	Ball Strategy = iota
	// Stick grows a short rod along X from the lattice midpoint.
	Stick
)

func (s Strategy) String() string {
	switch s {
	case Ball:
		return "ball"
	case Stick:
		return "stick"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy resolves a strategy by name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ball", "sphere":
		return Ball, nil
	case "stick", "rod":
		return Stick, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Summary counts what a seed wrote.
type Summary struct {
	// Active cells were set growing (state 0).
	Active int
	// Shaped cells received a target value without being activated.
	Shaped int
}

// Apply runs the strategy against target and state.
func Apply(s Strategy, lat lattice.Lattice, target, state []float64, limitMax, limitMin float64) (Summary, error) {
	switch s {
	case Ball:
		return BallSeed(lat, target, state, limitMax, limitMin)
	case Stick:
		return StickSeed(lat, target, state)
	}
	return Summary{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, s)
}

// BallSeed writes a distance field around the lattice center into every
// non-boundary cell: the distance minus three, rounded to two decimals and
// clamped to [limitMin, limitMax]. Cells closer than one unit to the center
// become interior and start growing. Boundary cells are left untouched.
func BallSeed(lat lattice.Lattice, target, state []float64, limitMax, limitMin float64) (Summary, error) {
	if err := checkFields(lat, target, state); err != nil {
		return Summary{}, err
	}
	cx := float64(lat.X-1) * 0.5
	cy := float64(lat.Y-1) * 0.5
	cz := float64(lat.Z-1) * 0.5

	var sum Summary
	for i, c := range lat.Coords() {
		if lat.IsBoundary(i) {
			continue
		}
		dx := cx - float64(c.X)
		dy := cy - float64(c.Y)
		dz := cz - float64(c.Z)
		dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if dist < ballCoreLimit {
			target[i] = Interior
			state[i] = Active
			sum.Active++
			continue
		}
		target[i] = clamp(round2(dist-ballRadius), limitMin, limitMax)
		sum.Shaped++
	}
	return sum, nil
}

// StickSeed activates the lattice midpoint and marks up to ten cells after it
// along X as interior. Only the midpoint is activated; the rest are reached by
// the growth front.
func StickSeed(lat lattice.Lattice, target, state []float64) (Summary, error) {
	if err := checkFields(lat, target, state); err != nil {
		return Summary{}, err
	}
	mid := Midpoint(lat)
	if !lat.Contains(mid) {
		return Summary{}, fmt.Errorf("%w: midpoint %d outside %s", lattice.ErrIndexRange, mid, lat)
	}
	state[mid] = Active
	target[mid] = Interior
	sum := Summary{Active: 1}
	for _, n := range lattice.AlongX(mid, stickLength, lat.X) {
		target[n] = Interior
		sum.Shaped++
	}
	return sum, nil
}

// Midpoint returns the index of the stick seed origin: x rounded half to even,
// y and z floored.
func Midpoint(lat lattice.Lattice) int {
	x := int(math.RoundToEven(float64(lat.X) * 0.5))
	y := lat.Y / 2
	z := lat.Z / 2
	return x + lat.X*y + lat.Level()*z
}

func checkFields(lat lattice.Lattice, target, state []float64) error {
	if err := lat.Validate(); err != nil {
		return err
	}
	if len(target) != lat.Len() || len(state) != lat.Len() {
		return fmt.Errorf("%w: target %d, state %d, lattice %s", ErrFieldSize, len(target), len(state), lat)
	}
	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}
