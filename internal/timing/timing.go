package timing

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidTempo is returned when a converter would divide by a zero tempo
// or resolution.
var ErrInvalidTempo = errors.New("bpm and resolution must be positive")

// Converter maps between ticks, beats and seconds for a single chart.
// Seconds are measured on the timeline, where tick 0 sits at -Offset.
type Converter struct {
	Resolution int     // Ticks per beat
	BPM        float64 // Beats per minute
	Offset     float64 // Seconds, may be negative
}

func New(resolution int, bpm, offset float64) (Converter, error) {
	c := Converter{Resolution: resolution, BPM: bpm, Offset: offset}
	if !c.Valid() {
		return c, errors.Wrapf(ErrInvalidTempo, "bpm %v, resolution %v", bpm, resolution)
	}
	return c, nil
}

func (c Converter) Valid() bool {
	return c.BPM > 0 && c.Resolution > 0 && !math.IsInf(c.BPM, 0) && !math.IsNaN(c.BPM)
}

func (c Converter) secondsPerTick() float64 {
	return 60.0 / (c.BPM * float64(c.Resolution))
}

// SecondsAt returns the timeline position of a tick.
func (c Converter) SecondsAt(tick int) float64 {
	return float64(tick)*c.secondsPerTick() - c.Offset
}

// TicksAt returns the fractional tick at a timeline position.
func (c Converter) TicksAt(seconds float64) float64 {
	return (seconds + c.Offset) * c.BPM * float64(c.Resolution) / 60.0
}

// NearestTick rounds TicksAt to an integer tick, never below 0.
func (c Converter) NearestTick(seconds float64) int {
	t := int(math.Round(c.TicksAt(seconds)))
	if t < 0 {
		return 0
	}
	return t
}

// TicksToSeconds is the length in seconds of a span of ticks.
func (c Converter) TicksToSeconds(ticks int) float64 {
	return float64(ticks) * c.secondsPerTick()
}

func (c Converter) BeatsAt(seconds float64) float64 {
	return (seconds + c.Offset) * c.BPM / 60.0
}

// ClampBPM floors an edited tempo at zero. A zero tempo leaves every
// converter invalid until it is corrected.
func ClampBPM(bpm float64) float64 {
	if bpm <= 0 || math.IsNaN(bpm) {
		return 0
	}
	return bpm
}
