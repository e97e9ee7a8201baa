// Package marker resolves which frame of a note marker animation is shown
// at a given offset from the note.
package marker

import (
	"fmt"
	"math"
	"strings"
)

const (
	FPS            = 30
	ApproachFrames = 16
	EndingFrames   = 16
)

// EndingState selects the animation played once the note has passed.
type EndingState int

const (
	Miss EndingState = iota
	Early
	Good
	Perfect
)

var endingNames = [...]string{"MISS", "EARLY", "GOOD", "PERFECT"}

func (s EndingState) String() string {
	if s < 0 || int(s) >= len(endingNames) {
		return fmt.Sprintf("EndingState(%d)", int(s))
	}
	return endingNames[s]
}

func ParseEndingState(s string) (EndingState, error) {
	for i, name := range endingNames {
		if strings.EqualFold(name, s) {
			return EndingState(i), nil
		}
	}
	return Perfect, fmt.Errorf("unknown marker ending state %q", s)
}

// Frame identifies a sprite of the marker animation.
type Frame struct {
	Ending bool        // Approach frames come before the note, ending frames after
	State  EndingState // Only set for ending frames
	Index  int
}

// FrameAt is the animation frame number for an offset in seconds.
func FrameAt(offset float64) int {
	return int(math.Floor(offset * FPS))
}

type Marker struct {
	Ending EndingState
}

// At returns the frame shown at offset seconds from the note, and false once
// the animation is over or has not started yet.
func (m Marker) At(offset float64) (Frame, bool) {
	frame := FrameAt(offset)
	switch {
	case frame >= -ApproachFrames && frame < 0:
		return Frame{Index: frame + ApproachFrames}, true
	case frame >= 0 && frame < EndingFrames:
		return Frame{Ending: true, State: m.Ending, Index: frame}, true
	}
	return Frame{}, false
}

// Window is how long before and after a note its marker is animated.
func Window() float64 {
	return float64(ApproachFrames) / FPS
}
