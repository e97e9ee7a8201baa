package game

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	GridSize  = 4
	LaneCount = GridSize * GridSize
)

var (
	ErrBadLane = errors.New("lane out of grid")
	ErrBadTail = errors.New("tail must share a row or column with its note, 1 to 3 cells away")
)

// Direction is the side of the note the tail of a long note sits on.
type Direction int

const (
	TailAbove Direction = iota // the sustain travels down onto the note
	TailRight                  // travels left
	TailBelow                  // travels up
	TailLeft                   // travels right
)

func (d Direction) String() string {
	switch d {
	case TailAbove:
		return "down"
	case TailRight:
		return "left"
	case TailBelow:
		return "up"
	case TailLeft:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

type Note struct {
	Lane     int // Grid cell, 0..15 row major
	Timing   int // Tick of the note start
	Length   int // Ticks, 0 for a tap note
	TailLane int // Cell the sustain starts from, only meaningful when Length > 0
}

func Tap(lane, timing int) Note {
	return Note{Lane: lane, Timing: timing}
}

func Long(lane, timing, length, tailLane int) Note {
	return Note{Lane: lane, Timing: timing, Length: length, TailLane: tailLane}
}

func (n Note) IsLong() bool {
	return n.Length > 0
}

func (n Note) End() int {
	return n.Timing + n.Length
}

func (n Note) X() int { return n.Lane % GridSize }
func (n Note) Y() int { return n.Lane / GridSize }

func (n Note) TailX() int { return n.TailLane % GridSize }
func (n Note) TailY() int { return n.TailLane / GridSize }

// Before orders notes by timing, then lane.
func (n Note) Before(o Note) bool {
	if n.Timing != o.Timing {
		return n.Timing < o.Timing
	}
	return n.Lane < o.Lane
}

func (n Note) SameCell(o Note) bool {
	return n.Timing == o.Timing && n.Lane == o.Lane
}

func ValidLane(lane int) bool {
	return lane >= 0 && lane < LaneCount
}

// Validate checks the grid invariants a note must hold inside a chart.
func (n Note) Validate() error {
	if !ValidLane(n.Lane) {
		return errors.Wrapf(ErrBadLane, "lane %d", n.Lane)
	}
	if n.Timing < 0 || n.Length < 0 {
		return errors.Errorf("negative timing or length: %d, %d", n.Timing, n.Length)
	}
	if n.IsLong() {
		if _, err := TailPosition(n.Lane, n.TailLane); nil != err {
			return err
		}
	}
	return nil
}

// TailPosition encodes the tail of a long note relative to its note:
// position%4 is the Direction, position/4+1 the distance in cells.
func TailPosition(lane, tailLane int) (int, error) {
	if !ValidLane(lane) || !ValidLane(tailLane) {
		return 0, errors.Wrapf(ErrBadLane, "lane %d, tail %d", lane, tailLane)
	}
	dx := tailLane%GridSize - lane%GridSize
	dy := tailLane/GridSize - lane/GridSize
	var dir Direction
	var dist int
	switch {
	case dx == 0 && dy < 0:
		dir, dist = TailAbove, -dy
	case dy == 0 && dx > 0:
		dir, dist = TailRight, dx
	case dx == 0 && dy > 0:
		dir, dist = TailBelow, dy
	case dy == 0 && dx < 0:
		dir, dist = TailLeft, -dx
	default:
		return 0, errors.Wrapf(ErrBadTail, "lane %d, tail %d", lane, tailLane)
	}
	return (dist-1)*4 + int(dir), nil
}

// TailLaneFrom decodes a relative tail position back into a grid cell.
func TailLaneFrom(lane, position int) (int, error) {
	if !ValidLane(lane) || position < 0 || position > 11 {
		return 0, errors.Wrapf(ErrBadTail, "lane %d, position %d", lane, position)
	}
	x, y := lane%GridSize, lane/GridSize
	dist := position/4 + 1
	switch Direction(position % 4) {
	case TailAbove:
		y -= dist
	case TailRight:
		x += dist
	case TailBelow:
		y += dist
	case TailLeft:
		x -= dist
	}
	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		return 0, errors.Wrapf(ErrBadTail, "lane %d, position %d leaves the grid", lane, position)
	}
	return x + GridSize*y, nil
}

// Direction of the tail. Only defined for valid long notes.
func (n Note) Direction() (Direction, error) {
	p, err := TailPosition(n.Lane, n.TailLane)
	if nil != err {
		return 0, err
	}
	return Direction(p % 4), nil
}
