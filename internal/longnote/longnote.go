// Package longnote resolves the animation state and geometry of a note at a
// playback position. Geometry is expressed in grid cells, (0, 0) being the
// top left corner of the playfield.
package longnote

import (
	"git.lost.host/meutraa/feis/internal/affine"
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/marker"
	"git.lost.host/meutraa/feis/internal/timing"
	"github.com/pkg/errors"
)

// HoldFrame is the first frame at which a held sustain tightens its overlap
// with the note.
const HoldFrame = 8

const (
	approachMargin = 1.0
	holdMargin     = 0.9
)

var ErrBadDirection = errors.New("invalid long note direction")

type Kind int

const (
	Tap     Kind = iota
	Sustain      // long note that has not ended yet
	Ended        // long note past its end
)

type Phase int

const (
	Approach Phase = iota
	Hold
)

type Point struct {
	X, Y float64
}

type Rect struct {
	Pos, Size Point
}

// Empty reports whether the rectangle has nothing to draw.
func (r Rect) Empty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

type State struct {
	Note game.Note
	Kind Kind

	NoteOffset    float64 // Seconds since the note start, negative before it
	TailEndOffset float64 // Seconds since the sustain end
	Frame         int

	// Marker is the sprite drawn on the note cell: the approach or ending
	// animation for taps and sustains, the ending animation once a sustain is over.
	Marker        marker.Frame
	MarkerVisible bool

	// Only set for sustains
	Direction game.Direction
	Phase     Phase
	Triangle  Point
	Tail      Rect
}

// Resolve computes what to draw for note at position.
func Resolve(note game.Note, conv timing.Converter, m marker.Marker, position float64) (State, error) {
	s := State{
		Note:       note,
		NoteOffset: position - conv.SecondsAt(note.Timing),
	}
	s.Frame = marker.FrameAt(s.NoteOffset)

	if !note.IsLong() {
		s.Kind = Tap
		s.Marker, s.MarkerVisible = m.At(s.NoteOffset)
		return s, nil
	}

	if !conv.Valid() {
		return s, errors.Wrap(timing.ErrInvalidTempo, "resolving long note")
	}

	tailEnd := conv.SecondsAt(note.End())
	s.TailEndOffset = position - tailEnd

	if position >= tailEnd {
		s.Kind = Ended
		if s.TailEndOffset > 0 {
			s.Marker, s.MarkerVisible = m.At(s.TailEndOffset)
		}
		return s, nil
	}

	s.Kind = Sustain
	dir, err := note.Direction()
	if nil != err {
		return s, errors.Wrapf(ErrBadDirection, "%v: %v", note, err)
	}
	s.Direction = dir
	s.Marker, s.MarkerVisible = m.At(s.NoteOffset)

	duration := conv.TicksToSeconds(note.Length)
	xt, err := affine.New(0, duration, float64(note.TailX()), float64(note.X()))
	if nil != err {
		return s, err
	}
	yt, err := affine.New(0, duration, float64(note.TailY()), float64(note.Y()))
	if nil != err {
		return s, err
	}
	s.Triangle = Point{X: xt.ClampedTransform(s.NoteOffset), Y: yt.ClampedTransform(s.NoteOffset)}

	s.Phase = Approach
	if s.Frame >= HoldFrame {
		s.Phase = Hold
	}
	s.Tail, err = tailRect(dir, s.Phase, note.X(), note.Y(), s.Triangle)
	return s, err
}

// tailRect spans the sustain from the triangle to the edge of the note cell.
// Before the hold begins it starts at the triangle's far edge, during the hold
// it overlaps the triangle slightly.
func tailRect(dir game.Direction, phase Phase, x, y int, t Point) (Rect, error) {
	margin := approachMargin
	if phase == Hold {
		margin = holdMargin
	}
	fx, fy := float64(x), float64(y)
	switch dir {
	case game.TailAbove:
		return Rect{Pos: Point{fx, t.Y + margin}, Size: Point{1, fy - t.Y - margin}}, nil
	case game.TailRight:
		return Rect{Pos: Point{fx + 1, fy}, Size: Point{t.X - fx - margin, 1}}, nil
	case game.TailBelow:
		return Rect{Pos: Point{fx, fy + 1}, Size: Point{1, t.Y - fy - margin}}, nil
	case game.TailLeft:
		return Rect{Pos: Point{t.X + margin, fy}, Size: Point{fx - t.X - margin, 1}}, nil
	}
	return Rect{}, errors.Wrapf(ErrBadDirection, "%v", dir)
}
