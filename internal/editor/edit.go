package editor

import (
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/log"
	"git.lost.host/meutraa/feis/internal/longnote"
	"git.lost.host/meutraa/feis/internal/timing"
	"github.com/pkg/errors"
)

// Edit describes what a toggle did to the chart.
type Edit struct {
	Inserted *game.Note
	Removed  []game.Note
}

// ToggleAt deletes every visible note on lane, or creates a tap note on lane
// at the tick nearest to the cursor when none is visible there.
func (s *Session) ToggleAt(lane int) (Edit, error) {
	var edit Edit
	if !game.ValidLane(lane) {
		return edit, errors.Wrapf(game.ErrBadLane, "lane %d", lane)
	}
	c, ok := s.SelectedChart()
	if !ok {
		return edit, nil
	}
	conv := s.Converter()
	if !conv.Valid() {
		return edit, errors.Wrap(timing.ErrInvalidTempo, "toggling note")
	}

	for _, n := range s.visible {
		if n.Lane == lane && c.Remove(n) {
			edit.Removed = append(edit.Removed, n)
		}
	}
	if len(edit.Removed) == 0 {
		n := game.Tap(lane, conv.NearestTick(s.position))
		c.Insert(n)
		edit.Inserted = &n
	}
	s.refresh()
	s.log.Debug("note toggled", s.fields(log.Fields{
		"lane":     lane,
		"inserted": nil != edit.Inserted,
		"removed":  len(edit.Removed),
	}))
	return edit, nil
}

// PlaceLong puts a long note on lane at the cursor, its tail on tailLane.
func (s *Session) PlaceLong(lane, tailLane, length int) (game.Note, error) {
	c, ok := s.SelectedChart()
	if !ok {
		return game.Note{}, errors.New("no chart selected")
	}
	conv := s.Converter()
	if !conv.Valid() {
		return game.Note{}, errors.Wrap(timing.ErrInvalidTempo, "placing long note")
	}
	if length < 1 {
		return game.Note{}, errors.Errorf("long note length must be positive, got %d", length)
	}
	n := game.Long(lane, conv.NearestTick(s.position), length, tailLane)
	if err := n.Validate(); nil != err {
		return game.Note{}, err
	}
	c.Insert(n)
	s.refresh()
	return n, nil
}

// Frame is everything a renderer needs to draw one frame, computed from a
// single cursor position.
type Frame struct {
	Position float64
	Notes    []longnote.State
}

func (s *Session) Frame() (Frame, error) {
	f := Frame{Position: s.position}
	if len(s.visible) == 0 {
		return f, nil
	}
	conv := s.Converter()
	f.Notes = make([]longnote.State, 0, len(s.visible))
	for _, n := range s.visible {
		state, err := longnote.Resolve(n, conv, s.Marker, f.Position)
		if nil != err {
			return f, err
		}
		f.Notes = append(f.Notes, state)
	}
	return f, nil
}
