// Package export writes charts to other formats.
package export

import (
	"io"
	"math"

	"git.lost.host/meutraa/feis/internal/game"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

const (
	// BaseKey is the midi key of lane 0, lanes map to consecutive keys.
	BaseKey  = 60
	Velocity = 100
	Channel  = 0
)

type event struct {
	tick uint32
	on   bool
	key  uint8
}

// MIDI converts a chart to a single track standard midi file, one key per
// lane. Tap notes last a sixteenth note. The song offset has no midi
// equivalent and is left out.
func MIDI(fumen *game.Fumen, chart *game.Chart) (*smf.SMF, error) {
	if chart.Resolution < 1 || chart.Resolution > math.MaxInt16 {
		return nil, errors.Errorf("resolution %d does not fit a midi file", chart.Resolution)
	}
	if fumen.BPM <= 0 {
		return nil, errors.Errorf("cannot export a chart at %v BPM", fumen.BPM)
	}

	tap := uint32(chart.Resolution / 4)
	if tap < 1 {
		tap = 1
	}
	events := make([]event, 0, chart.Len()*2)
	for _, n := range chart.Notes() {
		key := uint8(BaseKey + n.Lane)
		end := uint32(n.End())
		if !n.IsLong() {
			end = uint32(n.Timing) + tap
		}
		events = append(events,
			event{tick: uint32(n.Timing), on: true, key: key},
			event{tick: end, key: key},
		)
	}
	// Releases go first so that a key pressed again on the same tick is heard
	slices.SortStableFunc(events, func(a, b event) bool {
		if a.tick != b.tick {
			return a.tick < b.tick
		}
		return !a.on && b.on
	})

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(chart.Name))
	track.Add(0, smf.MetaMeter(4, 4))
	track.Add(0, smf.MetaTempo(fumen.BPM))
	var last uint32
	for _, e := range events {
		msg := midi.NoteOff(Channel, e.key)
		if e.on {
			msg = midi.NoteOn(Channel, e.key, Velocity)
		}
		track.Add(e.tick-last, msg)
		last = e.tick
	}
	track.Close(0)

	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(chart.Resolution)
	if err := s.Add(track); nil != err {
		return nil, errors.Wrap(err, "unable to add midi track")
	}
	return s, nil
}

// WriteMIDI exports the named chart of fumen to w.
func WriteMIDI(w io.Writer, fumen *game.Fumen, name string) error {
	chart, ok := fumen.Chart(name)
	if !ok {
		return errors.Wrapf(game.ErrNoSuchChart, "%q", name)
	}
	s, err := MIDI(fumen, chart)
	if nil != err {
		return err
	}
	if _, err := s.WriteTo(w); nil != err {
		return errors.Wrap(err, "unable to write midi")
	}
	return nil
}
