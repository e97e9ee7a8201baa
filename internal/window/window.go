// Package window computes which notes of a chart are on screen at a given
// playback position.
package window

import (
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/marker"
	"git.lost.host/meutraa/feis/internal/timing"
)

// Margin is how long a note stays visible before its start and after its end.
var Margin = marker.Window()

// Contains reports whether a note's animation window covers position.
func Contains(note game.Note, conv timing.Converter, position float64) bool {
	start := conv.SecondsAt(note.Timing)
	if position <= start-Margin {
		return false
	}
	end := start
	if note.IsLong() {
		end = conv.SecondsAt(note.End())
	}
	return position < end+Margin
}

// Visible returns the notes shown at position. notes must be ordered by
// timing, which lets the scan stop at the first note that has not appeared yet.
func Visible(notes []game.Note, conv timing.Converter, position float64) []game.Note {
	var visible []game.Note
	for _, note := range notes {
		if position <= conv.SecondsAt(note.Timing)-Margin {
			break
		}
		if Contains(note, conv, position) {
			visible = append(visible, note)
		}
	}
	return visible
}
