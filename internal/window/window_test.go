package window

import (
	"math/rand"
	"testing"

	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/timing"
	"github.com/stretchr/testify/assert"
)

var conv = timing.Converter{Resolution: 240, BPM: 120, Offset: 0}

func fullScan(notes []game.Note, conv timing.Converter, position float64) []game.Note {
	var visible []game.Note
	for _, note := range notes {
		if Contains(note, conv, position) {
			visible = append(visible, note)
		}
	}
	return visible
}

func randomChart(r *rand.Rand, count int) *game.Chart {
	c := game.NewChart("EXT", 1, 240)
	for i := 0; i < count; i++ {
		lane := r.Intn(game.LaneCount)
		tick := r.Intn(240 * 64)
		if r.Intn(4) == 0 {
			// Tail one cell above, or below on the first row
			tail := lane - 4
			if tail < 0 {
				tail = lane + 4
			}
			c.Insert(game.Long(lane, tick, 1+r.Intn(240*4), tail))
		} else {
			c.Insert(game.Tap(lane, tick))
		}
	}
	return c
}

func TestTapNoteWindow(t *testing.T) {
	c := game.NewChart("BSC", 1, 240)
	note := game.Tap(5, 240)
	c.Insert(note)

	visibleAt := func(p float64) bool {
		return len(Visible(c.Notes(), conv, p)) == 1
	}

	assert := assert.New(t)
	assert.True(visibleAt(0.5))
	assert.True(visibleAt(0.5 - 0.5))
	assert.True(visibleAt(0.5 + 0.5))
	assert.True(visibleAt(0.5 - 16.0/30 + 0.001))
	assert.True(visibleAt(0.5 + 16.0/30 - 0.001))
	assert.False(visibleAt(0.5 + 0.6))
	assert.False(visibleAt(0.5 - 0.6))
}

func TestLongNoteStaysVisibleUntilEnd(t *testing.T) {
	c := game.NewChart("BSC", 1, 240)
	c.Insert(game.Long(5, 240, 480, 1))

	assert := assert.New(t)
	assert.Len(Visible(c.Notes(), conv, 1.2), 1)
	assert.Len(Visible(c.Notes(), conv, 1.5+0.5), 1)
	assert.Len(Visible(c.Notes(), conv, 1.5+0.6), 0)
}

func TestMatchesFullScan(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	c := randomChart(r, 400)
	for p := -1.0; p < 35; p += 0.01 {
		assert.Equal(t, fullScan(c.Notes(), conv, p), Visible(c.Notes(), conv, p), "position %v", p)
	}
}

// Moving forward, a note only leaves the visible set once its window closed.
func TestNoSpuriousDrops(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	c := randomChart(r, 200)
	previous := map[game.Note]bool{}
	for p := -1.0; p < 35; p += 1.0 / 60 {
		current := map[game.Note]bool{}
		for _, n := range Visible(c.Notes(), conv, p) {
			current[n] = true
		}
		for n := range previous {
			if !current[n] && Contains(n, conv, p) {
				t.Log("position", p)
				t.Log("dropped ", n)
				t.Fail()
			}
		}
		for n := range current {
			assert.True(t, Contains(n, conv, p))
		}
		previous = current
	}
}

var result []game.Note

func BenchmarkVisible(b *testing.B) {
	c := randomChart(rand.New(rand.NewSource(3)), 2000)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		result = Visible(c.Notes(), conv, 10)
	}
}

func BenchmarkFullScan(b *testing.B) {
	c := randomChart(rand.New(rand.NewSource(3)), 2000)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		result = fullScan(c.Notes(), conv, 10)
	}
}
