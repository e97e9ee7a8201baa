package game

import (
	"sort"

	"golang.org/x/exp/slices"
)

const DefaultResolution = 240

// Chart is one difficulty of a song. Notes are kept ordered by timing then
// lane, and no two notes share the same (timing, lane) cell.
type Chart struct {
	Name       string
	Level      int
	Resolution int // Ticks per beat

	notes []Note
}

func NewChart(name string, level, resolution int) *Chart {
	if resolution < 1 {
		resolution = 1
	}
	return &Chart{Name: name, Level: level, Resolution: resolution}
}

// Notes returns the ordered notes. The slice must not be modified.
func (c *Chart) Notes() []Note {
	return c.notes
}

func (c *Chart) Len() int {
	return len(c.notes)
}

func (c *Chart) search(n Note) (int, bool) {
	i := sort.Search(len(c.notes), func(i int) bool {
		return !c.notes[i].Before(n)
	})
	return i, i < len(c.notes) && c.notes[i].SameCell(n)
}

// Insert adds a note, replacing any note already in the same cell at the same
// tick. It reports whether a note was replaced.
func (c *Chart) Insert(n Note) bool {
	i, found := c.search(n)
	if found {
		c.notes[i] = n
		return true
	}
	c.notes = slices.Insert(c.notes, i, n)
	return false
}

// Remove deletes the note sharing n's cell and tick.
func (c *Chart) Remove(n Note) bool {
	i, found := c.search(n)
	if !found {
		return false
	}
	c.notes = slices.Delete(c.notes, i, i+1)
	return true
}

func (c *Chart) Find(lane, timing int) (Note, bool) {
	i, found := c.search(Note{Lane: lane, Timing: timing})
	if !found {
		return Note{}, false
	}
	return c.notes[i], true
}

// LastTick is the tick the last sustain or tap ends on.
func (c *Chart) LastTick() int {
	last := 0
	for _, n := range c.notes {
		if n.End() > last {
			last = n.End()
		}
	}
	return last
}

func (c *Chart) NoteCount() int {
	return len(c.notes)
}

func (c *Chart) LongCount() int {
	count := 0
	for _, n := range c.notes {
		if n.IsLong() {
			count++
		}
	}
	return count
}

// Clone copies the chart, notes included.
func (c *Chart) Clone() *Chart {
	cc := *c
	cc.notes = slices.Clone(c.notes)
	return &cc
}
