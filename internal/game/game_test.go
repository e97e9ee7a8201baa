package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tailTests = []struct {
	lane, tail, position int
	dir                  Direction
}{
	{lane: 5, tail: 1, position: 0, dir: TailAbove},
	{lane: 5, tail: 6, position: 1, dir: TailRight},
	{lane: 5, tail: 13, position: 6, dir: TailBelow},
	{lane: 5, tail: 4, position: 3, dir: TailLeft},
	{lane: 0, tail: 3, position: 9, dir: TailRight},
	{lane: 15, tail: 3, position: 8, dir: TailAbove},
	{lane: 12, tail: 0, position: 8, dir: TailAbove},
}

func TestTailPosition(t *testing.T) {
	for _, test := range tailTests {
		p, err := TailPosition(test.lane, test.tail)
		require.NoError(t, err)
		assert.Equal(t, test.position, p, "lane %d tail %d", test.lane, test.tail)

		back, err := TailLaneFrom(test.lane, p)
		require.NoError(t, err)
		assert.Equal(t, test.tail, back)

		dir, err := Long(test.lane, 0, 10, test.tail).Direction()
		require.NoError(t, err)
		assert.Equal(t, test.dir, dir)
	}
}

func TestBadTails(t *testing.T) {
	for _, pair := range [][2]int{{5, 5}, {5, 0}, {5, 10}, {0, 16}, {-1, 0}} {
		_, err := TailPosition(pair[0], pair[1])
		assert.True(t, errors.Is(err, ErrBadTail) || errors.Is(err, ErrBadLane), "%v", pair)
	}
	// Going three cells up from the second row leaves the grid
	_, err := TailLaneFrom(4, 8)
	assert.True(t, errors.Is(err, ErrBadTail))
	_, err = TailLaneFrom(4, 12)
	assert.True(t, errors.Is(err, ErrBadTail))
}

func TestChartKeepsOrderAndUniqueness(t *testing.T) {
	c := NewChart("EXT", 10, DefaultResolution)
	c.Insert(Tap(3, 480))
	c.Insert(Tap(0, 240))
	c.Insert(Tap(15, 240))
	c.Insert(Tap(1, 0))

	assert := assert.New(t)
	assert.Equal([]Note{Tap(1, 0), Tap(0, 240), Tap(15, 240), Tap(3, 480)}, c.Notes())

	replaced := c.Insert(Long(0, 240, 120, 1))
	assert.True(replaced)
	assert.Equal(4, c.Len())
	n, ok := c.Find(0, 240)
	assert.True(ok)
	assert.Equal(120, n.Length)

	assert.True(c.Remove(Tap(15, 240)))
	assert.False(c.Remove(Tap(15, 240)))
	assert.Equal(3, c.Len())
	assert.Equal(480, c.LastTick())
	assert.Equal(1, c.LongCount())
}

func TestLastTickUsesSustainEnd(t *testing.T) {
	c := NewChart("BSC", 1, 0)
	assert.Equal(t, 1, c.Resolution)
	c.Insert(Long(5, 100, 1000, 1))
	c.Insert(Tap(2, 500))
	assert.Equal(t, 1100, c.LastTick())
}

func TestFumenCharts(t *testing.T) {
	f := NewFumen("song.memon")
	require.NoError(t, f.AddChart(NewChart("foo", 1, 240)))
	require.NoError(t, f.AddChart(NewChart("EXT", 9, 240)))
	require.NoError(t, f.AddChart(NewChart("BSC", 3, 240)))

	assert := assert.New(t)
	assert.Equal([]string{"BSC", "EXT", "foo"}, f.ChartNames())
	assert.True(errors.Is(f.AddChart(NewChart("BSC", 1, 240)), ErrChartExists))

	assert.True(errors.Is(f.RenameChart("foo", "EXT", 2), ErrChartExists))
	c, ok := f.Chart("foo")
	assert.True(ok)
	assert.Equal(1, c.Level)

	assert.NoError(f.RenameChart("foo", "ADV", 5))
	_, ok = f.Chart("foo")
	assert.False(ok)
	c, ok = f.Chart("ADV")
	assert.True(ok)
	assert.Equal("ADV", c.Name)
	assert.Equal(5, c.Level)
	assert.Equal([]string{"BSC", "ADV", "EXT"}, f.ChartNames())

	assert.NoError(f.RenameChart("ADV", "ADV", 6))
	assert.True(errors.Is(f.RemoveChart("nope"), ErrNoSuchChart))
}

func TestSnapNames(t *testing.T) {
	names := map[int]string{1: "4th", 2: "8th", 3: "12th", 4: "16th", 6: "24th", 8: "32nd", 16: "64th", 48: "192nd"}
	for snap, name := range names {
		assert.Equal(t, name, SnapName(snap))
	}
	assert.Equal(t, "1st", Ordinal(1))
	assert.Equal(t, "11th", Ordinal(11))
	assert.Equal(t, "23rd", Ordinal(23))
}

func TestSnapLines(t *testing.T) {
	assert.Equal(t, 60, SnapTick(1, 240, 4))
	assert.Equal(t, 34, SnapTick(1, 240, 7))
	assert.Equal(t, 69, SnapTick(2, 240, 7))
	assert.Equal(t, 240, SnapTick(7, 240, 7))
	assert.Equal(t, 480, SnapTick(14, 240, 7))
	assert.Equal(t, -34, SnapTick(-1, 240, 7))
	assert.Equal(t, 0, SnapTick(1, 4, 64))

	assert.InDelta(t, 7.0, SnapLine(240, 240, 7), 1e-9)
	assert.InDelta(t, 0.5, SnapLine(30, 240, 4), 1e-9)
}

func TestSubdivision(t *testing.T) {
	for timing, expected := range map[int]int{0: 1, 480: 1, 120: 2, 80: 3, 60: 4, 30: 8, 250: 24, 1: 240} {
		if s := Subdivision(timing, 240); s != expected {
			t.Log("timing  ", timing)
			t.Log("got     ", s)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}
