package game

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	ErrChartExists = errors.New("chart name has to be unique")
	ErrNoSuchChart = errors.New("no such chart")
	ErrEmptyName   = errors.New("chart name is empty")
)

// Fumen holds a song's metadata and every chart written for it.
type Fumen struct {
	Path       string // Memon file backing this song, may be empty
	Title      string
	Artist     string
	MusicPath  string // Relative to the directory of Path
	JacketPath string // Relative to the directory of Path
	BPM        float64
	Offset     float64 // Seconds

	charts map[string]*Chart
}

func NewFumen(path string) *Fumen {
	return &Fumen{Path: path, BPM: 120, charts: map[string]*Chart{}}
}

// ChartNames lists charts, standard difficulties first.
func (f *Fumen) ChartNames() []string {
	names := make([]string, 0, len(f.charts))
	for name := range f.charts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := DifficultyRank(names[i]), DifficultyRank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

func (f *Fumen) Chart(name string) (*Chart, bool) {
	c, ok := f.charts[name]
	return c, ok
}

func (f *Fumen) ChartCount() int {
	return len(f.charts)
}

func (f *Fumen) AddChart(c *Chart) error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if _, ok := f.charts[c.Name]; ok {
		return errors.Wrapf(ErrChartExists, "%q", c.Name)
	}
	if nil == f.charts {
		f.charts = map[string]*Chart{}
	}
	f.charts[c.Name] = c
	return nil
}

func (f *Fumen) RemoveChart(name string) error {
	if _, ok := f.charts[name]; !ok {
		return errors.Wrapf(ErrNoSuchChart, "%q", name)
	}
	delete(f.charts, name)
	return nil
}

// RenameChart changes a chart's name and level. Nothing changes when the new
// name is taken by another chart.
func (f *Fumen) RenameChart(name, newName string, level int) error {
	c, ok := f.charts[name]
	if !ok {
		return errors.Wrapf(ErrNoSuchChart, "%q", name)
	}
	if newName == "" {
		return ErrEmptyName
	}
	if other, ok := f.charts[newName]; ok && other != c {
		return errors.Wrapf(ErrChartExists, "%q", newName)
	}
	delete(f.charts, name)
	c.Name = newName
	c.Level = level
	f.charts[newName] = c
	return nil
}
