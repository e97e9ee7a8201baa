package editor

import (
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/log"
	"git.lost.host/meutraa/feis/internal/timing"
	"github.com/pkg/errors"
)

// SelectedChart resolves the selected chart handle against the fumen. A
// handle whose chart disappeared is dropped.
func (s *Session) SelectedChart() (*game.Chart, bool) {
	if s.selected == "" {
		return nil, false
	}
	c, ok := s.Fumen.Chart(s.selected)
	if !ok {
		s.selected = ""
		return nil, false
	}
	return c, true
}

func (s *Session) SelectChart(name string) error {
	if _, ok := s.Fumen.Chart(name); !ok {
		return errors.Wrapf(game.ErrNoSuchChart, "%q", name)
	}
	s.selected = name
	s.RecomputeRuntime()
	return nil
}

// NewChart adds an empty chart to the fumen and selects it.
func (s *Session) NewChart(name string, level, resolution int) error {
	if resolution < 1 {
		return errors.Errorf("resolution must be positive, got %d", resolution)
	}
	if err := s.Fumen.AddChart(game.NewChart(name, level, resolution)); nil != err {
		return err
	}
	s.log.Info("chart created", s.fields(log.Fields{"chart": name}))
	return s.SelectChart(name)
}

// CopySelectedChart adds a copy of the selected chart, notes included, and
// selects the copy.
func (s *Session) CopySelectedChart(name string) error {
	c, ok := s.SelectedChart()
	if !ok {
		return errors.New("no chart selected")
	}
	cc := c.Clone()
	cc.Name = name
	if err := s.Fumen.AddChart(cc); nil != err {
		return err
	}
	s.log.Info("chart copied", s.fields(log.Fields{"from": c.Name, "chart": name}))
	return s.SelectChart(name)
}

// RenameSelectedChart changes the name and level of the selected chart. On
// failure neither the fumen nor the selection change.
func (s *Session) RenameSelectedChart(name string, level int) error {
	c, ok := s.SelectedChart()
	if !ok {
		return errors.New("no chart selected")
	}
	if err := s.Fumen.RenameChart(c.Name, name, level); nil != err {
		return err
	}
	s.selected = name
	return nil
}

func (s *Session) RemoveSelectedChart() error {
	c, ok := s.SelectedChart()
	if !ok {
		return errors.New("no chart selected")
	}
	if err := s.Fumen.RemoveChart(c.Name); nil != err {
		return err
	}
	s.selected = ""
	if names := s.Fumen.ChartNames(); len(names) > 0 {
		s.selected = names[0]
	}
	s.RecomputeRuntime()
	return nil
}

// SetBPM edits the tempo. Negative tempos are floored at 0, which leaves the
// timeline frozen until a valid tempo is set.
func (s *Session) SetBPM(bpm float64) {
	s.Fumen.BPM = timing.ClampBPM(bpm)
	s.RecomputeRuntime()
}

func (s *Session) SetOffset(offset float64) {
	s.Fumen.Offset = offset
	s.RecomputeRuntime()
}

func (s *Session) SetTitle(title string) {
	s.Fumen.Title = title
}

func (s *Session) SetArtist(artist string) {
	s.Fumen.Artist = artist
}

func (s *Session) SetMusicPath(path string) {
	if path == s.Fumen.MusicPath && s.Music.Loaded() {
		return
	}
	s.Fumen.MusicPath = path
	s.ReloadMusic()
}

func (s *Session) SetJacketPath(path string) {
	if path == s.Fumen.JacketPath && s.Jacket.Loaded() {
		return
	}
	s.Fumen.JacketPath = path
	s.ReloadJacket()
}
