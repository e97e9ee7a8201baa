// Package editor holds the state of an editing session: the selected chart,
// the playback cursor and the notes visible around it.
package editor

import (
	"image"
	"math"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/feis/internal/affine"
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/log"
	"git.lost.host/meutraa/feis/internal/marker"
	"git.lost.host/meutraa/feis/internal/timing"
	"git.lost.host/meutraa/feis/internal/window"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RuntimeMargin lets the cursor run past the last note or the end of the
// music so that ending animations can play out.
const RuntimeMargin = 2.0

// Dependencies are the collaborators a session loads resources with. Nil
// loaders leave the matching resource absent.
type Dependencies struct {
	Music  MusicLoader
	Jacket JacketLoader
	Log    *log.Logger
	Marker marker.Marker
	Volume int
	Snap   int
}

type Session struct {
	ID     string
	Fumen  *game.Fumen
	Marker marker.Marker

	Music  Resource[Music]
	Jacket Resource[image.Image]

	// LastTimingTicked is the timing of the last note the cursor crossed
	// while moving forward, -1 when none.
	LastTimingTicked int

	selected string // Name of the selected chart, "" when none
	position float64
	previous float64
	runtime  float64
	visible  []game.Note
	ticked   []game.Note
	snap     int
	volume   int
	playing  bool

	musicLoader  MusicLoader
	jacketLoader JacketLoader
	log          *log.Logger
}

func New(fumen *game.Fumen, deps Dependencies) *Session {
	s := &Session{
		ID:               uuid.New().String(),
		Fumen:            fumen,
		Marker:           deps.Marker,
		LastTimingTicked: -1,
		snap:             game.ClampSnap(deps.Snap),
		volume:           clampVolume(deps.Volume),
		musicLoader:      deps.Music,
		jacketLoader:     deps.Jacket,
		log:              deps.Log,
	}
	if nil == s.log {
		s.log = log.Discard()
	}
	s.ReloadFromFumen()
	return s
}

func (s *Session) fields(f log.Fields) log.Fields {
	if nil == f {
		f = log.Fields{}
	}
	f["session"] = s.ID
	return f
}

// ReloadFromFumen selects the first chart and reloads every resource.
func (s *Session) ReloadFromFumen() {
	s.selected = ""
	if names := s.Fumen.ChartNames(); len(names) > 0 {
		s.selected = names[0]
	}
	s.ReloadMusic()
	s.ReloadJacket()
}

func (s *Session) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(s.Fumen.Path), path)
}

// ReloadMusic loads the music the fumen points to. The previous music is
// released whatever the outcome, and the runtime recomputed.
func (s *Session) ReloadMusic() {
	if s.Music.Loaded() {
		s.Music.Value.Pause()
		if err := s.Music.Value.Close(); nil != err {
			s.log.Error("unable to close music", err, s.fields(nil))
		}
	}
	s.playing = false
	path := s.Fumen.MusicPath

	switch {
	case path == "":
		s.Music = Absent[Music](path, nil)
	case nil == s.musicLoader:
		s.Music = Absent[Music](path, errors.New("audio disabled"))
	default:
		m, err := s.musicLoader.Load(s.resolve(path))
		if nil != err {
			s.log.Warn("unable to load music", s.fields(log.Fields{"path": path, "err": err}))
			s.Music = Absent[Music](path, err)
		} else {
			m.SetVolume(s.volume)
			s.Music = Loaded(path, m)
		}
	}
	s.RecomputeRuntime()
}

func (s *Session) ReloadJacket() {
	path := s.Fumen.JacketPath
	switch {
	case path == "":
		s.Jacket = Absent[image.Image](path, nil)
	case nil == s.jacketLoader:
		s.Jacket = Absent[image.Image](path, errors.New("no image loader"))
	default:
		img, err := s.jacketLoader.Load(s.resolve(path))
		if nil != err {
			s.log.Warn("unable to load jacket", s.fields(log.Fields{"path": path, "err": err}))
			s.Jacket = Absent[image.Image](path, err)
		} else {
			s.Jacket = Loaded(path, img)
		}
	}
}

func (s *Session) musicDuration() float64 {
	return s.Music.Value.Duration().Seconds()
}

// Converter returns the tick conversion of the selected chart, or of a
// default resolution when no chart is selected.
func (s *Session) Converter() timing.Converter {
	resolution := game.DefaultResolution
	if c, ok := s.SelectedChart(); ok {
		resolution = c.Resolution
	}
	return timing.Converter{Resolution: resolution, BPM: s.Fumen.BPM, Offset: s.Fumen.Offset}
}

// chartRuntime is how long the selected chart lasts from tick 0.
func (s *Session) chartRuntime(c *game.Chart) float64 {
	conv := s.Converter()
	if !conv.Valid() {
		return 0
	}
	return conv.TicksToSeconds(c.LastTick())
}

// RecomputeRuntime derives how far the cursor may go and moves it back to
// the start of the timeline.
func (s *Session) RecomputeRuntime() {
	offset := s.Fumen.Offset
	c, hasChart := s.SelectedChart()
	switch {
	case s.Music.Loaded() && hasChart:
		s.runtime = math.Max(s.musicDuration(), s.chartRuntime(c)-offset) + RuntimeMargin
	case s.Music.Loaded():
		s.runtime = math.Max(-offset, s.musicDuration())
	case hasChart:
		s.runtime = math.Max(s.chartRuntime(c)-offset, RuntimeMargin)
	default:
		s.runtime = math.Max(-offset, RuntimeMargin)
	}
	s.position = -offset
	s.previous = s.position
	s.LastTimingTicked = -1
	s.ticked = nil
	s.refresh()
	s.log.Debug("runtime recomputed", s.fields(log.Fields{"runtime": s.runtime}))
}

func (s *Session) Runtime() float64 {
	return s.runtime
}

func (s *Session) Position() float64 {
	return s.position
}

func (s *Session) clamp(p float64) float64 {
	if math.IsNaN(p) || p < -s.Fumen.Offset {
		return -s.Fumen.Offset
	}
	if p > s.runtime {
		return s.runtime
	}
	return p
}

// SetPosition moves the cursor, clamped to the timeline, and seeks the
// music along when the cursor lands inside it.
func (s *Session) SetPosition(p float64) {
	s.setPosition(p, true)
}

func (s *Session) setPosition(p float64, seek bool) {
	s.previous = s.position
	s.position = s.clamp(p)
	if seek && s.Music.Loaded() && s.position >= 0 && s.position < s.musicDuration() {
		d := time.Duration(s.position * float64(time.Second))
		if err := s.Music.Value.SetPosition(d); nil != err {
			s.log.Error("unable to seek music", err, s.fields(log.Fields{"position": s.position}))
		}
	}
	s.refresh()
	s.tick()
}

// refresh recomputes the visible notes from the cursor and the chart.
func (s *Session) refresh() {
	s.visible = nil
	c, ok := s.SelectedChart()
	if !ok {
		return
	}
	conv := s.Converter()
	if !conv.Valid() {
		return
	}
	s.visible = window.Visible(c.Notes(), conv, s.position)
}

// tick collects the notes started between the previous and current cursor.
func (s *Session) tick() {
	s.ticked = nil
	c, ok := s.SelectedChart()
	conv := s.Converter()
	if !ok || !conv.Valid() || s.position <= s.previous {
		return
	}
	for _, n := range c.Notes() {
		start := conv.SecondsAt(n.Timing)
		if start > s.position {
			break
		}
		if start > s.previous && n.Timing != s.LastTimingTicked {
			s.ticked = append(s.ticked, n)
		}
	}
	if len(s.ticked) > 0 {
		s.LastTimingTicked = s.ticked[len(s.ticked)-1].Timing
	}
}

// Visible returns the notes on screen at the cursor.
func (s *Session) Visible() []game.Note {
	return s.visible
}

// Ticked returns the notes whose start the cursor crossed during its last
// forward move.
func (s *Session) Ticked() []game.Note {
	return s.ticked
}

func (s *Session) scroll() (affine.Transform[float64], error) {
	return affine.New(-s.Fumen.Offset, s.runtime, 1.0, 0.0)
}

// ScrollFraction places the cursor on a vertical timeline, 1 at the top
// (start) and 0 at the bottom (end).
func (s *Session) ScrollFraction() (float64, error) {
	sc, err := s.scroll()
	if nil != err {
		return 0, err
	}
	return sc.Transform(s.position), nil
}

// SeekFraction moves the cursor to a point of the timeline.
func (s *Session) SeekFraction(f float64) error {
	sc, err := s.scroll()
	if nil != err {
		return err
	}
	s.SetPosition(sc.BackwardsTransform(f))
	s.LastTimingTicked = -1
	return nil
}

// Beats is the beat under the cursor.
func (s *Session) Beats() float64 {
	return s.Converter().BeatsAt(s.position)
}

// Ticks is the fractional tick under the cursor.
func (s *Session) Ticks() float64 {
	return s.Converter().TicksAt(s.position)
}

func (s *Session) Snap() int {
	return s.snap
}

func (s *Session) SetSnap(snap int) {
	s.snap = game.ClampSnap(snap)
}

// StepSnap moves the cursor to the next (steps > 0) or previous snap line.
func (s *Session) StepSnap(steps int) error {
	conv := s.Converter()
	if !conv.Valid() {
		return errors.Wrap(timing.ErrInvalidTempo, "moving by snap")
	}
	ticks := conv.TicksAt(s.position)
	tick := int(math.Round(ticks))
	current := game.SnapLine(ticks, conv.Resolution, s.snap)
	line := int(math.Round(current))
	// Between two lines the first step only reaches the neighbouring one
	if game.SnapTick(line, conv.Resolution, s.snap) != tick {
		if steps > 0 {
			line = int(math.Floor(current))
		} else if steps < 0 {
			line = int(math.Ceil(current))
		}
	}
	line += steps
	// Lines closer than a tick share it
	for i := 0; steps != 0 && i < game.MaxSnap && game.SnapTick(line, conv.Resolution, s.snap) == tick; i++ {
		if steps > 0 {
			line++
		} else {
			line--
		}
	}
	s.SetPosition(conv.SecondsAt(game.SnapTick(line, conv.Resolution, s.snap)))
	s.LastTimingTicked = -1
	return nil
}

func (s *Session) Playing() bool {
	return s.playing
}

func (s *Session) Play() {
	if s.position >= s.runtime {
		return
	}
	s.playing = true
	s.syncMusic()
}

func (s *Session) Pause() {
	s.playing = false
	if s.Music.Loaded() {
		s.Music.Value.Pause()
	}
}

func (s *Session) TogglePlayback() {
	if s.playing {
		s.Pause()
	} else {
		s.Play()
	}
}

// syncMusic starts or stops the music so that it follows the cursor.
func (s *Session) syncMusic() {
	if !s.Music.Loaded() {
		return
	}
	m := s.Music.Value
	inside := s.position >= 0 && s.position < s.musicDuration()
	switch {
	case s.playing && inside && !m.Playing():
		if err := m.SetPosition(time.Duration(s.position * float64(time.Second))); nil != err {
			s.log.Error("unable to seek music", err, s.fields(nil))
		}
		m.Play()
	case (!s.playing || !inside) && m.Playing():
		m.Pause()
	}
}

// Advance moves a playing cursor forward. While the music plays, its clock
// is the reference, otherwise the cursor moves by elapsed.
func (s *Session) Advance(elapsed time.Duration) {
	if !s.playing {
		return
	}
	next := s.position + elapsed.Seconds()
	if s.Music.Loaded() && s.Music.Value.Playing() {
		next = s.Music.Value.Position().Seconds()
	}
	s.setPosition(next, false)
	if s.position >= s.runtime {
		s.Pause()
		return
	}
	s.syncMusic()
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func (s *Session) Volume() int {
	return s.volume
}

func (s *Session) SetVolume(v int) {
	s.volume = clampVolume(v)
	if s.Music.Loaded() {
		s.Music.Value.SetVolume(s.volume)
	}
}

// Close releases the music.
func (s *Session) Close() error {
	if !s.Music.Loaded() {
		return nil
	}
	s.Music.Value.Pause()
	err := s.Music.Value.Close()
	s.Music = Absent[Music](s.Music.Path, nil)
	return err
}
