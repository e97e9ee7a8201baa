package main

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/feis/internal/editor"
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/input"
	"git.lost.host/meutraa/feis/internal/log"
	"git.lost.host/meutraa/feis/internal/memon"
	"git.lost.host/meutraa/feis/internal/recent"
	"git.lost.host/meutraa/feis/internal/render"
	"git.lost.host/meutraa/feis/internal/theme"
	"github.com/bep/debounce"
	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

const messageFrames = 90

type Clapper interface {
	Clap()
}

type Program struct {
	Parser   memon.Parser
	Recent   recent.Store
	Renderer render.Renderer
	Theme    theme.Theme
	Mapper   input.Mapper
	Log      *log.Logger
	Layout   render.Layout

	// Autosave saves this long after the last edit, 0 disables it
	Autosave time.Duration
	// Clapper sounds the notes crossed during playback, nil stays silent
	Clapper  Clapper

	session *editor.Session
	view    *render.EditorView
	keys    <-chan keyboard.KeyEvent
	prompt  *input.Prompt

	dirty       bool
	confirmQuit bool
	debounced   func(f func())
	autosaveDue chan struct{}
	err         error
}

// Init prepares the editing session. The terminal is left alone until Start.
func (p *Program) Init(session *editor.Session) error {
	p.session = session
	p.view = &render.EditorView{Renderer: p.Renderer, Theme: p.Theme, Layout: p.Layout}
	p.autosaveDue = make(chan struct{}, 1)
	if p.Autosave > 0 {
		p.debounced = debounce.New(p.Autosave)
	}
	if nil != p.Recent {
		if err := p.Recent.Push(session.Fumen.Path); nil != err {
			p.Log.Warn("unable to remember fumen", log.Fields{"err": err})
		}
	}
	p.Log.Info("editing", log.Fields{"path": session.Fumen.Path, "session": session.ID})
	return nil
}

// Start takes over the terminal and the keyboard.
func (p *Program) Start() error {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return errors.Wrap(err, "unable to open keyboard")
	}
	p.keys = keys
	if err := p.Renderer.Init(); nil != err {
		keyboard.Close()
		return err
	}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.keys {
		if err := keyboard.Close(); nil != err {
			p.Log.Error("unable to close keyboard", err, nil)
		}
	}
	if err := p.Renderer.Deinit(); nil != err {
		p.Log.Error("unable to restore terminal", err, nil)
	}
	if nil != p.session {
		if err := p.session.Close(); nil != err {
			p.Log.Error("unable to close music", err, nil)
		}
	}
}

// Err is the error that ended the render loop, if any.
func (p *Program) Err() error {
	return p.err
}

// Update handles pending key presses, advances playback and draws a frame.
// It returns false once the program should exit.
func (p *Program) Update(elapsed time.Duration) bool {
	for i := len(p.keys); i > 0; i-- {
		ev := <-p.keys
		if nil != p.prompt {
			if !p.editPrompt(ev) {
				return false
			}
			continue
		}
		if !p.Apply(p.Mapper.Map(ev)) {
			return false
		}
	}
	playing := p.session.Playing()
	p.session.Advance(elapsed)
	if nil != p.Clapper && playing && len(p.session.Ticked()) > 0 {
		p.Clapper.Clap()
	}

	select {
	case <-p.autosaveDue:
		if p.dirty {
			p.save()
		}
	default:
	}

	p.fit()
	if err := p.view.Draw(p.session); nil != err {
		p.err = err
		return false
	}
	line := ""
	if nil != p.prompt {
		line = p.prompt.Line()
	}
	p.view.DrawPrompt(line, nil != p.prompt)
	return true
}

// fit shrinks the playfield to the console, never past the configured
// layout. The screen is cleared whenever the layout changes.
func (p *Program) fit() {
	columns, rows, err := p.Renderer.Size()
	if nil != err {
		return
	}
	l := render.FitLayout(p.Layout.CellWidth, columns, rows)
	if l == p.view.Layout {
		return
	}
	p.Renderer.Clear()
	p.view.Layout = l
	p.Log.Debug("layout changed", log.Fields{"columns": columns, "rows": rows, "cell_width": l.CellWidth})
}

// editPrompt feeds a key press to the open prompt and runs the line once it
// is submitted.
func (p *Program) editPrompt(ev keyboard.KeyEvent) bool {
	switch p.prompt.Edit(ev) {
	case input.Submitted:
		line := p.prompt.Line()
		p.prompt = nil
		return p.Run(line)
	case input.Cancelled:
		p.prompt = nil
	}
	return true
}

// Run applies a command line as typed at the prompt.
func (p *Program) Run(line string) bool {
	a, err := input.ParseLine(line)
	if nil != err {
		p.warn("Invalid command", err)
		return true
	}
	p.Log.Debug("command", log.Fields{"session": p.session.ID, "command": a.Command.String()})
	return p.Apply(a)
}

func (p *Program) message(msg string) {
	l := p.view.Layout
	p.Renderer.AddDecoration(l.MessageRow(), l.Left, p.Theme.RenderStatus(msg), messageFrames)
}

func (p *Program) warn(msg string, err error) {
	l := p.view.Layout
	p.Log.Error(msg, err, log.Fields{"session": p.session.ID})
	p.Renderer.AddDecoration(l.MessageRow(), l.Left,
		p.Theme.RenderWarning(fmt.Sprintf("%s: %v", msg, err)), messageFrames)
}

func (p *Program) edited() {
	p.dirty = true
	p.confirmQuit = false
	if nil != p.debounced {
		p.debounced(func() {
			select {
			case p.autosaveDue <- struct{}{}:
			default:
			}
		})
	}
}

func (p *Program) save() bool {
	if err := p.Parser.Save(p.session.Fumen); nil != err {
		p.warn("Unable to save", err)
		return false
	}
	p.dirty = false
	p.message("Saved " + p.session.Fumen.Path)
	return true
}

// Apply runs one editor command and returns false when the program should
// exit.
func (p *Program) Apply(a input.Action) bool {
	s := p.session
	if a.Command != input.Quit && a.Command != input.None {
		p.confirmQuit = false
	}
	switch a.Command {
	case input.Quit:
		if p.dirty && !p.confirmQuit {
			p.confirmQuit = true
			p.message("Unsaved changes, quit again to discard them")
			return true
		}
		return false
	case input.Save:
		p.save()
	case input.TogglePlayback:
		s.TogglePlayback()
	case input.ToggleNote:
		edit, err := s.ToggleAt(a.Lane)
		if nil != err {
			p.warn("Unable to edit", err)
			break
		}
		if nil != edit.Inserted || len(edit.Removed) > 0 {
			p.edited()
		}
	case input.StepForward, input.StepBackward:
		steps := 1
		if a.Command == input.StepBackward {
			steps = -1
		}
		if err := s.StepSnap(steps); nil != err {
			p.warn("Unable to move", err)
		}
	case input.SnapUp:
		s.SetSnap(s.Snap() + 1)
	case input.SnapDown:
		s.SetSnap(s.Snap() - 1)
	case input.SeekStart, input.SeekEnd:
		fraction := 1.0
		if a.Command == input.SeekEnd {
			fraction = 0
		}
		if err := s.SeekFraction(fraction); nil != err {
			p.warn("Unable to seek", err)
		}
	case input.VolumeUp:
		s.SetVolume(s.Volume() + 1)
	case input.VolumeDown:
		s.SetVolume(s.Volume() - 1)
	case input.NextChart, input.PreviousChart:
		step := 1
		if a.Command == input.PreviousChart {
			step = -1
		}
		p.cycleChart(step)
	case input.OpenPrompt:
		p.prompt = &input.Prompt{}
	case input.SetBPM:
		s.SetBPM(a.Value)
		p.edited()
	case input.SetOffset:
		s.SetOffset(a.Value)
		p.edited()
	case input.SetMusic:
		s.SetMusicPath(a.Text)
		p.edited()
	case input.SetJacket:
		s.SetJacketPath(a.Text)
		p.edited()
	case input.SetTitle:
		s.SetTitle(a.Text)
		p.edited()
	case input.SetArtist:
		s.SetArtist(a.Text)
		p.edited()
	case input.NewChart:
		p.editCharts("Unable to create chart", s.NewChart(a.Text, a.Level, a.Resolution))
	case input.CopyChart:
		p.editCharts("Unable to copy chart", s.CopySelectedChart(a.Text))
	case input.RenameChart:
		level := a.Level
		if c, ok := s.SelectedChart(); ok && level < 0 {
			level = c.Level
		}
		p.editCharts("Unable to rename chart", s.RenameSelectedChart(a.Text, level))
	case input.RemoveChart:
		p.editCharts("Unable to remove chart", s.RemoveSelectedChart())
	case input.PlaceLong:
		p.placeLong(a)
	}
	return true
}

func (p *Program) editCharts(msg string, err error) {
	if nil != err {
		p.warn(msg, err)
		return
	}
	p.edited()
}

// placeLong puts a long note at the cursor, its length counted in snap lines.
func (p *Program) placeLong(a input.Action) {
	s := p.session
	c, ok := s.SelectedChart()
	if !ok {
		p.warn("Unable to place long note", errors.New("no chart selected"))
		return
	}
	length := game.SnapTick(a.Length, c.Resolution, s.Snap())
	if _, err := s.PlaceLong(a.Lane, a.TailLane, length); nil != err {
		p.warn("Unable to place long note", err)
		return
	}
	p.edited()
}

func (p *Program) cycleChart(step int) {
	s := p.session
	names := s.Fumen.ChartNames()
	if len(names) == 0 {
		return
	}
	current := -1
	if c, ok := s.SelectedChart(); ok {
		for i, name := range names {
			if name == c.Name {
				current = i
			}
		}
	}
	next := (current + step + len(names)) % len(names)
	if current < 0 {
		next = 0
	}
	if err := s.SelectChart(names[next]); nil != err {
		p.warn("Unable to select chart", err)
	}
}
