package input

import (
	"io"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

type PromptState int

const (
	Editing PromptState = iota
	Submitted
	Cancelled
)

// Prompt collects a command line one key press at a time.
type Prompt struct {
	line []rune
}

func (p *Prompt) Line() string {
	return string(p.line)
}

func (p *Prompt) Edit(ev keyboard.KeyEvent) PromptState {
	if nil != ev.Err {
		return Editing
	}
	switch ev.Key {
	case keyboard.KeyEnter:
		return Submitted
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Cancelled
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		if len(p.line) > 0 {
			p.line = p.line[:len(p.line)-1]
		}
	case keyboard.KeySpace:
		p.line = append(p.line, ' ')
	case 0:
		if ev.Rune != 0 {
			p.line = append(p.line, ev.Rune)
		}
	}
	return Editing
}

// ParseLine reads a command typed at the prompt.
func ParseLine(line string) (Action, error) {
	var (
		a     Action
		words []string
	)
	app := kingpin.New("feis", "Editor commands").
		Terminate(nil).
		UsageWriter(io.Discard).
		ErrorWriter(io.Discard)

	app.Command("save", "Save the fumen")
	app.Command("quit", "Quit the editor")
	app.Command("bpm", "Set the tempo").
		Arg("bpm", "Beats per minute").Required().Float64Var(&a.Value)
	app.Command("offset", "Set the music offset").
		Arg("seconds", "Seconds before the first beat").Required().Float64Var(&a.Value)
	app.Command("music", "Set the music file, none clears it").
		Arg("path", "Path relative to the fumen").StringsVar(&words)
	app.Command("jacket", "Set the jacket image, none clears it").
		Arg("path", "Path relative to the fumen").StringsVar(&words)
	app.Command("title", "Set the song title").
		Arg("title", "Song title").Required().StringsVar(&words)
	app.Command("artist", "Set the song artist").
		Arg("artist", "Song artist").Required().StringsVar(&words)

	chart := app.Command("chart", "Manage charts")
	create := chart.Command("new", "Add an empty chart and select it")
	create.Arg("name", "Difficulty name").Required().StringVar(&a.Text)
	create.Arg("level", "Chart level").Default("1").IntVar(&a.Level)
	create.Arg("resolution", "Ticks per beat").Default("240").IntVar(&a.Resolution)
	chart.Command("copy", "Copy the selected chart and select the copy").
		Arg("name", "Difficulty name of the copy").Required().StringVar(&a.Text)
	rename := chart.Command("rename", "Rename the selected chart")
	rename.Arg("name", "Difficulty name").Required().StringVar(&a.Text)
	rename.Arg("level", "Chart level, the current one when omitted").Default("-1").IntVar(&a.Level)
	chart.Command("remove", "Remove the selected chart")

	long := app.Command("long", "Place a long note at the cursor")
	long.Arg("lane", "Lane of the note").Required().IntVar(&a.Lane)
	long.Arg("tail", "Lane the tail starts from").Required().IntVar(&a.TailLane)
	long.Arg("length", "Length in snap lines").Default("1").IntVar(&a.Length)

	// Everything after -- is an argument, so negative numbers parse
	command, err := app.Parse(append([]string{"--"}, strings.Fields(line)...))
	if nil != err {
		return Action{}, errors.Wrapf(err, "%q", line)
	}
	a.Command = None
	for c, name := range commandNames {
		if name == command {
			a.Command = c
		}
	}
	switch a.Command {
	case None:
		return Action{}, errors.Errorf("unknown command %q", line)
	case SetMusic, SetJacket, SetTitle, SetArtist:
		a.Text = strings.Join(words, " ")
	}
	return a, nil
}
