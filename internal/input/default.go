// Package input turns key presses into editor commands.
package input

import (
	"github.com/eiannone/keyboard"
)

type Command int

const (
	None Command = iota
	Quit
	Save
	TogglePlayback
	ToggleNote // Lane holds the lane to toggle
	StepForward
	StepBackward
	SnapUp
	SnapDown
	SeekStart
	SeekEnd
	VolumeUp
	VolumeDown
	NextChart
	PreviousChart
	OpenPrompt

	// Prompt commands
	SetBPM    // Value holds the tempo
	SetOffset // Value holds the offset in seconds
	SetMusic  // Text holds the path, empty to clear it
	SetJacket // Text holds the path, empty to clear it
	SetTitle
	SetArtist
	NewChart    // Text, Level and Resolution describe the chart
	CopyChart   // Text holds the name of the copy
	RenameChart // Level is negative to keep the current one
	RemoveChart
	PlaceLong // Length counts snap lines
)

var commandNames = map[Command]string{
	None:           "none",
	Quit:           "quit",
	Save:           "save",
	TogglePlayback: "toggle playback",
	ToggleNote:     "toggle note",
	StepForward:    "step forward",
	StepBackward:   "step backward",
	SnapUp:         "snap up",
	SnapDown:       "snap down",
	SeekStart:      "seek start",
	SeekEnd:        "seek end",
	VolumeUp:       "volume up",
	VolumeDown:     "volume down",
	NextChart:      "next chart",
	PreviousChart:  "previous chart",
	OpenPrompt:     "open prompt",
	SetBPM:         "bpm",
	SetOffset:      "offset",
	SetMusic:       "music",
	SetJacket:      "jacket",
	SetTitle:       "title",
	SetArtist:      "artist",
	NewChart:       "chart new",
	CopyChart:      "chart copy",
	RenameChart:    "chart rename",
	RemoveChart:    "chart remove",
	PlaceLong:      "long",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

type Action struct {
	Command Command
	Lane    int

	Value      float64
	Text       string
	Level      int
	Resolution int
	TailLane   int
	Length     int
}

type Mapper interface {
	Map(ev keyboard.KeyEvent) Action
}

// DefaultMapper binds one key per lane, row by row, and fixed keys for the
// other commands.
type DefaultMapper struct {
	Keys []rune
}

var special = map[keyboard.Key]Command{
	keyboard.KeyEsc:        Quit,
	keyboard.KeyCtrlC:      Quit,
	keyboard.KeyCtrlS:      Save,
	keyboard.KeySpace:      TogglePlayback,
	keyboard.KeyArrowDown:  StepForward,
	keyboard.KeyArrowUp:    StepBackward,
	keyboard.KeyArrowRight: SnapUp,
	keyboard.KeyArrowLeft:  SnapDown,
	keyboard.KeyHome:       SeekStart,
	keyboard.KeyEnd:        SeekEnd,
	keyboard.KeyPgup:       VolumeUp,
	keyboard.KeyPgdn:       VolumeDown,
	keyboard.KeyTab:        NextChart,
}

var runes = map[rune]Command{
	'+': VolumeUp,
	'=': VolumeUp,
	'-': VolumeDown,
	'>': NextChart,
	'<': PreviousChart,
	':': OpenPrompt,
}

// Lane returns the lane bound to r, -1 when none.
func (m *DefaultMapper) Lane(r rune) int {
	for i, c := range m.Keys {
		if i >= 16 {
			break
		}
		if r == c {
			return i
		}
	}
	return -1
}

func (m *DefaultMapper) Map(ev keyboard.KeyEvent) Action {
	if nil != ev.Err {
		return Action{}
	}
	if ev.Key == 0 && ev.Rune != 0 {
		if lane := m.Lane(ev.Rune); lane >= 0 {
			return Action{Command: ToggleNote, Lane: lane}
		}
		return Action{Command: runes[ev.Rune]}
	}
	return Action{Command: special[ev.Key]}
}
