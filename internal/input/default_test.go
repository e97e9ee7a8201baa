package input

import (
	"errors"
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
)

var mapTests = map[keyboard.KeyEvent]Action{
	{Rune: '1'}:                  {Command: ToggleNote, Lane: 0},
	{Rune: 'r'}:                  {Command: ToggleNote, Lane: 7},
	{Rune: 'v'}:                  {Command: ToggleNote, Lane: 15},
	{Rune: '-'}:                  {Command: VolumeDown},
	{Rune: '>'}:                  {Command: NextChart},
	{Rune: ':'}:                  {Command: OpenPrompt},
	{Rune: 'y'}:                  {Command: None},
	{Key: keyboard.KeyEsc}:       {Command: Quit},
	{Key: keyboard.KeySpace}:     {Command: TogglePlayback},
	{Key: keyboard.KeyArrowDown}: {Command: StepForward},
	{Key: keyboard.KeyArrowUp}:   {Command: StepBackward},
	{Key: keyboard.KeyCtrlS}:     {Command: Save},
	{Key: keyboard.KeyF1}:        {Command: None},
}

func TestMap(t *testing.T) {
	m := &DefaultMapper{Keys: []rune("1234qwerasdfzxcv")}
	for ev, expected := range mapTests {
		if action := m.Map(ev); action != expected {
			t.Log("Event   ", ev)
			t.Log("Action  ", action)
			t.Log("Expected", expected)
			t.Fail()
		}
	}
}

func TestLaneKeysWin(t *testing.T) {
	m := &DefaultMapper{Keys: []rune("-=[]")}
	assert.Equal(t, Action{Command: ToggleNote, Lane: 0}, m.Map(keyboard.KeyEvent{Rune: '-'}))
	assert.Equal(t, Action{Command: ToggleNote, Lane: 1}, m.Map(keyboard.KeyEvent{Rune: '='}))
	assert.Equal(t, -1, m.Lane('a'))
}

func TestErrorsAreIgnored(t *testing.T) {
	m := &DefaultMapper{Keys: []rune("1234")}
	assert.Equal(t, Action{}, m.Map(keyboard.KeyEvent{Rune: '1', Err: errors.New("closed")}))
	assert.Equal(t, "toggle note", ToggleNote.String())
	assert.Equal(t, "unknown", Command(100).String())
}
