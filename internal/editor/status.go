package editor

import (
	"fmt"
	"math"
	"strings"

	"git.lost.host/meutraa/feis/internal/game"
)

// Status lists the problems worth showing to the user, one per line.
func (s *Session) Status() []string {
	var lines []string
	if msg := s.Music.Status("music"); msg != "" {
		lines = append(lines, msg)
	}
	if msg := s.Jacket.Status("jacket"); msg != "" {
		lines = append(lines, msg)
	}
	if !s.Converter().Valid() {
		lines = append(lines, "BPM must be positive")
	}
	return lines
}

// PlaybackStatus is the one line summary shown under the playfield.
func (s *Session) PlaybackStatus() string {
	var b strings.Builder
	if c, ok := s.SelectedChart(); ok {
		fmt.Fprintf(&b, "%s %d", c.Name, c.Level)
	} else {
		b.WriteString("No chart selected")
	}
	fmt.Fprintf(&b, "  Snap : %s", game.SnapName(s.snap))
	fmt.Fprintf(&b, "  Beats : %02.2f", s.Beats())
	if s.Music.Loaded() {
		fmt.Fprintf(&b, "  Music File Offset : %s", FormatTime(s.Music.Value.Position().Seconds()))
	}
	fmt.Fprintf(&b, "  Timeline Position : %s", FormatTime(s.position))
	return b.String()
}

// FormatTime renders seconds as [-]m:ss.mmm.
func FormatTime(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	ms := int64(math.Round(seconds * 1000))
	return fmt.Sprintf("%s%d:%02d.%03d", sign, ms/60000, (ms/1000)%60, ms%1000)
}
