package theme

import (
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/marker"
	"github.com/charmbracelet/lipgloss"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderMarker(frame marker.Frame, subdivision int) string {
	if !frame.Ending {
		return lipgloss.NewStyle().
			Foreground(getNoteColor(subdivision)).
			Render(approachSyms[frame.Index*len(approachSyms)/marker.ApproachFrames])
	}
	style := lipgloss.NewStyle().Foreground(endingColors[frame.State])
	if frame.Index < marker.EndingFrames/2 {
		style = style.Bold(true)
	} else {
		style = style.Faint(true)
	}
	return style.Render(endingSyms[frame.State])
}

func (t *DefaultTheme) RenderTail(dir game.Direction) string {
	return tailStyle.Render(tailSyms[dir%4])
}

func (t *DefaultTheme) RenderTriangle(dir game.Direction) string {
	return triangleStyle.Render(triangleSyms[dir%4])
}

func (t *DefaultTheme) RenderEmptyCell() string {
	return gridStyle.Render(emptySym)
}

func (t *DefaultTheme) RenderSlider(cursor bool) string {
	if cursor {
		return cursorStyle.Render(cursorSym)
	}
	return gridStyle.Render(sliderSym)
}

func (t *DefaultTheme) RenderTitle(s string) string {
	return titleStyle.Render(s)
}

func (t *DefaultTheme) RenderStatus(s string) string {
	return statusStyle.Render(s)
}

func (t *DefaultTheme) RenderWarning(s string) string {
	return warningStyle.Render(s)
}

const (
	emptySym  = "·"
	sliderSym = "│"
	cursorSym = "◆"
)

var (
	approachSyms = [...]string{"·", "∙", "•", "○", "◎", "◉", "●", "⬤"}
	endingSyms   = map[marker.EndingState]string{
		marker.Miss:    "✕",
		marker.Early:   "◇",
		marker.Good:    "✧",
		marker.Perfect: "✦",
	}
	endingColors = map[marker.EndingState]lipgloss.Color{
		marker.Miss:    "#ec1e00",
		marker.Early:   "#0076ec",
		marker.Good:    "#00ec80",
		marker.Perfect: "#ecc300",
	}
	// Indexed by game.Direction: tail above, right, below, left
	tailSyms     = [...]string{"┃", "━", "┃", "━"}
	triangleSyms = [...]string{"▼", "◀", "▲", "▶"}

	gridStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3a3a3a"))
	tailStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#adecec"))
	triangleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7d56f4")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ecc300"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bcbcbc"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ec1e00")).Bold(true)

	noteColors = map[int]lipgloss.Color{
		1:  "#ec1e00", // 1/4 red
		2:  "#0076ec", // 1/8 blue
		3:  "#6a00ec", // 1/12 purple
		4:  "#ecc300", // 1/16 yellow
		5:  "#6a6a6a", // 1/20 grey
		6:  "#ec006a", // 1/24 pink
		8:  "#ec8000", // 1/32 orange
		12: "#adecec", // 1/48 light blue
		16: "#00ec80", // 1/64 green
		24: "#6a6a6a", // 1/96 grey
		32: "#6a6a6a", // 1/128 grey
		48: "#6e9359", // 1/192 olive
		64: "#6a6a6a", // 1/256 grey
		-1: "#ffffff", // other white
	}
)

func getNoteColor(d int) lipgloss.Color {
	col, ok := noteColors[d]
	if !ok {
		return noteColors[-1]
	}
	return col
}
