package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"git.lost.host/meutraa/feis/internal/editor"
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/jacket"
	"git.lost.host/meutraa/feis/internal/longnote"
	"git.lost.host/meutraa/feis/internal/theme"
)

const clearLine = "\033[K"

// Layout places the playfield on the console. Rows and columns are 1 based.
type Layout struct {
	Top, Left  int
	CellWidth  int
	CellHeight int
}

func NewLayout(cellWidth int) Layout {
	if cellWidth < 2 {
		cellWidth = 2
	}
	return Layout{Top: 4, Left: 3, CellWidth: cellWidth, CellHeight: cellWidth / 2}
}

// FitLayout is the widest layout, up to maxCellWidth, whose playfield and
// prompt fit on a console of the given size.
func FitLayout(maxCellWidth, columns, rows int) Layout {
	for w := maxCellWidth; w > 2; w-- {
		l := NewLayout(w)
		if l.PromptRow() <= rows && l.jacketColumn() <= columns {
			return l
		}
	}
	return NewLayout(2)
}

func (l Layout) gridRows() int    { return game.GridSize * l.CellHeight }
func (l Layout) gridColumns() int { return game.GridSize * l.CellWidth }
func (l Layout) sliderColumn() int {
	return l.Left + l.gridColumns() + 2
}
func (l Layout) jacketColumn() int {
	return l.sliderColumn() + 3
}

// StatusRow is the first row under the playfield.
func (l Layout) StatusRow() int {
	return l.Top + l.gridRows() + 1
}

// cell is the top left console position of a grid cell.
func (l Layout) cell(x, y int) (row, col int) {
	return l.Top + y*l.CellHeight, l.Left + x*l.CellWidth
}

// at converts grid coordinates to a console position.
func (l Layout) at(x, y float64) (row, col int) {
	return l.Top + int(math.Round(y*float64(l.CellHeight))), l.Left + int(math.Round(x*float64(l.CellWidth)))
}

// EditorView draws an editing session.
type EditorView struct {
	Renderer Renderer
	Theme    theme.Theme
	Layout   Layout

	jacket      image.Image
	jacketRows  int
	jacketLines []string
}

func (v *EditorView) Draw(s *editor.Session) error {
	frame, err := s.Frame()
	if nil != err {
		return err
	}
	v.drawHeader(s)
	v.drawGrid()
	for _, n := range frame.Notes {
		v.drawTail(n)
	}
	for _, n := range frame.Notes {
		v.drawMarker(n, s)
	}
	for _, n := range frame.Notes {
		v.drawTriangle(n)
	}
	v.drawSlider(s)
	v.drawJacket(s)
	v.drawStatus(s)
	return nil
}

func (v *EditorView) drawHeader(s *editor.Session) {
	r, th, l := v.Renderer, v.Theme, v.Layout
	title := s.Fumen.Title
	if s.Fumen.Artist != "" {
		title = fmt.Sprintf("%s - %s", title, s.Fumen.Artist)
	}
	r.Fill(1, l.Left, th.RenderTitle(title)+clearLine)

	selected, _ := s.SelectedChart()
	var b strings.Builder
	for _, name := range s.Fumen.ChartNames() {
		c, _ := s.Fumen.Chart(name)
		if c == selected {
			fmt.Fprintf(&b, "[%s %d] ", c.Name, c.Level)
		} else {
			fmt.Fprintf(&b, " %s %d  ", c.Name, c.Level)
		}
	}
	r.Fill(2, l.Left, th.RenderStatus(b.String())+clearLine)
}

func (v *EditorView) drawGrid() {
	l := v.Layout
	empty := strings.Repeat(" ", l.CellWidth/2) + v.Theme.RenderEmptyCell() +
		strings.Repeat(" ", l.CellWidth-l.CellWidth/2-1)
	blank := strings.Repeat(" ", l.CellWidth)
	for y := 0; y < game.GridSize; y++ {
		for x := 0; x < game.GridSize; x++ {
			row, col := l.cell(x, y)
			for i := 0; i < l.CellHeight; i++ {
				if i == l.CellHeight/2 {
					v.Renderer.Fill(row+i, col, empty)
				} else {
					v.Renderer.Fill(row+i, col, blank)
				}
			}
		}
	}
}

func (v *EditorView) drawTail(n longnote.State) {
	if n.Kind != longnote.Sustain || n.Tail.Empty() {
		return
	}
	l := v.Layout
	sym := v.Theme.RenderTail(n.Direction)
	r0, c0 := l.at(n.Tail.Pos.X, n.Tail.Pos.Y)
	r1, c1 := l.at(n.Tail.Pos.X+n.Tail.Size.X, n.Tail.Pos.Y+n.Tail.Size.Y)
	switch n.Direction {
	case game.TailAbove, game.TailBelow:
		col := l.Left + n.Note.X()*l.CellWidth + l.CellWidth/2
		for row := r0; row < r1; row++ {
			v.Renderer.Fill(row, col, sym)
		}
	default:
		row := l.Top + n.Note.Y()*l.CellHeight + l.CellHeight/2
		if c1 > c0 {
			v.Renderer.Fill(row, c0, strings.Repeat(sym, c1-c0))
		}
	}
}

func (v *EditorView) drawMarker(n longnote.State, s *editor.Session) {
	if !n.MarkerVisible {
		return
	}
	resolution := game.DefaultResolution
	if c, ok := s.SelectedChart(); ok {
		resolution = c.Resolution
	}
	sym := v.Theme.RenderMarker(n.Marker, game.Subdivision(n.Note.Timing, resolution))
	line := strings.Repeat(sym, v.Layout.CellWidth)
	row, col := v.Layout.cell(n.Note.X(), n.Note.Y())
	for i := 0; i < v.Layout.CellHeight; i++ {
		v.Renderer.Fill(row+i, col, line)
	}
}

func (v *EditorView) drawTriangle(n longnote.State) {
	if n.Kind != longnote.Sustain {
		return
	}
	l := v.Layout
	row, col := l.at(n.Triangle.X, n.Triangle.Y)
	v.Renderer.Fill(row+l.CellHeight/2, col+l.CellWidth/2, v.Theme.RenderTriangle(n.Direction))
}

// SliderRow is the row of the timeline slider a scroll fraction falls on.
func (l Layout) SliderRow(fraction float64) int {
	rows := l.gridRows()
	return l.Top + int(math.Round((1-fraction)*float64(rows-1)))
}

func (v *EditorView) drawSlider(s *editor.Session) {
	l := v.Layout
	cursor := -1
	if fraction, err := s.ScrollFraction(); nil == err {
		cursor = l.SliderRow(fraction)
	}
	for row := l.Top; row < l.Top+l.gridRows(); row++ {
		v.Renderer.Fill(row, l.sliderColumn(), v.Theme.RenderSlider(row == cursor))
	}
}

func (v *EditorView) drawJacket(s *editor.Session) {
	l := v.Layout
	if !s.Jacket.Loaded() {
		for i := range v.jacketLines {
			v.Renderer.Fill(l.Top+i, l.jacketColumn(), clearLine)
		}
		v.jacket, v.jacketLines = nil, nil
		return
	}
	if s.Jacket.Value != v.jacket || l.gridRows() != v.jacketRows {
		v.jacket = s.Jacket.Value
		rows := l.gridRows()
		v.jacketRows = rows
		v.jacketLines = halfBlocks(jacket.Thumbnail(v.jacket, 2*rows, 2*rows))
	}
	for i, line := range v.jacketLines {
		v.Renderer.Fill(l.Top+i, l.jacketColumn(), line)
	}
}

// halfBlocks renders two rows of pixels per console row.
func halfBlocks(img image.Image) []string {
	b := img.Bounds()
	var lines []string
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var sb strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			tr, tg, tb, _ := img.At(x, y).RGBA()
			br, bg, bb := tr, tg, tb
			if y+1 < b.Max.Y {
				br, bg, bb, _ = img.At(x, y+1).RGBA()
			}
			fmt.Fprintf(&sb, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀",
				tr>>8, tg>>8, tb>>8, br>>8, bg>>8, bb>>8)
		}
		sb.WriteString("\033[0m")
		lines = append(lines, sb.String())
	}
	return lines
}

func (v *EditorView) drawStatus(s *editor.Session) {
	r, th, l := v.Renderer, v.Theme, v.Layout
	row := l.StatusRow()
	r.Fill(row, l.Left, th.RenderStatus(s.PlaybackStatus())+clearLine)
	r.Fill(row+1, l.Left, th.RenderStatus(fmt.Sprintf("Volume : %d  Runtime : %s",
		s.Volume(), editor.FormatTime(s.Runtime())))+clearLine)
	warnings := s.Status()
	for i := 0; i < 3; i++ {
		line := ""
		if i < len(warnings) {
			line = th.RenderWarning(warnings[i])
		}
		r.Fill(row+2+i, l.Left, line+clearLine)
	}
}

// MessageRow is where transient messages go.
func (l Layout) MessageRow() int {
	return l.StatusRow() + 5
}

// PromptRow holds the command line while it is typed.
func (l Layout) PromptRow() int {
	return l.MessageRow() + 1
}

// DrawPrompt shows the command line being typed, or blanks its row.
func (v *EditorView) DrawPrompt(line string, open bool) {
	content := clearLine
	if open {
		content = v.Theme.RenderStatus(":"+line+"_") + clearLine
	}
	v.Renderer.Fill(v.Layout.PromptRow(), v.Layout.Left, content)
}
