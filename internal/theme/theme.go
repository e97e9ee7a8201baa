package theme

import (
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/marker"
)

type Theme interface {
	// RenderMarker draws one console cell of a note marker, subdivision
	// being the beat subdivision the note falls on
	RenderMarker(frame marker.Frame, subdivision int) string
	RenderTail(dir game.Direction) string
	RenderTriangle(dir game.Direction) string
	RenderEmptyCell() string
	RenderSlider(cursor bool) string
	RenderTitle(s string) string
	RenderStatus(s string) string
	RenderWarning(s string) string
}
