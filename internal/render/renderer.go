package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (columns, rows int, err error)
	AddDecoration(row, col int, content string, frames int)
	RenderLoop(period time.Duration, render func(elapsed time.Duration) bool)
	Fill(row, column int, message string)
	Clear()
}
