package editor

import (
	"fmt"
	"image"
	"time"
)

// Music is a loaded song the session can seek and play.
type Music interface {
	Duration() time.Duration
	Position() time.Duration
	SetPosition(time.Duration) error
	SetVolume(volume int) // 0..10
	Play()
	Pause()
	Playing() bool
	Close() error
}

type MusicLoader interface {
	Load(path string) (Music, error)
}

type JacketLoader interface {
	Load(path string) (image.Image, error)
}

// Resource is an optional file backed value: either loaded, or absent
// because no path was given or because loading the path failed.
type Resource[T any] struct {
	Value  T
	Path   string
	Err    error
	loaded bool
}

func Loaded[T any](path string, value T) Resource[T] {
	return Resource[T]{Value: value, Path: path, loaded: true}
}

func Absent[T any](path string, err error) Resource[T] {
	return Resource[T]{Path: path, Err: err}
}

func (r Resource[T]) Loaded() bool {
	return r.loaded
}

// Status describes an absent resource for the status display, empty when
// the resource is loaded.
func (r Resource[T]) Status(kind string) string {
	switch {
	case r.loaded:
		return ""
	case r.Path == "":
		return fmt.Sprintf("No %s loaded", kind)
	default:
		return fmt.Sprintf("Invalid %s path : %s", kind, r.Path)
	}
}
