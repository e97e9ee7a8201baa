// Package audio plays music files on the speaker with beep.
package audio

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/feis/internal/editor"
	"git.lost.host/meutraa/feis/internal/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

var ErrUnsupported = errors.New("unsupported audio format")

// SampleRate is what the speaker runs at, songs at other rates are resampled.
const SampleRate = beep.SampleRate(44100)

type decoder func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decoder{
	".mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) },
	".ogg": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
	".wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
}

// Supported reports whether a file can be decoded judging by its extension.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, io.Closer, error) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, beep.Format{}, nil, errors.Wrap(ErrUnsupported, path)
	}
	f, err := os.Open(path)
	if nil != err {
		return nil, beep.Format{}, nil, errors.Wrap(err, "unable to open music")
	}
	streamer, format, err := dec(f)
	if nil != err {
		f.Close()
		return nil, beep.Format{}, nil, errors.Wrapf(err, "unable to decode %v", path)
	}
	return streamer, format, f, nil
}

// Gain converts an editor volume (0..10) to a beep volume, halving the
// amplitude per step below 10.
func Gain(volume int) (v float64, silent bool) {
	if volume <= 0 {
		return 0, true
	}
	if volume > 10 {
		volume = 10
	}
	return float64(volume-10) / 2, false
}

// Loader opens music for an editing session. The speaker is initialized on
// the first load.
type Loader struct {
	Log          *log.Logger
	BufferPeriod time.Duration

	initialized bool
}

func NewLoader(l *log.Logger) *Loader {
	return &Loader{Log: l, BufferPeriod: time.Second / 30}
}

func (l *Loader) init() error {
	if l.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(l.BufferPeriod)); nil != err {
		return errors.Wrap(err, "unable to initialize speaker")
	}
	l.initialized = true
	l.Log.Debug("speaker initialized", log.Fields{"rate": int(SampleRate)})
	return nil
}

func (l *Loader) Load(path string) (editor.Music, error) {
	streamer, format, file, err := decode(path)
	if nil != err {
		return nil, err
	}
	if err := l.init(); nil != err {
		streamer.Close()
		file.Close()
		return nil, err
	}

	t := &Track{
		streamer: streamer,
		format:   format,
		file:     file,
		ctrl:     &beep.Ctrl{Streamer: streamer, Paused: true},
	}
	var s beep.Streamer = t.ctrl
	if format.SampleRate != SampleRate {
		s = beep.Resample(4, format.SampleRate, SampleRate, s)
	}
	t.volume = &effects.Volume{Streamer: s, Base: 2}
	t.attach()
	l.Log.Info("music loaded", log.Fields{
		"path":     path,
		"rate":     int(format.SampleRate),
		"duration": t.Duration().Seconds(),
	})
	return t, nil
}

// ClickLength is how long a clap lasts.
const ClickLength = 30 * time.Millisecond

// click is a short tone fading out over d.
func click(rate beep.SampleRate, d time.Duration) beep.Streamer {
	n, i := rate.N(d), 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= n {
			return 0, false
		}
		k := 0
		for ; k < len(samples) && i < n; k, i = k+1, i+1 {
			v := 0.5 * math.Sin(2*math.Pi*1760*float64(i)/float64(rate)) * (1 - float64(i)/float64(n))
			samples[k][0], samples[k][1] = v, v
		}
		return k, true
	})
}

// Clap plays a click over the music. Nothing plays before a song has been
// loaded, since that is what starts the speaker.
func (l *Loader) Clap() {
	if !l.initialized {
		return
	}
	speaker.Play(click(SampleRate, ClickLength))
}

// Track is a song attached to the speaker. It starts paused.
type Track struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     io.Closer
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	// Guarded by the speaker lock
	attached bool
}

// attach hands the track to the speaker mixer, which drops it once it
// reaches the end of the stream.
func (t *Track) attach() {
	speaker.Lock()
	t.attached = true
	speaker.Unlock()
	speaker.Play(beep.Seq(t.volume, beep.Callback(func() {
		t.attached = false
		t.ctrl.Paused = true
	})))
}

func (t *Track) Duration() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

func (t *Track) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return t.format.SampleRate.D(t.streamer.Position())
}

func (t *Track) SetPosition(d time.Duration) error {
	n := t.format.SampleRate.N(d)
	if n < 0 {
		n = 0
	}
	if l := t.streamer.Len(); n >= l {
		n = l - 1
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.streamer.Seek(n)
}

func (t *Track) SetVolume(volume int) {
	speaker.Lock()
	t.volume.Volume, t.volume.Silent = Gain(volume)
	speaker.Unlock()
}

func (t *Track) Play() {
	speaker.Lock()
	attached := t.attached
	t.ctrl.Paused = false
	speaker.Unlock()
	if !attached {
		t.attach()
	}
}

func (t *Track) Pause() {
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

func (t *Track) Playing() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return t.attached && !t.ctrl.Paused
}

func (t *Track) Close() error {
	speaker.Lock()
	t.ctrl.Paused = true
	t.ctrl.Streamer = nil
	speaker.Unlock()
	err := t.streamer.Close()
	if cerr := t.file.Close(); nil == err && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}
