// Package memon reads and writes fumens in the memon json format.
package memon

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/feis/internal/game"
	"github.com/pkg/errors"
)

// Version is the memon version files are written with.
const Version = "0.1.0"

var (
	ErrUnsupportedVersion = errors.New("unsupported memon version")
	ErrInvalid            = errors.New("invalid memon file")
)

type Parser interface {
	Parse(path string) (*game.Fumen, error)
	Save(fumen *game.Fumen) error
}

type DefaultParser struct{}

type metadata struct {
	Title      string  `json:"song title"`
	Artist     string  `json:"artist"`
	MusicPath  string  `json:"music path"`
	JacketPath string  `json:"jacket path"`
	BPM        float64 `json:"BPM"`
	Offset     float64 `json:"offset"`
}

type note struct {
	N int `json:"n"`
	T int `json:"t"`
	L int `json:"l"`
	P int `json:"p"`
}

type chart struct {
	Name       string `json:"dif_name,omitempty"`
	Level      int    `json:"level"`
	Resolution int    `json:"resolution"`
	Notes      []note `json:"notes"`
}

type file struct {
	Version  string          `json:"version,omitempty"`
	Metadata metadata        `json:"metadata"`
	Data     json.RawMessage `json:"data"`
}

func (p *DefaultParser) Parse(path string) (*game.Fumen, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open fumen")
	}
	defer f.Close()
	fumen, err := Decode(f, path)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to parse %v", path)
	}
	return fumen, nil
}

// Decode reads a memon file, either v0.1.0 or the older layout where data is
// a list of charts naming their own difficulty.
func Decode(r io.Reader, path string) (*game.Fumen, error) {
	var m file
	if err := json.NewDecoder(r).Decode(&m); nil != err {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}
	if m.Version != "" && m.Version != Version {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "%q", m.Version)
	}
	if m.Metadata.BPM < 0 {
		return nil, errors.Wrapf(ErrInvalid, "negative BPM %v", m.Metadata.BPM)
	}

	fumen := game.NewFumen(path)
	fumen.Title = m.Metadata.Title
	fumen.Artist = m.Metadata.Artist
	fumen.MusicPath = m.Metadata.MusicPath
	fumen.JacketPath = m.Metadata.JacketPath
	fumen.BPM = m.Metadata.BPM
	fumen.Offset = m.Metadata.Offset

	charts, err := decodeData(m.Data)
	if nil != err {
		return nil, err
	}
	for _, c := range charts {
		if err := fumen.AddChart(c); nil != err {
			return nil, errors.Wrap(ErrInvalid, err.Error())
		}
	}
	return fumen, nil
}

func decodeData(data json.RawMessage) ([]*game.Chart, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var charts []*game.Chart
	if data[0] == '[' {
		var legacy []chart
		if err := json.Unmarshal(data, &legacy); nil != err {
			return nil, errors.Wrap(ErrInvalid, err.Error())
		}
		for _, c := range legacy {
			gc, err := c.toChart(c.Name)
			if nil != err {
				return nil, err
			}
			charts = append(charts, gc)
		}
		return charts, nil
	}

	var byName map[string]chart
	if err := json.Unmarshal(data, &byName); nil != err {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}
	for name, c := range byName {
		gc, err := c.toChart(name)
		if nil != err {
			return nil, err
		}
		charts = append(charts, gc)
	}
	return charts, nil
}

func (c chart) toChart(name string) (*game.Chart, error) {
	if name == "" {
		return nil, errors.Wrap(ErrInvalid, "chart without a difficulty name")
	}
	resolution := c.Resolution
	if resolution == 0 {
		resolution = game.DefaultResolution
	}
	if resolution < 0 {
		return nil, errors.Wrapf(ErrInvalid, "%v: resolution %d", name, resolution)
	}
	gc := game.NewChart(name, c.Level, resolution)
	for _, n := range c.Notes {
		gn := game.Tap(n.N, n.T)
		if n.L > 0 {
			tail, err := game.TailLaneFrom(n.N, n.P)
			if nil != err {
				return nil, errors.Wrapf(ErrInvalid, "%v: note %+v: %v", name, n, err)
			}
			gn = game.Long(n.N, n.T, n.L, tail)
		}
		if err := gn.Validate(); nil != err {
			return nil, errors.Wrapf(ErrInvalid, "%v: note %+v: %v", name, n, err)
		}
		gc.Insert(gn)
	}
	return gc, nil
}

// Encode writes fumen as memon v0.1.0.
func Encode(w io.Writer, fumen *game.Fumen) error {
	data := map[string]chart{}
	for _, name := range fumen.ChartNames() {
		c, _ := fumen.Chart(name)
		mc := chart{Level: c.Level, Resolution: c.Resolution, Notes: []note{}}
		for _, n := range c.Notes() {
			mn := note{N: n.Lane, T: n.Timing}
			if n.IsLong() {
				p, err := game.TailPosition(n.Lane, n.TailLane)
				if nil != err {
					return errors.Wrapf(err, "%v: note %v", name, n)
				}
				mn.L, mn.P = n.Length, p
			}
			mc.Notes = append(mc.Notes, mn)
		}
		data[name] = mc
	}
	raw, err := json.Marshal(data)
	if nil != err {
		return err
	}

	m := file{
		Version: Version,
		Metadata: metadata{
			Title:      fumen.Title,
			Artist:     fumen.Artist,
			MusicPath:  fumen.MusicPath,
			JacketPath: fumen.JacketPath,
			BPM:        fumen.BPM,
			Offset:     fumen.Offset,
		},
		Data: raw,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Save writes the fumen next to its path and renames it in place, so that a
// failed save never leaves a truncated file behind.
func (p *DefaultParser) Save(fumen *game.Fumen) error {
	if fumen.Path == "" {
		return errors.New("fumen has no path")
	}
	dir, base := filepath.Split(fumen.Path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if nil != err {
		return errors.Wrap(err, "unable to save fumen")
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, fumen); nil != err {
		tmp.Close()
		return errors.Wrap(err, "unable to encode fumen")
	}
	if err := tmp.Sync(); nil != err {
		tmp.Close()
		return errors.Wrap(err, "unable to save fumen")
	}
	if err := tmp.Close(); nil != err {
		return errors.Wrap(err, "unable to save fumen")
	}
	if err := os.Rename(tmp.Name(), fumen.Path); nil != err {
		return errors.Wrap(err, "unable to save fumen")
	}
	return nil
}
