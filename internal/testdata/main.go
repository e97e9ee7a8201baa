// Package testdata holds fumens shared by the tests of several packages.
package testdata

import "git.lost.host/meutraa/feis/internal/game"

// Memon is a v0.1.0 file with two charts, one holding long notes.
const Memon = `{
  "version": "0.1.0",
  "metadata": {
    "song title": "Evans",
    "artist": "Kinuyo Yamashita",
    "music path": "evans.ogg",
    "jacket path": "jacket.png",
    "BPM": 150,
    "offset": -0.25
  },
  "data": {
    "EXT": {
      "level": 10,
      "resolution": 240,
      "notes": [
        {"n": 0, "t": 0, "l": 0, "p": 0},
        {"n": 5, "t": 240, "l": 480, "p": 0},
        {"n": 15, "t": 240, "l": 0, "p": 0},
        {"n": 0, "t": 960, "l": 240, "p": 9}
      ]
    },
    "BSC": {
      "level": 1,
      "resolution": 4,
      "notes": [
        {"n": 6, "t": 4, "l": 0, "p": 0}
      ]
    }
  }
}`

// LegacyMemon lists charts in an array, each naming its difficulty.
const LegacyMemon = `{
  "metadata": {
    "song title": "Evans",
    "artist": "Kinuyo Yamashita",
    "music path": "evans.ogg",
    "jacket path": "jacket.png",
    "BPM": 150,
    "offset": -0.25
  },
  "data": [
    {
      "dif_name": "ADV",
      "level": 6,
      "resolution": 240,
      "notes": [
        {"n": 3, "t": 120, "l": 0, "p": 0},
        {"n": 12, "t": 480, "l": 120, "p": 8}
      ]
    }
  ]
}`

// Fumen is the fumen Memon decodes to.
func Fumen(path string) *game.Fumen {
	f := game.NewFumen(path)
	f.Title = "Evans"
	f.Artist = "Kinuyo Yamashita"
	f.MusicPath = "evans.ogg"
	f.JacketPath = "jacket.png"
	f.BPM = 150
	f.Offset = -0.25

	ext := game.NewChart("EXT", 10, 240)
	ext.Insert(game.Tap(0, 0))
	ext.Insert(game.Long(5, 240, 480, 1))
	ext.Insert(game.Tap(15, 240))
	ext.Insert(game.Long(0, 960, 240, 3))

	bsc := game.NewChart("BSC", 1, 4)
	bsc.Insert(game.Tap(6, 4))

	// Neither name is taken on a new fumen
	_ = f.AddChart(ext)
	_ = f.AddChart(bsc)
	return f
}
