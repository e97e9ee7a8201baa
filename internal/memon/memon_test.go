package memon

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/testdata"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameFumen(t *testing.T, expected, actual *game.Fumen) {
	t.Helper()
	assert := assert.New(t)
	assert.Equal(expected.Path, actual.Path)
	assert.Equal(expected.Title, actual.Title)
	assert.Equal(expected.Artist, actual.Artist)
	assert.Equal(expected.MusicPath, actual.MusicPath)
	assert.Equal(expected.JacketPath, actual.JacketPath)
	assert.Equal(expected.BPM, actual.BPM)
	assert.Equal(expected.Offset, actual.Offset)
	require.Equal(t, expected.ChartNames(), actual.ChartNames())
	for _, name := range expected.ChartNames() {
		e, _ := expected.Chart(name)
		a, _ := actual.Chart(name)
		assert.Equal(e.Level, a.Level, name)
		assert.Equal(e.Resolution, a.Resolution, name)
		assert.Equal(e.Notes(), a.Notes(), name)
	}
}

func TestDecode(t *testing.T) {
	fumen, err := Decode(strings.NewReader(testdata.Memon), "song.memon")
	require.NoError(t, err)
	assertSameFumen(t, testdata.Fumen("song.memon"), fumen)
}

func TestDecodeLegacy(t *testing.T) {
	fumen, err := Decode(strings.NewReader(testdata.LegacyMemon), "song.memon")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("Evans", fumen.Title)
	assert.Equal([]string{"ADV"}, fumen.ChartNames())
	adv, _ := fumen.Chart("ADV")
	assert.Equal(6, adv.Level)
	assert.Equal([]game.Note{game.Tap(3, 120), game.Long(12, 480, 120, 0)}, adv.Notes())
}

func TestRoundTrip(t *testing.T) {
	original := testdata.Fumen("song.memon")
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, original))
	assert.Contains(t, buf.String(), `"version": "0.1.0"`)
	assert.NotContains(t, buf.String(), "dif_name")

	decoded, err := Decode(&buf, "song.memon")
	require.NoError(t, err)
	assertSameFumen(t, original, decoded)
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"not json":          `{"metadata": `,
		"future version":    `{"version": "1.0.0", "metadata": {}, "data": {}}`,
		"negative bpm":      `{"metadata": {"BPM": -1}, "data": {}}`,
		"bad lane":          `{"metadata": {"BPM": 1}, "data": {"EXT": {"resolution": 240, "notes": [{"n": 16, "t": 0}]}}}`,
		"tail off the grid": `{"metadata": {"BPM": 1}, "data": {"EXT": {"resolution": 240, "notes": [{"n": 0, "t": 0, "l": 10, "p": 0}]}}}`,
		"unnamed legacy":    `{"metadata": {"BPM": 1}, "data": [{"resolution": 240, "notes": []}]}`,
		"duplicate legacy":  `{"metadata": {"BPM": 1}, "data": [{"dif_name": "BSC"}, {"dif_name": "BSC"}]}`,
		"bad resolution":    `{"metadata": {"BPM": 1}, "data": {"EXT": {"resolution": -4, "notes": []}}}`,
	}
	for name, data := range tests {
		_, err := Decode(strings.NewReader(data), "x.memon")
		if nil == err {
			t.Log("expected an error for", name)
			t.Fail()
		}
	}

	_, err := Decode(strings.NewReader(`{"version": "2.0.0"}`), "x.memon")
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))
}

func TestDecodeEmpty(t *testing.T) {
	fumen, err := Decode(strings.NewReader(`{"metadata": {"BPM": 180}}`), "x.memon")
	require.NoError(t, err)
	assert.Equal(t, 0, fumen.ChartCount())
	assert.Equal(t, 180.0, fumen.BPM)

	fumen, err = Decode(strings.NewReader(`{"metadata": {}, "data": {"EXT": {"level": 3}}}`), "x.memon")
	require.NoError(t, err)
	ext, ok := fumen.Chart("EXT")
	require.True(t, ok)
	assert.Equal(t, game.DefaultResolution, ext.Resolution)
}

func TestSaveAndParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.memon")
	original := testdata.Fumen(path)

	p := &DefaultParser{}
	require.NoError(t, p.Save(original))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")

	parsed, err := p.Parse(path)
	require.NoError(t, err)
	assertSameFumen(t, original, parsed)

	// Saving over an existing file replaces it
	parsed.Title = "Evans (remix)"
	require.NoError(t, p.Save(parsed))
	again, err := p.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "Evans (remix)", again.Title)
}

func TestSaveFailureKeepsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.memon")
	require.NoError(t, os.WriteFile(path, []byte(testdata.Memon), 0o644))

	p := &DefaultParser{}
	fumen, err := p.Parse(path)
	require.NoError(t, err)

	// A long note whose tail leaves the row cannot be encoded
	ext, _ := fumen.Chart("EXT")
	ext.Insert(game.Long(0, 4800, 10, 5))
	assert.Error(t, p.Save(fumen))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testdata.Memon, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestParseMissing(t *testing.T) {
	_, err := (&DefaultParser{}).Parse(filepath.Join(t.TempDir(), "missing.memon"))
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
