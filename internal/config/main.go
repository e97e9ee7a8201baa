package config

import (
	"os"
	"path/filepath"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	App = kingpin.New("feis", "Chart editor for 4x4 grid rhythm games").Version("0.3.0")

	Volume      = App.Flag("volume", "Music volume, 0 to 10").Default("10").Short('v').Int()
	Snap        = App.Flag("snap", "Beat subdivisions the cursor moves by").Default("1").Short('s').Int()
	FramePeriod = App.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Duration()
	CellWidth   = App.Flag("cell-width", "Console columns per grid cell").Default("6").Uint()
	RecentDB    = App.Flag("recent-db", "Recently opened fumens database").Default(defaultRecentDB()).String()
	Autosave    = App.Flag("autosave", "Save this long after the last edit, 0 disables").Default("0s").Duration()
	LogLevel    = App.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error", "none")
	LogFile     = App.Flag("log-file", "Log to this file, logs are dropped when empty").String()
	NoAudio     = App.Flag("no-audio", "Do not load music").Bool()
	Clap        = App.Flag("clap", "Clap on notes during playback, --no-clap disables").Default("true").Bool()
	Ending      = App.Flag("marker-ending", "Ending animation previewed on notes").Default("perfect").Enum("miss", "early", "good", "perfect")
	keys        = App.Flag("keys", "Keys for the 16 lanes, row by row").Default("1234qwerasdfzxcv").String()

	Edit     = App.Command("edit", "Open a fumen").Default()
	EditPath = Edit.Arg("fumen", "Memon file").Required().String()

	New       = App.Command("new", "Create a fumen and open it")
	NewPath   = New.Arg("fumen", "Memon file to create").Required().String()
	NewTitle  = New.Flag("title", "Song title").String()
	NewArtist = New.Flag("artist", "Song artist").String()
	NewMusic  = New.Flag("music", "Music path, relative to the fumen").String()
	NewBPM    = New.Flag("bpm", "Song tempo").Default("120").Float64()
	NewOffset = New.Flag("offset", "Song offset in seconds").Default("0").Float64()
	NewChart  = New.Flag("chart", "Difficulty name of the first chart").Default("EXT").String()
	NewLevel  = New.Flag("level", "Level of the first chart").Default("1").Int()
	NewRes    = New.Flag("resolution", "Ticks per beat of the first chart").Default("240").Int()

	Info     = App.Command("info", "Describe a fumen")
	InfoPath = Info.Arg("fumen", "Memon file").Required().ExistingFile()

	Recent = App.Command("recent", "List the fumens opened most recently")

	Export      = App.Command("export-midi", "Export a chart as a midi file")
	ExportPath  = Export.Arg("fumen", "Memon file").Required().ExistingFile()
	ExportChart = Export.Arg("chart", "Chart difficulty name").Required().String()
	ExportOut   = Export.Arg("output", "Midi file to write").Required().String()
)

func defaultRecentDB() string {
	dir, err := os.UserCacheDir()
	if nil != err {
		return "recent.db"
	}
	return filepath.Join(dir, "feis", "recent.db")
}

// Keys lists the key of each lane.
func Keys() []rune {
	return []rune(*keys)
}

// Parse reads the command line and returns the selected command.
func Parse(args []string) (string, error) {
	return App.Parse(args)
}
