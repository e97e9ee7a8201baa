package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/feis/internal/audio"
	"git.lost.host/meutraa/feis/internal/config"
	"git.lost.host/meutraa/feis/internal/editor"
	"git.lost.host/meutraa/feis/internal/export"
	"git.lost.host/meutraa/feis/internal/game"
	"git.lost.host/meutraa/feis/internal/input"
	"git.lost.host/meutraa/feis/internal/jacket"
	"git.lost.host/meutraa/feis/internal/log"
	"git.lost.host/meutraa/feis/internal/marker"
	"git.lost.host/meutraa/feis/internal/memon"
	"git.lost.host/meutraa/feis/internal/recent"
	"git.lost.host/meutraa/feis/internal/render"
	"git.lost.host/meutraa/feis/internal/theme"
	"git.lost.host/meutraa/feis/internal/timing"
	"github.com/pkg/errors"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openLog() (*log.Logger, func(), error) {
	if *config.LogFile == "" {
		return log.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(*config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return nil, nil, errors.Wrap(err, "unable to open log file")
	}
	return log.New(f, log.LevelFromString(*config.LogLevel)), func() { f.Close() }, nil
}

func openRecent(l *log.Logger) (*recent.DefaultStore, error) {
	if err := os.MkdirAll(filepath.Dir(*config.RecentDB), 0o755); nil != err {
		return nil, errors.Wrap(err, "unable to create recent files directory")
	}
	store := &recent.DefaultStore{Path: *config.RecentDB, Log: l}
	if err := store.Init(); nil != err {
		return nil, err
	}
	return store, nil
}

func run(args []string) error {
	cmd, err := config.Parse(args)
	if nil != err {
		return err
	}
	logger, closeLog, err := openLog()
	if nil != err {
		return err
	}
	defer closeLog()

	var psr memon.Parser = &memon.DefaultParser{}

	switch cmd {
	case config.Edit.FullCommand():
		fumen, err := psr.Parse(*config.EditPath)
		if nil != err {
			return err
		}
		return edit(fumen, psr, logger)
	case config.New.FullCommand():
		fumen, err := create(*config.NewPath)
		if nil != err {
			return err
		}
		if err := psr.Save(fumen); nil != err {
			return err
		}
		return edit(fumen, psr, logger)
	case config.Info.FullCommand():
		fumen, err := psr.Parse(*config.InfoPath)
		if nil != err {
			return err
		}
		return info(os.Stdout, fumen)
	case config.Recent.FullCommand():
		store, err := openRecent(logger)
		if nil != err {
			return err
		}
		defer store.Deinit()
		return listRecent(os.Stdout, store)
	case config.Export.FullCommand():
		fumen, err := psr.Parse(*config.ExportPath)
		if nil != err {
			return err
		}
		return exportMIDI(fumen, *config.ExportChart, *config.ExportOut)
	}
	return errors.Errorf("unknown command %q", cmd)
}

// create builds a fumen from the new command flags, refusing to overwrite
// an existing file.
func create(path string) (*game.Fumen, error) {
	if _, err := os.Stat(path); nil == err {
		return nil, errors.Errorf("%v already exists", path)
	}
	fumen := game.NewFumen(path)
	fumen.Title = *config.NewTitle
	fumen.Artist = *config.NewArtist
	fumen.MusicPath = *config.NewMusic
	fumen.BPM = timing.ClampBPM(*config.NewBPM)
	fumen.Offset = *config.NewOffset
	if *config.NewRes < 1 {
		return nil, errors.Errorf("resolution must be positive, got %d", *config.NewRes)
	}
	if err := fumen.AddChart(game.NewChart(*config.NewChart, *config.NewLevel, *config.NewRes)); nil != err {
		return nil, err
	}
	return fumen, nil
}

func edit(fumen *game.Fumen, psr memon.Parser, logger *log.Logger) error {
	ending, err := marker.ParseEndingState(*config.Ending)
	if nil != err {
		return err
	}
	deps := editor.Dependencies{
		Jacket: jacket.Loader{},
		Log:    logger,
		Marker: marker.Marker{Ending: ending},
		Volume: *config.Volume,
		Snap:   *config.Snap,
	}
	var clapper Clapper
	if !*config.NoAudio {
		loader := audio.NewLoader(logger)
		deps.Music = loader
		if *config.Clap {
			clapper = loader
		}
	}
	session := editor.New(fumen, deps)

	p := &Program{
		Parser:   psr,
		Renderer: render.NewRenderer(),
		Theme:    &theme.DefaultTheme{},
		Mapper:   &input.DefaultMapper{Keys: config.Keys()},
		Log:      logger,
		Layout:   render.NewLayout(int(*config.CellWidth)),
		Autosave: *config.Autosave,
		Clapper:  clapper,
	}
	if store, err := openRecent(logger); nil != err {
		logger.Warn("recent files unavailable", log.Fields{"err": err})
	} else {
		defer store.Deinit()
		p.Recent = store
	}

	if err := p.Init(session); nil != err {
		return err
	}
	if err := p.Start(); nil != err {
		session.Close()
		return err
	}
	p.Renderer.RenderLoop(*config.FramePeriod, p.Update)
	p.Deinit()
	return p.Err()
}

func info(w io.Writer, fumen *game.Fumen) error {
	fmt.Fprintf(w, "Title   %v\n", fumen.Title)
	fmt.Fprintf(w, "Artist  %v\n", fumen.Artist)
	fmt.Fprintf(w, "Music   %v\n", fumen.MusicPath)
	fmt.Fprintf(w, "Jacket  %v\n", fumen.JacketPath)
	fmt.Fprintf(w, "BPM     %v\n", fumen.BPM)
	fmt.Fprintf(w, "Offset  %v\n", fumen.Offset)
	for _, name := range fumen.ChartNames() {
		c, _ := fumen.Chart(name)
		length := "-"
		if conv, err := timing.New(c.Resolution, fumen.BPM, fumen.Offset); nil == err {
			length = editor.FormatTime(conv.TicksToSeconds(c.LastTick()))
		}
		fmt.Fprintf(w, "%5v  %3v  %5v notes  %4v long  %v\n", c.Name, c.Level, c.NoteCount(), c.LongCount(), length)
	}
	return nil
}

func listRecent(w io.Writer, store recent.Store) error {
	paths, err := store.Load()
	if nil != err {
		return err
	}
	for i, p := range paths {
		fmt.Fprintf(w, "%2v) %v\n", i, p)
	}
	return nil
}

func exportMIDI(fumen *game.Fumen, chart, out string) error {
	f, err := os.Create(out)
	if nil != err {
		return errors.Wrap(err, "unable to create midi file")
	}
	if err := export.WriteMIDI(f, fumen, chart); nil != err {
		f.Close()
		os.Remove(out)
		return err
	}
	return f.Close()
}
