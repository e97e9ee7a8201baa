// Package recent remembers the fumens opened most recently.
package recent

import (
	"database/sql"
	"path/filepath"

	"git.lost.host/meutraa/feis/internal/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Limit is how many files are remembered.
const Limit = 10

type Store interface {
	Init() error
	Deinit()

	// Push records path as the most recently opened file
	Push(path string) error

	// Load lists the remembered files, most recent first
	Load() ([]string, error)
}

type DefaultStore struct {
	Path string
	Log  *log.Logger

	db *sql.DB
}

func (s *DefaultStore) Init() error {
	db, err := sql.Open("sqlite3", s.Path)
	if nil != err {
		return errors.Wrap(err, "unable to open recent files")
	}

	initStatement := `
	create table if not exists recent
	  (
		  id integer not null primary key,
		  path text not null unique,
		  opened integer not null
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create recent files table")
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		if err := s.db.Close(); nil != err {
			s.Log.Error("unable to close recent files", err, nil)
		}
		s.db = nil
	}
}

// Canonical resolves path to an absolute path without symlinks. Files that
// do not exist yet keep their absolute path.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if nil != err {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); nil == err {
		return resolved, nil
	}
	return abs, nil
}

func (s *DefaultStore) Push(path string) error {
	if nil == s.db {
		return errors.New("recent files not initialized")
	}
	canonical, err := Canonical(path)
	if nil != err {
		return errors.Wrapf(err, "unable to resolve %v", path)
	}

	tx, err := s.db.Begin()
	if nil != err {
		return errors.Wrap(err, "unable to save recent file")
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
	insert into recent(path, opened)
	  values(?, (select coalesce(max(opened), 0) + 1 from recent))
	  on conflict(path) do update set opened = excluded.opened
	`, canonical)
	if nil != err {
		return errors.Wrap(err, "unable to save recent file")
	}
	_, err = tx.Exec(`
	delete from recent where path not in
	  (select path from recent order by opened desc limit ?)
	`, Limit)
	if nil != err {
		return errors.Wrap(err, "unable to trim recent files")
	}
	if err := tx.Commit(); nil != err {
		return errors.Wrap(err, "unable to save recent file")
	}
	s.Log.Debug("recent file pushed", log.Fields{"path": canonical})
	return nil
}

func (s *DefaultStore) Load() ([]string, error) {
	if nil == s.db {
		return nil, errors.New("recent files not initialized")
	}
	paths := []string{}
	rows, err := s.db.Query("select path from recent order by opened desc limit ?", Limit)
	if nil != err {
		return paths, errors.Wrap(err, "unable to load recent files")
	}
	defer rows.Close()
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); nil != err {
			s.Log.Warn("unable to read recent file", log.Fields{"err": err})
			continue
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
