// Package store keeps a history of finished calculations in a local sqlite
// database, so reruns of the CLI can be compared.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/arisena/gopp/app/calc"
)

// Entry is one stored calculation result.
type Entry struct {
	ID      string
	Sum     string
	Mode    string
	Mods    string
	Stars   float64
	PP      float64
	Created time.Time
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	initStatement := `
	create table if not exists results
	  (
		  id text not null primary key,
		  sum text,
		  mode text,
		  mods text,
		  stars real,
		  pp real,
		  created timestamp
	  );
	`
	if _, err = db.Exec(initStatement); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HashBeatmap identifies a beatmap by its raw content, so renamed files
// still match their history.
func HashBeatmap(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Save records a finished calculation under the given beatmap hash.
func (s *Store) Save(sum string, res calc.Result) (string, error) {
	id := uuid.NewString()

	_, err := s.db.Exec("insert into results(id, sum, mode, mods, stars, pp, created) values(?, ?, ?, ?, ?, ?, ?)",
		id, sum, res.Mode.String(), res.Mods.String(), res.Stars(), res.PP.Total, time.Now().UTC())
	if err != nil {
		return "", err
	}

	return id, nil
}

// Load returns the stored history of one beatmap, newest first.
func (s *Store) Load(sum string) ([]Entry, error) {
	rows, err := s.db.Query("select id, sum, mode, mods, stars, pp, created from results where sum = ? order by created desc", sum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}

	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Sum, &e.Mode, &e.Mods, &e.Stars, &e.PP, &e.Created); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
