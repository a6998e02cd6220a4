// Package storage persists session state between notepad runs: search
// history, recently opened files, and the last window state. It is a
// small bbolt database in the user data directory.
package storage

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	bolt "go.etcd.io/bbolt"
)

// Bucket names.
var (
	bucketSearches = []byte("searches")
	bucketRecent   = []byte("recent-files")
	bucketState    = []byte("state")
)

var stateKey = []byte("window")

// Limits on stored history.
const (
	maxSearches    = 100
	maxRecentFiles = 20
)

// ErrNoEntry reports a lookup that found nothing.
var ErrNoEntry = errors.New("storage: no such entry")

// Store is the session database. Safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSearches, bucketRecent, bucketState} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DefaultPath returns the conventional database location under the
// user data dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "notepad", "session.db")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddSearch appends a query to the search history. A query equal to
// the most recent entry is not duplicated; history is capped at
// maxSearches entries, oldest dropped first.
func (s *Store) AddSearch(query string) error {
	if query == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSearches)

		if k, v := b.Cursor().Last(); k != nil && string(v) == query {
			return nil
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(marshalSeq(seq), []byte(query)); err != nil {
			return err
		}
		return trimOldest(b, maxSearches)
	})
}

// Searches returns up to limit history entries, newest first.
func (s *Store) Searches(limit int) ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketSearches).Cursor()
		for k, v := c.Last(); k != nil && (limit <= 0 || len(out) < limit); k, v = c.Prev() {
			out = append(out, string(v))
		}
		return nil
	})
	return out, err
}

// AddRecentFile records path as the most recently opened file,
// removing any older entry for the same path. The list is capped at
// maxRecentFiles.
func (s *Store) AddRecentFile(path string) error {
	if path == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecent)

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if string(v) == path {
				if err := b.Delete(k); err != nil {
					return err
				}
				break
			}
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(marshalSeq(seq), []byte(path)); err != nil {
			return err
		}
		return trimOldest(b, maxRecentFiles)
	})
}

// RecentFiles returns up to limit recent files, newest first.
func (s *Store) RecentFiles(limit int) ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRecent).Cursor()
		for k, v := c.Last(); k != nil && (limit <= 0 || len(out) < limit); k, v = c.Prev() {
			out = append(out, string(v))
		}
		return nil
	})
	return out, err
}

// WindowState is the restorable view state of the last session.
type WindowState struct {
	LastFile    string
	TopRow      int
	CaretOffset int
}

// SaveWindowState stores ws, updating only the fields in the JSON
// document so future fields survive round-trips through old binaries.
func (s *Store) SaveWindowState(ws WindowState) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		doc := string(b.Get(stateKey))

		var err error
		for _, f := range []struct {
			path  string
			value any
		}{
			{"last_file", ws.LastFile},
			{"top_row", ws.TopRow},
			{"caret_offset", ws.CaretOffset},
		} {
			doc, err = sjson.Set(doc, f.path, f.value)
			if err != nil {
				return err
			}
		}
		return b.Put(stateKey, []byte(doc))
	})
}

// WindowState returns the stored window state, or ErrNoEntry if none
// was ever saved.
func (s *Store) WindowState() (WindowState, error) {
	var ws WindowState
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketState).Get(stateKey)
		if raw == nil {
			return ErrNoEntry
		}
		doc := string(raw)
		ws.LastFile = gjson.Get(doc, "last_file").String()
		ws.TopRow = int(gjson.Get(doc, "top_row").Int())
		ws.CaretOffset = int(gjson.Get(doc, "caret_offset").Int())
		return nil
	})
	return ws, err
}

// trimOldest deletes entries beyond limit, oldest first.
func trimOldest(b *bolt.Bucket, limit int) error {
	count := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		count++
	}
	for k, _ := c.First(); k != nil && count > limit; k, _ = c.First() {
		if err := b.Delete(k); err != nil {
			return err
		}
		count--
	}
	return nil
}

// marshalSeq encodes a sequence number as a sortable big-endian key.
func marshalSeq(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}
