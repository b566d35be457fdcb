package kv

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/boltdb/bolt"
)

var dataBucket = []byte("kv")

// BoltStore is a github.com/boltdb/bolt-backed ordered map; raftsqld
// uses it when -data-dir is set.
type BoltStore struct {
	db *bolt.DB
}

// ensureDataDir makes dir (and any missing parents) if it doesn't already
// exist, at owner-only permissions, and confirms it's writable.
func ensureDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f := filepath.Join(dir, ".touch")
	if err := os.WriteFile(f, nil, 0600); err != nil {
		return err
	}
	return os.Remove(f)
}

// OpenBoltStore opens (creating if needed) a BoltStore rooted at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	if err := ensureDataDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dataBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Close releases the underlying file.
func (s *BoltStore) Close() error { return s.db.Close() }

func (s *BoltStore) Get(key []byte) ([]byte, bool, error) {
	var value []byte
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(dataBucket).Get(key)
		if v == nil {
			return nil
		}
		found = true
		value = append([]byte(nil), v...)
		return nil
	})
	return value, found, err
}

func (s *BoltStore) Set(key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucket).Put(key, value)
	})
}

func (s *BoltStore) Delete(key []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucket).Delete(key)
	})
}

func (s *BoltStore) Scan(prefix []byte) (Iterator, error) {
	var out []item
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(dataBucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			out = append(out, item{key: append([]byte(nil), k...), value: append([]byte(nil), v...)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sliceIterator{items: out, pos: -1}, nil
}
