// Package kv implements the ordered-map key/value contract of spec.md
// §4.7: byte-string keys and values, with a prefix scan ordered by key.
// The catalog and table rows are encoded on top of this contract by
// package catalog.
package kv

// Store is an ordered map from byte-string keys to byte-string values.
type Store interface {
	Get(key []byte) (value []byte, ok bool, err error)
	Set(key, value []byte) error
	Delete(key []byte) error

	// Scan returns every key with the given prefix, in ascending key
	// order.
	Scan(prefix []byte) (Iterator, error)
}

// Iterator walks a Scan result in ascending key order.
type Iterator interface {
	// Next advances the iterator and reports whether an item is
	// available.
	Next() bool
	Key() []byte
	Value() []byte
	// Err returns any error encountered during iteration.
	Err() error
	Close() error
}
