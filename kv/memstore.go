package kv

import (
	"bytes"
	"sync"

	"github.com/google/btree"
)

// item is the btree.Item stored in MemStore's tree: a key/value pair
// ordered by raw byte comparison of key, matching spec.md §4.7's
// requirement that Integer/String primary-key encodings preserve
// natural order under byte comparison.
type item struct {
	key   []byte
	value []byte
}

func (a item) Less(than btree.Item) bool {
	return bytes.Compare(a.key, than.(item).key) < 0
}

// MemStore is an in-memory ordered map backed by a google/btree.BTree,
// grounded on the teacher's mvcc.treeIndex
// (gyuho-db/mvcc/01_tree_index.go).
type MemStore struct {
	mu   sync.RWMutex
	tree *btree.BTree
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tree: btree.New(32)}
}

func (s *MemStore) Get(key []byte) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := s.tree.Get(item{key: key})
	if found == nil {
		return nil, false, nil
	}
	v := found.(item).value
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemStore) Set(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := append([]byte(nil), key...)
	v := append([]byte(nil), value...)
	s.tree.ReplaceOrInsert(item{key: k, value: v})
	return nil
}

func (s *MemStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Delete(item{key: key})
	return nil
}

func (s *MemStore) Scan(prefix []byte) (Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []item
	s.tree.AscendGreaterOrEqual(item{key: prefix}, func(i btree.Item) bool {
		it := i.(item)
		if !bytes.HasPrefix(it.key, prefix) {
			return false
		}
		out = append(out, item{key: append([]byte(nil), it.key...), value: append([]byte(nil), it.value...)})
		return true
	})
	return &sliceIterator{items: out, pos: -1}, nil
}

type sliceIterator struct {
	items []item
	pos   int
}

func (it *sliceIterator) Next() bool {
	it.pos++
	return it.pos < len(it.items)
}

func (it *sliceIterator) Key() []byte   { return it.items[it.pos].key }
func (it *sliceIterator) Value() []byte { return it.items[it.pos].value }
func (it *sliceIterator) Err() error    { return nil }
func (it *sliceIterator) Close() error  { return nil }
