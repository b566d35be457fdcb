package exec

import (
	"raftsql/catalog"
	"raftsql/kv"
)

// scanIter iterates a table's rows in primary-key order by walking the
// kv.Store's row-key prefix scan and decoding each stored value.
type scanIter struct {
	table catalog.Table
	it    kv.Iterator
}

func newScanIter(store kv.Store, table catalog.Table) (*scanIter, error) {
	it, err := store.Scan(kv.RowKeyPrefix(table.Name))
	if err != nil {
		return nil, err
	}
	return &scanIter{table: table, it: it}, nil
}

func (s *scanIter) Next() ([]kv.Value, bool, error) {
	if !s.it.Next() {
		return nil, false, s.it.Err()
	}
	row, err := kv.DecodeRow(s.it.Value())
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}

func (s *scanIter) Close() error { return s.it.Close() }
