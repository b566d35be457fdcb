// Package exec evaluates a plan.Node tree against a catalog.Catalog and
// kv.Store, per spec.md §4.6. Evaluation is pull-based: a parent asks its
// source for the next row via a single Next method, mirroring
// original_source/src/sql/plan/node.rs's Iterator impl and
// askorykh-goDB/internal/engine's one-file-per-operator layout.
package exec

import (
	"raftsql/catalog"
	"raftsql/kv"
)

// Iterator is a lazy producer of rows. Next returns io.EOF-like
// termination via the ok return: (nil, false, nil) signals a clean end of
// input.
type Iterator interface {
	Next() (row []kv.Value, ok bool, err error)
}

// Engine binds plan execution to a specific catalog and store, so plan
// nodes need not carry them.
type Engine struct {
	Catalog *catalog.Catalog
	Store   kv.Store
}
