package exec

import (
	"raftsql/catalog"
	"raftsql/kv"
	"raftsql/sql/ast"
)

// filterIter drops rows whose predicate is not truthy under three-valued
// logic (spec.md §4.5: Null in a boolean context is treated as false).
type filterIter struct {
	table     catalog.Table
	source    Iterator
	predicate ast.Expr
}

func (f *filterIter) Next() ([]kv.Value, bool, error) {
	for {
		row, ok, err := f.source.Next()
		if err != nil || !ok {
			return nil, ok, err
		}
		v, err := evalExpr(f.table, row, f.predicate)
		if err != nil {
			return nil, false, err
		}
		if Truthy(v) {
			return row, true, nil
		}
	}
}
