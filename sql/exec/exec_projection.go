package exec

import (
	"raftsql/catalog"
	"raftsql/kv"
	"raftsql/sql/ast"
)

// projectionIter pulls one row per request from source and evaluates each
// expression against it; constant expressions ignore the row.
type projectionIter struct {
	table  catalog.Table
	source Iterator
	exprs  []ast.Expr
}

func (p *projectionIter) Next() ([]kv.Value, bool, error) {
	row, ok, err := p.source.Next()
	if err != nil || !ok {
		return nil, ok, err
	}
	out := make([]kv.Value, len(p.exprs))
	for i, e := range p.exprs {
		v, err := evalExpr(p.table, row, e)
		if err != nil {
			return nil, false, err
		}
		out[i] = v
	}
	return out, true, nil
}
