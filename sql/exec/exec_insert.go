package exec

import (
	"raftsql/kv"
	"raftsql/rafterrors"
	"raftsql/sql/plan"
)

func (e *Engine) runInsert(n *plan.Insert) ([][]kv.Value, error) {
	pkIdx := n.Table.ColumnIndex(n.Table.PrimaryKey)
	for _, exprs := range n.Rows {
		row := make([]kv.Value, len(exprs))
		for i, expr := range exprs {
			v, err := evalExpr(n.Table, nil, expr)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		if row[pkIdx].IsNull() {
			return nil, rafterrors.NewPlanError(rafterrors.TypeMismatch, "primary key %q cannot be null", n.Table.PrimaryKey)
		}
		key := kv.RowKey(n.Table.Name, row[pkIdx])
		if err := e.Store.Set(key, kv.EncodeRow(row)); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
