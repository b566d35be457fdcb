package exec

import (
	"raftsql/kv"
	"raftsql/rafterrors"
	"raftsql/sql/plan"
)

func (e *Engine) runUpdate(n *plan.Update) ([][]kv.Value, error) {
	source, err := e.build(n.Source)
	if err != nil {
		return nil, err
	}
	pkIdx := n.Table.ColumnIndex(n.Table.PrimaryKey)

	var updated [][]kv.Value
	for {
		row, ok, err := source.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		newRow := append([]kv.Value(nil), row...)
		for _, a := range n.Assignments {
			idx := n.Table.ColumnIndex(a.Column)
			v, err := evalExpr(n.Table, row, a.Value)
			if err != nil {
				return nil, err
			}
			newRow[idx] = v
		}
		if newRow[pkIdx].IsNull() {
			return nil, rafterrors.NewPlanError(rafterrors.TypeMismatch, "primary key %q cannot be null", n.Table.PrimaryKey)
		}
		updated = append(updated, newRow)
	}

	for _, row := range updated {
		if err := e.Store.Set(kv.RowKey(n.Table.Name, row[pkIdx]), kv.EncodeRow(row)); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
