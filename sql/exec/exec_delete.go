package exec

import (
	"raftsql/kv"
	"raftsql/sql/plan"
)

func (e *Engine) runDelete(n *plan.Delete) ([][]kv.Value, error) {
	source, err := e.build(n.Source)
	if err != nil {
		return nil, err
	}
	pkIdx := n.Table.ColumnIndex(n.Table.PrimaryKey)

	var keys [][]byte
	for {
		row, ok, err := source.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		keys = append(keys, kv.RowKey(n.Table.Name, row[pkIdx]))
	}
	for _, key := range keys {
		if err := e.Store.Delete(key); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
