package exec

import (
	"raftsql/kv"
	"raftsql/sql/plan"
)

// runCreateTable and runDropTable produce no rows; they mutate the
// catalog as a side effect (spec.md §4.6).
func (e *Engine) runCreateTable(n *plan.CreateTable) ([][]kv.Value, error) {
	return nil, e.Catalog.CreateTable(n.Schema)
}

func (e *Engine) runDropTable(n *plan.DropTable) ([][]kv.Value, error) {
	return nil, e.Catalog.DropTable(n.Name)
}
