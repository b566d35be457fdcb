package exec

import (
	"raftsql/catalog"
	"raftsql/kv"
	"raftsql/rafterrors"
	"raftsql/sql/plan"
)

// Run executes root to completion and collects every produced row.
// CreateTable, DropTable, Insert, Delete and Update produce no rows and
// take their side effect immediately; Projection (over Scan, Filter, or
// Nothing) is pulled until exhausted.
func (e *Engine) Run(root plan.Node) ([][]kv.Value, error) {
	switch n := root.(type) {
	case *plan.CreateTable:
		return e.runCreateTable(n)
	case *plan.DropTable:
		return e.runDropTable(n)
	case *plan.Insert:
		return e.runInsert(n)
	case *plan.Delete:
		return e.runDelete(n)
	case *plan.Update:
		return e.runUpdate(n)
	default:
		it, err := e.build(root)
		if err != nil {
			return nil, err
		}
		var rows [][]kv.Value
		for {
			row, ok, err := it.Next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return rows, nil
			}
			rows = append(rows, row)
		}
	}
}

// build lowers a read-only plan node (Nothing, Scan, Filter, Projection)
// into a pull-based Iterator.
func (e *Engine) build(n plan.Node) (Iterator, error) {
	switch node := n.(type) {
	case *plan.Nothing:
		return &nothingIter{}, nil
	case *plan.Scan:
		return newScanIter(e.Store, node.Table)
	case *plan.Filter:
		source, err := e.build(node.Source)
		if err != nil {
			return nil, err
		}
		table := scanTable(node.Source)
		return &filterIter{table: table, source: source, predicate: node.Predicate}, nil
	case *plan.Projection:
		source, err := e.build(node.Source)
		if err != nil {
			return nil, err
		}
		table := scanTable(node.Source)
		return &projectionIter{table: table, source: source, exprs: node.Exprs}, nil
	default:
		return nil, rafterrors.ErrNotImplemented
	}
}

// scanTable finds the catalog.Table a read-only subtree scans, or the
// zero value if it bottoms out at Nothing, so evalExpr can resolve
// ColumnRefs against the right schema regardless of how many Filter/
// Projection layers sit above the Scan.
func scanTable(n plan.Node) catalog.Table {
	switch node := n.(type) {
	case *plan.Scan:
		return node.Table
	case *plan.Filter:
		return scanTable(node.Source)
	case *plan.Projection:
		return scanTable(node.Source)
	default:
		return catalog.Table{}
	}
}
