package planner

import (
	"raftsql/rafterrors"
	"raftsql/sql/ast"
	"raftsql/sql/plan"
)

// buildInsert lowers an INSERT statement, reordering each value tuple to
// schema column order when an explicit column list was given, and
// checking arity against the schema.
func buildInsert(cat Catalog, s *ast.Insert) (plan.Node, error) {
	table, err := cat.GetTable(s.Table)
	if err != nil {
		return nil, rafterrors.NewPlanError(rafterrors.UnknownTable, "%s", s.Table)
	}

	columns := s.Columns
	if len(columns) == 0 {
		columns = make([]string, len(table.Columns))
		for i, c := range table.Columns {
			columns[i] = c.Name
		}
	}
	positions := make([]int, len(columns))
	for i, name := range columns {
		idx := table.ColumnIndex(name)
		if idx < 0 {
			return nil, rafterrors.NewPlanError(rafterrors.UnknownColumn, "%s", name)
		}
		positions[i] = idx
	}

	rows := make([][]ast.Expr, len(s.Values))
	for r, values := range s.Values {
		if len(values) != len(columns) {
			return nil, rafterrors.NewPlanError(rafterrors.TypeMismatch, "row %d: expected %d values, got %d", r, len(columns), len(values))
		}
		row := make([]ast.Expr, len(table.Columns))
		for i := range row {
			row[i] = &ast.NullLiteral{}
		}
		for i, v := range values {
			row[positions[i]] = v
		}
		rows[r] = row
	}

	return &plan.Insert{Table: table, Rows: rows}, nil
}
