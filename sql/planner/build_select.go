package planner

import (
	"raftsql/catalog"
	"raftsql/rafterrors"
	"raftsql/sql/ast"
	"raftsql/sql/plan"
)

// buildSelect lowers a SELECT statement. With a FROM clause, its source is
// a Scan (optionally wrapped in a Filter for WHERE); without one, its
// source is Nothing and every projected expression must be constant
// (spec.md §4.4).
func buildSelect(cat Catalog, s *ast.Select) (plan.Node, error) {
	var source plan.Node
	var table catalog.Table

	if s.From != "" {
		t, err := cat.GetTable(s.From)
		if err != nil {
			return nil, rafterrors.NewPlanError(rafterrors.UnknownTable, "%s", s.From)
		}
		table = t
		source = &plan.Scan{Table: t}
	} else {
		source = &plan.Nothing{}
	}

	if s.Where != nil {
		if s.From == "" {
			return nil, rafterrors.NewPlanError(rafterrors.UnknownColumn, "WHERE requires a FROM clause")
		}
		if _, err := resolveExpr(table, s.Where); err != nil {
			return nil, err
		}
		source = &plan.Filter{Source: source, Predicate: s.Where}
	}

	exprs := make([]ast.Expr, 0, len(s.Items))
	labels := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		if _, isStar := item.Expr.(*ast.Star); isStar {
			if s.From == "" {
				return nil, rafterrors.NewPlanError(rafterrors.UnknownColumn, "SELECT * requires a FROM clause")
			}
			for _, c := range table.Columns {
				exprs = append(exprs, &ast.ColumnRef{Name: c.Name})
				labels = append(labels, "")
			}
			continue
		}
		if _, err := resolveExpr(table, item.Expr); err != nil {
			return nil, err
		}
		exprs = append(exprs, item.Expr)
		labels = append(labels, item.Alias)
	}

	return &plan.Projection{Source: source, Exprs: exprs, Labels: labels}, nil
}

// resolveExpr checks that every ColumnRef in expr names a real column of
// table (or, if table is the zero value, rejects every ColumnRef since
// there is no FROM clause to resolve against, per spec.md §4.4's "for
// projection over Nothing, expressions must be constants").
func resolveExpr(table catalog.Table, expr ast.Expr) (catalog.DataType, error) {
	switch e := expr.(type) {
	case *ast.ColumnRef:
		if table.Name == "" {
			return 0, rafterrors.NewPlanError(rafterrors.UnknownColumn, "%s", e.Name)
		}
		idx := table.ColumnIndex(e.Name)
		if idx < 0 {
			return 0, rafterrors.NewPlanError(rafterrors.UnknownColumn, "%s", e.Name)
		}
		return table.Columns[idx].Type, nil
	case *ast.UnaryExpr:
		return resolveExpr(table, e.Operand)
	case *ast.BinaryExpr:
		if _, err := resolveExpr(table, e.Left); err != nil {
			return 0, err
		}
		return resolveExpr(table, e.Right)
	default:
		return 0, nil
	}
}
