package exec

import (
	"raftsql/catalog"
	"raftsql/kv"
	"raftsql/rafterrors"
	"raftsql/sql/ast"
)

// evalExpr evaluates expr against row (whose cells are positioned per
// table's column order; table may be the zero value when there is no
// source row, in which case expr must not contain a ColumnRef).
func evalExpr(table catalog.Table, row []kv.Value, expr ast.Expr) (kv.Value, error) {
	switch e := expr.(type) {
	case *ast.NullLiteral:
		return kv.NullValue(), nil
	case *ast.BooleanLiteral:
		return kv.BooleanValue(e.Value), nil
	case *ast.IntegerLiteral:
		return kv.IntegerValue(e.Value), nil
	case *ast.FloatLiteral:
		return kv.FloatValue(e.Value), nil
	case *ast.StringLiteral:
		return kv.StringValue(e.Value), nil
	case *ast.ColumnRef:
		idx := table.ColumnIndex(e.Name)
		if idx < 0 {
			return kv.Value{}, rafterrors.NewPlanError(rafterrors.UnknownColumn, "%s", e.Name)
		}
		return row[idx], nil
	case *ast.UnaryExpr:
		return evalUnary(table, row, e)
	case *ast.BinaryExpr:
		return evalBinary(table, row, e)
	default:
		return kv.Value{}, rafterrors.ErrNotImplemented
	}
}

func evalUnary(table catalog.Table, row []kv.Value, e *ast.UnaryExpr) (kv.Value, error) {
	v, err := evalExpr(table, row, e.Operand)
	if err != nil {
		return kv.Value{}, err
	}
	switch e.Op {
	case ast.Negate:
		if v.IsNull() {
			return kv.NullValue(), nil
		}
		switch v.Kind() {
		case kv.KindInteger:
			return kv.IntegerValue(-v.Integer()), nil
		case kv.KindFloat:
			return kv.FloatValue(-v.Float()), nil
		default:
			return kv.Value{}, rafterrors.NewPlanError(rafterrors.TypeMismatch, "cannot negate %s", v.Kind())
		}
	case ast.Not:
		// Three-valued logic: NOT of Null is Null. Only a consumer of the
		// final value (such as a WHERE filter) treats Null as false.
		if v.IsNull() {
			return kv.NullValue(), nil
		}
		if v.Kind() != kv.KindBoolean {
			return kv.Value{}, rafterrors.NewPlanError(rafterrors.TypeMismatch, "NOT requires a boolean, got %s", v.Kind())
		}
		return kv.BooleanValue(!v.Boolean()), nil
	default:
		return kv.Value{}, rafterrors.ErrNotImplemented
	}
}

func evalBinary(table catalog.Table, row []kv.Value, e *ast.BinaryExpr) (kv.Value, error) {
	// AND/OR go to evalLogical for their three-valued rules instead of
	// the plain Null propagation below; both sides are always evaluated.
	if e.Op == ast.And || e.Op == ast.Or {
		return evalLogical(table, row, e)
	}

	left, err := evalExpr(table, row, e.Left)
	if err != nil {
		return kv.Value{}, err
	}
	right, err := evalExpr(table, row, e.Right)
	if err != nil {
		return kv.Value{}, err
	}

	// "Any arithmetic involving Null yields Null. Comparisons involving
	// Null yield Null" (spec.md §4.5).
	if left.IsNull() || right.IsNull() {
		return kv.NullValue(), nil
	}

	switch e.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		return evalArithmetic(e.Op, left, right)
	case ast.Eq, ast.NotEq, ast.Lt, ast.LtEq, ast.Gt, ast.GtEq:
		return evalComparison(e.Op, left, right)
	default:
		return kv.Value{}, rafterrors.ErrNotImplemented
	}
}

func evalLogical(table catalog.Table, row []kv.Value, e *ast.BinaryExpr) (kv.Value, error) {
	left, err := evalExpr(table, row, e.Left)
	if err != nil {
		return kv.Value{}, err
	}
	right, err := evalExpr(table, row, e.Right)
	if err != nil {
		return kv.Value{}, err
	}
	lt, lIsNull := boolOrNull(left)
	rt, rIsNull := boolOrNull(right)

	switch e.Op {
	case ast.And:
		if (!lIsNull && !lt) || (!rIsNull && !rt) {
			return kv.BooleanValue(false), nil
		}
		if lIsNull || rIsNull {
			return kv.NullValue(), nil
		}
		return kv.BooleanValue(lt && rt), nil
	case ast.Or:
		if (!lIsNull && lt) || (!rIsNull && rt) {
			return kv.BooleanValue(true), nil
		}
		if lIsNull || rIsNull {
			return kv.NullValue(), nil
		}
		return kv.BooleanValue(lt || rt), nil
	default:
		return kv.Value{}, rafterrors.ErrNotImplemented
	}
}

func boolOrNull(v kv.Value) (value bool, isNull bool) {
	if v.IsNull() {
		return false, true
	}
	return v.Boolean(), false
}

// evalArithmetic implements Integer+Integer -> Integer (native int64
// wraparound), Integer+Float/Float+Integer/Float+Float -> Float, per
// spec.md §4.5 and DESIGN.md's overflow decision.
func evalArithmetic(op ast.BinaryOp, left, right kv.Value) (kv.Value, error) {
	if left.Kind() == kv.KindInteger && right.Kind() == kv.KindInteger {
		l, r := left.Integer(), right.Integer()
		switch op {
		case ast.Add:
			return kv.IntegerValue(l + r), nil
		case ast.Sub:
			return kv.IntegerValue(l - r), nil
		case ast.Mul:
			return kv.IntegerValue(l * r), nil
		case ast.Div:
			if r == 0 {
				return kv.Value{}, rafterrors.NewPlanError(rafterrors.TypeMismatch, "division by zero")
			}
			return kv.IntegerValue(l / r), nil
		}
	}

	l, lok := asFloat(left)
	r, rok := asFloat(right)
	if !lok || !rok {
		return kv.Value{}, rafterrors.NewPlanError(rafterrors.TypeMismatch, "cannot apply arithmetic to %s and %s", left.Kind(), right.Kind())
	}
	switch op {
	case ast.Add:
		return kv.FloatValue(l + r), nil
	case ast.Sub:
		return kv.FloatValue(l - r), nil
	case ast.Mul:
		return kv.FloatValue(l * r), nil
	case ast.Div:
		return kv.FloatValue(l / r), nil
	default:
		return kv.Value{}, rafterrors.ErrNotImplemented
	}
}

func asFloat(v kv.Value) (float64, bool) {
	switch v.Kind() {
	case kv.KindInteger:
		return float64(v.Integer()), true
	case kv.KindFloat:
		return v.Float(), true
	default:
		return 0, false
	}
}

func evalComparison(op ast.BinaryOp, left, right kv.Value) (kv.Value, error) {
	var cmp int
	switch {
	case left.Kind() == kv.KindInteger && right.Kind() == kv.KindInteger:
		cmp = compareInt(left.Integer(), right.Integer())
	case left.Kind() == kv.KindString && right.Kind() == kv.KindString:
		cmp = compareString(left.Text(), right.Text())
	case left.Kind() == kv.KindBoolean && right.Kind() == kv.KindBoolean:
		cmp = compareBool(left.Boolean(), right.Boolean())
	default:
		l, lok := asFloat(left)
		r, rok := asFloat(right)
		if !lok || !rok {
			return kv.Value{}, rafterrors.NewPlanError(rafterrors.TypeMismatch, "cannot compare %s and %s", left.Kind(), right.Kind())
		}
		cmp = compareFloat(l, r)
	}

	switch op {
	case ast.Eq:
		return kv.BooleanValue(cmp == 0), nil
	case ast.NotEq:
		return kv.BooleanValue(cmp != 0), nil
	case ast.Lt:
		return kv.BooleanValue(cmp < 0), nil
	case ast.LtEq:
		return kv.BooleanValue(cmp <= 0), nil
	case ast.Gt:
		return kv.BooleanValue(cmp > 0), nil
	case ast.GtEq:
		return kv.BooleanValue(cmp >= 0), nil
	default:
		return kv.Value{}, rafterrors.ErrNotImplemented
	}
}

func compareInt(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func compareFloat(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func compareString(l, r string) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func compareBool(l, r bool) int {
	if l == r {
		return 0
	}
	if !l && r {
		return -1
	}
	return 1
}

// Truthy implements the three-valued-logic-to-bool collapse used by
// Filter: Null and non-boolean values are treated as false.
func Truthy(v kv.Value) bool {
	return v.Kind() == kv.KindBoolean && v.Boolean()
}
