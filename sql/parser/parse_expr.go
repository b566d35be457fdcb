package parser

import (
	"strconv"
	"strings"

	"raftsql/rafterrors"
	"raftsql/sql/ast"
	"raftsql/sql/token"
)

// parseExpr parses a full expression by precedence climbing: OR binds
// loosest, then AND, then comparisons, then +/-, then * and /, then unary
// NOT/-, then primaries.
func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.keyword("OR") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.Or, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.keyword("AND") {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.And, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOp(p.cur())
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func comparisonOp(t token.Token) (ast.BinaryOp, bool) {
	switch t.Kind {
	case token.Eq:
		return ast.Eq, true
	case token.NotEq:
		return ast.NotEq, true
	case token.Lt:
		return ast.Lt, true
	case token.LtEq:
		return ast.LtEq, true
	case token.Gt:
		return ast.Gt, true
	case token.GtEq:
		return ast.GtEq, true
	default:
		return 0, false
	}
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.Plus:
			p.advance()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpr{Op: ast.Add, Left: left, Right: right}
		case token.Minus:
			p.advance()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpr{Op: ast.Sub, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.Asterisk:
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpr{Op: ast.Mul, Left: left, Right: right}
		case token.Slash:
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpr{Op: ast.Div, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if p.cur().Kind == token.Minus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.Negate, Operand: operand}, nil
	}
	if p.keyword("NOT") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.Not, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case token.OpenParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CloseParen, ")"); err != nil {
			return nil, err
		}
		return e, nil
	case token.Number:
		p.advance()
		if strings.Contains(t.Text, ".") {
			f, err := strconv.ParseFloat(t.Text, 64)
			if err != nil {
				return nil, rafterrors.NewParseError("invalid float literal %q", t.Text)
			}
			return &ast.FloatLiteral{Value: f}, nil
		}
		i, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, rafterrors.NewParseError("invalid integer literal %q", t.Text)
		}
		return &ast.IntegerLiteral{Value: i}, nil
	case token.String:
		p.advance()
		return &ast.StringLiteral{Value: t.Text}, nil
	case token.Ident:
		p.advance()
		return &ast.ColumnRef{Name: t.Text}, nil
	case token.Keyword:
		switch strings.ToUpper(t.Text) {
		case "NULL":
			p.advance()
			return &ast.NullLiteral{}, nil
		case "TRUE":
			p.advance()
			return &ast.BooleanLiteral{Value: true}, nil
		case "FALSE":
			p.advance()
			return &ast.BooleanLiteral{Value: false}, nil
		}
	}
	return nil, rafterrors.NewParseError("expected expression, got %q", t.Text)
}
