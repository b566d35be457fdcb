package parser

import (
	"raftsql/sql/ast"
	"raftsql/sql/token"
)

// parseInsert parses: INSERT INTO ident ['(' ident (',' ident)* ')'] VALUES
// '(' expr (',' expr)* ')' (',' '(' expr (',' expr)* ')')*
func (p *parser) parseInsert() (ast.Statement, error) {
	if err := p.expectKeyword("INSERT"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var columns []string
	if p.cur().Kind == token.OpenParen {
		p.advance()
		for {
			col, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			columns = append(columns, col)
			if p.cur().Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.CloseParen, ")"); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}

	var rows [][]ast.Expr
	for {
		row, err := p.parseValueTuple()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}

	return &ast.Insert{Table: table, Columns: columns, Values: rows}, nil
}

func (p *parser) parseValueTuple() ([]ast.Expr, error) {
	if _, err := p.expect(token.OpenParen, "("); err != nil {
		return nil, err
	}
	var values []ast.Expr
	for {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.CloseParen, ")"); err != nil {
		return nil, err
	}
	return values, nil
}
