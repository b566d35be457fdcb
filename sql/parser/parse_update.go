package parser

import (
	"raftsql/sql/ast"
	"raftsql/sql/token"
)

// parseUpdate parses: UPDATE ident SET ident '=' expr (',' ident '=' expr)*
// [WHERE expr]
func (p *parser) parseUpdate() (ast.Statement, error) {
	if err := p.expectKeyword("UPDATE"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}

	var assignments []ast.Assignment
	for {
		col, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectEq(); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, ast.Assignment{Column: col, Value: value})
		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}

	stmt := &ast.Update{Table: table, Set: assignments}
	if p.keyword("WHERE") {
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	return stmt, nil
}
