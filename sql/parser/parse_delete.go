package parser

import "raftsql/sql/ast"

// parseDelete parses: DELETE FROM ident [WHERE expr]
func (p *parser) parseDelete() (ast.Statement, error) {
	if err := p.expectKeyword("DELETE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Delete{Table: table}
	if p.keyword("WHERE") {
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	return stmt, nil
}
