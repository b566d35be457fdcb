package parser

import (
	"raftsql/sql/ast"
	"raftsql/sql/token"
)

// parseSelect parses: SELECT item (',' item)* [FROM ident] [WHERE expr]
func (p *parser) parseSelect() (ast.Statement, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}

	var items []ast.SelectItem
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}

	stmt := &ast.Select{Items: items}

	if p.keyword("FROM") {
		table, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		stmt.From = table
	}

	if p.keyword("WHERE") {
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	return stmt, nil
}

func (p *parser) parseSelectItem() (ast.SelectItem, error) {
	if p.cur().Kind == token.Asterisk {
		p.advance()
		return ast.SelectItem{Expr: &ast.Star{}}, nil
	}
	expr, err := p.parseExpr()
	if err != nil {
		return ast.SelectItem{}, err
	}
	item := ast.SelectItem{Expr: expr}
	if p.keyword("AS") {
		alias, err := p.expectIdent()
		if err != nil {
			return ast.SelectItem{}, err
		}
		item.Alias = alias
	}
	return item, nil
}
