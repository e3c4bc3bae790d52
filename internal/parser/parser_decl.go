package parser

import (
	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/lexer"
)

// parseLet parses `id = expr` or `id: Hint = expr`.
func (p *Parser) parseLet() ast.Expr {
	pos := p.pos()
	id := p.expect(lexer.IDENT).Literal
	var hint *ast.Hint
	if p.at(lexer.COLON) {
		p.advance()
		hint = p.parseHint()
	}
	p.expect(lexer.ASSIGN)
	init := p.parseExpr(precLowest)
	return &ast.Let{ID: id, Init: init, Hint: hint, Pos: pos}
}

// parseDo parses `do <block> end`, with an optional trailing hint:
// `do <block> end: Hint`.
func (p *Parser) parseDo() *ast.Do {
	pos := p.pos()
	p.expect(lexer.DO)
	blockPos := p.pos()
	exprs := p.parseBlock(lexer.END)
	p.expect(lexer.END)
	var hint *ast.Hint
	if p.at(lexer.COLON) {
		p.advance()
		hint = p.parseHint()
	}
	return &ast.Do{Body: &ast.Block{Exprs: exprs, Pos: blockPos}, Hint: hint, Pos: pos}
}

// parseIf parses `if test then block (elif test then block)* (else
// block)? end`, desugaring each elif into a nested If in OrElse.
func (p *Parser) parseIf() *ast.If {
	pos := p.pos()
	p.expect(lexer.IF)
	test := p.parseExpr(precLowest)
	p.expect(lexer.THEN)
	thenPos := p.pos()
	thenExprs := p.parseBlock(lexer.ELIF, lexer.ELSE, lexer.END)
	n := &ast.If{Test: test, Then: &ast.Block{Exprs: thenExprs, Pos: thenPos}, Pos: pos}

	switch p.cur.Type {
	case lexer.ELIF:
		n.OrElse = p.parseElif()
		return n
	case lexer.ELSE:
		p.advance()
		elsePos := p.pos()
		elseExprs := p.parseBlock(lexer.END)
		n.OrElse = &ast.Do{Body: &ast.Block{Exprs: elseExprs, Pos: elsePos}, Pos: elsePos}
	}
	p.expect(lexer.END)
	if p.at(lexer.COLON) {
		p.advance()
		n.Hint = p.parseHint()
	}
	return n
}

// parseElif parses the tail of an if-chain starting at `elif`,
// consuming through the chain's own closing `end`.
func (p *Parser) parseElif() *ast.If {
	pos := p.pos()
	p.expect(lexer.ELIF)
	test := p.parseExpr(precLowest)
	p.expect(lexer.THEN)
	thenPos := p.pos()
	thenExprs := p.parseBlock(lexer.ELIF, lexer.ELSE, lexer.END)
	n := &ast.If{Test: test, Then: &ast.Block{Exprs: thenExprs, Pos: thenPos}, Pos: pos}

	switch p.cur.Type {
	case lexer.ELIF:
		n.OrElse = p.parseElif()
		return n
	case lexer.ELSE:
		p.advance()
		elsePos := p.pos()
		elseExprs := p.parseBlock(lexer.END)
		n.OrElse = &ast.Do{Body: &ast.Block{Exprs: elseExprs, Pos: elsePos}, Pos: elsePos}
	}
	p.expect(lexer.END)
	return n
}

// parseGenerics parses an optional `<A, B>` generic-parameter list.
func (p *Parser) parseGenerics() []string {
	if !p.at(lexer.LT) {
		return nil
	}
	p.advance()
	var gens []string
	for !p.at(lexer.GT) && !p.at(lexer.EOF) {
		gens = append(gens, p.expect(lexer.TYPE_IDENT).Literal)
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.GT)
	return gens
}

// parseDef parses `def name<generics>(params): Hint do block end`.
func (p *Parser) parseDef() *ast.Def {
	pos := p.pos()
	p.expect(lexer.DEF)
	id := p.expect(lexer.IDENT).Literal
	generics := p.parseGenerics()

	p.expect(lexer.LPAREN)
	var params []*ast.Param
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		paramPos := p.pos()
		pname := p.expect(lexer.IDENT).Literal
		var phint *ast.Hint
		if p.at(lexer.COLON) {
			p.advance()
			phint = p.parseHint()
		}
		params = append(params, &ast.Param{ID: pname, Hint: phint, Pos: paramPos})
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)

	var hint *ast.Hint
	if p.at(lexer.COLON) {
		p.advance()
		hint = p.parseHint()
	}

	body := p.parseDo()
	return &ast.Def{ID: id, Params: params, Body: body, Hint: hint, Generics: generics, Pos: pos}
}

// parseEnumDeclaration parses `enum Name<generics> = Variant (|
// Variant)* end`.
func (p *Parser) parseEnumDeclaration() *ast.EnumDeclaration {
	pos := p.pos()
	p.expect(lexer.ENUM)
	id := p.expect(lexer.TYPE_IDENT).Literal
	generics := p.parseGenerics()
	p.expect(lexer.ASSIGN)

	var variants []*ast.Variant
	for {
		variants = append(variants, p.parseVariant())
		if p.at(lexer.PIPE) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.END)
	return &ast.EnumDeclaration{ID: id, Variants: variants, Generics: generics, Pos: pos}
}

func (p *Parser) parseVariant() *ast.Variant {
	pos := p.pos()
	name := p.expect(lexer.TYPE_IDENT).Literal
	var fields []*ast.Hint
	if p.at(lexer.LPAREN) {
		p.advance()
		for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
			fields = append(fields, p.parseHint())
			if p.at(lexer.COMMA) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(lexer.RPAREN)
	}
	return &ast.Variant{Name: name, FieldHints: fields, Pos: pos}
}

// parseCaseOf parses `case scrutinee of (pattern do block end)+ end`.
func (p *Parser) parseCaseOf() *ast.CaseOf {
	pos := p.pos()
	p.expect(lexer.CASE)
	scrutinee := p.parseExpr(precLowest)
	p.expect(lexer.OF)

	var cases []*ast.Case
	for !p.at(lexer.END) && !p.at(lexer.EOF) {
		casePos := p.pos()
		pat := p.parsePattern()
		body := p.parseDo()
		cases = append(cases, &ast.Case{Pattern: pat, Body: body, Pos: casePos})
	}
	p.expect(lexer.END)
	return &ast.CaseOf{Scrutinee: scrutinee, Cases: cases, Pos: pos}
}
