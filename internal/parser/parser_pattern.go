package parser

import (
	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/lexer"
)

// parsePattern parses one case-of pattern: a lowercase identifier
// binds unconditionally (MatchAs), an uppercase identifier matches a
// variant constructor, optionally destructuring its fields
// (MatchVariant).
func (p *Parser) parsePattern() ast.Pattern {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		return &ast.MatchAs{Name: name, Pos: pos}

	case lexer.TYPE_IDENT:
		name := p.cur.Literal
		p.advance()
		var subs []ast.Pattern
		if p.at(lexer.LPAREN) {
			p.advance()
			for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
				subs = append(subs, p.parsePattern())
				if p.at(lexer.COMMA) {
					p.advance()
				} else {
					break
				}
			}
			p.expect(lexer.RPAREN)
		}
		return &ast.MatchVariant{Name: name, SubPatterns: subs, Pos: pos}

	default:
		p.errorf("expected pattern, found %s", p.cur.Type)
		p.advance()
		return &ast.MatchAs{Name: "_", Pos: pos}
	}
}
