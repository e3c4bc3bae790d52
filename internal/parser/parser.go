// Package parser turns a token stream from internal/lexer into an
// *ast.Program. It is a straightforward recursive-descent/precedence-
// climbing parser: uwu has no significant whitespace, so a statement
// sequence is just "parse expressions until a terminator keyword".
// Parse errors are collected rather than panicked on, so one malformed
// top-level declaration does not hide errors later in the file.
package parser

import (
	"fmt"
	"strconv"

	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/errors"
	"github.com/uwu-lang/uwuc/internal/lexer"
)

// Parser consumes tokens from a Lexer and builds an AST, buffering one
// token of lookahead.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
	errs []error
}

// New returns a Parser reading from lex, primed so that both cur and
// peek hold tokens.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{Line: p.cur.Line, Column: p.cur.Column, File: p.cur.File}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, &errors.ParseError{
		Line: p.cur.Line, Column: p.cur.Column, File: p.cur.File,
		Message: fmt.Sprintf(format, args...),
	})
}

// expect checks cur.Type, consumes it, and reports an error if it
// didn't match; it always advances so the parser keeps making
// progress.
func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf("expected %s, found %s", t, p.cur.Type)
	}
	p.advance()
	return tok
}

func (p *Parser) at(t lexer.TokenType) bool { return p.cur.Type == t }

func (p *Parser) atAny(ts ...lexer.TokenType) bool {
	for _, t := range ts {
		if p.cur.Type == t {
			return true
		}
	}
	return false
}

// ParseProgram parses the whole token stream and returns the AST plus
// every error collected along the way (empty when parsing succeeded).
func (p *Parser) ParseProgram() (*ast.Program, []error) {
	pos := p.pos()
	body := p.parseBlock(lexer.EOF)
	return &ast.Program{Body: body, Pos: pos}, p.errs
}

// parseBlock parses statements until cur's type is one of terminators
// (which is left unconsumed, for the caller to expect()).
func (p *Parser) parseBlock(terminators ...lexer.TokenType) []ast.Expr {
	var out []ast.Expr
	for !p.atAny(terminators...) && !p.at(lexer.EOF) {
		beforeLine, beforeCol := p.cur.Line, p.cur.Column
		beforeType := p.cur.Type
		out = append(out, p.parseStmt())
		if p.cur.Type == beforeType && p.cur.Line == beforeLine && p.cur.Column == beforeCol {
			// Safety valve: parseStmt must always consume at least one
			// token, or a malformed input would loop forever.
			p.advance()
		}
	}
	return out
}

func (p *Parser) parseStmt() ast.Expr {
	switch p.cur.Type {
	case lexer.DEF:
		return p.parseDef()
	case lexer.ENUM:
		return p.parseEnumDeclaration()
	case lexer.IDENT:
		if p.peek.Type == lexer.ASSIGN || p.peek.Type == lexer.COLON {
			return p.parseLet()
		}
	}
	return p.parseExpr(precLowest)
}

func parseInt(lit string, pos ast.Pos) (*ast.Num, error) {
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, &errors.ParseError{Line: pos.Line, Column: pos.Column, File: pos.File,
			Message: fmt.Sprintf("invalid integer literal %q", lit)}
	}
	return &ast.Num{Value: v, Pos: pos}, nil
}

func parseFloatLit(lit string, pos ast.Pos) (*ast.Float, error) {
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, &errors.ParseError{Line: pos.Line, Column: pos.Column, File: pos.File,
			Message: fmt.Sprintf("invalid float literal %q", lit)}
	}
	return &ast.Float{Value: v, Pos: pos}, nil
}
