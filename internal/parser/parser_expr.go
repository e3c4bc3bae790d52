package parser

import (
	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/lexer"
)

type precedence int

const (
	precLowest precedence = iota
	precOr                // ||
	precAnd               // &&
	precEquality          // == !=
	precRelational        // < > <= >=
	precAppend            // ++
	precAdditive          // + -
	precMultiplicative    // * / //
)

var binPrec = map[lexer.TokenType]precedence{
	lexer.OR:     precOr,
	lexer.AND:    precAnd,
	lexer.EQ:     precEquality,
	lexer.NEQ:    precEquality,
	lexer.LT:     precRelational,
	lexer.GT:     precRelational,
	lexer.LTE:    precRelational,
	lexer.GTE:    precRelational,
	lexer.APPEND: precAppend,
	lexer.PLUS:   precAdditive,
	lexer.MINUS:  precAdditive,
	lexer.PIPE:   precAdditive,
	lexer.STAR:   precMultiplicative,
	lexer.SLASH:  precMultiplicative,
	lexer.DSLASH: precMultiplicative,
}

// parseExpr implements precedence climbing: it parses a unary
// expression, then repeatedly absorbs infix operators bound at least
// as tightly as min.
func (p *Parser) parseExpr(min precedence) ast.Expr {
	left := p.parseUnary()
	for {
		prec, ok := binPrec[p.cur.Type]
		if !ok || prec < min {
			return left
		}
		op := p.cur.Literal
		pos := p.pos()
		p.advance()
		right := p.parseExpr(prec + 1)
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Type {
	case lexer.MINUS, lexer.PLUS, lexer.BANG, lexer.NOT:
		op := p.cur.Literal
		pos := p.pos()
		p.advance()
		return &ast.UnaryExpr{Op: op, Expr: p.parseUnary(), Pos: pos}
	default:
		return p.parseCallSuffix(p.parsePrimary())
	}
}

// parseCallSuffix absorbs zero or more trailing argument lists,
// producing the curried ast.Call chain a(b)(c) parses to.
func (p *Parser) parseCallSuffix(e ast.Expr) ast.Expr {
	for p.at(lexer.LPAREN) {
		pos := p.pos()
		args := p.parseArgs()
		e = &ast.Call{Callee: e, Args: args, Pos: pos}
	}
	return e
}

func (p *Parser) parseArgs() []ast.Expr {
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		args = append(args, p.parseExpr(precLowest))
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.INT:
		n, err := parseInt(p.cur.Literal, pos)
		p.advance()
		if err != nil {
			p.errs = append(p.errs, err)
			return &ast.Num{Value: 0, Pos: pos}
		}
		return n

	case lexer.FLOAT:
		f, err := parseFloatLit(p.cur.Literal, pos)
		p.advance()
		if err != nil {
			p.errs = append(p.errs, err)
			return &ast.Float{Value: 0, Pos: pos}
		}
		return f

	case lexer.STRING:
		s := &ast.Str{Value: p.cur.Literal, Pos: pos}
		p.advance()
		return s

	case lexer.EXTERNAL:
		e := &ast.External{Verbatim: p.cur.Literal, Pos: pos}
		p.advance()
		return e

	case lexer.IDENT:
		id := &ast.Identifier{Name: p.cur.Literal, Pos: pos}
		p.advance()
		return id

	case lexer.TYPE_IDENT:
		name := p.cur.Literal
		p.advance()
		var args []ast.Expr
		if p.at(lexer.LPAREN) {
			args = p.parseArgs()
		}
		return &ast.VariantCall{Name: name, Args: args, Pos: pos}

	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr(precLowest)
		p.expect(lexer.RPAREN)
		return inner

	case lexer.LBRACK:
		return p.parseArray()

	case lexer.DO:
		return p.parseDo()

	case lexer.IF:
		return p.parseIf()

	case lexer.CASE:
		return p.parseCaseOf()

	default:
		p.errorf("unexpected token %s in expression", p.cur.Type)
		p.advance()
		return &ast.Identifier{Name: "unit", Pos: pos}
	}
}

func (p *Parser) parseArray() ast.Expr {
	pos := p.pos()
	p.expect(lexer.LBRACK)
	var elems []ast.Expr
	for !p.at(lexer.RBRACK) && !p.at(lexer.EOF) {
		elems = append(elems, p.parseExpr(precLowest))
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACK)
	return &ast.Array{Args: elems, Pos: pos}
}

// parseHint parses a type annotation: Name, or Name<Arg, Arg>.
func (p *Parser) parseHint() *ast.Hint {
	pos := p.pos()
	name := p.expect(lexer.TYPE_IDENT).Literal
	h := &ast.Hint{Name: name, Pos: pos}
	if p.at(lexer.LT) {
		p.advance()
		for !p.at(lexer.GT) && !p.at(lexer.EOF) {
			h.Args = append(h.Args, p.parseHint())
			if p.at(lexer.COMMA) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(lexer.GT)
	}
	return h
}
