// Package parser implements the recursive-descent parser for the
// completion grammar mini-language: a sequence of call-variant and
// variable-definition statements, each an EBNF-like expression of
// literals, nonterminal references, grouping, optionality and repetition.
package parser

import (
	"fmt"
	"io"
	"strings"

	cmplerr "github.com/nihei9/cmplgram/error"
	"github.com/nihei9/cmplgram/grammar"
)

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

// NewParser returns a parser that reads grammar text from src.
func NewParser(src io.Reader) *parser {
	return &parser{
		lex: newLexer(src),
	}
}

// Statements parses the grammar and returns its statements in source order.
func (p *parser) Statements() (stmts []grammar.Statement, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				panic(r)
			}
			retErr = err
		}
	}()

	for {
		if p.consume(tokenKindEOF) {
			return stmts, nil
		}
		if tok := p.peek(); tok.kind != tokenKindSymbol && tok.kind != tokenKindTerminal {
			p.raiseParseError(cmplerr.ErrTrailingInput, fmt.Sprintf("found %v %q where a call variant or variable definition was expected", tok.kind, tok.text))
		}
		stmts = append(stmts, p.parseStatement())
	}
}

func (p *parser) parseStatement() grammar.Statement {
	if p.consume(tokenKindSymbol) {
		name := p.lastTok.text
		p.expect(tokenKindAssign)
		body := p.parseExpr()
		if body == nil {
			p.raiseParseError(synErrVarDefNoBody, "")
		}
		p.expect(tokenKindSemicolon)
		return &grammar.VariableDefinition{Name: name, Body: body}
	}

	p.expect(tokenKindTerminal)
	command := p.lastTok.text
	body := p.parseExpr()
	if body == nil {
		p.raiseParseError(synErrCallVariantNoBody, "")
	}
	p.expect(tokenKindSemicolon)
	return &grammar.CallVariant{Command: command, Body: body}
}

// parseExpr parses an alternative, the top production of an expression.
func (p *parser) parseExpr() grammar.Expr {
	return p.parseAlternative()
}

func (p *parser) parseAlternative() grammar.Expr {
	left := p.parseSequence()
	if left == nil {
		if p.consume(tokenKindAlt) {
			p.raiseParseError(synErrExprLackOfOperand, "")
		}
		return nil
	}
	children := []grammar.Expr{left}
	for p.consume(tokenKindAlt) {
		right := p.parseSequence()
		if right == nil {
			p.raiseParseError(synErrExprLackOfOperand, "")
		}
		children = append(children, right)
	}
	return grammar.NewAlternative(children...)
}

func (p *parser) parseSequence() grammar.Expr {
	left := p.parseAtom()
	if left == nil {
		return nil
	}
	children := []grammar.Expr{left}
	for {
		next := p.parseAtom()
		if next == nil {
			break
		}
		children = append(children, next)
	}
	return grammar.NewSequence(children...)
}

func (p *parser) parseAtom() grammar.Expr {
	leaf := p.parseLeaf()
	if leaf == nil {
		return nil
	}
	if p.consume(tokenKindEllipsis) {
		return &grammar.Many1{Child: leaf}
	}
	return leaf
}

func (p *parser) parseLeaf() grammar.Expr {
	switch {
	case p.consume(tokenKindSymbol):
		return &grammar.Variable{Name: p.lastTok.text}

	case p.consume(tokenKindCommand):
		return &grammar.Command{Cmd: p.lastTok.text}

	case p.consume(tokenKindBracketOpen):
		inner := p.parseExpr()
		if inner == nil {
			p.raiseParseError(synErrOptionalEmpty, "")
		}
		if !p.consume(tokenKindBracketClose) {
			p.raiseParseError(synErrOptionalUnclosed, "")
		}
		return &grammar.Optional{Child: inner}

	case p.consume(tokenKindParenOpen):
		inner := p.parseExpr()
		if inner == nil {
			p.raiseParseError(synErrGroupEmpty, "")
		}
		if !p.consume(tokenKindParenClose) {
			p.raiseParseError(synErrGroupUnclosed, "")
		}
		return inner

	case p.consume(tokenKindTerminal):
		lit := &grammar.Literal{Token: p.lastTok.text}
		if p.consume(tokenKindString) {
			lit.Desc = p.lastTok.text
		}
		return lit

	default:
		return nil
	}
}

func (p *parser) expect(expected tokenKind) {
	if !p.consume(expected) {
		tok := p.peek()
		p.raiseParseError(synErrUnexpectedToken, fmt.Sprintf("expected: %v, actual: %v", expected, tok.kind))
	}
}

func (p *parser) peek() *token {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			if err == ParseErr {
				detail, cause := p.lex.error()
				p.raiseParseError(cause, detail)
			}
			panic(err)
		}
		p.peekedTok = tok
	}
	return p.peekedTok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind != expected {
		return false
	}
	p.peekedTok = nil
	p.lastTok = tok
	return true
}

func (p *parser) raiseParseError(err error, detail string) {
	panic(&ParseError{Cause: err, Detail: detail, Row: p.currentRow()})
}

func (p *parser) currentRow() int {
	if p.lastTok != nil {
		return p.lastTok.row
	}
	if p.peekedTok != nil {
		return p.peekedTok.row
	}
	return 0
}

// ParseError is the error type Statements returns on a syntax error; Detail
// is a short human-readable context string describing what was expected.
type ParseError struct {
	Cause  error
	Detail string
	Row    int
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %v", e.Row, e.Cause)
	}
	return fmt.Sprintf("%v: %v (%v)", e.Row, e.Cause, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ParseText is a convenience wrapper around NewParser(strings.NewReader(text)).Statements().
func ParseText(text string) ([]grammar.Statement, error) {
	return NewParser(strings.NewReader(text)).Statements()
}
