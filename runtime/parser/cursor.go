package parser

import (
	"github.com/razorforge-lang/razorforge/core/invariant"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// The cursor is a single integer index into the pre-lexed token slice.
// Speculation saves the index with mark and restores it with resetTo;
// nothing else in the parser carries position state, so backtracking can
// never leak.

// current returns the token under the cursor. At or past the end it
// returns the final EOF token.
func (p *Parser) current() lexer.Token {
	return p.at(0)
}

// at returns the token at a relative offset from the cursor. Offsets
// before the start clamp to the first token; offsets past the end clamp
// to EOF.
func (p *Parser) at(offset int) lexer.Token {
	i := p.pos + offset
	if i < 0 {
		i = 0
	}
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	return p.tokens[i]
}

// peek returns the token after the current one.
func (p *Parser) peek() lexer.Token {
	return p.at(1)
}

// advance moves the cursor forward one token and returns the token that
// was current. Advancing at EOF is a no-op returning EOF.
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// check reports whether the current token has the given type without
// consuming it.
func (p *Parser) check(typ lexer.TokenType) bool {
	return p.current().Type == typ
}

// checkAny reports whether the current token has any of the given types.
func (p *Parser) checkAny(types ...lexer.TokenType) bool {
	cur := p.current().Type
	for _, typ := range types {
		if cur == typ {
			return true
		}
	}
	return false
}

// match consumes the current token if it has the given type.
func (p *Parser) match(typ lexer.TokenType) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	return false
}

// consume advances past a required token or returns an error naming what
// was expected.
func (p *Parser) consume(typ lexer.TokenType, context string) (lexer.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	err := p.NewUnexpectedTokenError(typ.String(), p.current())
	if context != "" {
		pe := err.(ParseError)
		pe.Context = context
		err = pe
	}
	return p.current(), err
}

// mark saves the cursor for later restoration during speculative parsing.
func (p *Parser) mark() int {
	return p.pos
}

// resetTo rewinds the cursor to a previously saved mark.
func (p *Parser) resetTo(mark int) {
	invariant.InRange(mark, 0, len(p.tokens)-1, "mark")
	p.pos = mark
}

// atEOF reports whether the cursor sits on the terminating EOF token.
func (p *Parser) atEOF() bool {
	return p.check(lexer.EOF)
}

// skipNewlines consumes any run of NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.check(lexer.NEWLINE) {
		p.advance()
	}
}

// skipLayout consumes NEWLINE, INDENT, and DEDENT tokens. Brace-delimited
// literals use it so their entries may span lines: the lexer still measures
// indentation inside '{', and the balanced INDENT/DEDENT pair it emits
// carries no block structure there.
func (p *Parser) skipLayout() {
	for p.checkAny(lexer.NEWLINE, lexer.INDENT, lexer.DEDENT) {
		p.advance()
	}
}
