package parser

import (
	"strconv"
	"strings"

	"github.com/razorforge-lang/razorforge/core/ast"
	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// Literal interpretation. The lexer hands over raw text with prefix,
// underscores and suffix intact; this file turns it into values. Integer
// and fixed-width float suffixes parse eagerly; the decimal and
// arbitrary-precision families stay as cleaned text for a later stage.

// splitNumericSuffix divides a numeric token's text into its digit part
// and trailing suffix. The suffix starts at the first letter that is not
// a base prefix or exponent marker.
func splitNumericSuffix(text string) (digits, suffix string) {
	body := text
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") ||
		strings.HasPrefix(body, "0b") || strings.HasPrefix(body, "0B") {
		// Hex digits include letters; find the suffix by scanning for a
		// run that is a known suffix from the end.
		for i := len(body); i > 2; i-- {
			tail := body[i:]
			if tail == "" {
				continue
			}
			if lexer.IsIntSuffix(tail) || lexer.IsFloatSuffix(tail) || lexer.IsDeferredSuffix(tail) {
				return body[:i], tail
			}
		}
		return body, ""
	}

	i := 0
	for i < len(body) {
		ch := body[i]
		switch {
		case '0' <= ch && ch <= '9' || ch == '_' || ch == '.':
			i++
		case ch == 'e' || ch == 'E':
			// Exponent only if followed by a digit or sign; otherwise it
			// starts the suffix.
			if i+1 < len(body) && (body[i+1] == '+' || body[i+1] == '-' || ('0' <= body[i+1] && body[i+1] <= '9')) {
				i++
				if body[i] == '+' || body[i] == '-' {
					i++
				}
			} else {
				return body[:i], body[i:]
			}
		default:
			return body[:i], body[i:]
		}
	}
	return body, ""
}

// parseIntegerLiteral interprets an INTEGER token. Fixed-width suffixes
// parse eagerly; deferred suffixes keep the cleaned digits as text.
func (p *Parser) parseIntegerLiteral(tok lexer.Token) (ast.Expression, error) {
	digits, suffix := splitNumericSuffix(tok.Text)
	cleaned := strings.ReplaceAll(digits, "_", "")

	if lexer.IsDeferredSuffix(suffix) {
		return &ast.DeferredNumberLiteral{Text: cleaned, Suffix: suffix, Pos: tok.Position}, nil
	}

	base := 10
	body := cleaned
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		base, body = 16, body[2:]
	} else if strings.HasPrefix(body, "0b") || strings.HasPrefix(body, "0B") {
		base, body = 2, body[2:]
	}

	value, err := strconv.ParseUint(body, base, 64)
	if err != nil {
		return nil, ParseError{
			Type:    ErrorInvalid,
			Message: "integer literal out of range: " + tok.Text,
			Token:   tok,
			Input:   p.input,
		}
	}
	return &ast.IntegerLiteral{Value: value, Width: suffix, Pos: tok.Position}, nil
}

// parseFloatLiteral interprets a FLOAT token.
func (p *Parser) parseFloatLiteral(tok lexer.Token) (ast.Expression, error) {
	digits, suffix := splitNumericSuffix(tok.Text)
	cleaned := strings.ReplaceAll(digits, "_", "")

	if lexer.IsDeferredSuffix(suffix) {
		return &ast.DeferredNumberLiteral{Text: cleaned, Suffix: suffix, Pos: tok.Position}, nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, ParseError{
			Type:    ErrorInvalid,
			Message: "malformed float literal: " + tok.Text,
			Token:   tok,
			Input:   p.input,
		}
	}
	return &ast.FloatLiteral{Value: value, Width: suffix, Pos: tok.Position}, nil
}

// parseUnitLiteral interprets MEMORY and DURATION tokens. The magnitude is
// the leading digit run; the remainder is the unit.
func (p *Parser) parseUnitLiteral(tok lexer.Token, kind ast.UnitKind) (ast.Expression, error) {
	text := strings.ReplaceAll(tok.Text, "_", "")
	i := 0
	for i < len(text) && '0' <= text[i] && text[i] <= '9' {
		i++
	}
	digits, unit := text[:i], text[i:]

	magnitude, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return nil, ParseError{
			Type:    ErrorInvalid,
			Message: "malformed unit literal: " + tok.Text,
			Token:   tok,
			Input:   p.input,
		}
	}
	return &ast.UnitLiteral{Magnitude: magnitude, Unit: unit, Kind: kind, Pos: tok.Position}, nil
}

// parseCharLiteral decodes a CHAR token's escape sequence into a rune.
func (p *Parser) parseCharLiteral(tok lexer.Token) (ast.Expression, error) {
	text := tok.Text
	var value rune
	switch {
	case text == "":
		return nil, ParseError{
			Type:    ErrorInvalid,
			Message: "empty character literal",
			Token:   tok,
			Input:   p.input,
		}
	case text[0] == '\\':
		if len(text) != 2 {
			return nil, ParseError{
				Type:    ErrorInvalid,
				Message: "malformed escape in character literal: '" + text + "'",
				Token:   tok,
				Input:   p.input,
			}
		}
		switch text[1] {
		case 'n':
			value = '\n'
		case 't':
			value = '\t'
		case 'r':
			value = '\r'
		case '\'':
			value = '\''
		case '\\':
			value = '\\'
		case '0':
			value = 0
		default:
			return nil, ParseError{
				Type:    ErrorInvalid,
				Message: "unknown escape in character literal: '" + text + "'",
				Token:   tok,
				Input:   p.input,
			}
		}
	default:
		runes := []rune(text)
		if len(runes) != 1 {
			return nil, ParseError{
				Type:    ErrorInvalid,
				Message: "character literal must hold exactly one character: '" + text + "'",
				Token:   tok,
				Input:   p.input,
			}
		}
		value = runes[0]
	}
	return &ast.CharLiteral{Value: value, Pos: tok.Position}, nil
}

// stringKindFor maps string token variants to their AST kind.
func stringKindFor(typ lexer.TokenType) ast.StringKind {
	switch typ {
	case lexer.FSTRING:
		return ast.StringFormatted
	case lexer.RAW_STRING:
		return ast.StringRaw
	default:
		return ast.StringPlain
	}
}
