// Package lexer turns RazorForge and Cake source text into the finished
// token stream the parser consumes, including pre-computed NEWLINE, INDENT
// and DEDENT tokens. Indentation is resolved here once; the parser never
// looks at raw whitespace.
package lexer

import (
	"log/slog"
	"os"
	"strings"

	"github.com/razorforge-lang/razorforge/core/source"
)

// ASCII classification tables for fast scanning.
var (
	isDigit      [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isDigit[i] = '0' <= ch && ch <= '9'
		isIdentStart[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
	}
}

// integer-width suffixes parsed eagerly by the parser.
var intSuffixes = map[string]bool{
	"s8": true, "s16": true, "s32": true, "s64": true, "s128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
	"saddr": true, "uaddr": true,
}

// float-width suffixes parsed eagerly by the parser.
var floatSuffixes = map[string]bool{
	"f16": true, "f32": true, "f64": true, "f128": true,
}

// deferred suffixes: arbitrary-precision and decimal families, left as
// cleaned text for a later stage.
var deferredSuffixes = map[string]bool{
	"d32": true, "d64": true, "d128": true, "dec": true, "big": true,
}

var memoryUnits = map[string]bool{
	"kb": true, "mb": true, "gb": true, "tb": true, "pb": true,
}

var durationUnits = map[string]bool{
	"ns": true, "us": true, "ms": true, "s": true, "m": true, "h": true,
}

// IsIntSuffix reports whether s is a fixed-width integer suffix.
func IsIntSuffix(s string) bool { return intSuffixes[s] }

// IsFloatSuffix reports whether s is a fixed-width float suffix.
func IsFloatSuffix(s string) bool { return floatSuffixes[s] }

// IsDeferredSuffix reports whether s names an arbitrary-precision or
// decimal-family type whose value parsing is deferred.
func IsDeferredSuffix(s string) bool { return deferredSuffixes[s] }

// Lexer scans one source buffer into tokens. A Lexer is single-use.
type Lexer struct {
	input string
	file  string

	pos    int // byte offset of the next unread character
	line   int
	column int

	indents    []int // open indentation widths, base 0 always present
	parenDepth int   // (, [ nesting - layout tokens are suppressed inside
	tokens     []Token

	logger *slog.Logger
}

// New creates a lexer for the given source text. The filename is only used
// for location tagging.
func New(input, filename string) *Lexer {
	level := slog.LevelInfo
	if os.Getenv("RAZORFORGE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &Lexer{
		input:   input,
		file:    filename,
		line:    1,
		column:  1,
		indents: []int{0},
		logger:  logger,
	}
}

// Scan is a convenience wrapper producing the full token stream.
func Scan(input, filename string) []Token {
	return New(input, filename).Tokens()
}

// Tokens scans the whole input and returns the token stream, terminated by
// exactly one EOF token.
func (l *Lexer) Tokens() []Token {
	for l.pos < len(l.input) {
		l.scanLine()
	}

	// Flush any open blocks at end of input.
	if n := len(l.tokens); n > 0 && l.tokens[n-1].Type != NEWLINE {
		l.emit(NEWLINE, "")
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(DEDENT, "")
	}
	l.emit(EOF, "")

	l.logger.Debug("lex complete", "file", l.file, "tokens", len(l.tokens))
	return l.tokens
}

// scanLine handles one physical line: indentation bookkeeping, then tokens,
// then the trailing NEWLINE.
func (l *Lexer) scanLine() {
	if l.parenDepth == 0 {
		width := l.measureIndent()
		if l.atBlankOrComment() {
			l.skipToNextLine()
			return
		}
		l.applyIndent(width)
	}

	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		switch {
		case ch == '\n':
			l.advance()
			if l.parenDepth == 0 {
				l.emit(NEWLINE, "")
			}
			return
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
		case ch == '#':
			l.skipComment()
		case isDigit[ch]:
			l.scanNumber()
		case ch == '"':
			l.scanString(StringPlainPrefix)
		case ch == '\'':
			l.scanChar()
		case isIdentStart[ch]:
			l.scanIdentifier()
		default:
			l.scanOperator()
		}
	}
}

// measureIndent consumes leading spaces/tabs and returns the line's
// indentation width. A tab counts as four columns.
func (l *Lexer) measureIndent() int {
	width := 0
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
		l.advance()
	}
	return width
}

// atBlankOrComment reports whether the rest of the line holds no tokens.
func (l *Lexer) atBlankOrComment() bool {
	i := l.pos
	for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t' || l.input[i] == '\r') {
		i++
	}
	return i >= len(l.input) || l.input[i] == '\n' || l.input[i] == '#'
}

func (l *Lexer) skipToNextLine() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
	if l.pos < len(l.input) {
		l.advance() // consume '\n'
	}
}

// applyIndent emits INDENT/DEDENT tokens for a width change. Dedents to a
// width that matches no open level close the nearest enclosing level; the
// parser reports the structural error.
func (l *Lexer) applyIndent(width int) {
	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.emit(INDENT, "")
	case width < top:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(DEDENT, "")
		}
	}
}

func (l *Lexer) skipComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
}

// scanNumber scans integer, float, memory-size and duration literals. The
// raw text (prefix, underscores, suffix) is preserved; the parser strips
// and interprets it.
func (l *Lexer) scanNumber() {
	start := l.pos
	loc := l.here()

	// Base prefix
	if l.input[l.pos] == '0' && l.pos+1 < len(l.input) {
		next := l.input[l.pos+1]
		if next == 'x' || next == 'X' || next == 'b' || next == 'B' {
			l.advance()
			l.advance()
			for l.pos < len(l.input) && (isHexDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
				l.advance()
			}
			l.finishNumber(start, loc, false)
			return
		}
	}

	isFloat := false
	for l.pos < len(l.input) && (isDigit[l.input[l.pos]] || l.input[l.pos] == '_') {
		l.advance()
	}
	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && isDigit[l.input[l.pos+1]] {
		isFloat = true
		l.advance()
		for l.pos < len(l.input) && (isDigit[l.input[l.pos]] || l.input[l.pos] == '_') {
			l.advance()
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		if l.pos+1 < len(l.input) && (isDigit[l.input[l.pos+1]] || l.input[l.pos+1] == '+' || l.input[l.pos+1] == '-') {
			isFloat = true
			l.advance()
			if l.input[l.pos] == '+' || l.input[l.pos] == '-' {
				l.advance()
			}
			for l.pos < len(l.input) && isDigit[l.input[l.pos]] {
				l.advance()
			}
		}
	}

	l.finishNumber(start, loc, isFloat)
}

// finishNumber consumes a trailing suffix run and classifies the literal.
func (l *Lexer) finishNumber(start int, loc source.Location, isFloat bool) {
	suffixStart := l.pos
	for l.pos < len(l.input) && isIdentPart[l.input[l.pos]] {
		l.advance()
	}
	suffix := l.input[suffixStart:l.pos]
	text := l.input[start:l.pos]

	var typ TokenType
	switch {
	case suffix == "":
		typ = INTEGER
		if isFloat {
			typ = FLOAT
		}
	case intSuffixes[suffix] || deferredSuffixes[suffix]:
		typ = INTEGER
		if isFloat {
			typ = FLOAT
		}
	case floatSuffixes[suffix]:
		typ = FLOAT
	case memoryUnits[suffix]:
		typ = MEMORY
	case durationUnits[suffix]:
		typ = DURATION
	default:
		typ = ILLEGAL
	}

	l.tokens = append(l.tokens, Token{Type: typ, Text: text, Position: loc})
}

// String-prefix markers used by scanString.
type stringPrefix int

const (
	StringPlainPrefix stringPrefix = iota
	StringFormattedPrefix
	StringRawPrefix
)

// scanString scans a quoted string. Escapes stay undecoded in the token
// text; the parser interprets them. Raw strings keep backslashes verbatim.
func (l *Lexer) scanString(prefix stringPrefix) {
	loc := l.here()
	l.advance() // opening quote
	start := l.pos

	raw := prefix == StringRawPrefix
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		if !raw && l.input[l.pos] == '\\' && l.pos+1 < len(l.input) {
			l.advance()
		}
		if l.input[l.pos] == '\n' {
			break
		}
		l.advance()
	}

	text := l.input[start:l.pos]
	if l.pos >= len(l.input) || l.input[l.pos] != '"' {
		l.tokens = append(l.tokens, Token{Type: ILLEGAL, Text: text, Position: loc})
		return
	}
	l.advance() // closing quote

	typ := STRING
	switch prefix {
	case StringFormattedPrefix:
		typ = FSTRING
	case StringRawPrefix:
		typ = RAW_STRING
	}
	l.tokens = append(l.tokens, Token{Type: typ, Text: text, Position: loc})
}

// scanChar scans a character literal. The inner text, escapes included, is
// preserved for the parser to decode.
func (l *Lexer) scanChar() {
	loc := l.here()
	l.advance() // opening quote
	start := l.pos

	for l.pos < len(l.input) && l.input[l.pos] != '\'' && l.input[l.pos] != '\n' {
		if l.input[l.pos] == '\\' && l.pos+1 < len(l.input) {
			l.advance()
		}
		l.advance()
	}

	text := l.input[start:l.pos]
	if l.pos >= len(l.input) || l.input[l.pos] != '\'' {
		l.tokens = append(l.tokens, Token{Type: ILLEGAL, Text: text, Position: loc})
		return
	}
	l.advance() // closing quote
	l.tokens = append(l.tokens, Token{Type: CHAR, Text: text, Position: loc})
}

// scanIdentifier scans identifiers, keywords, and the f"/r" string
// prefixes.
func (l *Lexer) scanIdentifier() {
	loc := l.here()
	start := l.pos

	// f"..." and r"..." string forms
	ch := l.input[l.pos]
	if (ch == 'f' || ch == 'r') && l.pos+1 < len(l.input) && l.input[l.pos+1] == '"' {
		l.advance()
		if ch == 'f' {
			l.scanStringAt(loc, StringFormattedPrefix)
		} else {
			l.scanStringAt(loc, StringRawPrefix)
		}
		return
	}

	for l.pos < len(l.input) && isIdentPart[l.input[l.pos]] {
		l.advance()
	}
	text := l.input[start:l.pos]

	if typ, ok := Keywords[text]; ok {
		l.tokens = append(l.tokens, Token{Type: typ, Text: text, Position: loc})
		return
	}
	typ := IDENTIFIER
	if PrimitiveTypes[text] {
		typ = TYPE_IDENTIFIER
	}
	l.tokens = append(l.tokens, Token{Type: typ, Text: text, Position: loc})
}

// scanStringAt is scanString with the location of an already-consumed
// prefix character.
func (l *Lexer) scanStringAt(loc source.Location, prefix stringPrefix) {
	l.advance() // opening quote
	start := l.pos

	raw := prefix == StringRawPrefix
	for l.pos < len(l.input) && l.input[l.pos] != '"' && l.input[l.pos] != '\n' {
		if !raw && l.input[l.pos] == '\\' && l.pos+1 < len(l.input) {
			l.advance()
		}
		l.advance()
	}

	text := l.input[start:l.pos]
	if l.pos >= len(l.input) || l.input[l.pos] != '"' {
		l.tokens = append(l.tokens, Token{Type: ILLEGAL, Text: text, Position: loc})
		return
	}
	l.advance()

	typ := FSTRING
	if raw {
		typ = RAW_STRING
	}
	l.tokens = append(l.tokens, Token{Type: typ, Text: text, Position: loc})
}

// scanOperator matches the longest operator spelling at the cursor.
func (l *Lexer) scanOperator() {
	loc := l.here()
	rest := l.input[l.pos:]

	for _, op := range operatorSpellings {
		if strings.HasPrefix(rest, op.text) {
			for range op.text {
				l.advance()
			}
			switch op.typ {
			case LPAREN, LBRACKET:
				l.parenDepth++
			case RPAREN, RBRACKET:
				if l.parenDepth > 0 {
					l.parenDepth--
				}
			}
			l.tokens = append(l.tokens, Token{Type: op.typ, Text: op.text, Position: loc})
			return
		}
	}

	// Unknown character: emit ILLEGAL and keep going.
	l.tokens = append(l.tokens, Token{Type: ILLEGAL, Text: string(l.input[l.pos]), Position: loc})
	l.advance()
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *Lexer) here() source.Location {
	return source.Location{File: l.file, Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) emit(typ TokenType, text string) {
	l.tokens = append(l.tokens, Token{Type: typ, Text: text, Position: l.here()})
}

func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
