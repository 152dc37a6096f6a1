package parser

import (
	"fmt"
	"strings"

	"github.com/razorforge-lang/razorforge/runtime/lexer"
)

// ParseError is a parsing failure with location and context information.
// Errors are values: speculative parse paths return them without reporting,
// and only committed paths surface them to the caller.
type ParseError struct {
	Type       ErrorType
	Message    string
	Token      lexer.Token
	Input      string
	Context    string // "routine body", "when clause", etc.
	Suggestion string // closest-match hint, empty when none
	Example    string // a short correct form, empty when none
}

// ErrorType categorizes parse failures for reporting.
type ErrorType int

const (
	ErrorSyntax ErrorType = iota
	ErrorUnexpected
	ErrorMissing
	ErrorIndentation
	ErrorInvalid
)

func (e ErrorType) String() string {
	switch e {
	case ErrorSyntax:
		return "syntax error"
	case ErrorUnexpected:
		return "unexpected token"
	case ErrorMissing:
		return "missing"
	case ErrorIndentation:
		return "indentation error"
	case ErrorInvalid:
		return "invalid"
	default:
		return "error"
	}
}

// Error returns the formatted message with a code snippet when source text
// is available.
func (e ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Type.String(), e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (in %s)", e.Context)
	}
	if snippet := e.createCodeSnippet(); snippet != "" {
		b.WriteString("\n")
		b.WriteString(snippet)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  did you mean '%s'?", e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "\n  example: %s", e.Example)
	}
	return b.String()
}

// createCodeSnippet renders the offending line with a caret pointer.
func (e ParseError) createCodeSnippet() string {
	if e.Input == "" || e.Token.Position.Line == 0 {
		return ""
	}

	lines := strings.Split(e.Input, "\n")
	if e.Token.Position.Line > len(lines) {
		return ""
	}
	lineContent := lines[e.Token.Position.Line-1]

	var snippet strings.Builder
	snippet.WriteString(fmt.Sprintf("  --> %s:%d:%d\n", e.Token.Position.File, e.Token.Position.Line, e.Token.Position.Column))
	snippet.WriteString("   |\n")
	snippet.WriteString(fmt.Sprintf("%2d | %s\n", e.Token.Position.Line, lineContent))
	snippet.WriteString("   | ")
	if e.Token.Position.Column > 0 && e.Token.Position.Column <= len(lineContent)+1 {
		snippet.WriteString(strings.Repeat(" ", e.Token.Position.Column-1) + "^")
	}
	return snippet.String()
}

// NewSyntaxError creates a syntax error at the current token.
func (p *Parser) NewSyntaxError(message string) error {
	return ParseError{
		Type:    ErrorSyntax,
		Message: message,
		Token:   p.current(),
		Input:   p.input,
	}
}

// NewUnexpectedTokenError creates an error for a token that does not fit
// the grammar at this point.
func (p *Parser) NewUnexpectedTokenError(expected string, got lexer.Token) error {
	return ParseError{
		Type:    ErrorUnexpected,
		Message: fmt.Sprintf("expected %s, got %s", expected, got.Type.String()),
		Token:   got,
		Input:   p.input,
	}
}

// NewMissingTokenError creates an error for a required token that is absent.
func (p *Parser) NewMissingTokenError(expected string) error {
	return ParseError{
		Type:    ErrorMissing,
		Message: fmt.Sprintf("expected %s", expected),
		Token:   p.current(),
		Input:   p.input,
	}
}

// NewIndentationError creates an error for a broken block structure.
func (p *Parser) NewIndentationError(message string) error {
	return ParseError{
		Type:    ErrorIndentation,
		Message: message,
		Token:   p.current(),
		Input:   p.input,
	}
}

// NewInvalidError creates a generic invalid-construct error.
func (p *Parser) NewInvalidError(message string) error {
	return ParseError{
		Type:    ErrorInvalid,
		Message: message,
		Token:   p.current(),
		Input:   p.input,
	}
}

// errorWithSuggestion decorates an unexpected-token error with a
// closest-match hint and an example form.
func (p *Parser) errorWithSuggestion(expected string, got lexer.Token, suggestion, example string) error {
	return ParseError{
		Type:       ErrorUnexpected,
		Message:    fmt.Sprintf("expected %s, got %s", expected, got.Type.String()),
		Token:      got,
		Input:      p.input,
		Suggestion: suggestion,
		Example:    example,
	}
}
