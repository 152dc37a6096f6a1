// Package source carries source-location metadata shared by the lexer,
// parser and diagnostics.
package source

import "fmt"

// Location identifies a point in a source file.
type Location struct {
	File   string // Source filename (empty for stdin/string input)
	Line   int    // 1-based line number
	Column int    // 1-based column number
	Offset int    // 0-based byte offset
}

// String renders the location as file:line:column, omitting the file when
// unknown.
func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
