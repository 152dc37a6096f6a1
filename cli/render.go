package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/razorforge-lang/razorforge/core/diag"
	"github.com/razorforge-lang/razorforge/runtime/parser"
)

// FormatError writes a parse error to w with color. Parser errors get
// their full rendering (snippet, suggestion, example); anything else
// falls back to a one-line message.
func FormatError(w io.Writer, path string, err error, useColor bool) {
	if err == nil {
		return
	}

	var perr parser.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "%s %s: %v\n", Colorize("error:", ColorRed, useColor), path, perr)
		return
	}
	fmt.Fprintf(w, "%s %s: %v\n", Colorize("error:", ColorRed, useColor), path, err)
}

// FormatWarning writes a style warning to w with color.
func FormatWarning(w io.Writer, path string, warning diag.Warning, useColor bool) {
	label := Colorize(warning.Severity.String()+":", ColorYellow, useColor)
	code := Colorize("["+string(warning.Code)+"]", ColorGray, useColor)
	fmt.Fprintf(w, "%s %s:%d:%d: %s %s\n",
		label, path, warning.Line, warning.Column, warning.Message, code)
}
