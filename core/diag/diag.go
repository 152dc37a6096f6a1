// Package diag holds the compile-warning model and the per-parse diagnostics
// sink. Warnings never interrupt parsing; fatal failures are parser errors
// and live with the parser.
package diag

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Severity classifies a diagnostic. Warning is the zero value so that a
// Warning literal without an explicit severity reports at warning level.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityInfo
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityError:
		return "error"
	default:
		return "warning"
	}
}

// Code is a stable identifier for a warning category.
type Code string

const (
	// WarnUnnecessaryBrace flags a closing brace where indentation alone
	// should terminate the block (Cake dialect).
	WarnUnnecessaryBrace Code = "RF-W001"
	// WarnStraySemicolon flags a statement-terminating semicolon where the
	// newline already terminates the statement.
	WarnStraySemicolon Code = "RF-W002"
)

// Warning is a recoverable, purely stylistic observation.
type Warning struct {
	Message  string
	Line     int
	Column   int
	Severity Severity
	Code     Code
}

func (w Warning) String() string {
	return fmt.Sprintf("%d:%d: %s: %s [%s]", w.Line, w.Column, w.Severity, w.Message, w.Code)
}

// Sink accumulates warnings for one parse. It is append-only during the
// parse and read-only afterward; it is never shared across parses.
type Sink struct {
	warnings []Warning
}

// Warn appends a warning to the sink.
func (s *Sink) Warn(w Warning) {
	s.warnings = append(s.warnings, w)
}

// Warnings returns the accumulated warnings in emission order.
func (s *Sink) Warnings() []Warning {
	return s.warnings
}

// Len reports the number of accumulated warnings.
func (s *Sink) Len() int { return len(s.warnings) }

// Suggest finds the closest candidate to a misspelled name using fuzzy
// matching, for "did you mean" hints in parse errors. Returns "" when
// nothing is close enough.
func Suggest(got string, candidates []string) string {
	if got == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(got, candidates)
	if len(ranks) == 0 {
		return ""
	}

	sort.Sort(ranks)
	return ranks[0].Target
}
