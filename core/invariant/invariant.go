// Package invariant provides contract assertions for the RazorForge
// toolchain. Use Precondition to express function contracts and
// Invariant for internal consistency checks such as cursor bounds and
// speculation bookkeeping.
//
// All functions panic on violation - these are programming errors, not
// malformed source input.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func Parse(tokens []Token) {
//	    invariant.Precondition(len(tokens) > 0, "token stream must not be empty")
//	    // ... work ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Use this for loop progress checks and state consistency.
//
// Example:
//
//	prevPos := p.pos
//	for !p.atEOF() {
//	    // ... consume ...
//	    invariant.Invariant(p.pos > prevPos, "cursor must advance")
//	    prevPos = p.pos
//	}
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// InRange panics if value is outside [min, max].
// This is a precondition check for numeric arguments.
//
// Example:
//
//	func (p *Parser) resetTo(mark int) {
//	    invariant.InRange(mark, 0, len(p.tokens)-1, "mark")
//	    p.pos = mark
//	}
func InRange(value, minVal, maxVal int, name string) {
	if value < minVal || value > maxVal {
		fail("PRECONDITION", "%s must be in range [%d, %d], got %d",
			name, minVal, maxVal, value)
	}
}

// fail panics with a formatted message including call stack context.
func fail(kind, format string, args ...interface{}) {
	// Skip fail() and the wrapper function when capturing the stack.
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
