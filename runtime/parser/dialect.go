package parser

import "github.com/razorforge-lang/razorforge/core/ast"

// Dialect selects between the two surface syntaxes that share this parsing
// core. The grammar skeleton is identical; dialects differ in brace
// tolerance, visibility spellings, and default visibility.
type Dialect int

const (
	// DialectRazorForge is the systems dialect (.rf): indentation-based
	// with tolerated redundant braces, private by default, and the
	// public(set) accessor split on fields.
	DialectRazorForge Dialect = iota

	// DialectCake is the scripting dialect (.cake): strictly
	// indentation-based, public by default, with the public(family) and
	// public(module) scoped visibilities.
	DialectCake
)

func (d Dialect) String() string {
	if d == DialectCake {
		return "cake"
	}
	return "razorforge"
}

// DialectForFile picks a dialect from a filename extension. Unknown
// extensions default to RazorForge.
func DialectForFile(name string) Dialect {
	if len(name) >= 5 && name[len(name)-5:] == ".cake" {
		return DialectCake
	}
	return DialectRazorForge
}

// allowsBraces reports whether redundant block braces are tolerated. Cake
// reports them as warnings instead.
func (d Dialect) allowsBraces() bool {
	return d == DialectRazorForge
}

// allowsSetVisibility reports whether the public(set) accessor split on
// fields is available.
func (d Dialect) allowsSetVisibility() bool {
	return d == DialectRazorForge
}

// allowsScopedVisibility reports whether public(family) and public(module)
// are available.
func (d Dialect) allowsScopedVisibility() bool {
	return d == DialectCake
}

// defaultVisibility is the visibility of a declaration with no modifier.
func (d Dialect) defaultVisibility() ast.Visibility {
	if d == DialectCake {
		return ast.VisPublic
	}
	return ast.VisPrivate
}
