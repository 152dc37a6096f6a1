package lexer

import "github.com/razorforge-lang/razorforge/core/source"

// TokenType represents the lexical vocabulary shared by both dialects.
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Layout tokens - the block engine never recomputes indentation from
	// raw whitespace, it only consumes these.
	NEWLINE
	INDENT
	DEDENT

	// Declaration keywords
	ROUTINE  // routine
	ENTITY   // entity
	RECORD   // record
	CHOICE   // choice - RazorForge sum type
	VARIANT  // variant - Cake spelling of choice
	PROTOCOL // protocol
	IMPORT   // import
	VAR      // var
	LET      // let
	PRESET   // preset

	// Statement keywords
	IF       // if
	UNLESS   // unless
	ELSE     // else
	THEN     // then
	WHILE    // while
	FOR      // for
	IN       // in
	WHEN     // when
	IS       // is
	RETURN   // return
	THROW    // throw
	ABSENT   // absent
	BREAK    // break
	CONTINUE // continue

	// Expression keywords
	SELF   // self
	NOT_KW // not
	AND_KW // and
	OR_KW  // or
	TO     // to - range sugar
	BY     // by - range step
	AS     // as

	// Visibility keywords
	PUBLIC    // public
	PRIVATE   // private
	FAMILY    // family - inside public(family)
	MODULE_KW // module - inside public(module)
	SET_KW    // set - inside public(set)

	// Literals
	IDENTIFIER      // lower-case names, also capitalized user type names
	TYPE_IDENTIFIER // recognized primitive type names (Int, Bool, Text, ...)
	INTEGER         // 42, 0xFF, 0b1010, 42s32, 1_000u64
	FLOAT           // 3.14, 2.5f32
	STRING          // "text"
	FSTRING         // f"formatted {x}"
	RAW_STRING      // r"no \escapes"
	CHAR            // 'a', '\n'
	MEMORY          // 100mb, 4kb
	DURATION        // 30s, 5m, 250ms
	BOOLEAN         // true, false
	NONE            // none

	// Plain arithmetic operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	POWER   // **

	// Wrapping arithmetic operators
	PLUS_WRAP  // +%
	MINUS_WRAP // -%
	STAR_WRAP  // *%
	SLASH_WRAP // /%
	POWER_WRAP // **%

	// Saturating arithmetic operators
	PLUS_SAT  // +|
	MINUS_SAT // -|
	STAR_SAT  // *|
	SLASH_SAT // /|
	POWER_SAT // **|

	// Checked arithmetic operators
	PLUS_CHECKED  // +?
	MINUS_CHECKED // -?
	STAR_CHECKED  // *?
	SLASH_CHECKED // /?

	// Comparison operators
	EQ_EQ     // ==
	NOT_EQ    // !=
	LT        // <
	LT_EQ     // <=
	GT        // >
	GT_EQ     // >=
	SPACESHIP // <=>

	// Logical operators
	AND_AND // &&
	OR_OR   // ||
	BANG    // !

	// Bitwise operators
	AMP   // &
	PIPE  // |
	CARET // ^
	TILDE // ~
	SHL   // <<
	SHR   // >>

	// None-handling operators
	COALESCE     // ??
	QUESTION_DOT // ?.
	QUESTION     // ?

	// Assignment operators
	ASSIGN         // =
	PLUS_ASSIGN    // +=
	MINUS_ASSIGN   // -=
	STAR_ASSIGN    // *=
	SLASH_ASSIGN   // /=
	PERCENT_ASSIGN // %=

	// Arrows
	ARROW     // ->
	FAT_ARROW // =>

	// Punctuation
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	DOT       // .
	COLON     // :
	SEMICOLON // ;
	AT        // @
)

// Token is an immutable lexical token. The parsing core only reads tokens,
// it never mutates them.
type Token struct {
	Type     TokenType
	Text     string
	Position source.Location
}

func (t Token) String() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Type.String()
}

var tokenNames = map[TokenType]string{
	EOF: "EOF", ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	ROUTINE: "routine", ENTITY: "entity", RECORD: "record", CHOICE: "choice",
	VARIANT: "variant", PROTOCOL: "protocol", IMPORT: "import",
	VAR: "var", LET: "let", PRESET: "preset",
	IF: "if", UNLESS: "unless", ELSE: "else", THEN: "then",
	WHILE: "while", FOR: "for", IN: "in", WHEN: "when", IS: "is",
	RETURN: "return", THROW: "throw", ABSENT: "absent",
	BREAK: "break", CONTINUE: "continue",
	SELF: "self", NOT_KW: "not", AND_KW: "and", OR_KW: "or",
	TO: "to", BY: "by", AS: "as",
	PUBLIC: "public", PRIVATE: "private", FAMILY: "family",
	MODULE_KW: "module", SET_KW: "set",
	IDENTIFIER: "identifier", TYPE_IDENTIFIER: "type identifier",
	INTEGER: "integer literal", FLOAT: "float literal",
	STRING: "string literal", FSTRING: "formatted string literal",
	RAW_STRING: "raw string literal", CHAR: "character literal",
	MEMORY: "memory-size literal", DURATION: "duration literal",
	BOOLEAN: "boolean literal", NONE: "none",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", POWER: "**",
	PLUS_WRAP: "+%", MINUS_WRAP: "-%", STAR_WRAP: "*%", SLASH_WRAP: "/%", POWER_WRAP: "**%",
	PLUS_SAT: "+|", MINUS_SAT: "-|", STAR_SAT: "*|", SLASH_SAT: "/|", POWER_SAT: "**|",
	PLUS_CHECKED: "+?", MINUS_CHECKED: "-?", STAR_CHECKED: "*?", SLASH_CHECKED: "/?",
	EQ_EQ: "==", NOT_EQ: "!=", LT: "<", LT_EQ: "<=", GT: ">", GT_EQ: ">=", SPACESHIP: "<=>",
	AND_AND: "&&", OR_OR: "||", BANG: "!",
	AMP: "&", PIPE: "|", CARET: "^", TILDE: "~", SHL: "<<", SHR: ">>",
	COALESCE: "??", QUESTION_DOT: "?.", QUESTION: "?",
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=",
	STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=",
	ARROW: "->", FAT_ARROW: "=>",
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]",
	LBRACE: "{", RBRACE: "}", COMMA: ",", DOT: ".", COLON: ":",
	SEMICOLON: ";", AT: "@",
}

// String returns a human-readable name for the token type, used in
// diagnostics.
func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Keywords maps keyword spellings to their token types. Both dialects share
// one keyword set; choice/variant are aliases resolved by the parser.
var Keywords = map[string]TokenType{
	"routine":  ROUTINE,
	"entity":   ENTITY,
	"record":   RECORD,
	"choice":   CHOICE,
	"variant":  VARIANT,
	"protocol": PROTOCOL,
	"import":   IMPORT,
	"var":      VAR,
	"let":      LET,
	"preset":   PRESET,
	"if":       IF,
	"unless":   UNLESS,
	"else":     ELSE,
	"then":     THEN,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"when":     WHEN,
	"is":       IS,
	"return":   RETURN,
	"throw":    THROW,
	"absent":   ABSENT,
	"break":    BREAK,
	"continue": CONTINUE,
	"self":     SELF,
	"not":      NOT_KW,
	"and":      AND_KW,
	"or":       OR_KW,
	"to":       TO,
	"by":       BY,
	"as":       AS,
	"public":   PUBLIC,
	"private":  PRIVATE,
	"family":   FAMILY,
	"module":   MODULE_KW,
	"set":      SET_KW,
	"true":     BOOLEAN,
	"false":    BOOLEAN,
	"none":     NONE,
}

// PrimitiveTypes is the set of built-in type names the lexer classifies as
// TYPE_IDENTIFIER. The disambiguation heuristic treats these as a strong
// type-shaped signal after '<'.
var PrimitiveTypes = map[string]bool{
	"Int": true, "Uint": true, "Float": true, "Bool": true,
	"Text": true, "Char": true, "Byte": true, "Unit": true,
	"List": true, "Set": true, "Map": true, "Option": true,
	"Result": true, "Range": true,
}

// operatorSpellings is ordered longest-first so the scanner matches
// greedily.
var operatorSpellings = []struct {
	text string
	typ  TokenType
}{
	{"<=>", SPACESHIP},
	{"**%", POWER_WRAP},
	{"**|", POWER_SAT},
	{"**", POWER},
	{"+%", PLUS_WRAP}, {"-%", MINUS_WRAP}, {"*%", STAR_WRAP}, {"/%", SLASH_WRAP},
	{"+|", PLUS_SAT}, {"-|", MINUS_SAT}, {"*|", STAR_SAT}, {"/|", SLASH_SAT},
	{"+?", PLUS_CHECKED}, {"-?", MINUS_CHECKED}, {"*?", STAR_CHECKED}, {"/?", SLASH_CHECKED},
	{"==", EQ_EQ}, {"!=", NOT_EQ}, {"<=", LT_EQ}, {">=", GT_EQ},
	{"&&", AND_AND}, {"||", OR_OR},
	{"<<", SHL}, {">>", SHR},
	{"??", COALESCE}, {"?.", QUESTION_DOT},
	{"+=", PLUS_ASSIGN}, {"-=", MINUS_ASSIGN}, {"*=", STAR_ASSIGN},
	{"/=", SLASH_ASSIGN}, {"%=", PERCENT_ASSIGN},
	{"->", ARROW}, {"=>", FAT_ARROW},
	{"+", PLUS}, {"-", MINUS}, {"*", STAR}, {"/", SLASH}, {"%", PERCENT},
	{"<", LT}, {">", GT}, {"=", ASSIGN}, {"!", BANG},
	{"&", AMP}, {"|", PIPE}, {"^", CARET}, {"~", TILDE}, {"?", QUESTION},
	{"(", LPAREN}, {")", RPAREN}, {"[", LBRACKET}, {"]", RBRACKET},
	{"{", LBRACE}, {"}", RBRACE}, {",", COMMA}, {".", DOT}, {":", COLON},
	{";", SEMICOLON}, {"@", AT},
}
