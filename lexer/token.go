/*
File    : lumi/lexer/token.go
*/

// Package lexer implements the lazy tokenizer for Lumi source text.
package lexer

import "github.com/lumi-lang/lumi/ast"

// TokenKind classifies a Token. It is a string so tokens print readably
// and so keyword/punctuator literals double as their own kind tag,
// following go-mix's lexer/token.go convention.
type TokenKind string

const (
	EOF     TokenKind = "EOF"
	INVALID TokenKind = "INVALID"

	IDENTIFIER TokenKind = "IDENTIFIER"
	NUMBER     TokenKind = "NUMBER"
	STRING     TokenKind = "STRING"
	BOOLEAN    TokenKind = "BOOLEAN"
	NULL       TokenKind = "NULL"
	UNDEFINED  TokenKind = "UNDEFINED"
	KEYWORD    TokenKind = "KEYWORD"
	COMMENT    TokenKind = "COMMENT"

	// Punctuators and operators.
	LPAREN    TokenKind = "("
	RPAREN    TokenKind = ")"
	LBRACE    TokenKind = "{"
	RBRACE    TokenKind = "}"
	LBRACKET  TokenKind = "["
	RBRACKET  TokenKind = "]"
	DOT       TokenKind = "."
	SEMI      TokenKind = ";"
	COMMA     TokenKind = ","
	COLON     TokenKind = ":"
	QUESTION  TokenKind = "?"
	BANG      TokenKind = "!"
	ASSIGN    TokenKind = "="
	PLUS      TokenKind = "+"
	MINUS     TokenKind = "-"
	STAR      TokenKind = "*"
	SLASH     TokenKind = "/"
	PERCENT   TokenKind = "%"
	LT        TokenKind = "<"
	GT        TokenKind = ">"
	EQ        TokenKind = "=="
	NEQ       TokenKind = "!="
	LEQ       TokenKind = "<="
	GEQ       TokenKind = ">="
	INC       TokenKind = "++"
	DEC       TokenKind = "--"
	ARROW     TokenKind = "->"
	AND       TokenKind = "&&"
	OR        TokenKind = "||"
)

// keywords is the reserved-word alphabet. true/false/null/undefined are
// handled separately since they carry their own kinds.
var keywords = map[string]bool{
	"let": true, "const": true, "var": true, "function": true, "fn": true,
	"if": true, "else": true, "return": true, "for": true, "while": true,
	"do": true, "in": true, "to": true, "step": true, "print": true,
	"this": true, "super": true, "async": true, "await": true, "yield": true,
	"import": true, "export": true, "new": true, "class": true, "extends": true,
	"static": true, "get": true, "set": true, "try": true, "catch": true,
	"finally": true, "throw": true, "break": true, "continue": true,
	"switch": true, "case": true, "default": true, "of": true, "with": true,
	"delete": true, "instanceof": true, "typeof": true, "void": true,
	"debugger": true, "enum": true, "interface": true, "package": true,
	"private": true, "protected": true, "public": true, "implements": true,
	"abstract": true, "int": true, "str": true, "boolean": true,
	"number": true, "float": true, "double": true,
}

// Token is a tagged variant {kind, literal, span}. Word, Number, String,
// and Boolean carry their payload directly; punctuators carry only their
// kind (which doubles as the literal).
type Token struct {
	Kind    TokenKind
	Literal string  // source text; the keyword word for Keyword tokens; the unquoted, unescaped value for STRING tokens
	Number  float64 // valid when Kind == NUMBER
	Boolean bool    // valid when Kind == BOOLEAN
	Span    ast.Span
}

// IsKeyword reports whether s is one of the reserved words.
func IsKeyword(s string) bool {
	return keywords[s]
}
