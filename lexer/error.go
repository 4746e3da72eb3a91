package lexer

import (
	"fmt"

	"github.com/lumi-lang/lumi/ast"
)

// ErrorKind enumerates the lexical failure kinds the lexer can report.
type ErrorKind string

const (
	UnexpectedCharacter ErrorKind = "UnexpectedCharacter"
	InvalidNumber       ErrorKind = "InvalidNumber"
	UnterminatedString  ErrorKind = "UnterminatedString"
	UnterminatedComment ErrorKind = "UnterminatedComment"
	InvalidToken        ErrorKind = "InvalidToken"
)

// LexError is returned for the offending token; the lexer never panics.
type LexError struct {
	Kind     ErrorKind
	Message  string
	Position ast.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Position, e.Kind, e.Message)
}

func newLexError(kind ErrorKind, pos ast.Position, format string, args ...interface{}) *LexError {
	return &LexError{Kind: kind, Position: pos, Message: fmt.Sprintf(format, args...)}
}
