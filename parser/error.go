package parser

import (
	"fmt"

	"github.com/lumi-lang/lumi/ast"
)

// ErrorKind enumerates parse-time diagnostic kinds.
type ErrorKind string

const (
	UnexpectedToken     ErrorKind = "UnexpectedToken"
	UnexpectedEndOfFile ErrorKind = "UnexpectedEndOfFile"
	InvalidSyntax       ErrorKind = "InvalidSyntax"
)

// ParseError carries the failing token's position and an optional
// "expected" hint, following original_source's lumi_parser::error::ParseError.
type ParseError struct {
	Kind     ErrorKind
	Expected string // optional; empty if not applicable
	Message  string
	Position ast.Position
}

func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %s: expected %s: %s", e.Position, e.Kind, e.Expected, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Position, e.Kind, e.Message)
}
