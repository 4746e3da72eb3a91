package semantic

import (
	"fmt"

	"github.com/lumi-lang/lumi/ast"
)

// ErrorKind enumerates semantic diagnostic kinds.
type ErrorKind string

const (
	DuplicateDeclaration ErrorKind = "DuplicateDeclaration"
	UndeclaredVariable   ErrorKind = "UndeclaredVariable"
	ConstReassignment    ErrorKind = "ConstReassignment"
	TypeMismatch         ErrorKind = "TypeMismatch"
	InvalidType          ErrorKind = "InvalidType"
)

// SemanticError carries the failing node's position and, for TypeMismatch/
// InvalidType, the expected/found type names.
type SemanticError struct {
	Kind     ErrorKind
	Name     string // identifier name, when applicable
	Expected string // TypeMismatch
	Found    string // TypeMismatch
	TypeName string // InvalidType
	Message  string
	Position ast.Position
}

func (e *SemanticError) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return fmt.Sprintf("%s: TypeMismatch: expected %s, found %s", e.Position, e.Expected, e.Found)
	case InvalidType:
		return fmt.Sprintf("%s: InvalidType: %q", e.Position, e.TypeName)
	case DuplicateDeclaration, ConstReassignment, UndeclaredVariable:
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Kind, e.Name)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Kind, e.Message)
	}
}
