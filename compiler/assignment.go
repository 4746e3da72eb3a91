/*
File    : lumi/compiler/assignment.go

Assignment expression emission.
The left-hand side is always an identifier by the time this runs — any
other form is rejected earlier as a parse-time diagnostic.
*/
package compiler

import (
	"github.com/lumi-lang/lumi/ast"
	"github.com/lumi-lang/lumi/vm"
)

// compileAssignmentExpression emits the right-hand expression and stores
// it into the left identifier's slot, allocating the slot on first use.
func (c *Compiler) compileAssignmentExpression(n *ast.AssignmentExpression) error {
	ident, ok := n.Left.(*ast.Identifier)
	if !ok {
		return &CompileError{Message: "assignment target is not an identifier"}
	}
	if err := c.compileExpression(n.Right); err != nil {
		return err
	}
	slot := c.resolveOrAllocate(ident.Name)
	c.emit(vm.OpStoreVar, slot)
	return nil
}
