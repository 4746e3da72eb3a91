/*
File    : lumi/compiler/variable.go

Variable declaration and identifier-read emission.
*/
package compiler

import (
	"github.com/lumi-lang/lumi/ast"
	"github.com/lumi-lang/lumi/vm"
)

// compileVariableDeclaration emits each declarator's initializer (if
// present) and stores it into a freshly resolved slot. A declarator with
// no initializer only reserves the slot; its value stays Undefined until
// written, per the slot vector's zero-filled default.
func (c *Compiler) compileVariableDeclaration(n *ast.VariableDeclaration) error {
	for _, d := range n.Declarations {
		slot := c.resolveOrAllocate(d.Name.Name)
		if d.Initializer == nil {
			continue
		}
		if err := c.compileExpression(d.Initializer); err != nil {
			return err
		}
		c.emit(vm.OpStoreVar, slot)
	}
	return nil
}

// compileIdentifier loads a previously declared binding. An unresolved
// name here is an internal fault: semantic analysis (UndeclaredVariable)
// is responsible for rejecting the program before it reaches the
// compiler.
func (c *Compiler) compileIdentifier(n *ast.Identifier) error {
	slot, ok := c.resolve(n.Name)
	if !ok {
		return &CompileError{Message: "unresolved identifier: " + n.Name}
	}
	c.emit(vm.OpLoadVar, slot)
	return nil
}
