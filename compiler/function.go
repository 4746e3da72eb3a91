/*
File    : lumi/compiler/function.go

Function declaration and call-expression emission, plus the explicit
return statement (see ast.ReturnStatement's doc comment).
*/
package compiler

import (
	"github.com/lumi-lang/lumi/ast"
	"github.com/lumi-lang/lumi/vm"
)

// compileFunctionDeclaration swaps in a fresh compilation unit for the
// body, allocates parameter slots 0..arity-1 in declaration order,
// compiles the body, and appends an implicit trailing Return so every
// chunk is well-formed even if control falls off the end. The finished
// chunk becomes a function constant in the enclosing unit; PushConst of
// a function constant installs it into the VM's registry rather than
// pushing a value.
func (c *Compiler) compileFunctionDeclaration(n *ast.FunctionDeclaration) error {
	name := ""
	if n.Name != nil {
		name = n.Name.Name
	}

	saved := c.saveUnit()
	c.resetUnit()

	for _, param := range n.Params {
		c.resolveOrAllocate(param.Name)
	}

	if err := c.compileStatement(n.Body); err != nil {
		c.restoreUnit(saved)
		return err
	}
	c.emit(vm.OpReturn, 0)

	fn := &vm.FunctionObj{
		Name:         name,
		Arity:        len(n.Params),
		Instructions: c.instructions,
		Constants:    c.constants,
	}

	c.restoreUnit(saved)

	idx := c.addConstant(vm.Constant{Kind: vm.ConstFunction, Function: fn})
	c.emit(vm.OpPushConst, idx)
	return nil
}

// compileReturnStatement emits the argument (or Undefined's implicit
// absence, left to the VM's Return default) and a Return instruction.
func (c *Compiler) compileReturnStatement(n *ast.ReturnStatement) error {
	if n.Argument != nil {
		if err := c.compileExpression(n.Argument); err != nil {
			return err
		}
	}
	c.emit(vm.OpReturn, 0)
	return nil
}

// compileCallExpression emits each argument in source order, then
// CallFn(name) where name is the callee identifier — there is nothing
// else to emit for the callee itself, since lookup is name-based against
// the VM's function registry rather than a value on the stack. The
// source carries a positional Call(argc) variant too; this engine
// adopts name-based lookup throughout, mirroring the VM.
func (c *Compiler) compileCallExpression(n *ast.CallExpression) error {
	ident, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return &CompileError{Message: "call target is not an identifier"}
	}
	for _, arg := range n.Arguments {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}
	c.emitNamed(vm.OpCallFn, ident.Name)
	return nil
}
