/*
File    : lumi/compiler/control_flow.go

If/for statement emission, ported from original_source's lumi_bytecode::statements
control_flow module.

Note: a naive reading of the If-statement desugaring would add an extra
Pop after JumpIfFalse on both the taken-true and taken-false paths.
JumpIfFalse already pops the condition itself; emitting a second Pop
would underflow the value stack immediately after entering either
branch. This compiles the schema without those extra Pops.
*/
package compiler

import (
	"github.com/lumi-lang/lumi/ast"
	"github.com/lumi-lang/lumi/vm"
)

func (c *Compiler) compileIfStatement(n *ast.IfStatement) error {
	if err := c.compileExpression(n.Condition); err != nil {
		return err
	}

	elseLabel := c.newLabel()
	endLabel := c.newLabel()

	c.emitJump(vm.OpJumpIfFalse, elseLabel)

	if err := c.compileStatement(n.Then); err != nil {
		return err
	}
	c.emitJump(vm.OpJump, endLabel)

	if err := c.patchLabel(elseLabel); err != nil {
		return err
	}
	if n.Else != nil {
		if err := c.compileStatement(n.Else); err != nil {
			return err
		}
	}

	return c.patchLabel(endLabel)
}

// compileForStatement lowers "for i in start to end (step s)? body" to
// the invariant loop schema: three local slots (iterator, end, step),
// a leading comparison against end, and a trailing increment-and-jump.
func (c *Compiler) compileForStatement(n *ast.ForStatement) error {
	iterSlot := c.resolveOrAllocate(n.Iterator.Name)
	endSlot := c.resolveOrAllocate(n.Iterator.Name + "$end")
	stepSlot := c.resolveOrAllocate(n.Iterator.Name + "$step")

	if err := c.compileExpression(n.Start); err != nil {
		return err
	}
	c.emit(vm.OpStoreVar, iterSlot)

	if err := c.compileExpression(n.End); err != nil {
		return err
	}
	c.emit(vm.OpStoreVar, endSlot)

	if n.Step != nil {
		if err := c.compileExpression(n.Step); err != nil {
			return err
		}
	} else {
		idx := c.addConstant(vm.Constant{Kind: vm.ConstNumber, Number: 1})
		c.emit(vm.OpPushConst, idx)
	}
	c.emit(vm.OpStoreVar, stepSlot)

	startLabel := c.newLabel()
	endLabel := c.newLabel()

	if err := c.patchLabel(startLabel); err != nil {
		return err
	}
	c.emit(vm.OpLoadVar, iterSlot)
	c.emit(vm.OpLoadVar, endSlot)
	c.emit(vm.OpLeq, 0)
	c.emitJump(vm.OpJumpIfFalse, endLabel)

	if err := c.compileStatement(n.Body); err != nil {
		return err
	}

	c.emit(vm.OpLoadVar, iterSlot)
	c.emit(vm.OpLoadVar, stepSlot)
	c.emit(vm.OpAdd, 0)
	c.emit(vm.OpStoreVar, iterSlot)
	c.emitJump(vm.OpJump, startLabel)

	return c.patchLabel(endLabel)
}
