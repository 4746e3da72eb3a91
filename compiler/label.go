/*
File    : lumi/compiler/label.go

Label allocation and two-phase jump patching, ported in semantics from
original_source's lumi_bytecode::instruction::Label.
*/
package compiler

import "github.com/lumi-lang/lumi/vm"

// Label is an abstract compile-time jump target. It is resolved to a pc
// by patchLabel once its position is known.
type Label int

// newLabel allocates a fresh, never-reused Label.
func (c *Compiler) newLabel() Label {
	c.nextLabel++
	return Label(c.nextLabel - 1)
}

// emitJump appends a Jump-family instruction targeting label. If label is
// already defined, the final pc is emitted directly; otherwise a sentinel
// is emitted and the pc is recorded as pending, to be rewritten once the
// label is defined.
func (c *Compiler) emitJump(op vm.Opcode, label Label) {
	if pc, ok := c.defined[label]; ok {
		c.emit(op, pc)
		return
	}
	pc := c.emit(op, sentinelPC)
	c.pending[label] = append(c.pending[label], pc)
}

const sentinelPC = -1

// patchLabel records the current pc as label's definition and rewrites
// every jump emitted against it while it was still pending. Re-defining an
// already-defined label is a compile-time fault.
func (c *Compiler) patchLabel(label Label) error {
	if _, ok := c.defined[label]; ok {
		return &CompileError{Message: "label redefined"}
	}
	pc := len(c.instructions)
	c.defined[label] = pc
	for _, jumpPC := range c.pending[label] {
		c.instructions[jumpPC].Operand = pc
	}
	delete(c.pending, label)
	return nil
}
