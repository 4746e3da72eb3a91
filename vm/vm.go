/*
File    : lumi/vm/vm.go

VM is the stack machine that executes a compiled chunk.
Ported from original_source's lumi_vm::vm::Vm::execute: a dispatch loop
over the instruction set, with the exact arithmetic/comparison/Print/
CallFn/Return semantics the Rust source defines (NaN on bad arithmetic
operands, false on bad comparisons, Print peeks rather than pops, CallFn
pops arguments then restores their source order before binding to
locals 0..arity-1).
*/
package vm

import (
	"fmt"
	"io"
	"math"
)

// VM holds all execution state for one evaluate() call: the value/frame
// stack, the module-level locals, the currently executing chunk, and the
// name-keyed function registry.
type VM struct {
	stack         *Stack
	moduleLocals  []Value
	instructions  []Instruction
	constants     []Constant
	registry      map[string]*FunctionObj
	heap          *Heap
	out           io.Writer
	ip            int
}

// New creates a VM with empty state, ready to Run a compiled chunk.
func New(out io.Writer) *VM {
	locals := make([]Value, defaultLocalsSize)
	for i := range locals {
		locals[i] = Undefined{}
	}
	return &VM{
		stack:        NewStack(),
		moduleLocals: locals,
		registry:     make(map[string]*FunctionObj),
		heap:         NewHeap(),
		out:          out,
	}
}

// Stack exposes the value stack for callers that want to inspect the
// final contents after Run returns.
func (v *VM) Stack() *Stack {
	return v.stack
}

// Run executes chunk to completion (a Halt instruction, or falling off
// the end of the instruction vector) and returns the VM's stack, or the
// first runtime fault encountered.
func (v *VM) Run(chunk *FunctionObj) (*Stack, error) {
	v.instructions = chunk.Instructions
	v.constants = chunk.Constants
	v.ip = 0

	for v.ip < len(v.instructions) {
		instr := v.instructions[v.ip]
		halt, err := v.step(instr)
		if err != nil {
			return v.stack, err
		}
		if halt {
			break
		}
	}
	return v.stack, nil
}

// step executes one instruction. It returns halt=true when execution
// should stop (Halt), and advances v.ip itself for every instruction
// (branches set ip directly; everything else falls through to ip+1).
func (v *VM) step(instr Instruction) (bool, error) {
	switch instr.Op {
	case OpPushConst:
		v.execPushConst(instr.Operand)
	case OpPop:
		v.stack.Pop()
	case OpAdd:
		v.execAdd()
	case OpSub:
		v.execNumericBinary(func(a, b float64) float64 { return a - b })
	case OpMul:
		v.execNumericBinary(func(a, b float64) float64 { return a * b })
	case OpDiv:
		v.execNumericBinary(func(a, b float64) float64 {
			if b == 0 {
				return math.NaN()
			}
			return a / b
		})
	case OpMod:
		v.execNumericBinary(math.Mod)
	case OpInc:
		v.execUnaryNumeric(func(a float64) float64 { return a + 1 })
	case OpDec:
		v.execUnaryNumeric(func(a float64) float64 { return a - 1 })
	case OpEq:
		v.execEquality(true)
	case OpNeq:
		v.execEquality(false)
	case OpLt:
		v.execComparison(func(a, b float64) bool { return a < b })
	case OpGt:
		v.execComparison(func(a, b float64) bool { return a > b })
	case OpLeq:
		v.execComparison(func(a, b float64) bool { return a <= b })
	case OpGeq:
		v.execComparison(func(a, b float64) bool { return a >= b })
	case OpJump:
		v.ip = instr.Operand
		return false, nil
	case OpJumpIfTrue:
		cond := Truthy(v.stack.Pop())
		if cond {
			v.ip = instr.Operand
			return false, nil
		}
	case OpJumpIfFalse:
		cond := Truthy(v.stack.Pop())
		if !cond {
			v.ip = instr.Operand
			return false, nil
		}
	case OpCallFn:
		if err := v.execCallFn(instr.Name); err != nil {
			return false, err
		}
		return false, nil
	case OpReturn:
		v.execReturn()
		return false, nil
	case OpLoadVar:
		v.execLoadVar(instr.Operand)
	case OpStoreVar:
		v.execStoreVar(instr.Operand)
	case OpPrint:
		fmt.Fprintln(v.out, v.stack.Peek().String())
	case OpNop:
		// no-op
	case OpHalt:
		return true, nil
	}
	v.ip++
	return false, nil
}

func (v *VM) execPushConst(idx int) {
	if idx < 0 || idx >= len(v.constants) {
		v.stack.Push(Undefined{})
		return
	}
	c := v.constants[idx]
	if c.Kind == ConstFunction {
		if c.Function != nil && c.Function.Name != "" {
			v.registry[c.Function.Name] = c.Function
		}
		return
	}
	v.stack.Push(c.ToValue())
}

func stringify(v Value) string {
	return v.String()
}

func (v *VM) execAdd() {
	b := v.stack.Pop()
	a := v.stack.Pop()
	an, aIsNum := a.(Number)
	bn, bIsNum := b.(Number)
	if aIsNum && bIsNum {
		v.stack.Push(Number(float64(an) + float64(bn)))
		return
	}
	v.stack.Push(StringValue(stringify(a) + stringify(b)))
}

func (v *VM) execNumericBinary(op func(a, b float64) float64) {
	b := v.stack.Pop()
	a := v.stack.Pop()
	an, aIsNum := a.(Number)
	bn, bIsNum := b.(Number)
	if !aIsNum || !bIsNum {
		v.stack.Push(Number(math.NaN()))
		return
	}
	v.stack.Push(Number(op(float64(an), float64(bn))))
}

func (v *VM) execUnaryNumeric(op func(a float64) float64) {
	a := v.stack.Pop()
	an, ok := a.(Number)
	if !ok {
		v.stack.Push(Number(math.NaN()))
		return
	}
	v.stack.Push(Number(op(float64(an))))
}

func (v *VM) execComparison(op func(a, b float64) bool) {
	b := v.stack.Pop()
	a := v.stack.Pop()
	an, aIsNum := a.(Number)
	bn, bIsNum := b.(Number)
	if !aIsNum || !bIsNum {
		v.stack.Push(Boolean(false))
		return
	}
	v.stack.Push(Boolean(op(float64(an), float64(bn))))
}

func (v *VM) execEquality(wantEqual bool) {
	b := v.stack.Pop()
	a := v.stack.Pop()
	eq := valuesEqual(a, b)
	v.stack.Push(Boolean(eq == wantEqual))
}

func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Null:
		_, ok := b.(Null)
		return ok
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case FunctionHandle:
		bv, ok := b.(FunctionHandle)
		return ok && av.Name == bv.Name
	case ObjectHandle:
		bv, ok := b.(ObjectHandle)
		return ok && av.ID == bv.ID
	case ArrayHandle:
		bv, ok := b.(ArrayHandle)
		return ok && av.ID == bv.ID
	default:
		return false
	}
}

func (v *VM) execLoadVar(slot int) {
	if frame := v.stack.CurrentFrame(); frame != nil {
		v.stack.Push(frame.Load(slot))
		return
	}
	if slot < 0 || slot >= len(v.moduleLocals) {
		v.stack.Push(Undefined{})
		return
	}
	v.stack.Push(v.moduleLocals[slot])
}

func (v *VM) execStoreVar(slot int) {
	val := v.stack.Pop()
	if frame := v.stack.CurrentFrame(); frame != nil {
		frame.Store(slot, val)
		return
	}
	if slot < 0 {
		return
	}
	for slot >= len(v.moduleLocals) {
		v.moduleLocals = append(v.moduleLocals, Undefined{})
	}
	v.moduleLocals[slot] = val
}

func (v *VM) execCallFn(name string) error {
	fn, ok := v.registry[name]
	if !ok {
		return &VMError{Kind: FunctionNotFound, Name: name}
	}

	args := make([]Value, fn.Arity)
	for i := fn.Arity - 1; i >= 0; i-- {
		args[i] = v.stack.Pop()
	}

	basePointer := v.stack.Len()
	frame := NewFrame(v.ip+1, v.instructions, v.constants, basePointer, fn.Arity)
	for i, arg := range args {
		frame.Store(i, arg)
	}
	v.stack.PushFrame(frame)

	v.instructions = fn.Instructions
	v.constants = fn.Constants
	v.ip = 0
	return nil
}

func (v *VM) execReturn() {
	frame := v.stack.PopFrame()
	if frame == nil {
		v.ip++
		return
	}

	var returnValue Value = Undefined{}
	if v.stack.Len() > frame.BasePointer {
		returnValue = v.stack.Pop()
	}
	v.stack.TruncateTo(frame.BasePointer)
	v.stack.Push(returnValue)

	v.instructions = frame.ReturnInstructions
	v.constants = frame.ReturnConstants
	v.ip = frame.ReturnPC
}
