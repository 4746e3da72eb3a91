package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, chunk *FunctionObj) (*Stack, string) {
	t.Helper()
	var out bytes.Buffer
	stack, err := New(&out).Run(chunk)
	require.NoError(t, err)
	return stack, out.String()
}

func TestVM_PushConstNumber(t *testing.T) {
	chunk := &FunctionObj{
		Constants:    []Constant{{Kind: ConstNumber, Number: 42}},
		Instructions: []Instruction{{Op: OpPushConst, Operand: 0}},
	}
	stack, _ := run(t, chunk)
	require.Equal(t, 1, stack.Len())
	assert.Equal(t, Number(42), stack.Peek())
}

func TestVM_AddNumbers(t *testing.T) {
	chunk := &FunctionObj{
		Constants: []Constant{{Kind: ConstNumber, Number: 2}, {Kind: ConstNumber, Number: 3}},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0},
			{Op: OpPushConst, Operand: 1},
			{Op: OpAdd},
		},
	}
	stack, _ := run(t, chunk)
	assert.Equal(t, Number(5), stack.Peek())
}

func TestVM_AddConcatenatesNonNumbers(t *testing.T) {
	chunk := &FunctionObj{
		Constants: []Constant{{Kind: ConstString, Str: "foo"}, {Kind: ConstNumber, Number: 1}},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0},
			{Op: OpPushConst, Operand: 1},
			{Op: OpAdd},
		},
	}
	stack, _ := run(t, chunk)
	assert.Equal(t, StringValue("foo1"), stack.Peek())
}

func TestVM_DivisionByZeroProducesNaN(t *testing.T) {
	chunk := &FunctionObj{
		Constants: []Constant{{Kind: ConstNumber, Number: 1}, {Kind: ConstNumber, Number: 0}},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0},
			{Op: OpPushConst, Operand: 1},
			{Op: OpDiv},
		},
	}
	stack, _ := run(t, chunk)
	n, ok := stack.Peek().(Number)
	require.True(t, ok)
	assert.True(t, float64(n) != float64(n), "expected NaN")
}

func TestVM_ComparisonOnNonNumbersIsFalse(t *testing.T) {
	chunk := &FunctionObj{
		Constants: []Constant{{Kind: ConstString, Str: "a"}, {Kind: ConstNumber, Number: 1}},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0},
			{Op: OpPushConst, Operand: 1},
			{Op: OpLt},
		},
	}
	stack, _ := run(t, chunk)
	assert.Equal(t, Boolean(false), stack.Peek())
}

func TestVM_PrintPeeksRatherThanPops(t *testing.T) {
	chunk := &FunctionObj{
		Constants:    []Constant{{Kind: ConstNumber, Number: 7}},
		Instructions: []Instruction{{Op: OpPushConst, Operand: 0}, {Op: OpPrint}},
	}
	stack, out := run(t, chunk)
	assert.Equal(t, 1, stack.Len())
	assert.Equal(t, "7\n", out)
}

func TestVM_ExpressionStatementLeavesValueOnStack(t *testing.T) {
	// No Pop is emitted for an expression statement: the value stays.
	chunk := &FunctionObj{
		Constants:    []Constant{{Kind: ConstNumber, Number: 3}},
		Instructions: []Instruction{{Op: OpPushConst, Operand: 0}},
	}
	stack, _ := run(t, chunk)
	assert.Equal(t, 1, stack.Len())
}

func TestVM_JumpIfFalseSkipsBranch(t *testing.T) {
	// if (false) { push 1 } else { push 2 }; equivalent hand-assembled form.
	chunk := &FunctionObj{
		Constants: []Constant{
			{Kind: ConstBoolean, Boolean: false},
			{Kind: ConstNumber, Number: 1},
			{Kind: ConstNumber, Number: 2},
		},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0}, // 0: push false
			{Op: OpJumpIfFalse, Operand: 4},
			{Op: OpPushConst, Operand: 1}, // 2: then-branch
			{Op: OpJump, Operand: 5},
			{Op: OpPushConst, Operand: 2}, // 4: else-branch
			{Op: OpHalt},                  // 5
		},
	}
	stack, _ := run(t, chunk)
	assert.Equal(t, Number(2), stack.Peek())
}

func TestVM_CallFnAndReturnLeavesValueOnStack(t *testing.T) {
	// fn add(a, b) { a + b; } add(1, 2); — implicit-return style.
	addFn := &FunctionObj{
		Name:  "add",
		Arity: 2,
		Instructions: []Instruction{
			{Op: OpLoadVar, Operand: 0},
			{Op: OpLoadVar, Operand: 1},
			{Op: OpAdd},
			{Op: OpReturn},
		},
	}
	chunk := &FunctionObj{
		Constants: []Constant{
			{Kind: ConstFunction, Function: addFn},
			{Kind: ConstNumber, Number: 1},
			{Kind: ConstNumber, Number: 2},
		},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0}, // installs add() in the registry
			{Op: OpPushConst, Operand: 1},
			{Op: OpPushConst, Operand: 2},
			{Op: OpCallFn, Name: "add"},
		},
	}
	stack, _ := run(t, chunk)
	require.Equal(t, 1, stack.Len())
	assert.Equal(t, Number(3), stack.Peek())
}

func TestVM_TwoSequentialCallsLeaveBothPrintedValues(t *testing.T) {
	// fn p(x) { print x; } p(2); p(5); — call sequence leaving printed values.
	pFn := &FunctionObj{
		Name:  "p",
		Arity: 1,
		Instructions: []Instruction{
			{Op: OpLoadVar, Operand: 0},
			{Op: OpPrint},
			{Op: OpReturn},
		},
	}
	chunk := &FunctionObj{
		Constants: []Constant{
			{Kind: ConstFunction, Function: pFn},
			{Kind: ConstNumber, Number: 2},
			{Kind: ConstNumber, Number: 5},
		},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0},
			{Op: OpPushConst, Operand: 1},
			{Op: OpCallFn, Name: "p"},
			{Op: OpPushConst, Operand: 2},
			{Op: OpCallFn, Name: "p"},
		},
	}
	stack, out := run(t, chunk)
	require.Equal(t, 2, stack.Len())
	assert.Equal(t, Number(2), stack.Values()[0])
	assert.Equal(t, Number(5), stack.Values()[1])
	assert.Equal(t, "2\n5\n", out)
}

func TestVM_CallUnknownFunctionFails(t *testing.T) {
	chunk := &FunctionObj{
		Instructions: []Instruction{{Op: OpCallFn, Name: "missing"}},
	}
	_, err := New(&bytes.Buffer{}).Run(chunk)
	require.Error(t, err)
	var vmErr *VMError
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, FunctionNotFound, vmErr.Kind)
}

func TestVM_LoadVarOutOfRangeIsUndefined(t *testing.T) {
	chunk := &FunctionObj{
		Instructions: []Instruction{{Op: OpLoadVar, Operand: 99}},
	}
	stack, _ := run(t, chunk)
	assert.Equal(t, Undefined{}, stack.Peek())
}

func TestVM_StoreThenLoadModuleLocal(t *testing.T) {
	chunk := &FunctionObj{
		Constants: []Constant{{Kind: ConstNumber, Number: 9}},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0},
			{Op: OpStoreVar, Operand: 0},
			{Op: OpLoadVar, Operand: 0},
		},
	}
	stack, _ := run(t, chunk)
	assert.Equal(t, Number(9), stack.Peek())
}

func TestVM_EqualityIsStructuralForPrimitives(t *testing.T) {
	chunk := &FunctionObj{
		Constants: []Constant{{Kind: ConstNumber, Number: 5}, {Kind: ConstNumber, Number: 5}},
		Instructions: []Instruction{
			{Op: OpPushConst, Operand: 0},
			{Op: OpPushConst, Operand: 1},
			{Op: OpEq},
		},
	}
	stack, _ := run(t, chunk)
	assert.Equal(t, Boolean(true), stack.Peek())
}
