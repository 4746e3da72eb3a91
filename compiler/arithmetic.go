/*
File    : lumi/compiler/arithmetic.go

Expression emission: literals, identifiers, binary/logical/unary
operators. Operator-to-opcode mapping is ported from original_source's
lumi_bytecode::expressions::binary and ::logical modules.
*/
package compiler

import (
	"github.com/lumi-lang/lumi/ast"
	"github.com/lumi-lang/lumi/vm"
)

var binaryOpcodes = map[string]vm.Opcode{
	"+":  vm.OpAdd,
	"-":  vm.OpSub,
	"*":  vm.OpMul,
	"/":  vm.OpDiv,
	"%":  vm.OpMod,
	"==": vm.OpEq,
	"!=": vm.OpNeq,
	"<":  vm.OpLt,
	">":  vm.OpGt,
	"<=": vm.OpLeq,
	">=": vm.OpGeq,
}

// compileExpression emits code that leaves exactly one value on the
// value stack, except for AssignmentExpression which instead
// emits the right-hand side straight into a StoreVar and leaves nothing
// behind. An assignment used as an operand (the inner assignment of a
// chained "a = b = 3", or one inside print or an initializer) therefore
// contributes no value; the consumer takes whatever is below it on the
// stack, or Undefined if the stack is empty.
func (c *Compiler) compileExpression(node ast.Node) error {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		idx := c.addConstant(vm.Constant{Kind: vm.ConstNumber, Number: n.Value})
		c.emit(vm.OpPushConst, idx)
		return nil
	case *ast.StringLiteral:
		idx := c.addConstant(vm.Constant{Kind: vm.ConstString, Str: n.Value})
		c.emit(vm.OpPushConst, idx)
		return nil
	case *ast.BooleanLiteral:
		idx := c.addConstant(vm.Constant{Kind: vm.ConstBoolean, Boolean: n.Value})
		c.emit(vm.OpPushConst, idx)
		return nil
	case *ast.NullLiteral:
		idx := c.addConstant(vm.Constant{Kind: vm.ConstNull})
		c.emit(vm.OpPushConst, idx)
		return nil
	case *ast.UndefinedLiteral:
		idx := c.addConstant(vm.Constant{Kind: vm.ConstUndefined})
		c.emit(vm.OpPushConst, idx)
		return nil
	case *ast.Identifier:
		return c.compileIdentifier(n)
	case *ast.BinaryExpression:
		return c.compileBinaryExpression(n)
	case *ast.LogicalExpression:
		return c.compileLogicalExpression(n)
	case *ast.UnaryExpression:
		return c.compileUnaryExpression(n)
	case *ast.AssignmentExpression:
		return c.compileAssignmentExpression(n)
	case *ast.CallExpression:
		return c.compileCallExpression(n)
	default:
		return &CompileError{Message: "unsupported expression node"}
	}
}

func (c *Compiler) compileBinaryExpression(n *ast.BinaryExpression) error {
	op, ok := binaryOpcodes[n.Operator]
	if !ok {
		return &CompileError{Message: "unknown binary operator: " + n.Operator}
	}
	if err := c.compileExpression(n.Left); err != nil {
		return err
	}
	if err := c.compileExpression(n.Right); err != nil {
		return err
	}
	c.emit(op, 0)
	return nil
}

// compileLogicalExpression lowers "&&"/"||" to a short-circuiting jump
// sequence that always produces a boolean, matching the semantic
// analyzer's LogicalExpression→Boolean typing.
func (c *Compiler) compileLogicalExpression(n *ast.LogicalExpression) error {
	if n.Operator != "&&" && n.Operator != "||" {
		return &CompileError{Message: "unknown logical operator: " + n.Operator}
	}
	return c.compileShortCircuit(n)
}

func (c *Compiler) compileShortCircuit(n *ast.LogicalExpression) error {
	shortCircuitOp := vm.OpJumpIfFalse
	shortCircuitValue := false
	if n.Operator == "||" {
		shortCircuitOp = vm.OpJumpIfTrue
		shortCircuitValue = true
	}

	shortCircuitLabel := c.newLabel()
	endLabel := c.newLabel()

	if err := c.compileExpression(n.Left); err != nil {
		return err
	}
	c.emitJump(shortCircuitOp, shortCircuitLabel)

	if err := c.compileExpression(n.Right); err != nil {
		return err
	}
	c.emitJump(shortCircuitOp, shortCircuitLabel)

	idx := c.addConstant(vm.Constant{Kind: vm.ConstBoolean, Boolean: !shortCircuitValue})
	c.emit(vm.OpPushConst, idx)
	c.emitJump(vm.OpJump, endLabel)

	if err := c.patchLabel(shortCircuitLabel); err != nil {
		return err
	}
	idx = c.addConstant(vm.Constant{Kind: vm.ConstBoolean, Boolean: shortCircuitValue})
	c.emit(vm.OpPushConst, idx)

	return c.patchLabel(endLabel)
}

// compileUnaryExpression handles numeric negation, unary plus, and
// prefix/postfix increment/decrement. "++"/"--" require an identifier
// argument; LoadVar is addressable twice so no Dup opcode is needed to
// keep the pre-mutation value around for postfix forms.
func (c *Compiler) compileUnaryExpression(n *ast.UnaryExpression) error {
	switch n.Operator {
	case "-":
		idx := c.addConstant(vm.Constant{Kind: vm.ConstNumber, Number: 0})
		c.emit(vm.OpPushConst, idx)
		if err := c.compileExpression(n.Argument); err != nil {
			return err
		}
		c.emit(vm.OpSub, 0)
		return nil
	case "+":
		return c.compileExpression(n.Argument)
	case "++", "--":
		return c.compileIncDec(n)
	default:
		return &CompileError{Message: "unknown unary operator: " + n.Operator}
	}
}

func (c *Compiler) compileIncDec(n *ast.UnaryExpression) error {
	ident, ok := n.Argument.(*ast.Identifier)
	if !ok {
		return &CompileError{Message: "increment/decrement target is not an identifier"}
	}
	slot, ok := c.resolve(ident.Name)
	if !ok {
		return &CompileError{Message: "unresolved identifier: " + ident.Name}
	}
	op := vm.OpInc
	if n.Operator == "--" {
		op = vm.OpDec
	}

	if n.Prefix {
		c.emit(vm.OpLoadVar, slot)
		c.emit(op, 0)
		c.emit(vm.OpStoreVar, slot)
		c.emit(vm.OpLoadVar, slot)
		return nil
	}

	c.emit(vm.OpLoadVar, slot)
	c.emit(vm.OpLoadVar, slot)
	c.emit(op, 0)
	c.emit(vm.OpStoreVar, slot)
	return nil
}
