/*
File    : lumi/compiler/compiler.go

Package compiler implements the tree-to-bytecode compiler,
ported from original_source's lumi_bytecode crate. Each emit category
(arithmetic, assignment, variable, control flow, function) lives in its
own file as free methods on *Compiler — Go has no trait objects, so the
Rust XxxCore/XxxGenerator trait pair collapses to one concrete receiver
that every file shares the same narrow view of.
*/
package compiler

import (
	"github.com/lumi-lang/lumi/ast"
	"github.com/lumi-lang/lumi/vm"
)

// CompileError signals an internal invariant violation — an unresolved
// identifier slot or a label redefinition — that should be unreachable
// for any source that passed semantic analysis.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return "compile error: " + e.Message
}

// Compiler holds the growing instruction sequence, constant pool, and
// symbol table for the compilation unit currently being emitted into.
// Compiling a function body temporarily swaps these fields out via
// saveUnit/restoreUnit so the body is emitted into a fresh chunk with
// guaranteed restore on every exit path.
type Compiler struct {
	instructions []vm.Instruction
	constants    []vm.Constant
	symbols      map[string]int
	nextSlot     int

	nextLabel int
	defined   map[Label]int
	pending   map[Label][]int
}

// New creates a Compiler ready to compile a module-level Program.
func New() *Compiler {
	return &Compiler{
		symbols: make(map[string]int),
		defined: make(map[Label]int),
		pending: make(map[Label][]int),
	}
}

// compilerUnit is the saved state swapped out during function emission.
type compilerUnit struct {
	instructions []vm.Instruction
	constants    []vm.Constant
	symbols      map[string]int
	nextSlot     int
	nextLabel    int
	defined      map[Label]int
	pending      map[Label][]int
}

func (c *Compiler) saveUnit() compilerUnit {
	return compilerUnit{
		instructions: c.instructions,
		constants:    c.constants,
		symbols:      c.symbols,
		nextSlot:     c.nextSlot,
		nextLabel:    c.nextLabel,
		defined:      c.defined,
		pending:      c.pending,
	}
}

func (c *Compiler) restoreUnit(u compilerUnit) {
	c.instructions = u.instructions
	c.constants = u.constants
	c.symbols = u.symbols
	c.nextSlot = u.nextSlot
	c.nextLabel = u.nextLabel
	c.defined = u.defined
	c.pending = u.pending
}

func (c *Compiler) resetUnit() {
	c.instructions = nil
	c.constants = nil
	c.symbols = make(map[string]int)
	c.nextSlot = 0
	c.nextLabel = 0
	c.defined = make(map[Label]int)
	c.pending = make(map[Label][]int)
}

// emit appends an instruction and returns its pc.
func (c *Compiler) emit(op vm.Opcode, operand int) int {
	pc := len(c.instructions)
	c.instructions = append(c.instructions, vm.Instruction{Op: op, Operand: operand})
	return pc
}

// emitNamed appends a CallFn-shaped instruction carrying a name instead of
// (or alongside) an operand.
func (c *Compiler) emitNamed(op vm.Opcode, name string) int {
	pc := len(c.instructions)
	c.instructions = append(c.instructions, vm.Instruction{Op: op, Name: name})
	return pc
}

// addConstant appends c to the constant pool and returns its index.
func (c *Compiler) addConstant(constant vm.Constant) int {
	c.constants = append(c.constants, constant)
	return len(c.constants) - 1
}

// resolveOrAllocate returns name's local slot, allocating a new one if
// this is its first appearance in the current compilation unit.
func (c *Compiler) resolveOrAllocate(name string) int {
	if slot, ok := c.symbols[name]; ok {
		return slot
	}
	slot := c.nextSlot
	c.nextSlot++
	c.symbols[name] = slot
	return slot
}

// resolve returns name's local slot without allocating, and ok=false if
// it has never been declared in this unit — an internal invariant
// violation once semantic analysis has already run.
func (c *Compiler) resolve(name string) (int, bool) {
	slot, ok := c.symbols[name]
	return slot, ok
}

// Compile walks prog and returns the module-level chunk.
func (c *Compiler) Compile(prog *ast.Program) (*vm.FunctionObj, error) {
	c.resetUnit()
	for _, stmt := range prog.Body {
		if err := c.compileStatement(stmt); err != nil {
			return nil, err
		}
	}
	return &vm.FunctionObj{
		Instructions: c.instructions,
		Constants:    c.constants,
	}, nil
}

func (c *Compiler) compileStatement(node ast.Node) error {
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		return c.compileVariableDeclaration(n)
	case *ast.BlockStatement:
		return c.compileBlockStatement(n)
	case *ast.IfStatement:
		return c.compileIfStatement(n)
	case *ast.ForStatement:
		return c.compileForStatement(n)
	case *ast.FunctionDeclaration:
		return c.compileFunctionDeclaration(n)
	case *ast.PrintStatement:
		return c.compilePrintStatement(n)
	case *ast.ReturnStatement:
		return c.compileReturnStatement(n)
	case *ast.ExpressionStatement:
		return c.compileExpressionStatement(n)
	default:
		return c.compileExpression(node)
	}
}

func (c *Compiler) compileBlockStatement(n *ast.BlockStatement) error {
	for _, stmt := range n.Body {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compilePrintStatement(n *ast.PrintStatement) error {
	if err := c.compileExpression(n.Argument); err != nil {
		return err
	}
	c.emit(vm.OpPrint, 0)
	return nil
}

// compileExpressionStatement emits the expression and nothing else: no
// trailing Pop, so the last statement's value survives on the stack.
func (c *Compiler) compileExpressionStatement(n *ast.ExpressionStatement) error {
	return c.compileExpression(n.Expression)
}
