package ast

import (
	"bytes"
	"fmt"
)

const indentSize = 2

// PrintingVisitor renders a tree as an indented, human-readable listing.
// Adapted from go-mix's main/print_visitor.go, generalized from the
// GoMix node set to Lumi's.
type PrintingVisitor struct {
	Indent int
	Buf    bytes.Buffer
}

func (p *PrintingVisitor) writeIndent() {
	for i := 0; i < p.Indent; i++ {
		p.Buf.WriteString(" ")
	}
}

func (p *PrintingVisitor) line(format string, args ...interface{}) {
	p.writeIndent()
	p.Buf.WriteString(fmt.Sprintf(format, args...))
	p.Buf.WriteString("\n")
}

// Visit dispatches on the concrete node type and appends its rendering
// (and its children's, recursively) to Buf.
func (p *PrintingVisitor) Visit(node Node) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *Program:
		p.line("Program")
		p.Indent += indentSize
		for _, stmt := range n.Body {
			p.Visit(stmt)
		}
		p.Indent -= indentSize
	case *VariableDeclaration:
		p.line("VariableDeclaration(%s)", n.Kind)
		p.Indent += indentSize
		for _, d := range n.Declarations {
			p.Visit(d)
		}
		p.Indent -= indentSize
	case *Declarator:
		p.line("Declarator(%s)", n.Name.Name)
		p.Indent += indentSize
		if n.DeclaredType != nil {
			p.line("type: %s", n.DeclaredType.Name)
		}
		if n.Initializer != nil {
			p.Visit(n.Initializer)
		}
		p.Indent -= indentSize
	case *BlockStatement:
		p.line("BlockStatement")
		p.Indent += indentSize
		for _, stmt := range n.Body {
			p.Visit(stmt)
		}
		p.Indent -= indentSize
	case *IfStatement:
		p.line("IfStatement")
		p.Indent += indentSize
		p.Visit(n.Condition)
		p.Visit(n.Then)
		if n.Else != nil {
			p.Visit(n.Else)
		}
		p.Indent -= indentSize
	case *ForStatement:
		p.line("ForStatement(%s)", n.Iterator.Name)
		p.Indent += indentSize
		p.Visit(n.Start)
		p.Visit(n.End)
		if n.Step != nil {
			p.Visit(n.Step)
		}
		p.Visit(n.Body)
		p.Indent -= indentSize
	case *FunctionDeclaration:
		name := "<anonymous>"
		if n.Name != nil {
			name = n.Name.Name
		}
		p.line("FunctionDeclaration(%s)", name)
		p.Indent += indentSize
		p.Visit(n.Body)
		p.Indent -= indentSize
	case *ReturnStatement:
		p.line("ReturnStatement")
		if n.Argument != nil {
			p.Indent += indentSize
			p.Visit(n.Argument)
			p.Indent -= indentSize
		}
	case *PrintStatement:
		p.line("PrintStatement")
		p.Indent += indentSize
		p.Visit(n.Argument)
		p.Indent -= indentSize
	case *ExpressionStatement:
		p.line("ExpressionStatement")
		p.Indent += indentSize
		p.Visit(n.Expression)
		p.Indent -= indentSize
	case *BinaryExpression:
		p.line("BinaryExpression(%s)", n.Operator)
		p.Indent += indentSize
		p.Visit(n.Left)
		p.Visit(n.Right)
		p.Indent -= indentSize
	case *UnaryExpression:
		p.line("UnaryExpression(%s, prefix=%t)", n.Operator, n.Prefix)
		p.Indent += indentSize
		p.Visit(n.Argument)
		p.Indent -= indentSize
	case *AssignmentExpression:
		p.line("AssignmentExpression(%s)", n.Operator)
		p.Indent += indentSize
		p.Visit(n.Left)
		p.Visit(n.Right)
		p.Indent -= indentSize
	case *LogicalExpression:
		p.line("LogicalExpression(%s)", n.Operator)
		p.Indent += indentSize
		p.Visit(n.Left)
		p.Visit(n.Right)
		p.Indent -= indentSize
	case *CallExpression:
		p.line("CallExpression")
		p.Indent += indentSize
		p.Visit(n.Callee)
		for _, arg := range n.Arguments {
			p.Visit(arg)
		}
		p.Indent -= indentSize
	case *Identifier:
		p.line("Identifier(%s)", n.Name)
	case *NumberLiteral:
		p.line("Number(%v)", n.Value)
	case *StringLiteral:
		p.line("String(%q)", n.Value)
	case *BooleanLiteral:
		p.line("Boolean(%t)", n.Value)
	case *NullLiteral:
		p.line("Null")
	case *UndefinedLiteral:
		p.line("Undefined")
	default:
		p.line("<unknown node %T>", n)
	}
}
