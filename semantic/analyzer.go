/*
File    : lumi/semantic/analyzer.go

Analyzer is the single tree walk that runs between parsing and bytecode
compilation. Its scope-chain shape is go-mix's scope.Scope
(parent pointer, per-scope map, a LookUp that walks to root); its
accumulate-errors-then-report-the-first posture, along with the
pushScope/popScope/addError naming, is grounded on gaarutyunov-guix's
pkg/visitors/SemanticAnalyzer (pkg/visitors/semantic_analyzer.go).
*/
package semantic

import (
	"github.com/lumi-lang/lumi/ast"
)

// Analyzer walks a Program and records every declaration, type, and
// scoping rule violation it finds.
type Analyzer struct {
	scope  *Scope
	errors []*SemanticError
}

// New creates an Analyzer with a single Global scope.
func New() *Analyzer {
	return &Analyzer{scope: NewScope(GlobalScope, nil)}
}

// Analyze walks prog and returns the first recorded error, if any.
// Analysis always completes the full pass regardless of errors found
// along the way, accumulating all of them before reporting the first.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	for _, stmt := range prog.Body {
		a.visitStatement(stmt)
	}
	if len(a.errors) > 0 {
		return a.errors[0]
	}
	return nil
}

// Errors returns every diagnostic recorded during the walk.
func (a *Analyzer) Errors() []*SemanticError {
	return a.errors
}

func (a *Analyzer) addError(err *SemanticError) {
	a.errors = append(a.errors, err)
}

func (a *Analyzer) pushScope(kind ScopeKind) {
	a.scope = NewScope(kind, a.scope)
}

func (a *Analyzer) popScope() {
	if a.scope.Parent() != nil {
		a.scope = a.scope.Parent()
	}
}

func position(n ast.Node) ast.Position {
	if span := n.SourceSpan(); span != nil {
		return span.Start
	}
	return ast.Position{}
}

// --- Statements ----------------------------------------------------------

func (a *Analyzer) visitStatement(node ast.Node) {
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		a.visitVariableDeclaration(n)
	case *ast.BlockStatement:
		a.pushScope(BlockScope)
		for _, stmt := range n.Body {
			a.visitStatement(stmt)
		}
		a.popScope()
	case *ast.IfStatement:
		a.visitIfStatement(n)
	case *ast.ForStatement:
		a.visitForStatement(n)
	case *ast.FunctionDeclaration:
		a.visitFunctionDeclaration(n)
	case *ast.PrintStatement:
		a.inferType(n.Argument)
	case *ast.ExpressionStatement:
		a.inferType(n.Expression)
	case *ast.ReturnStatement:
		if n.Argument != nil {
			a.inferType(n.Argument)
		}
	default:
		// Leaf/expression nodes reached directly as statements (shouldn't
		// happen from the parser, but walking them is harmless).
		a.inferType(node)
	}
}

func (a *Analyzer) visitVariableDeclaration(decl *ast.VariableDeclaration) {
	for _, d := range decl.Declarations {
		if a.scope.DeclaredHere(d.Name.Name) {
			a.addError(&SemanticError{
				Kind:     DuplicateDeclaration,
				Name:     d.Name.Name,
				Position: position(d.Name),
			})
			continue
		}

		declaredType := Any
		hasAnnotation := false
		if d.DeclaredType != nil {
			t, ok := LookupDeclaredType(d.DeclaredType.Name)
			if !ok {
				a.addError(&SemanticError{
					Kind:     InvalidType,
					TypeName: d.DeclaredType.Name,
					Position: position(d.DeclaredType),
				})
			} else {
				declaredType = t
				hasAnnotation = true
			}
		}

		initialized := d.Initializer != nil
		if initialized {
			initType := a.inferType(d.Initializer)
			if hasAnnotation && !initType.IsCompatibleWith(declaredType) {
				a.addError(&SemanticError{
					Kind:     TypeMismatch,
					Expected: declaredType.String(),
					Found:    initType.String(),
					Position: position(d.Initializer),
				})
			} else if !hasAnnotation {
				declaredType = initType
			}
		}

		a.scope.Declare(d.Name.Name, &Record{
			DeclaredType:    declaredType,
			Mutable:         decl.Kind != "const",
			Initialized:     initialized,
			DeclarationLine: position(d.Name).Line,
		})
	}
}

func (a *Analyzer) visitIfStatement(stmt *ast.IfStatement) {
	condType := a.inferType(stmt.Condition)
	if !condType.IsTruthyCompatible() {
		a.addError(&SemanticError{
			Kind:     TypeMismatch,
			Expected: Boolean.String(),
			Found:    condType.String(),
			Position: position(stmt.Condition),
		})
	}
	a.visitStatement(stmt.Then)
	if stmt.Else != nil {
		a.visitStatement(stmt.Else)
	}
}

func (a *Analyzer) visitForStatement(stmt *ast.ForStatement) {
	a.inferType(stmt.Start)
	a.inferType(stmt.End)
	if stmt.Step != nil {
		a.inferType(stmt.Step)
	}

	a.pushScope(BlockScope)
	a.scope.Declare(stmt.Iterator.Name, &Record{
		DeclaredType:    Number,
		Mutable:         true,
		Initialized:     true,
		DeclarationLine: position(stmt.Iterator).Line,
	})
	a.visitStatement(stmt.Body)
	a.popScope()
}

func (a *Analyzer) visitFunctionDeclaration(decl *ast.FunctionDeclaration) {
	paramTypes := make([]Type, len(decl.Params))
	for i := range decl.Params {
		paramTypes[i] = Any
	}
	fnType := NewFunction(paramTypes, Any)

	if decl.Name != nil {
		if a.scope.DeclaredHere(decl.Name.Name) {
			a.addError(&SemanticError{Kind: DuplicateDeclaration, Name: decl.Name.Name, Position: position(decl.Name)})
		} else {
			a.scope.Declare(decl.Name.Name, &Record{
				DeclaredType:    fnType,
				Mutable:         false,
				Initialized:     true,
				DeclarationLine: position(decl.Name).Line,
			})
		}
	}

	a.pushScope(FunctionScope)
	for _, param := range decl.Params {
		a.scope.Declare(param.Name, &Record{DeclaredType: Any, Mutable: true, Initialized: true, DeclarationLine: position(param).Line})
	}
	a.visitStatement(decl.Body)
	a.popScope()
}

// --- Expressions -----------------------------------------------------------

// inferType returns a coarse type for node: literals return their obvious
// type, identifiers return their scope record's type (or Undefined if
// unresolved, after recording UndeclaredVariable), comparisons and logical
// expressions return Boolean, other binary expressions return Number,
// unary expressions return their argument's type, assignments return the
// target's declared type, calls return the callee's return type (or Any),
// and any other node returns Undefined.
func (a *Analyzer) inferType(node ast.Node) Type {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return Number
	case *ast.StringLiteral:
		return String
	case *ast.BooleanLiteral:
		return Boolean
	case *ast.NullLiteral:
		return Null
	case *ast.UndefinedLiteral:
		return Undefined
	case *ast.Identifier:
		rec := a.scope.Lookup(n.Name)
		if rec == nil {
			a.addError(&SemanticError{Kind: UndeclaredVariable, Name: n.Name, Position: position(n)})
			return Undefined
		}
		return rec.DeclaredType
	case *ast.BinaryExpression:
		a.inferType(n.Left)
		a.inferType(n.Right)
		switch n.Operator {
		case "==", "!=", "<", ">", "<=", ">=":
			return Boolean
		default:
			return Number
		}
	case *ast.LogicalExpression:
		a.inferType(n.Left)
		a.inferType(n.Right)
		return Boolean
	case *ast.UnaryExpression:
		return a.inferType(n.Argument)
	case *ast.AssignmentExpression:
		return a.visitAssignment(n)
	case *ast.CallExpression:
		return a.visitCall(n)
	default:
		return Undefined
	}
}

func (a *Analyzer) visitAssignment(expr *ast.AssignmentExpression) Type {
	ident, ok := expr.Left.(*ast.Identifier)
	if !ok {
		// The parser already rejects non-identifier targets; this is
		// unreachable for input that made it past parsing.
		return a.inferType(expr.Right)
	}

	rec := a.scope.Lookup(ident.Name)
	if rec == nil {
		a.addError(&SemanticError{Kind: UndeclaredVariable, Name: ident.Name, Position: position(ident)})
		return a.inferType(expr.Right)
	}
	if !rec.Mutable {
		a.addError(&SemanticError{Kind: ConstReassignment, Name: ident.Name, Position: position(ident)})
	}

	rhsType := a.inferType(expr.Right)
	if rec.DeclaredType.Kind != KindAny && !rhsType.IsCompatibleWith(rec.DeclaredType) {
		a.addError(&SemanticError{
			Kind:     TypeMismatch,
			Expected: rec.DeclaredType.String(),
			Found:    rhsType.String(),
			Position: position(expr.Right),
		})
	}
	rec.Initialized = true
	return rec.DeclaredType
}

func (a *Analyzer) visitCall(expr *ast.CallExpression) Type {
	calleeType := a.inferType(expr.Callee)
	for _, arg := range expr.Arguments {
		a.inferType(arg)
	}
	if calleeType.Kind != KindAny && calleeType.Kind != KindFunction {
		a.addError(&SemanticError{
			Kind:     TypeMismatch,
			Expected: "function",
			Found:    calleeType.String(),
			Position: position(expr.Callee),
		})
		return Undefined
	}
	if calleeType.Kind == KindFunction {
		return *calleeType.Return
	}
	return Any
}
