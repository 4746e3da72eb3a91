package semantic

import (
	"testing"

	"github.com/lumi-lang/lumi/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.New(src).Parse()
	require.NoError(t, err)
	return New().Analyze(prog)
}

func TestAnalyze_ValidProgramHasNoErrors(t *testing.T) {
	err := analyze(t, `let x: int -> 5; let y: int -> 15; print x * y;`)
	assert.NoError(t, err)
}

func TestAnalyze_DuplicateDeclaration(t *testing.T) {
	err := analyze(t, `let x -> 1; let x -> 2;`)
	require.Error(t, err)
	var se *SemanticError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, DuplicateDeclaration, se.Kind)
	assert.Equal(t, "x", se.Name)
}

func TestAnalyze_ConstReassignment(t *testing.T) {
	err := analyze(t, `const x -> 1; x -> 2;`)
	require.Error(t, err)
	var se *SemanticError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ConstReassignment, se.Kind)
}

func TestAnalyze_UndeclaredVariable(t *testing.T) {
	err := analyze(t, `print y;`)
	require.Error(t, err)
	var se *SemanticError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, UndeclaredVariable, se.Kind)
	assert.Equal(t, "y", se.Name)
}

func TestAnalyze_TypeMismatchOnInitializer(t *testing.T) {
	err := analyze(t, `let x: int -> "hello";`)
	require.Error(t, err)
	var se *SemanticError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, TypeMismatch, se.Kind)
	assert.Equal(t, "number", se.Expected)
	assert.Equal(t, "string", se.Found)
}

func TestAnalyze_InvalidType(t *testing.T) {
	err := analyze(t, `let x: frobnicate -> 1;`)
	require.Error(t, err)
	var se *SemanticError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, InvalidType, se.Kind)
	assert.Equal(t, "frobnicate", se.TypeName)
}

func TestAnalyze_AssignmentTypeMismatch(t *testing.T) {
	err := analyze(t, `let x: int -> 1; x -> "oops";`)
	require.Error(t, err)
	var se *SemanticError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, TypeMismatch, se.Kind)
}

func TestAnalyze_FunctionDeclarationAndCall(t *testing.T) {
	err := analyze(t, `fn add(a, b) { print a; } add(1, 2);`)
	assert.NoError(t, err)
}

func TestAnalyze_CallOnNonFunction(t *testing.T) {
	err := analyze(t, `let x -> 1; x(2);`)
	require.Error(t, err)
	var se *SemanticError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, TypeMismatch, se.Kind)
	assert.Equal(t, "function", se.Expected)
}

func TestAnalyze_BlockScopesShadowing(t *testing.T) {
	// A block-scoped redeclaration of the same name is not a duplicate:
	// DeclaredHere only checks the current scope.
	err := analyze(t, `let x -> 1; { let x -> 2; print x; }`)
	assert.NoError(t, err)
}

func TestAnalyze_ForLoopIteratorIsInScope(t *testing.T) {
	err := analyze(t, `for i in 0 to 10 { print i; }`)
	assert.NoError(t, err)
}

func TestCommonType_UnionOfIncompatibleTypes(t *testing.T) {
	got := CommonType(Number, String)
	assert.Equal(t, KindUnion, got.Kind)
}

func TestCommonType_SameTypeReturnsItself(t *testing.T) {
	got := CommonType(Number, Number)
	assert.Equal(t, KindNumber, got.Kind)
}

func TestType_AnyIsCompatibleWithEverything(t *testing.T) {
	assert.True(t, Any.IsCompatibleWith(Number))
	assert.True(t, Number.IsCompatibleWith(Any))
}
