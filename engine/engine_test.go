package engine_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumi-lang/lumi/engine"
	"github.com/lumi-lang/lumi/semantic"
	"github.com/lumi-lang/lumi/vm"
)

func evaluate(t *testing.T, src string) (*vm.Stack, string, error) {
	t.Helper()
	var out bytes.Buffer
	stack, err := engine.Evaluate(src, &out)
	return stack, out.String(), err
}

// Scenario 1: `42` -> number 42.
func TestScenarioNumberLiteral(t *testing.T) {
	stack, _, err := evaluate(t, "42;")
	require.NoError(t, err)
	values := stack.Values()
	require.NotEmpty(t, values)
	assert.Equal(t, vm.Number(42), values[len(values)-1])
}

// Scenario 2: `"Hello, World!"` -> string "Hello, World!".
func TestScenarioStringLiteral(t *testing.T) {
	stack, _, err := evaluate(t, `"Hello, World!";`)
	require.NoError(t, err)
	values := stack.Values()
	require.NotEmpty(t, values)
	assert.Equal(t, vm.StringValue("Hello, World!"), values[len(values)-1])
}

// Scenario 3: `let x: int -> 5; let y: int -> 15; print x * y;` -> 75.
func TestScenarioTypedMultiplication(t *testing.T) {
	_, out, err := evaluate(t, "let x: int -> 5; let y: int -> 15; print x * y;")
	require.NoError(t, err)
	assert.Equal(t, "75\n", out)
}

// Scenario 4: `let x: int -> 84; let y: int -> 2; x / y;` -> 42.
func TestScenarioDivision(t *testing.T) {
	stack, _, err := evaluate(t, "let x: int -> 84; let y: int -> 2; x / y;")
	require.NoError(t, err)
	values := stack.Values()
	require.NotEmpty(t, values)
	assert.Equal(t, vm.Number(42), values[len(values)-1])
}

// Scenario 5: `fn test(x, y) { x + y; } test(1, 2);` -> 3.
func TestScenarioImplicitReturnFromTrailingExpression(t *testing.T) {
	stack, _, err := evaluate(t, "fn test(x, y) { x + y; } test(1, 2);")
	require.NoError(t, err)
	values := stack.Values()
	require.NotEmpty(t, values)
	assert.Equal(t, vm.Number(3), values[len(values)-1])
}

// Scenario 6: `fn test(n) { return n + 1; } print test(5);` -> 6.
func TestScenarioExplicitReturn(t *testing.T) {
	_, out, err := evaluate(t, "fn test(n) { return n + 1; } print test(5);")
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)
}

// Scenario 7: `let x -> 42; if (x > 30) { print "ok"; } else { print "not ok"; }` -> "ok".
func TestScenarioIfBranch(t *testing.T) {
	_, out, err := evaluate(t, `let x -> 42; if (x > 30) { print "ok"; } else { print "not ok"; }`)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

// Scenario 8: `fn p(x){print x;} p(2); p(5);` -> value stack is [2, 5].
func TestScenarioCallSequenceLeavesPrintedValues(t *testing.T) {
	stack, out, err := evaluate(t, `fn p(x){print x;} p(2); p(5);`)
	require.NoError(t, err)
	assert.Equal(t, "2\n5\n", out)
	values := stack.Values()
	require.Len(t, values, 2)
	assert.Equal(t, vm.Number(2), values[0])
	assert.Equal(t, vm.Number(5), values[1])
}

func TestDiagnosticTypeMismatchOnDeclaration(t *testing.T) {
	_, _, err := evaluate(t, `let x: int -> "hello";`)
	require.Error(t, err)
	evalErr, ok := err.(*engine.EvaluationError)
	require.True(t, ok)
	assert.Equal(t, engine.KindSemantic, evalErr.Kind)
	semErr, ok := evalErr.Unwrap().(*semantic.SemanticError)
	require.True(t, ok)
	assert.Equal(t, semantic.TypeMismatch, semErr.Kind)
}

func TestDiagnosticDuplicateDeclaration(t *testing.T) {
	_, _, err := evaluate(t, "let x -> 1; let x -> 2;")
	require.Error(t, err)
	evalErr, ok := err.(*engine.EvaluationError)
	require.True(t, ok)
	assert.Equal(t, engine.KindSemantic, evalErr.Kind)
	semErr, ok := evalErr.Unwrap().(*semantic.SemanticError)
	require.True(t, ok)
	assert.Equal(t, semantic.DuplicateDeclaration, semErr.Kind)
}

func TestDiagnosticConstReassignment(t *testing.T) {
	_, _, err := evaluate(t, "const x -> 1; x -> 2;")
	require.Error(t, err)
	evalErr, ok := err.(*engine.EvaluationError)
	require.True(t, ok)
	assert.Equal(t, engine.KindSemantic, evalErr.Kind)
	semErr, ok := evalErr.Unwrap().(*semantic.SemanticError)
	require.True(t, ok)
	assert.Equal(t, semantic.ConstReassignment, semErr.Kind)
}

func TestDiagnosticUnterminatedString(t *testing.T) {
	_, _, err := evaluate(t, `"hello world`)
	require.Error(t, err)
	evalErr, ok := err.(*engine.EvaluationError)
	require.True(t, ok)
	assert.Equal(t, engine.KindLex, evalErr.Kind)
}

func TestDiagnosticUndeclaredFunctionCallIsSemantic(t *testing.T) {
	_, _, err := evaluate(t, "missing();")
	require.Error(t, err)
	evalErr, ok := err.(*engine.EvaluationError)
	require.True(t, ok)
	assert.Equal(t, engine.KindSemantic, evalErr.Kind)
}
