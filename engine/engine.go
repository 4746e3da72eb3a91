/*
File    : lumi/engine/engine.go

Package engine wires the lexer, parser, semantic analyzer, compiler, and
VM into a single evaluate(source) -> ok | error(kind, message) entry
point. Adapted from go-mix's main/repl pattern of a parser feeding an
evaluator, generalized to a four-kind error taxonomy (lex/parse/
semantic/runtime) instead of go-mix's single untyped evaluation error.
*/
package engine

import (
	"fmt"
	"io"

	"github.com/lumi-lang/lumi/compiler"
	"github.com/lumi-lang/lumi/lexer"
	"github.com/lumi-lang/lumi/parser"
	"github.com/lumi-lang/lumi/semantic"
	"github.com/lumi-lang/lumi/vm"
)

// ErrorKind labels which pipeline stage produced an EvaluationError.
type ErrorKind string

const (
	KindLex      ErrorKind = "lex"
	KindParse    ErrorKind = "parse"
	KindSemantic ErrorKind = "semantic"
	KindRuntime  ErrorKind = "runtime"
)

// EvaluationError wraps the first underlying error encountered with the
// pipeline stage that produced it, rendered as a single human-readable
// line including position where the wrapped error carries one.
type EvaluationError struct {
	Kind ErrorKind
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// Evaluate runs source through the full pipeline — lex, parse, analyze,
// compile, execute — stopping at the first stage that fails. The VM's
// final value stack is returned on success for callers (tests, the
// REPL) that want to inspect it.
func Evaluate(source string, out io.Writer) (*vm.Stack, error) {
	prog, err := parser.New(source).Parse()
	if err != nil {
		return nil, wrapParseError(err)
	}

	if err := semantic.New().Analyze(prog); err != nil {
		return nil, &EvaluationError{Kind: KindSemantic, Err: err}
	}

	chunk, err := compiler.New().Compile(prog)
	if err != nil {
		return nil, &EvaluationError{Kind: KindRuntime, Err: err}
	}

	stack, err := vm.New(out).Run(chunk)
	if err != nil {
		return stack, &EvaluationError{Kind: KindRuntime, Err: err}
	}
	return stack, nil
}

// wrapParseError distinguishes a lex failure surfaced through the
// parser (the lexer never runs standalone in this pipeline) from a
// genuine parse failure.
func wrapParseError(err error) error {
	if lexErr, ok := err.(*lexer.LexError); ok {
		return &EvaluationError{Kind: KindLex, Err: lexErr}
	}
	return &EvaluationError{Kind: KindParse, Err: err}
}
