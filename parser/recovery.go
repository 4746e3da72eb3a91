package parser

import "github.com/lumi-lang/lumi/lexer"

// Context identifies which syntactic position the parser is currently
// recovering from, since the skip-to strategy on error depends on it.
type Context int

const (
	TopLevel Context = iota
	Statement
	Block
	Function
	Class
	Module
	Expression
	Declaration
)

// defaultRecoveryBudget bounds how many errors the parser will recover
// from before treating the next one as fatal.
const defaultRecoveryBudget = 10

// recoveryStopSet returns the token kinds that terminate the skip-forward
// scan for a given context.
func recoveryStopSet(ctx Context) map[lexer.TokenKind]bool {
	stop := func(kinds ...lexer.TokenKind) map[lexer.TokenKind]bool {
		m := make(map[lexer.TokenKind]bool, len(kinds))
		for _, k := range kinds {
			m[k] = true
		}
		return m
	}
	switch ctx {
	case TopLevel:
		return stop(lexer.SEMI, lexer.RBRACE)
	case Statement:
		return stop(lexer.SEMI, lexer.RBRACE, lexer.RPAREN)
	case Block:
		return stop(lexer.RBRACE)
	case Function:
		return stop(lexer.RBRACE, lexer.SEMI)
	case Expression:
		return stop(lexer.SEMI, lexer.COMMA, lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE)
	case Declaration:
		return stop(lexer.SEMI, lexer.RBRACE)
	default:
		return stop(lexer.SEMI, lexer.RBRACE)
	}
}

// recover records err and advances the token stream past the next token
// in the context's stop set (consuming that stop token too, so a later
// top-level parse resumes cleanly after it). Returns false once the
// recovery budget is exhausted, signaling the caller to treat the error
// as fatal instead.
func (p *Parser) recover(ctx Context, err *ParseError) bool {
	p.errors = append(p.errors, err)
	if len(p.errors) > defaultRecoveryBudget {
		return false
	}

	stopSet := recoveryStopSet(ctx)
	for {
		if p.current.Kind == lexer.EOF {
			return true
		}
		if stopSet[p.current.Kind] {
			p.advance()
			return true
		}
		p.advance()
	}
}
