/*
File    : lumi/parser/parser.go

Package parser implements a predictive recursive-descent parser with
operator-precedence climbing for expressions. It is
generalized from go-mix's Pratt-parser scaffolding (parser/parser.go:
a lexer, a current/lookahead token pair, and an accumulated error list)
onto Lumi's grammar and bounded-recovery contract.
*/
package parser

import (
	"fmt"
	"strconv"

	"github.com/lumi-lang/lumi/ast"
	"github.com/lumi-lang/lumi/lexer"
)

// Parser holds the lexer, the current and previous tokens, the
// accumulated diagnostics, and the current recovery context.
type Parser struct {
	lex    *lexer.Lexer
	current lexer.Token
	previous lexer.Token
	lexErr  *lexer.LexError
	errors  []*ParseError
	ctx     Context
}

// New creates a Parser over src and primes the first lookahead token.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src), ctx: TopLevel}
	p.advance()
	return p
}

// advance consumes the current token and pulls the next significant token
// from the lexer, skipping over comments (the grammar has no use for
// them). Once a lexical error is observed, advance stops pulling further
// tokens (current becomes Eof) so that parsing winds down instead of
// cascading.
func (p *Parser) advance() {
	if p.lexErr != nil {
		p.current = lexer.Token{Kind: lexer.EOF}
		return
	}
	p.previous = p.current
	for {
		tok, err := p.lex.NextToken()
		if err != nil {
			if lexError, ok := err.(*lexer.LexError); ok {
				p.lexErr = lexError
			}
			p.current = lexer.Token{Kind: lexer.EOF}
			return
		}
		if tok.Kind == lexer.COMMENT {
			continue
		}
		p.current = tok
		return
	}
}

func (p *Parser) errorf(kind ErrorKind, expected string, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:     kind,
		Expected: expected,
		Message:  fmt.Sprintf(format, args...),
		Position: p.current.Span.Start,
	}
}

// Parse runs the parser to completion and returns the resulting tree.
// If a lexical error was recorded it is returned; otherwise the first
// recorded syntactic error is returned. The tree is still populated as far
// as recovery allowed,
// which lets callers inspect partial structure if they choose to.
func (p *Parser) Parse() (*ast.Program, error) {
	start := p.current.Span.Start
	program := &ast.Program{}

	for p.current.Kind != lexer.EOF {
		stmt, ok := p.parseStatementRecovering(TopLevel)
		if ok && stmt != nil {
			program.Body = append(program.Body, stmt)
		}
		if p.lexErr != nil {
			break
		}
	}

	end := p.current.Span.End
	program.Span = &ast.Span{Start: start, End: end}

	if p.lexErr != nil {
		return program, p.lexErr
	}
	if len(p.errors) > 0 {
		return program, p.errors[0]
	}
	return program, nil
}

// Errors returns every diagnostic accumulated during the parse.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

// parseStatementRecovering parses one statement; on failure it records the
// error and recovers according to ctx, returning ok=false for this
// statement (the caller should simply move on). Once the recovery budget
// is exhausted the error is fatal: current becomes Eof and parsing ends.
func (p *Parser) parseStatementRecovering(ctx Context) (ast.Node, bool) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				if !p.recover(ctx, pe) {
					p.current = lexer.Token{Kind: lexer.EOF}
				}
				return
			}
			panic(r)
		}
	}()

	stmt := p.parseStatement()
	return stmt, true
}

// parseStatement dispatches on the leading token.
func (p *Parser) parseStatement() ast.Node {
	switch {
	case p.isKeyword("let", "const", "var"):
		return p.parseVariableDeclaration()
	case p.isKeyword("if"):
		return p.parseIfStatement()
	case p.isKeyword("print"):
		return p.parsePrintStatement()
	case p.isKeyword("return"):
		return p.parseReturnStatement()
	case p.isKeyword("fn"):
		return p.parseFunctionDeclaration()
	case p.isKeyword("for"):
		return p.parseForStatement()
	case p.current.Kind == lexer.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) isKeyword(words ...string) bool {
	if p.current.Kind != lexer.KEYWORD {
		return false
	}
	for _, w := range words {
		if p.current.Literal == w {
			return true
		}
	}
	return false
}

func (p *Parser) fail(kind ErrorKind, expected string, format string, args ...interface{}) {
	panic(p.errorf(kind, expected, format, args...))
}

func (p *Parser) expectKind(kind lexer.TokenKind, what string) lexer.Token {
	if p.current.Kind != kind {
		p.fail(UnexpectedToken, what, "got %q", p.current.Literal)
	}
	tok := p.current
	p.advance()
	return tok
}

func (p *Parser) expectKeyword(word string) lexer.Token {
	if !p.isKeyword(word) {
		p.fail(UnexpectedToken, word, "got %q", p.current.Literal)
	}
	tok := p.current
	p.advance()
	return tok
}

// consumeSemicolon swallows an optional trailing ';'.
func (p *Parser) consumeSemicolon() {
	if p.current.Kind == lexer.SEMI {
		p.advance()
	}
}

// --- Declarations -----------------------------------------------------

func (p *Parser) parseVariableDeclaration() ast.Node {
	start := p.current.Span.Start
	kind := p.current.Literal
	p.advance()

	decl := &ast.VariableDeclaration{Kind: kind}
	for {
		decl.Declarations = append(decl.Declarations, p.parseDeclarator())
		if p.current.Kind != lexer.COMMA {
			break
		}
		p.advance()
	}
	p.consumeSemicolon()
	decl.Span = &ast.Span{Start: start, End: p.previous.Span.End}
	return decl
}

func (p *Parser) parseDeclarator() *ast.Declarator {
	start := p.current.Span.Start
	nameTok := p.expectKind(lexer.IDENTIFIER, "identifier")
	name := &ast.Identifier{Name: nameTok.Literal, Span: &nameTok.Span}

	d := &ast.Declarator{Name: name}

	if p.current.Kind == lexer.COLON {
		p.advance()
		typeTok := p.expectTypeName()
		d.DeclaredType = &ast.Identifier{Name: typeTok.Literal, Span: &typeTok.Span}
	}

	if p.current.Kind == lexer.ARROW || p.current.Kind == lexer.ASSIGN {
		p.advance()
		d.Initializer = p.parseAssignmentLevel()
	}

	d.Span = &ast.Span{Start: start, End: p.previous.Span.End}
	return d
}

// expectTypeName accepts the keyword or identifier token that names a
// declared type (int, str, boolean, number, float, double, ...); whether
// the name is a valid type is decided by the semantic analyzer.
func (p *Parser) expectTypeName() lexer.Token {
	if p.current.Kind != lexer.KEYWORD && p.current.Kind != lexer.IDENTIFIER {
		p.fail(UnexpectedToken, "type name", "got %q", p.current.Literal)
	}
	tok := p.current
	p.advance()
	return tok
}

// --- Statements ---------------------------------------------------------

func (p *Parser) parseIfStatement() ast.Node {
	start := p.current.Span.Start
	p.expectKeyword("if")
	p.expectKind(lexer.LPAREN, "(")
	cond := p.parseExpression()
	p.expectKind(lexer.RPAREN, ")")

	then := p.parseStatement()

	stmt := &ast.IfStatement{Condition: cond, Then: then}
	if p.isKeyword("else") {
		p.advance()
		stmt.Else = p.parseStatement()
	}
	stmt.Span = &ast.Span{Start: start, End: p.previous.Span.End}
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Node {
	start := p.current.Span.Start
	p.expectKeyword("print")
	arg := p.parseExpression()
	p.consumeSemicolon()
	return &ast.PrintStatement{Argument: arg, Span: &ast.Span{Start: start, End: p.previous.Span.End}}
}

func (p *Parser) parseReturnStatement() ast.Node {
	start := p.current.Span.Start
	p.expectKeyword("return")

	stmt := &ast.ReturnStatement{}
	if p.current.Kind != lexer.SEMI && p.current.Kind != lexer.RBRACE && p.current.Kind != lexer.EOF {
		stmt.Argument = p.parseExpression()
	}
	p.consumeSemicolon()
	stmt.Span = &ast.Span{Start: start, End: p.previous.Span.End}
	return stmt
}

func (p *Parser) parseForStatement() ast.Node {
	start := p.current.Span.Start
	p.expectKeyword("for")
	nameTok := p.expectKind(lexer.IDENTIFIER, "identifier")
	iter := &ast.Identifier{Name: nameTok.Literal, Span: &nameTok.Span}
	p.expectKeyword("in")
	from := p.parseExpression()
	p.expectKeyword("to")
	to := p.parseExpression()

	var step ast.Node
	if p.isKeyword("step") {
		p.advance()
		step = p.parseExpression()
	}

	body := p.parseStatement()
	return &ast.ForStatement{
		Iterator: iter,
		Start:    from,
		End:      to,
		Step:     step,
		Body:     body,
		Span:     &ast.Span{Start: start, End: p.previous.Span.End},
	}
}

func (p *Parser) parseFunctionDeclaration() ast.Node {
	start := p.current.Span.Start
	p.expectKeyword("fn")

	decl := &ast.FunctionDeclaration{}
	if p.current.Kind == lexer.IDENTIFIER {
		nameTok := p.current
		p.advance()
		decl.Name = &ast.Identifier{Name: nameTok.Literal, Span: &nameTok.Span}
	}

	p.expectKind(lexer.LPAREN, "(")
	if p.current.Kind != lexer.RPAREN {
		for {
			paramTok := p.expectKind(lexer.IDENTIFIER, "identifier")
			decl.Params = append(decl.Params, &ast.Identifier{Name: paramTok.Literal, Span: &paramTok.Span})
			if p.current.Kind != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	p.expectKind(lexer.RPAREN, ")")

	decl.Body = p.parseBlockStatement()
	decl.Span = &ast.Span{Start: start, End: p.previous.Span.End}
	return decl
}

func (p *Parser) parseBlockStatement() ast.Node {
	start := p.current.Span.Start
	p.expectKind(lexer.LBRACE, "{")

	block := &ast.BlockStatement{}
	prevCtx := p.ctx
	p.ctx = Block
	for p.current.Kind != lexer.RBRACE && p.current.Kind != lexer.EOF {
		stmt, ok := p.parseStatementRecovering(Block)
		if ok && stmt != nil {
			block.Body = append(block.Body, stmt)
		}
	}
	p.ctx = prevCtx
	p.expectKind(lexer.RBRACE, "}")
	block.Span = &ast.Span{Start: start, End: p.previous.Span.End}
	return block
}

func (p *Parser) parseExpressionStatement() ast.Node {
	start := p.current.Span.Start
	expr := p.parseExpression()
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Expression: expr, Span: &ast.Span{Start: start, End: p.previous.Span.End}}
}

// --- Expressions: precedence climbing -----------------------------------

func (p *Parser) parseExpression() ast.Node {
	return p.parseAssignmentLevel()
}

// parseAssignmentLevel implements precedence 1: right-associative
// assignment ('=' or '->'); the left side must be an identifier.
func (p *Parser) parseAssignmentLevel() ast.Node {
	left := p.parseLogicalOr()

	if p.current.Kind == lexer.ASSIGN || p.current.Kind == lexer.ARROW {
		op := string(p.current.Kind)
		opPos := p.current.Span.Start
		p.advance()
		if _, ok := left.(*ast.Identifier); !ok {
			panic(&ParseError{Kind: InvalidSyntax, Message: "assignment target must be an identifier", Position: opPos})
		}
		right := p.parseAssignmentLevel() // right-associative
		return &ast.AssignmentExpression{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalOr() ast.Node {
	left := p.parseLogicalAnd()
	for p.current.Kind == lexer.OR {
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.LogicalExpression{Left: left, Operator: "||", Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Node {
	left := p.parseEquality()
	for p.current.Kind == lexer.AND {
		p.advance()
		right := p.parseEquality()
		left = &ast.LogicalExpression{Left: left, Operator: "&&", Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Node {
	left := p.parseRelational()
	for p.current.Kind == lexer.EQ || p.current.Kind == lexer.NEQ {
		op := string(p.current.Kind)
		p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Node {
	left := p.parseAdditive()
	for p.current.Kind == lexer.LT || p.current.Kind == lexer.GT ||
		p.current.Kind == lexer.LEQ || p.current.Kind == lexer.GEQ {
		op := string(p.current.Kind)
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Node {
	left := p.parseMultiplicative()
	for p.current.Kind == lexer.PLUS || p.current.Kind == lexer.MINUS {
		op := string(p.current.Kind)
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Node {
	left := p.parseUnary()
	for p.current.Kind == lexer.STAR || p.current.Kind == lexer.SLASH || p.current.Kind == lexer.PERCENT {
		op := string(p.current.Kind)
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Node {
	if p.current.Kind == lexer.PLUS || p.current.Kind == lexer.MINUS ||
		p.current.Kind == lexer.INC || p.current.Kind == lexer.DEC {
		op := string(p.current.Kind)
		p.advance()
		arg := p.parseUnary()
		return &ast.UnaryExpression{Operator: op, Argument: arg, Prefix: true}
	}
	return p.parseCallOrPostfix()
}

func (p *Parser) parseCallOrPostfix() ast.Node {
	expr := p.parsePrimary()

	for {
		switch p.current.Kind {
		case lexer.LPAREN:
			p.advance()
			var args []ast.Node
			if p.current.Kind != lexer.RPAREN {
				for {
					args = append(args, p.parseAssignmentLevel())
					if p.current.Kind != lexer.COMMA {
						break
					}
					p.advance()
				}
			}
			p.expectKind(lexer.RPAREN, ")")
			expr = &ast.CallExpression{Callee: expr, Arguments: args}
		case lexer.INC, lexer.DEC:
			op := string(p.current.Kind)
			p.advance()
			expr = &ast.UnaryExpression{Operator: op, Argument: expr, Prefix: false}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.current
	switch tok.Kind {
	case lexer.NUMBER:
		p.advance()
		return &ast.NumberLiteral{Value: tok.Number, Span: &tok.Span}
	case lexer.STRING:
		p.advance()
		return &ast.StringLiteral{Value: tok.Literal, Span: &tok.Span}
	case lexer.BOOLEAN:
		p.advance()
		return &ast.BooleanLiteral{Value: tok.Boolean, Span: &tok.Span}
	case lexer.NULL:
		p.advance()
		return &ast.NullLiteral{Span: &tok.Span}
	case lexer.UNDEFINED:
		p.advance()
		return &ast.UndefinedLiteral{Span: &tok.Span}
	case lexer.IDENTIFIER:
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Span: &tok.Span}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expectKind(lexer.RPAREN, ")")
		return expr
	case lexer.EOF:
		panic(&ParseError{Kind: UnexpectedEndOfFile, Message: "unexpected end of input", Position: tok.Span.Start})
	default:
		panic(&ParseError{Kind: UnexpectedToken, Message: "unexpected token " + strconv.Quote(tok.Literal), Position: tok.Span.Start})
	}
}
