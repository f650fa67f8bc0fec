package compiler

// Parser consumes the flat token slice produced by the Lexer, validates it
// against the grammar below and type-checks it on the way. It does not
// build a tree; it records the number of every rule it applies.
//
// Grammar (rule numbers as recorded in the trace):
//
//	 1 P   -> L eof
//	 2 L   -> E L                  3 L   -> λ
//	 4 E   -> F                    5 E   -> V              6 E -> S
//	 7 T   -> int    8 T -> float  9 T   -> boolean       10 T -> string
//	11 V   -> let T id V1         12 V1  -> ;             13 V1 -> = X ;
//	14 F   -> function H id ( A ) B
//	15 H   -> T                   16 H   -> void
//	17 A   -> T id A1             18 A   -> void          19 A -> λ
//	20 A1  -> , T id A1           21 A1  -> λ
//	22 B   -> { LS }
//	23 LS  -> S LS                24 LS  -> V LS          25 LS -> λ
//	26 S   -> if ( X ) SS         27 S   -> SS
//	28 SS  -> do B while ( X ) ;  29 SS  -> read id ;     30 SS -> write X ;
//	31 SS  -> return R1 ;         32 R1  -> X             33 R1 -> λ
//	34 SS  -> B                   35 SS  -> id SE1
//	36 SE1 -> = X ;               37 SE1 -> |= X ;        38 SE1 -> ( G ) ;
//	39 G   -> X G1                40 G   -> λ
//	41 G1  -> , X G1              42 G1  -> λ
//	43 X   -> D R                 44 R   -> < D R         45 R -> λ
//	46 D   -> M D1                47 D1  -> + M D1        48 D1 -> λ
//	49 M   -> ! M                 50 M   -> K
//	51 K   -> ( X )   52 K -> ent   53 K -> real   54 K -> cad
//	55 K   -> true    56 K -> false 57 K -> id K1
//	58 K1  -> ( G )               59 K1  -> λ
//
// Right-recursive tails (L, LS, A1, G1, R, D1) are parsed with loops; the
// trace they leave is the same as the recursive derivation's.
type Parser struct {
	tokens []Token
	pos    int
	syms   *SymbolTable
	rules  []int
	errs   ErrorList

	scope      string // function whose body is being parsed, "" for global
	inFunction bool
	retType    Type
}

func NewParser(tokens []Token, syms *SymbolTable) *Parser {
	if syms == nil {
		syms = NewSymbolTable()
	}
	return &Parser{tokens: tokens, syms: syms}
}

// Parse checks tokens against the grammar and returns the applied rule
// numbers together with all syntax and semantic errors found.
func Parse(tokens []Token, syms *SymbolTable) ([]int, ErrorList) {
	p := NewParser(tokens, syms)
	p.parseProgram()
	return p.rules, p.errs
}

// peek returns the current token without consuming it. Past the end of the
// slice it returns an EOF token placed after the last real one.
func (p *Parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		return Token{Type: EOF, Line: last.Line, Column: last.Column + len([]rune(last.Lexeme))}
	}
	return Token{Type: EOF, Line: 1, Column: 1}
}

func (p *Parser) at(tt TokenType) bool {
	return p.peek().Type == tt
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) rule(n int) {
	p.rules = append(p.rules, n)
}

func describe(tok Token) string {
	if tok.Type == EOF {
		return "EOF (end of file)"
	}
	return tok.Type.String() + " ('" + tok.Lexeme + "')"
}

func (p *Parser) syntaxf(tok Token, format string, args ...any) {
	p.errs.Add(SyntaxError, tok.Line, tok.Column, format, args...)
}

func (p *Parser) semanticf(tok Token, format string, args ...any) {
	p.errs.Add(SemanticError, tok.Line, tok.Column, format, args...)
}

// eat consumes a token of type tt. On a mismatch it reports the error and
// skips the offending token (unless it is EOF), leaving the caller to
// carry on from the next one.
func (p *Parser) eat(tt TokenType) bool {
	tok := p.peek()
	if tok.Type == tt {
		p.advance()
		return true
	}
	p.syntaxf(tok, "expected %s, found %s", tt, describe(tok))
	p.skip(tok)
	return false
}

// skip drops the offending token tok unless it is the end of input.
func (p *Parser) skip(tok Token) {
	if tok.Type != EOF {
		p.advance()
	}
}

// compatible reports whether two types agree. A type that already failed
// to parse agrees with everything, so one bad factor is reported once.
func compatible(a, b Type) bool {
	return a == b || a == TypeInvalid || b == TypeInvalid
}

func startsStatement(tt TokenType) bool {
	switch tt {
	case IF, DO, READ, WRITE, RETURN, LBRACE, ID:
		return true
	}
	return false
}

func startsElement(tt TokenType) bool {
	return tt == LET || tt == FUNCTION || startsStatement(tt)
}

func startsExpression(tt TokenType) bool {
	switch tt {
	case LPAREN, INT_CONST, FLOAT_CONST, STRING_CONST, TRUE, FALSE, ID, NOT:
		return true
	}
	return false
}

// isSyncToken reports whether tt can start a new declaration or statement,
// or close the enclosing block. A bad declarator leaves such a token in place.
func isSyncToken(tt TokenType) bool {
	switch tt {
	case FUNCTION, LET, IF, DO, READ, WRITE, RETURN, RBRACE, EOF:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Program structure

// parseProgram: P -> L eof
func (p *Parser) parseProgram() {
	p.rule(1)
	p.parseElements()
	for !p.at(EOF) {
		tok := p.advance()
		p.syntaxf(tok, "unexpected %s at top level", describe(tok))
		p.parseElements()
	}
}

// parseElements: L -> E L | λ
func (p *Parser) parseElements() {
	for startsElement(p.peek().Type) {
		p.rule(2)
		p.parseElement()
	}
	p.rule(3)
}

// parseElement: E -> F | V | S
func (p *Parser) parseElement() {
	switch p.peek().Type {
	case FUNCTION:
		p.rule(4)
		p.parseFunctionDecl()
	case LET:
		p.rule(5)
		p.parseVarDecl()
	default:
		p.rule(6)
		p.parseStatement()
	}
}

// parseType: T -> int | float | boolean | string
func (p *Parser) parseType() Type {
	tok := p.peek()
	switch tok.Type {
	case INT:
		p.rule(7)
	case FLOAT:
		p.rule(8)
	case BOOLEAN:
		p.rule(9)
	case STRING:
		p.rule(10)
	default:
		p.syntaxf(tok, "expected a type, found %s", describe(tok))
		p.skip(tok)
		return TypeInvalid
	}
	p.advance()
	typ, _ := TypeFromToken(tok.Type)
	return typ
}

// parseVarDecl: V -> let T id V1
func (p *Parser) parseVarDecl() {
	p.rule(11)
	p.eat(LET)
	typ := p.parseType()
	if tok := p.peek(); tok.Type == ID {
		p.declareVariable(tok, typ)
	}
	p.eat(ID)
	p.parseVarInit(typ)
}

// declareVariable confirms an explicit declaration in the active scope.
// The scanner usually registered the name already; only a second explicit
// declaration is an error.
func (p *Parser) declareVariable(tok Token, typ Type) {
	scope := p.syms.Scope(p.scope)
	sym, ok := scope.Lookup(tok.Lexeme)
	switch {
	case ok && sym.Declared:
		p.semanticf(tok, "variable '%s' already declared in this scope", tok.Lexeme)
	case ok && sym.Category == CategoryFunction:
		p.semanticf(tok, "'%s' is already declared as a Function", tok.Lexeme)
	case ok:
		sym.Declared = true
		if sym.Type == TypeUnresolved {
			scope.SetType(sym, typ)
		}
	default:
		sym, _ = scope.Insert(tok.Lexeme, CategoryVariable, typ, tok.Line)
		sym.Declared = true
	}
}

// parseVarInit: V1 -> ; | = X ;
func (p *Parser) parseVarInit(typ Type) {
	switch tok := p.peek(); tok.Type {
	case SEMICOLON:
		p.rule(12)
		p.eat(SEMICOLON)
	case ASSIGN:
		p.rule(13)
		p.eat(ASSIGN)
		value := p.parseExpression()
		if !compatible(typ, value) {
			p.semanticf(tok, "cannot initialize '%s' with '%s'", typ, value)
		}
		p.eat(SEMICOLON)
	default:
		p.syntaxf(tok, "expected ';' or '=' in declaration, found %s", describe(tok))
		if !isSyncToken(tok.Type) {
			p.advance()
		}
	}
}

// parseFunctionDecl: F -> function H id ( A ) B
func (p *Parser) parseFunctionDecl() {
	p.rule(14)
	p.eat(FUNCTION)
	ret := p.parseReturnType()

	var fn *Symbol
	name := p.peek()
	if name.Type == ID {
		fn = p.declareFunction(name, ret)
		p.scope = name.Lexeme
	}
	p.eat(ID)

	p.inFunction = true
	p.retType = ret
	p.eat(LPAREN)
	params := p.parseParams()
	p.eat(RPAREN)
	if fn != nil {
		fn.ParamTypes = params
	}
	p.parseBlock()

	p.scope = ""
	p.inFunction = false
	p.retType = ""
}

// declareFunction confirms a function header. It returns nil when the name
// was already explicitly declared.
func (p *Parser) declareFunction(tok Token, ret Type) *Symbol {
	global := p.syms.Global()
	sym, ok := global.Lookup(tok.Lexeme)
	switch {
	case ok && sym.Declared:
		p.semanticf(tok, "function '%s' already declared", tok.Lexeme)
		return nil
	case ok:
		if sym.Category != CategoryFunction {
			sym.Category = CategoryFunction
			sym.HasOffset = false
		}
		sym.Type = ret
		p.syms.Local(tok.Lexeme)
	default:
		sym, _ = p.syms.DeclareFunction(tok.Lexeme, ret, nil, tok.Line)
	}
	sym.Declared = true
	return sym
}

// parseReturnType: H -> T | void
func (p *Parser) parseReturnType() Type {
	if p.at(VOID) {
		p.rule(16)
		p.eat(VOID)
		return TypeVoid
	}
	p.rule(15)
	return p.parseType()
}

// parseParams: A -> T id A1 | void | λ
//
//	A1 -> , T id A1 | λ
func (p *Parser) parseParams() []Type {
	switch p.peek().Type {
	case VOID:
		p.rule(18)
		p.eat(VOID)
		return nil
	case INT, FLOAT, BOOLEAN, STRING:
		p.rule(17)
	default:
		p.rule(19)
		return nil
	}

	seen := make(map[string]bool)
	types := []Type{p.parseParam(seen)}
	for p.at(COMMA) {
		p.rule(20)
		p.eat(COMMA)
		types = append(types, p.parseParam(seen))
	}
	p.rule(21)
	return types
}

// parseParam parses "T id" and confirms the parameter in the local scope.
// Without a function name there is no scope to confirm it in.
func (p *Parser) parseParam(seen map[string]bool) Type {
	typ := p.parseType()
	if tok := p.peek(); tok.Type == ID && p.scope != "" {
		if seen[tok.Lexeme] {
			p.semanticf(tok, "parameter '%s' repeated", tok.Lexeme)
		} else {
			seen[tok.Lexeme] = true
			local := p.syms.Scope(p.scope)
			sym, created := local.Insert(tok.Lexeme, CategoryVariable, typ, tok.Line)
			if !created && sym.Type == TypeUnresolved {
				local.SetType(sym, typ)
			}
			sym.Declared = true
		}
	}
	p.eat(ID)
	return typ
}

// parseBlock: B -> { LS }
func (p *Parser) parseBlock() {
	p.rule(22)
	p.eat(LBRACE)
	p.parseStatements()
	p.eat(RBRACE)
}

// parseStatements: LS -> S LS | V LS | λ
func (p *Parser) parseStatements() {
	for {
		switch tt := p.peek().Type; {
		case tt == LET:
			p.rule(24)
			p.parseVarDecl()
		case startsStatement(tt):
			p.rule(23)
			p.parseStatement()
		default:
			p.rule(25)
			return
		}
	}
}

// ---------------------------------------------------------------------------
// Statements

// parseStatement: S -> if ( X ) SS | SS
func (p *Parser) parseStatement() {
	if !p.at(IF) {
		p.rule(27)
		p.parseSimpleStatement()
		return
	}
	p.rule(26)
	kw := p.advance()
	p.eat(LPAREN)
	p.checkCondition(kw, p.parseExpression())
	p.eat(RPAREN)
	p.parseSimpleStatement()
}

func (p *Parser) checkCondition(kw Token, typ Type) {
	if !compatible(TypeBoolean, typ) {
		p.semanticf(kw, "condition of '%s' must be boolean, found '%s'", kw.Lexeme, typ)
	}
}

// parseSimpleStatement: SS -> do B while ( X ) ; | read id ; | write X ;
// | return R1 ; | B | id SE1
func (p *Parser) parseSimpleStatement() {
	tok := p.peek()
	switch tok.Type {
	case DO:
		p.rule(28)
		p.eat(DO)
		p.parseBlock()
		kw := p.peek()
		p.eat(WHILE)
		p.eat(LPAREN)
		p.checkCondition(kw, p.parseExpression())
		p.eat(RPAREN)
		p.eat(SEMICOLON)

	case READ:
		p.rule(29)
		p.eat(READ)
		if target := p.peek(); target.Type == ID {
			sym, _ := p.syms.ResolveOrDeclare(p.scope, target.Lexeme, target.Line)
			if sym.Category == CategoryFunction {
				p.semanticf(target, "cannot read into '%s': it is a Function", target.Lexeme)
			}
		}
		p.eat(ID)
		p.eat(SEMICOLON)

	case WRITE:
		p.rule(30)
		p.eat(WRITE)
		p.parseExpression()
		p.eat(SEMICOLON)

	case RETURN:
		p.rule(31)
		p.eat(RETURN)
		typ := p.parseReturnValue()
		switch {
		case !p.inFunction:
			p.semanticf(tok, "return statement outside of a function")
		case !compatible(p.retType, typ):
			p.semanticf(tok, "function '%s' must return '%s' but returns '%s'", p.scope, p.retType, typ)
		}
		p.eat(SEMICOLON)

	case LBRACE:
		p.rule(34)
		p.parseBlock()

	case ID:
		p.rule(35)
		sym, created := p.syms.ResolveOrDeclare(p.scope, tok.Lexeme, tok.Line)
		p.eat(ID)
		p.parseIdentTail(tok, sym, created)

	default:
		p.syntaxf(tok, "expected a statement, found %s", describe(tok))
		p.skip(tok)
	}
}

// parseReturnValue: R1 -> X | λ
func (p *Parser) parseReturnValue() Type {
	if startsExpression(p.peek().Type) {
		p.rule(32)
		return p.parseExpression()
	}
	p.rule(33)
	return TypeVoid
}

// parseIdentTail: SE1 -> = X ; | |= X ; | ( G ) ;
func (p *Parser) parseIdentTail(target Token, sym *Symbol, created bool) {
	switch tok := p.peek(); tok.Type {
	case ASSIGN:
		p.rule(36)
		p.eat(ASSIGN)
		value := p.parseExpression()
		if sym.Category == CategoryFunction {
			p.semanticf(target, "cannot assign to '%s': it is a Function", target.Lexeme)
		} else if !compatible(sym.Type, value) {
			p.semanticf(tok, "cannot assign '%s' to variable '%s' of type '%s'", value, target.Lexeme, sym.Type)
		}
		p.eat(SEMICOLON)

	case OR_ASSIGN:
		p.rule(37)
		p.eat(OR_ASSIGN)
		p.parseExpression()
		if sym.Category == CategoryFunction {
			p.semanticf(target, "cannot apply '|=' to '%s': it is a Function", target.Lexeme)
		}
		p.eat(SEMICOLON)

	case LPAREN:
		p.rule(38)
		p.parseCall(target, sym, created)
		p.eat(SEMICOLON)

	default:
		p.syntaxf(tok, "expected '=', '|=' or '(' after '%s', found %s", target.Lexeme, describe(tok))
		p.skip(tok)
	}
}

// parseCall parses "( G )" after a callee and checks the call. The
// arguments are parsed even when the callee is not a function, so the
// token stream stays in step. It returns the type of the call.
func (p *Parser) parseCall(callee Token, sym *Symbol, created bool) Type {
	isFunc := sym.Category == CategoryFunction
	switch {
	case isFunc:
	case created:
		p.semanticf(callee, "function '%s' is not declared", callee.Lexeme)
	default:
		p.semanticf(callee, "'%s' is a Variable, not a Function; it cannot be called", callee.Lexeme)
	}

	p.eat(LPAREN)
	args := p.parseArgs()
	p.eat(RPAREN)

	if !isFunc {
		return TypeInvalid
	}
	if len(args) != len(sym.ParamTypes) {
		p.semanticf(callee, "function '%s' expects %d argument(s), got %d", callee.Lexeme, len(sym.ParamTypes), len(args))
		return sym.Type
	}
	for i, arg := range args {
		if want := sym.ParamTypes[i]; !compatible(want, arg) {
			p.semanticf(callee, "argument %d of '%s' must be '%s', found '%s'", i+1, callee.Lexeme, want, arg)
		}
	}
	return sym.Type
}

// parseArgs: G -> X G1 | λ
//
//	G1 -> , X G1 | λ
func (p *Parser) parseArgs() []Type {
	if !startsExpression(p.peek().Type) {
		p.rule(40)
		return nil
	}
	p.rule(39)
	types := []Type{p.parseExpression()}
	for p.at(COMMA) {
		p.rule(41)
		p.eat(COMMA)
		types = append(types, p.parseExpression())
	}
	p.rule(42)
	return types
}

// ---------------------------------------------------------------------------
// Expressions

// parseExpression: X -> D R, R -> < D R | λ
//
// Each comparison checks its two operands; a chain compares each operand
// with the next one. Any comparison yields boolean.
func (p *Parser) parseExpression() Type {
	p.rule(43)
	typ := p.parseAdditive()
	left := typ
	for p.at(LESS) {
		p.rule(44)
		op := p.advance()
		right := p.parseAdditive()
		if !compatible(left, right) {
			p.semanticf(op, "incompatible comparison: '%s' < '%s'", left, right)
		}
		left = right
		typ = TypeBoolean
	}
	p.rule(45)
	return typ
}

// parseAdditive: D -> M D1, D1 -> + M D1 | λ
//
// On a mismatch the left operand's type is carried on.
func (p *Parser) parseAdditive() Type {
	p.rule(46)
	left := p.parseUnary()
	for p.at(PLUS) {
		p.rule(47)
		op := p.advance()
		right := p.parseUnary()
		if !compatible(left, right) {
			p.semanticf(op, "incompatible addition: '%s' + '%s'", left, right)
		}
		if left == TypeInvalid {
			left = right
		}
	}
	p.rule(48)
	return left
}

// parseUnary: M -> ! M | K
func (p *Parser) parseUnary() Type {
	if !p.at(NOT) {
		p.rule(50)
		return p.parseFactor()
	}
	p.rule(49)
	op := p.advance()
	operand := p.parseUnary()
	if !compatible(TypeBoolean, operand) {
		p.semanticf(op, "operator '!' expects boolean, found '%s'", operand)
	}
	return TypeBoolean
}

// parseFactor: K -> ( X ) | ent | real | cad | true | false | id K1
func (p *Parser) parseFactor() Type {
	tok := p.peek()
	switch tok.Type {
	case LPAREN:
		p.rule(51)
		p.eat(LPAREN)
		typ := p.parseExpression()
		p.eat(RPAREN)
		return typ
	case INT_CONST:
		p.rule(52)
		p.advance()
		return TypeInt
	case FLOAT_CONST:
		p.rule(53)
		p.advance()
		return TypeFloat
	case STRING_CONST:
		p.rule(54)
		p.advance()
		return TypeString
	case TRUE:
		p.rule(55)
		p.advance()
		return TypeBoolean
	case FALSE:
		p.rule(56)
		p.advance()
		return TypeBoolean
	case ID:
		p.rule(57)
		sym, created := p.syms.ResolveOrDeclare(p.scope, tok.Lexeme, tok.Line)
		p.advance()
		// K1 -> ( G ) | λ
		if p.at(LPAREN) {
			p.rule(58)
			return p.parseCall(tok, sym, created)
		}
		p.rule(59)
		return sym.Type
	}

	p.syntaxf(tok, "unexpected %s in expression", describe(tok))
	p.skip(tok)
	return TypeInvalid
}
