package compiler

import (
	"strconv"
)

const (
	maxIntValue     = 32767
	maxFloatValue   = 117549436.0
	maxStringLength = 64
)

// Lexer holds all mutable state for a single scanning pass over src.
//
// Besides tokenizing, the Lexer keeps track of which function body it is
// in and pre-registers declarations into the symbol table, so that the
// parser finds function signatures and parameter types already in place.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // current 1-based source column

	syms        *SymbolTable
	tokens      []Token
	errs        ErrorList
	stopOnError bool

	currentFunction string // function whose body is being scanned
	awaitingBody    string // function whose header was seen, body not yet opened
	braceDepth      int
	pendingParams   map[string]bool
}

func newLexer(src string, syms *SymbolTable) *Lexer {
	if syms == nil {
		syms = NewSymbolTable()
	}
	return &Lexer{src: []rune(src), line: 1, col: 1, syms: syms}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentChar(r rune) bool { return isIdentStart(r) || isDigit(r) }

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the rune at the given offset from the current position.
func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) emit(tt TokenType, lexeme string, line, col int, attr string) {
	l.tokens = append(l.tokens, Token{Type: tt, Lexeme: lexeme, Line: line, Column: col, Attribute: attr})
}

func (l *Lexer) errorf(line, col int, format string, args ...any) {
	l.errs.Add(LexicalError, line, col, format, args...)
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanIdent collects a full identifier or keyword token.
// The first character (letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() {
	line, col, start := l.line, l.col, l.pos
	for !l.atEnd() && isIdentChar(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])

	if kw, ok := keywords[lexeme]; ok {
		l.emit(kw, lexeme, line, col, "")
		switch kw {
		case LET:
			l.probeLet()
		case FUNCTION:
			l.probeFunction()
		}
		return
	}

	sym := l.resolveIdent(lexeme, line)
	l.emit(ID, lexeme, line, col, strconv.Itoa(sym.Index))
}

// resolveIdent finds or creates the entry an identifier token refers to,
// depending on where the scan currently is.
func (l *Lexer) resolveIdent(name string, line int) *Symbol {
	switch {
	case l.currentFunction != "":
		if sym, ok := l.syms.Resolve(l.currentFunction, name); ok {
			return sym
		}
		sym, _ := l.syms.Local(l.currentFunction).Insert(name, CategoryVariable, TypeUnresolved, line)
		return sym

	case l.awaitingBody != "" && l.pendingParams[name]:
		sym, _ := l.syms.Local(l.awaitingBody).Insert(name, CategoryVariable, TypeUnresolved, line)
		return sym

	default:
		sym, _ := l.syms.Global().Insert(name, CategoryVariable, TypeUnresolved, line)
		return sym
	}
}

// scanNumber collects an integer or real literal. The value is accumulated
// digit by digit and range-checked; out-of-range literals produce an error
// and no token.
func (l *Lexer) scanNumber() {
	line, col, start := l.line, l.col, l.pos
	value := 0.0
	for !l.atEnd() && isDigit(l.peek()) {
		value = value*10 + float64(l.advance()-'0')
	}

	if l.peek() != '.' {
		lexeme := string(l.src[start:l.pos])
		if value > maxIntValue {
			l.errorf(line, col, "integer out of range (%s): maximum is %d", lexeme, maxIntValue)
			return
		}
		l.emit(INT_CONST, lexeme, line, col, lexeme)
		return
	}

	l.advance() // consume '.'
	if !isDigit(l.peek()) {
		l.errorf(line, col, "malformed real number %q: a digit must follow '.'", string(l.src[start:l.pos]))
		return
	}
	div := 10.0
	for !l.atEnd() && isDigit(l.peek()) {
		value += float64(l.advance()-'0') / div
		div *= 10
	}
	lexeme := string(l.src[start:l.pos])
	if value > maxFloatValue {
		l.errorf(line, col, "real out of range (%s)", lexeme)
		return
	}
	l.emit(FLOAT_CONST, lexeme, line, col, lexeme)
}

// scanString collects a single-quoted string literal. The literal may not
// span lines and may hold at most maxStringLength characters.
func (l *Lexer) scanString() {
	line, col := l.line, l.col
	l.advance() // consume opening '
	start := l.pos

	for !l.atEnd() && l.peek() != '\'' {
		if l.peek() == '\n' {
			l.errorf(line, col, "string literal not closed before end of line")
			return
		}
		l.advance()
	}
	if l.atEnd() {
		l.errorf(line, col, "string literal not closed at end of file")
		return
	}
	content := string(l.src[start:l.pos])
	l.advance() // consume closing '

	if n := len([]rune(content)); n > maxStringLength {
		l.errorf(line, col, "string literal too long (%d characters); maximum is %d", n, maxStringLength)
		return
	}
	l.emit(STRING_CONST, "'"+content+"'", line, col, quoteString(content))
}

// scanOperator handles operators and delimiters, including the brace
// bookkeeping that tells which function body the scan is in.
func (l *Lexer) scanOperator() {
	line, col := l.line, l.col
	ch := l.advance()
	switch ch {
	case '|':
		if l.peek() == '=' {
			l.advance()
			l.emit(OR_ASSIGN, "|=", line, col, "")
			return
		}
	case '{':
		if l.awaitingBody != "" && l.currentFunction == "" {
			l.currentFunction = l.awaitingBody
			l.awaitingBody = ""
			l.braceDepth = 1
			l.pendingParams = nil
		} else if l.currentFunction != "" {
			l.braceDepth++
		}
		l.emit(LBRACE, "{", line, col, "")
		return
	case '}':
		if l.currentFunction != "" {
			l.braceDepth--
			if l.braceDepth <= 0 {
				l.currentFunction = ""
				l.braceDepth = 0
			}
		}
		l.emit(RBRACE, "}", line, col, "")
		return
	case ';':
		// A header followed by ';' never gets a body.
		if l.currentFunction == "" {
			l.awaitingBody = ""
			l.pendingParams = nil
		}
		l.emit(SEMICOLON, ";", line, col, "")
		return
	case '+':
		l.emit(PLUS, "+", line, col, "")
		return
	case '<':
		l.emit(LESS, "<", line, col, "")
		return
	case '!':
		l.emit(NOT, "!", line, col, "")
		return
	case '=':
		l.emit(ASSIGN, "=", line, col, "")
		return
	case '(':
		l.emit(LPAREN, "(", line, col, "")
		return
	case ')':
		l.emit(RPAREN, ")", line, col, "")
		return
	case ',':
		l.emit(COMMA, ",", line, col, "")
		return
	}
	l.errorf(line, col, "unrecognized character '%c'", ch)
}

// nextToken skips one blank or comment, or scans one token.
func (l *Lexer) nextToken() {
	ch := l.peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
		l.advance()
	case ch == '/' && l.peekAt(1) == '/':
		l.advance()
		l.advance()
		l.skipLineComment()
	case isIdentStart(ch):
		l.scanIdent()
	case isDigit(ch):
		l.scanNumber()
	case ch == '\'':
		l.scanString()
	default:
		l.scanOperator()
	}
}

func (l *Lexer) run() ([]Token, ErrorList) {
	for !l.atEnd() {
		if l.stopOnError && len(l.errs) > 0 {
			break
		}
		l.nextToken()
	}
	if l.stopOnError && len(l.errs) > 0 {
		return l.tokens, l.errs
	}
	l.emit(EOF, "", l.line, l.col, "")
	return l.tokens, l.errs
}

// Lex tokenises src and returns all tokens including the final EOF token,
// together with every lexical error found. Declarations discovered while
// scanning are registered into syms; a nil syms gets a private table.
func Lex(src string, syms *SymbolTable) ([]Token, ErrorList) {
	return LexWithOptions(src, syms, Options{})
}

// LexWithOptions is Lex with explicit options. With StopOnLexicalError the
// scan ends at the first lexical error and no EOF token is emitted.
func LexWithOptions(src string, syms *SymbolTable, opts Options) ([]Token, ErrorList) {
	l := newLexer(src, syms)
	l.stopOnError = opts.StopOnLexicalError
	return l.run()
}
