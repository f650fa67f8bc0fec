package compiler

// probe is a read-only cursor used for the declaration lookahead. It works
// on a copy of the scan position, so the Lexer never loses its place.
type probe struct {
	src  []rune
	pos  int
	line int
}

func (l *Lexer) newProbe() *probe {
	return &probe{src: l.src, pos: l.pos, line: l.line}
}

func (p *probe) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// skipBlank skips whitespace, newlines and line comments.
func (p *probe) skipBlank() {
	for p.pos < len(p.src) {
		switch r := p.src[p.pos]; {
		case r == '\n':
			p.line++
			p.pos++
		case r == ' ' || r == '\t' || r == '\r':
			p.pos++
		case r == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// word reads an identifier-shaped run, or returns "" if none starts here.
func (p *probe) word() string {
	if !isIdentStart(p.peek()) {
		return ""
	}
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *probe) accept(r rune) bool {
	if p.peek() == r {
		p.pos++
		return true
	}
	return false
}

// name reads a word that can be used as an identifier.
func (p *probe) name() string {
	w := p.word()
	if _, kw := keywords[w]; kw {
		return ""
	}
	return w
}

// valueType reads one of the four value type keywords.
func (p *probe) valueType() (Type, bool) {
	save := p.pos
	tt, ok := keywords[p.word()]
	if ok && tt != VOID {
		if typ, ok := TypeFromToken(tt); ok {
			return typ, true
		}
	}
	p.pos = save
	return "", false
}

// probeLet runs after the "let" keyword: it reads "type name" and registers
// name with that type in the scope currently being scanned.
func (l *Lexer) probeLet() {
	p := l.newProbe()
	p.skipBlank()
	typ, ok := p.valueType()
	if !ok {
		return
	}
	p.skipBlank()
	name := p.name()
	if name == "" {
		return
	}

	scope := l.syms.Scope(l.currentFunction)
	sym, created := scope.Insert(name, CategoryVariable, typ, p.line)
	if !created && sym.Category == CategoryVariable && sym.Type == TypeUnresolved {
		scope.SetType(sym, typ)
	}
}

// probeFunction runs after the "function" keyword: it reads the return
// type, the name and the parameter list, registers the function globally
// and its parameters locally, and remembers the parameter names so that the
// header tokens that follow resolve to the local entries.
func (l *Lexer) probeFunction() {
	p := l.newProbe()
	p.skipBlank()
	ret, ok := p.valueType()
	if !ok {
		if p.word() != "void" {
			return
		}
		ret = TypeVoid
	}
	p.skipBlank()
	fn := p.name()
	if fn == "" {
		return
	}
	line := p.line
	p.skipBlank()
	if !p.accept('(') {
		return
	}

	var (
		types []Type
		names []string
	)
	for {
		p.skipBlank()
		if p.accept(')') {
			break
		}
		save := p.pos
		if len(types) == 0 && p.word() == "void" {
			break
		}
		p.pos = save
		typ, ok := p.valueType()
		if !ok {
			break
		}
		p.skipBlank()
		name := p.name()
		if name == "" {
			break
		}
		types = append(types, typ)
		names = append(names, name)
		p.skipBlank()
		if !p.accept(',') {
			break
		}
	}

	l.syms.DeclareFunction(fn, ret, types, line)
	local := l.syms.Local(fn)
	for i, name := range names {
		local.Insert(name, CategoryVariable, types[i], p.line)
	}

	l.awaitingBody = fn
	l.pendingParams = make(map[string]bool, len(names))
	for _, name := range names {
		l.pendingParams[name] = true
	}
}
