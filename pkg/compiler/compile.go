package compiler

// Options tunes a compilation run.
type Options struct {
	// StopOnLexicalError ends scanning at the first lexical error. No EOF
	// token is emitted and the syntax phase is skipped.
	StopOnLexicalError bool
}

// Result is everything one compilation run produces.
type Result struct {
	Tokens        []Token
	Symbols       *SymbolTable
	Rules         []int // applied grammar rules, in order
	Errors        ErrorList
	SyntaxSkipped bool
}

// Compile scans and parses src against a fresh symbol table. It never
// fails: every problem found is reported in Result.Errors.
func Compile(src string, opts Options) *Result {
	syms := NewSymbolTable()
	tokens, lexErrs := LexWithOptions(src, syms, opts)
	res := &Result{
		Tokens:  tokens,
		Symbols: syms,
		Errors:  lexErrs,
	}

	if opts.StopOnLexicalError && len(lexErrs) > 0 {
		res.SyntaxSkipped = true
		return res
	}

	rules, parseErrs := Parse(tokens, syms)
	res.Rules = rules
	res.Errors = append(res.Errors, parseErrs...)
	return res
}
