package compiler_test

import (
	"strings"
	"testing"

	"myjsc/pkg/compiler"
)

func TestIntegration_AllErrorKinds(t *testing.T) {
	src := `let int a = 10;
let float b = 2.5 @;
function int twice(int n) {
	return n + n;
}
a = twice(b);
write 'done'
`

	res := compiler.Compile(src, compiler.Options{})

	lex := res.Errors.Filter(compiler.LexicalError)
	syn := res.Errors.Filter(compiler.SyntaxError)
	sem := res.Errors.Filter(compiler.SemanticError)
	if len(lex) != 1 || lex[0].Line != 2 {
		t.Errorf("expected one lexical error on line 2, got %v", lex)
	}
	if len(syn) != 1 || syn[0].Line != 8 {
		t.Errorf("expected one syntax error at EOF on line 8, got %v", syn)
	}
	if len(sem) != 1 || !strings.Contains(sem[0].Msg, "argument 1 of 'twice' must be 'int', found 'float'") {
		t.Errorf("expected the argument type error, got %v", sem)
	}

	// Lexical errors come first; the others follow in source order.
	if res.Errors[0].Kind != compiler.LexicalError {
		t.Errorf("first error should be lexical, got %s", res.Errors[0].Kind)
	}

	if got := compiler.FormatRules(res); !strings.HasPrefix(got, "Descendente 1 2 5 11 7 13 ") {
		t.Errorf("unexpected trace start: %q", got)
	}
	if !strings.Contains(res.Symbols.String(), "lexeme='b', type='float', offset=2") {
		t.Errorf("b missing from the symbol dump:\n%s", res.Symbols)
	}
}

func TestIntegration_StopOnLexicalError(t *testing.T) {
	src := "let int a = 1;\nlet string s = 'never closed\nwrite a;\n"

	res := compiler.Compile(src, compiler.Options{StopOnLexicalError: true})
	if !res.SyntaxSkipped {
		t.Fatalf("syntax phase should be skipped")
	}
	if len(res.Errors) != 1 || res.Errors[0].Kind != compiler.LexicalError {
		t.Fatalf("expected exactly one lexical error, got %v", res.Errors)
	}
	for _, tok := range res.Tokens {
		if tok.Type == compiler.EOF || tok.Line > 2 {
			t.Errorf("no token after the error may be emitted, found %v on line %d", tok, tok.Line)
		}
	}
	if got := compiler.FormatRules(res); got != "syntax phase skipped due to lexical errors\n" {
		t.Errorf("unexpected trace: %q", got)
	}
}
