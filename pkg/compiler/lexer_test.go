package compiler

import (
	"reflect"
	"strings"
	"testing"
)

func errorMessages(errs ErrorList) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
		errors   []string
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Line: 1, Column: 1},
			},
		},
		{
			name:  "Operators and Delimiters",
			input: "+ < ! = |= ( ) { } ; ,",
			expected: []Token{
				{Type: PLUS, Lexeme: "+", Line: 1, Column: 1},
				{Type: LESS, Lexeme: "<", Line: 1, Column: 3},
				{Type: NOT, Lexeme: "!", Line: 1, Column: 5},
				{Type: ASSIGN, Lexeme: "=", Line: 1, Column: 7},
				{Type: OR_ASSIGN, Lexeme: "|=", Line: 1, Column: 9},
				{Type: LPAREN, Lexeme: "(", Line: 1, Column: 12},
				{Type: RPAREN, Lexeme: ")", Line: 1, Column: 14},
				{Type: LBRACE, Lexeme: "{", Line: 1, Column: 16},
				{Type: RBRACE, Lexeme: "}", Line: 1, Column: 18},
				{Type: SEMICOLON, Lexeme: ";", Line: 1, Column: 20},
				{Type: COMMA, Lexeme: ",", Line: 1, Column: 22},
				{Type: EOF, Line: 1, Column: 23},
			},
		},
		{
			name:  "Declaration",
			input: "let int x;",
			expected: []Token{
				{Type: LET, Lexeme: "let", Line: 1, Column: 1},
				{Type: INT, Lexeme: "int", Line: 1, Column: 5},
				{Type: ID, Lexeme: "x", Line: 1, Column: 9, Attribute: "0"},
				{Type: SEMICOLON, Lexeme: ";", Line: 1, Column: 10},
				{Type: EOF, Line: 1, Column: 11},
			},
		},
		{
			name:  "Integers",
			input: "0 32767",
			expected: []Token{
				{Type: INT_CONST, Lexeme: "0", Line: 1, Column: 1, Attribute: "0"},
				{Type: INT_CONST, Lexeme: "32767", Line: 1, Column: 3, Attribute: "32767"},
				{Type: EOF, Line: 1, Column: 8},
			},
		},
		{
			name:  "Integer Out Of Range",
			input: "32768",
			expected: []Token{
				{Type: EOF, Line: 1, Column: 6},
			},
			errors: []string{
				"LEXICAL ERROR (Line 1, Column 1): integer out of range (32768): maximum is 32767",
			},
		},
		{
			name:  "Reals",
			input: "3.25 117549436.0",
			expected: []Token{
				{Type: FLOAT_CONST, Lexeme: "3.25", Line: 1, Column: 1, Attribute: "3.25"},
				{Type: FLOAT_CONST, Lexeme: "117549436.0", Line: 1, Column: 6, Attribute: "117549436.0"},
				{Type: EOF, Line: 1, Column: 17},
			},
		},
		{
			name:  "Real Out Of Range",
			input: "117549437.0",
			expected: []Token{
				{Type: EOF, Line: 1, Column: 12},
			},
			errors: []string{
				"LEXICAL ERROR (Line 1, Column 1): real out of range (117549437.0)",
			},
		},
		{
			name:  "Malformed Real",
			input: "1.;",
			expected: []Token{
				{Type: SEMICOLON, Lexeme: ";", Line: 1, Column: 3},
				{Type: EOF, Line: 1, Column: 4},
			},
			errors: []string{
				`LEXICAL ERROR (Line 1, Column 1): malformed real number "1.": a digit must follow '.'`,
			},
		},
		{
			name:  "String",
			input: `'say "hi"'`,
			expected: []Token{
				{Type: STRING_CONST, Lexeme: `'say "hi"'`, Line: 1, Column: 1, Attribute: `"say \"hi\""`},
				{Type: EOF, Line: 1, Column: 11},
			},
		},
		{
			name:  "Empty String",
			input: "''",
			expected: []Token{
				{Type: STRING_CONST, Lexeme: "''", Line: 1, Column: 1, Attribute: `""`},
				{Type: EOF, Line: 1, Column: 3},
			},
		},
		{
			name:  "String Not Closed Before Newline",
			input: "'abc\nx",
			expected: []Token{
				{Type: ID, Lexeme: "x", Line: 2, Column: 1, Attribute: "0"},
				{Type: EOF, Line: 2, Column: 2},
			},
			errors: []string{
				"LEXICAL ERROR (Line 1, Column 1): string literal not closed before end of line",
			},
		},
		{
			name:  "String Not Closed At EOF",
			input: "'abc",
			expected: []Token{
				{Type: EOF, Line: 1, Column: 5},
			},
			errors: []string{
				"LEXICAL ERROR (Line 1, Column 1): string literal not closed at end of file",
			},
		},
		{
			name:  "Unrecognized Characters",
			input: "a @ | b",
			expected: []Token{
				{Type: ID, Lexeme: "a", Line: 1, Column: 1, Attribute: "0"},
				{Type: ID, Lexeme: "b", Line: 1, Column: 7, Attribute: "1"},
				{Type: EOF, Line: 1, Column: 8},
			},
			errors: []string{
				"LEXICAL ERROR (Line 1, Column 3): unrecognized character '@'",
				"LEXICAL ERROR (Line 1, Column 5): unrecognized character '|'",
			},
		},
		{
			name:  "Comments",
			input: "x // while 'open\n  y // trailing",
			expected: []Token{
				{Type: ID, Lexeme: "x", Line: 1, Column: 1, Attribute: "0"},
				{Type: ID, Lexeme: "y", Line: 2, Column: 3, Attribute: "1"},
				{Type: EOF, Line: 2, Column: 16},
			},
		},
		{
			name:  "Keywords Are Case Sensitive",
			input: "While while",
			expected: []Token{
				{Type: ID, Lexeme: "While", Line: 1, Column: 1, Attribute: "0"},
				{Type: WHILE, Lexeme: "while", Line: 1, Column: 7},
				{Type: EOF, Line: 1, Column: 12},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Lex(tt.input, nil)
			if !reflect.DeepEqual(tokens, tt.expected) {
				t.Errorf("Lex(%q) tokens:\nexpected %+v\ngot      %+v", tt.input, tt.expected, tokens)
			}
			if got := errorMessages(errs); !reflect.DeepEqual(got, tt.errors) {
				t.Errorf("Lex(%q) errors:\nexpected %q\ngot      %q", tt.input, tt.errors, got)
			}
		})
	}
}

func TestLexStringLength(t *testing.T) {
	ok := "'" + strings.Repeat("a", maxStringLength) + "'"
	tokens, errs := Lex(ok, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors for %d-character string: %v", maxStringLength, errs)
	}
	if tokens[0].Type != STRING_CONST {
		t.Errorf("expected STRING_CONST, got %s", tokens[0].Type)
	}

	tooLong := "'" + strings.Repeat("a", maxStringLength+1) + "'"
	tokens, errs = Lex(tooLong, nil)
	want := []string{"LEXICAL ERROR (Line 1, Column 1): string literal too long (65 characters); maximum is 64"}
	if got := errorMessages(errs); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
	if len(tokens) != 1 || tokens[0].Type != EOF {
		t.Errorf("expected only EOF, got %v", tokens)
	}
}

func TestLexStopOnError(t *testing.T) {
	src := "x @ y"

	tokens, errs := LexWithOptions(src, nil, Options{StopOnLexicalError: true})
	expected := []Token{{Type: ID, Lexeme: "x", Line: 1, Column: 1, Attribute: "0"}}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("stop mode tokens: expected %+v, got %+v", expected, tokens)
	}
	if len(errs) != 1 {
		t.Errorf("stop mode: expected 1 error, got %d", len(errs))
	}

	tokens, errs = Lex(src, nil)
	if len(tokens) != 3 || tokens[2].Type != EOF {
		t.Errorf("collect mode: expected x, y, EOF; got %v", tokens)
	}
	if len(errs) != 1 {
		t.Errorf("collect mode: expected 1 error, got %d", len(errs))
	}
}

// Identifier attributes follow the scope the scanner is in: parameters and
// body names resolve locally, names after the body go back to the global scope.
func TestLexIdentifierScopes(t *testing.T) {
	src := `function int f(int a) {
	let int b;
	a = b;
}
a`
	syms := NewSymbolTable()
	tokens, errs := Lex(src, syms)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	var attrs []string
	for _, tok := range tokens {
		if tok.Type == ID {
			attrs = append(attrs, tok.Lexeme+"="+tok.Attribute)
		}
	}
	expected := []string{"f=0", "a=1", "b=2", "a=1", "b=2", "a=3"}
	if !reflect.DeepEqual(attrs, expected) {
		t.Errorf("expected %v, got %v", expected, attrs)
	}

	fn, ok := syms.Global().Lookup("f")
	if !ok || fn.Category != CategoryFunction {
		t.Fatalf("f not registered as a function: %+v", fn)
	}
	if !reflect.DeepEqual(fn.ParamTypes, []Type{TypeInt}) {
		t.Errorf("f param types: expected [int], got %v", fn.ParamTypes)
	}
	b, ok := syms.Local("f").Lookup("b")
	if !ok || b.Type != TypeInt || b.Offset != 2 {
		t.Errorf("local b: expected int at offset 2, got %+v", b)
	}
	a, ok := syms.Global().Lookup("a")
	if !ok || a.Type != TypeUnresolved || a.HasOffset {
		t.Errorf("global a: expected unresolved without offset, got %+v", a)
	}
}

func TestLexFunctionLookahead(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fn     string
		ret    Type
		params []Type
	}{
		{"Void Params", "function void g(void) { }", "g", TypeVoid, nil},
		{"No Params", "function boolean h() { }", "h", TypeBoolean, nil},
		{"Mixed Params", "function string k(float x, // note\n string y) { }", "k", TypeString, []Type{TypeFloat, TypeString}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syms := NewSymbolTable()
			Lex(tt.input, syms)
			sym, ok := syms.Global().Lookup(tt.fn)
			if !ok {
				t.Fatalf("%s not registered", tt.fn)
			}
			if sym.Type != tt.ret {
				t.Errorf("return type: expected %s, got %s", tt.ret, sym.Type)
			}
			if len(sym.ParamTypes) != len(tt.params) || (len(tt.params) > 0 && !reflect.DeepEqual(sym.ParamTypes, tt.params)) {
				t.Errorf("param types: expected %v, got %v", tt.params, sym.ParamTypes)
			}
			if !syms.HasLocal(tt.fn) {
				t.Errorf("no local scope for %s", tt.fn)
			}
		})
	}
}
