package compiler

import (
	"strings"
	"testing"
)

func TestControlFlow(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string // expected error fragments; empty means no errors
	}{
		{
			name: "if statement",
			input: `
			let int x = 1;
			if (x < 2) x = 2;
			`,
		},
		{
			name: "if with block body",
			input: `
			let boolean ok;
			if (ok) {
				write 'yes';
				ok = false;
			}
			`,
		},
		{
			name: "do while loop",
			input: `
			let int i = 0;
			do {
				i = i + 1;
			} while (i < 10);
			`,
		},
		{
			name: "nested loops",
			input: `
			function void grid(int w, int h) {
				let int y = 0;
				do {
					let int x = 0;
					do {
						x = x + 1;
					} while (x < w);
					y = y + 1;
				} while (y < h);
			}
			`,
		},
		{
			name: "if condition must be boolean",
			input: `
			let string s;
			if (s) write s;
			`,
			contains: []string{"condition of 'if' must be boolean, found 'string'"},
		},
		{
			name: "while condition must be boolean",
			input: `
			let int i;
			do { i = i + 1; } while (i + 1);
			`,
			contains: []string{"(Line 3, Column 22): condition of 'while' must be boolean, found 'int'"},
		},
		{
			name: "missing while",
			input: `
			do { write 1; } (true);
			`,
			contains: []string{"expected WHILE, found LPAREN ('(')"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compile(tt.input, Options{})
			got := FormatErrors(res.Errors)
			if len(tt.contains) == 0 {
				if len(res.Errors) != 0 {
					t.Errorf("unexpected errors:\n%s", got)
				}
				return
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("errors missing %q\nGot:\n%s", want, got)
				}
			}
		})
	}
}
