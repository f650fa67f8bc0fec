package compiler

import (
	"fmt"
	"strings"
)

// ErrorKind tells which phase detected a diagnostic.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	SemanticError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "LEXICAL ERROR"
	case SyntaxError:
		return "SYNTAX ERROR"
	case SemanticError:
		return "SEMANTIC ERROR"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a single positioned diagnostic. None of them is fatal; the
// pipeline keeps going and collects every one it can find.
type Error struct {
	Kind   ErrorKind
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (Line %d, Column %d): %s", e.Kind, e.Line, e.Column, e.Msg)
}

// ErrorList collects diagnostics in the order they were found.
type ErrorList []*Error

// Add appends a new diagnostic built from a format string.
func (l *ErrorList) Add(kind ErrorKind, line, col int, format string, args ...any) {
	*l = append(*l, &Error{Kind: kind, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)})
}

func (l ErrorList) Len() int { return len(l) }

// Filter returns the diagnostics of the given kind.
func (l ErrorList) Filter(kind ErrorKind) ErrorList {
	var out ErrorList
	for _, e := range l {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Err returns l as an error, or nil when the list is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
