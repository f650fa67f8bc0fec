package compiler

import (
	"fmt"
	"strings"
)

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	ID           // identifier
	INT_CONST    // integer literal
	FLOAT_CONST  // real literal 12.5
	STRING_CONST // string literal 'abc'

	// Keywords
	LET      // "let"
	INT      // "int"
	FLOAT    // "float"
	BOOLEAN  // "boolean"
	STRING   // "string"
	VOID     // "void"
	FUNCTION // "function"
	RETURN   // "return"
	IF       // "if"
	ELSE     // "else"
	DO       // "do"
	WHILE    // "while"
	READ     // "read"
	WRITE    // "write"
	TRUE     // "true"
	FALSE    // "false"

	// Operators
	PLUS      // +
	LESS      // <
	NOT       // !
	ASSIGN    // =
	OR_ASSIGN // |=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	COMMA     // ,
)

var tokenNames = [...]string{
	EOF:          "EOF",
	ID:           "ID",
	INT_CONST:    "INT_CONST",
	FLOAT_CONST:  "FLOAT_CONST",
	STRING_CONST: "STRING_CONST",
	LET:          "LET",
	INT:          "INT",
	FLOAT:        "FLOAT",
	BOOLEAN:      "BOOLEAN",
	STRING:       "STRING",
	VOID:         "VOID",
	FUNCTION:     "FUNCTION",
	RETURN:       "RETURN",
	IF:           "IF",
	ELSE:         "ELSE",
	DO:           "DO",
	WHILE:        "WHILE",
	READ:         "READ",
	WRITE:        "WRITE",
	TRUE:         "TRUE",
	FALSE:        "FALSE",
	PLUS:         "PLUS",
	LESS:         "LESS",
	NOT:          "NOT",
	ASSIGN:       "ASSIGN",
	OR_ASSIGN:    "OR_ASSIGN",
	LPAREN:       "LPAREN",
	RPAREN:       "RPAREN",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	SEMICOLON:    "SEMICOLON",
	COMMA:        "COMMA",
}

// tokenCodes holds the short mnemonics written to the token dump.
var tokenCodes = [...]string{
	EOF:          "EOF",
	ID:           "ID",
	INT_CONST:    "ENT",
	FLOAT_CONST:  "REAL",
	STRING_CONST: "CAD",
	LET:          "LET",
	INT:          "INT",
	FLOAT:        "FLOAT",
	BOOLEAN:      "BOOLEAN",
	STRING:       "STRING",
	VOID:         "VOID",
	FUNCTION:     "FUNCTION",
	RETURN:       "RETURN",
	IF:           "IF",
	ELSE:         "ELSE",
	DO:           "DO",
	WHILE:        "WHILE",
	READ:         "READ",
	WRITE:        "WRITE",
	TRUE:         "TRUE",
	FALSE:        "FALSE",
	PLUS:         "SUMA",
	LESS:         "MENOR",
	NOT:          "DIST",
	ASSIGN:       "ASSIG",
	OR_ASSIGN:    "ORASSIG",
	LPAREN:       "LPAR",
	RPAREN:       "RPAR",
	LBRACE:       "LLAVEI",
	RBRACE:       "LLAVED",
	SEMICOLON:    "PCOMA",
	COMMA:        "COMA",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Code returns the mnemonic used for tt in token dumps.
func (tt TokenType) Code() string {
	if int(tt) >= 0 && int(tt) < len(tokenCodes) {
		return tokenCodes[tt]
	}
	return tt.String()
}

// keywords maps source text to its keyword TokenType. Matching is case-sensitive.
var keywords = map[string]TokenType{
	"let":      LET,
	"int":      INT,
	"float":    FLOAT,
	"boolean":  BOOLEAN,
	"string":   STRING,
	"void":     VOID,
	"function": FUNCTION,
	"return":   RETURN,
	"if":       IF,
	"else":     ELSE,
	"do":       DO,
	"while":    WHILE,
	"read":     READ,
	"write":    WRITE,
	"true":     TRUE,
	"false":    FALSE,
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type      TokenType
	Lexeme    string // the exact source text that was matched
	Line      int    // 1-based source line
	Column    int    // 1-based source column
	Attribute string // symbol index for identifiers, literal text for constants
}

// String renders the token the way the token dump expects: <CODE, ATTRIBUTE>.
func (t Token) String() string {
	if t.Attribute == "" {
		return fmt.Sprintf("<%s, >", t.Type.Code())
	}
	return fmt.Sprintf("<%s, %s>", t.Type.Code(), t.Attribute)
}

// quoteString turns the content of a single-quoted literal into the
// double-quoted form stored as the token attribute.
func quoteString(content string) string {
	return `"` + strings.ReplaceAll(content, `"`, `\"`) + `"`
}
