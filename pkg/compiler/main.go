// Package compiler provides the front end for a small C-like teaching
// language: a scanner that pre-registers declarations, a two-level symbol
// table with storage offsets, and an LL(1) recursive-descent parser that
// type-checks as it goes and records the grammar rules it applies.
//
// Pipeline: source → Lex → Parse → tokens, symbol table, rule trace, errors
package compiler
