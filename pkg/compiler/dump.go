package compiler

import (
	"strconv"
	"strings"
)

const (
	// traceHeader is the first word of a rule trace; derivation-tree tools
	// use it to tell a top-down trace from a bottom-up one.
	traceHeader = "Descendente"

	noErrorsMessage     = "No errors detected."
	syntaxSkippedNotice = "syntax phase skipped due to lexical errors"
)

// FormatTokens renders one <CODE, ATTRIBUTE> line per token.
func FormatTokens(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatErrors renders one line per diagnostic, or an explicit notice when
// there are none.
func FormatErrors(errs ErrorList) string {
	if len(errs) == 0 {
		return noErrorsMessage + "\n"
	}
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRules renders the rule trace of res, or the notice that the
// syntax phase did not run.
func FormatRules(res *Result) string {
	if res.SyntaxSkipped {
		return syntaxSkippedNotice + "\n"
	}
	var sb strings.Builder
	sb.WriteString(traceHeader)
	for _, r := range res.Rules {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(r))
	}
	sb.WriteByte('\n')
	return sb.String()
}
