package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"myjsc/pkg/compiler"
)

// tokens: print the token list of one file
var TokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token list of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  tokensRun,
}

func tokensRun(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	tokens, errs := compiler.LexWithOptions(string(src), nil, compiler.Options{StopOnLexicalError: stopOnLexError})
	fmt.Fprint(cmd.OutOrStdout(), compiler.FormatTokens(tokens))
	if len(errs) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), compiler.FormatErrors(errs))
	}
	return nil
}
