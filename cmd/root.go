package cmd

import (
	"github.com/spf13/cobra"
)

var stopOnLexError bool

var rootCmd = &cobra.Command{
	Use:   "myjsc",
	Short: "myjsc — scanner, symbol table and LL(1) parser for MyJS",
	Long: `myjsc analyzes MyJS source files: it scans them, builds the symbol
table, checks the program against the grammar and its typing rules, and
writes the token list, symbol table, rule trace and diagnostics.

Commands:
  analyze  Analyze files or directory trees and write the dump files
  tokens   Print the token list of a single file
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&stopOnLexError, "stop-on-lex-error", false, "stop scanning at the first lexical error and skip the syntax phase")

	rootCmd.AddCommand(AnalyzeCmd, TokensCmd)
}
