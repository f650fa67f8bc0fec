package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"myjsc/pkg/batch"
	"myjsc/pkg/compiler"
	"myjsc/pkg/utils"
)

var (
	extensions []string
	workers    int
	outDir     string
)

// analyze: sources -> resultado_*.txt dumps
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze [path...]",
	Short: "Analyze source files and write their dump files",
	Long: `Analyze each given file, or every source file under each given
directory. With no path the current directory is walked.`,
	RunE: analyzeRun,
}

func init() {
	AnalyzeCmd.Flags().StringSliceVar(&extensions, "ext", utils.DefaultExtensions, "source file extensions to pick up when walking directories")
	AnalyzeCmd.Flags().IntVarP(&workers, "workers", "j", runtime.NumCPU(), "files analyzed concurrently")
	AnalyzeCmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the dump files (default: next to each source)")
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var files []string
	for _, root := range roots {
		found, err := utils.FindSources(root, extensions)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found (extensions %v)", extensions)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "↪ analyzing %d file(s) ...\n", len(files))

	cfg := batch.Config{
		Options: compiler.Options{StopOnLexicalError: stopOnLexError},
		Workers: workers,
		OutDir:  outDir,
	}
	reports, err := batch.Run(cmd.Context(), files, cfg)
	if err != nil {
		return err
	}

	clean := 0
	for _, rep := range reports {
		status := fmt.Sprintf("%d error(s)", rep.Errors)
		if rep.Errors == 0 {
			status = "no errors"
			clean++
		}
		if rep.SyntaxSkipped {
			status += ", syntax phase skipped"
		}
		fmt.Fprintf(w, "✔︎ %s: %s\n", rep.Source, status)
		fmt.Fprintf(w, "    wrote %s, %s, %s, %s\n", rep.Outputs.Tokens, rep.Outputs.Symbols, rep.Outputs.Errors, rep.Outputs.Parse)
	}
	fmt.Fprintf(w, "%d file(s) analyzed, %d without errors\n", len(reports), clean)
	return nil
}
