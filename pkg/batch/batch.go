// Package batch runs the compiler front end over many source files at once
// and writes the dump files for each of them.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"myjsc/pkg/compiler"
	"myjsc/pkg/utils"
)

type Config struct {
	Options compiler.Options
	Workers int    // concurrent files; <= 0 means runtime.NumCPU()
	OutDir  string // "" writes the dumps next to each source
}

// FileReport summarizes one analyzed file.
type FileReport struct {
	Source        string
	Outputs       utils.Outputs
	Errors        int
	SyntaxSkipped bool
}

// CompileFile reads path, compiles it and writes its four dump files.
// Diagnostics in the source are not an error; only I/O failures are.
func CompileFile(path string, cfg Config) (*FileReport, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	res := compiler.Compile(string(src), cfg.Options)
	out := utils.OutputPaths(path, cfg.OutDir)
	if err := WriteReports(res, out); err != nil {
		return nil, err
	}

	return &FileReport{
		Source:        path,
		Outputs:       out,
		Errors:        len(res.Errors),
		SyntaxSkipped: res.SyntaxSkipped,
	}, nil
}

// WriteReports writes the token, symbol table, error and rule trace dumps
// of res to the files named by out.
func WriteReports(res *compiler.Result, out utils.Outputs) error {
	dumps := []struct {
		path string
		text string
	}{
		{out.Tokens, compiler.FormatTokens(res.Tokens)},
		{out.Symbols, res.Symbols.String()},
		{out.Errors, compiler.FormatErrors(res.Errors)},
		{out.Parse, compiler.FormatRules(res)},
	}
	for _, d := range dumps {
		if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(d.path, []byte(d.text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", d.path, err)
		}
	}
	return nil
}

// Run compiles files concurrently with at most cfg.Workers in flight. The
// reports come back in the order of files. The first I/O error stops the
// files not yet started and is returned.
func Run(ctx context.Context, files []string, cfg Config) ([]*FileReport, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	reports := make([]*FileReport, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep, err := CompileFile(path, cfg)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
