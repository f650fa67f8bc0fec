package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the source file extensions analyzed when none are given.
var DefaultExtensions = []string{".myjs", ".txt", ".javascript"}

// outputPrefix marks files written by the analyzer, so a later walk over
// the same tree does not pick them up as sources.
const outputPrefix = "resultado_"

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// HasExtension reports whether path ends in one of exts, ignoring case.
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// FindSources walks root and returns every source file with one of exts,
// sorted by path. When root is itself a file it is returned as is.
func FindSources(root string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if path == root {
			files = append(files, path)
			return nil
		}
		if strings.HasPrefix(d.Name(), outputPrefix) || !HasExtension(path, exts) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Outputs holds the four dump files written for one source file.
type Outputs struct {
	Tokens  string
	Symbols string
	Errors  string
	Parse   string
}

// OutputPaths returns the dump file paths for source. They go next to the
// source unless outDir is set. The source extension is dropped:
// "prog.myjs" gives "resultado_tokens_prog.txt".
func OutputPaths(source, outDir string) Outputs {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(source)
	}
	base := filepath.Base(source)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	path := func(kind string) string {
		return filepath.Join(dir, outputPrefix+kind+"_"+name+".txt")
	}
	return Outputs{
		Tokens:  path("tokens"),
		Symbols: path("symbols"),
		Errors:  path("errors"),
		Parse:   path("parse"),
	}
}
