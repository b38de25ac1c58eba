package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
)

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func noColor() bool {
	return noColorFlag || cfg.GetNoColor()
}

func verbose() bool {
	return verboseFlag || cfg.GetVerbose()
}

// collectFiles expands directories into the network files they contain.
// Files named explicitly are kept whatever their extension.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && cfg.IsNetworkFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no network files (%s) found", strings.Join(cfg.Extensions, ", "))
	}
	return files, nil
}

// parsedFile is the outcome of parsing one file
type parsedFile struct {
	Path string
	Doc  *parser.Document
	Err  error
}

func parseFiles(files []string) (results []parsedFile, failed int) {
	for _, file := range files {
		doc, err := parser.ParseFile(file)
		if err != nil {
			failed++
		}
		results = append(results, parsedFile{Path: file, Doc: doc, Err: err})
	}
	return results, failed
}

func parseFailure(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return withExitCode(ExitParseError, fmt.Errorf("%d of %d files failed to parse", failed, total))
}

// openOutput returns the writer for --output-file, or fallback when path is empty
func openOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, withExitCode(ExitFailure, fmt.Errorf("cannot create output file: %w", err))
	}
	return f, f.Close, nil
}
