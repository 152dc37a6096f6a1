// Package cli implements the razorforge command line: syntax checking for
// RazorForge (.rf) and Cake (.cake) sources, with optional AST dumping and
// a file-watch mode for edit/check loops.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/razorforge-lang/razorforge/runtime/parser"
)

// Execute runs the root command. It is the single entry point used by
// cmd/razorforge.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dialectFlag string
		dumpAST     bool
		watch       bool
		noColor     bool
	)

	rootCmd := &cobra.Command{
		Use:   "razorforge",
		Short: "Tooling for the RazorForge and Cake languages",
	}

	checkCmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse source files and report syntax errors and style warnings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor := ShouldUseColor(noColor)
			if watch {
				return watchAndCheck(args, dialectFlag, dumpAST, useColor)
			}
			failed := 0
			for _, path := range args {
				if !checkFile(path, dialectFlag, dumpAST, useColor) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}

	checkCmd.Flags().StringVar(&dialectFlag, "dialect", "auto",
		"Dialect to parse as: auto, razorforge, or cake")
	checkCmd.Flags().BoolVar(&dumpAST, "dump-ast", false,
		"Print the parsed AST in canonical form")
	checkCmd.Flags().BoolVar(&watch, "watch", false,
		"Re-check files whenever they change")
	checkCmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable colored diagnostic output")

	rootCmd.AddCommand(checkCmd)
	return rootCmd
}

// resolveDialect maps the --dialect flag to a parser dialect, falling
// back to the filename extension in auto mode.
func resolveDialect(flag, path string) (parser.Dialect, error) {
	switch flag {
	case "auto", "":
		return parser.DialectForFile(path), nil
	case "razorforge":
		return parser.DialectRazorForge, nil
	case "cake":
		return parser.DialectCake, nil
	}
	return 0, fmt.Errorf("unknown dialect %q (want auto, razorforge, or cake)", flag)
}

// checkFile parses one file and prints its diagnostics. It returns false
// when the file had parse errors.
func checkFile(path, dialectFlag string, dumpAST, useColor bool) bool {
	dialect, err := resolveDialect(dialectFlag, path)
	if err != nil {
		FormatError(os.Stderr, path, err, useColor)
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		FormatError(os.Stderr, path, err, useColor)
		return false
	}

	p := parser.New(string(data),
		parser.WithFilename(path),
		parser.WithDialect(dialect),
	)
	file, errs := p.ParseFile()

	for _, w := range p.Warnings() {
		FormatWarning(os.Stderr, path, w, useColor)
	}
	for _, e := range errs {
		FormatError(os.Stderr, path, e, useColor)
	}

	if dumpAST {
		fmt.Println(file.String())
	}

	if len(errs) > 0 {
		return false
	}
	fmt.Fprintf(os.Stderr, "%s: %s (%d declarations, %d warnings)\n",
		path, Colorize("ok", ColorGreen, useColor), len(file.Declarations), len(p.Warnings()))
	return true
}

// watchAndCheck re-runs the check whenever any of the files change. It
// watches the parent directories because editors typically replace files
// on save instead of writing in place.
func watchAndCheck(paths []string, dialectFlag string, dumpAST, useColor bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	for _, path := range paths {
		checkFile(path, dialectFlag, dumpAST, useColor)
	}
	fmt.Fprintln(os.Stderr, "watching for changes...")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			checkFile(event.Name, dialectFlag, dumpAST, useColor)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
