package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lhaig/simplec/internal/compiler"
)

const usage = `scc - Simple C front end

Usage:
  scc check [-symbols] [-caret] [-strict] [-v] <file.c|dir>...   Parse and type-check
  scc lint [-caret] [-strict] <file.c|dir>...                     Report unused and shadowing declarations
  scc cases [-v] <file.md>...                                     Run Markdown case documents
  scc help                                                        Show this help message

Each file is a separate translation unit; a directory stands for the .c
files directly inside it. Semantic errors are reported but only fail the
exit status with -strict. A syntax error stops the file and always fails.

Examples:
  scc check hello.c                 Check for errors
  scc check -caret -strict src/     Check every .c file in src, with source carets
  scc check -symbols hello.c        Also print the global symbol table
  scc lint -strict hello.c          Fail when any lint warning is reported
  scc cases testdata/*.md           Run case documents

Use "scc <command> -h" for more information about a command.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	switch args[0] {
	case "check":
		return handleCheck(args[1:], stdout, stderr)
	case "lint":
		return handleLint(args[1:], stdout, stderr)
	case "cases":
		return handleCases(args[1:], stdout, stderr)
	case "help", "--help", "-h":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(stderr, usage)
		return 1
	}
}

func handleCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	symbols := fs.Bool("symbols", false, "Print the global symbol table of each file")
	caret := fs.Bool("caret", false, "Show the source line and a caret under each diagnostic")
	strict := fs.Bool("strict", false, "Fail the exit status on semantic errors")
	verbose := fs.Bool("v", false, "Show verbose checking details")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: scc check [-symbols] [-caret] [-strict] [-v] <file.c|dir>...\n")
		fmt.Fprintf(stderr, "Parse and type-check Simple C translation units\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: no input file specified")
		fs.Usage()
		return 1
	}

	reg := compiler.NewRegistry()
	for _, path := range fs.Args() {
		if err := reg.Add(path); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
	}

	status, errorCount := 0, 0
	for _, path := range reg.Paths() {
		if *verbose {
			fmt.Fprintf(stderr, "Checking %s...\n", path)
		}

		res, err := compiler.CheckFile(path)
		if res == nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}

		if *verbose {
			fmt.Fprint(stderr, res.DeclarationTrace())
			fmt.Fprintf(stderr, "%d error(s) in %s\n", res.Diagnostics.ErrorCount(), res.Filename)
		}
		errorCount += res.Diagnostics.ErrorCount()
		if res.Diagnostics.Count() > 0 {
			fmt.Fprintln(stderr, res.Format(*caret))
		}
		if *symbols {
			fmt.Fprint(stdout, res.SymbolTable())
		}
		if res.Failed(*strict) {
			status = 1
		}
	}

	if errorCount == 0 && !*symbols {
		fmt.Fprintln(stdout, "No errors found.")
	}
	return status
}

func handleLint(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	caret := fs.Bool("caret", false, "Show the source line and a caret under each warning")
	strict := fs.Bool("strict", false, "Fail the exit status on lint warnings")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: scc lint [-caret] [-strict] <file.c|dir>...\n")
		fmt.Fprintf(stderr, "Report unused declarations, unused prototypes and shadowing\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: no input file specified")
		fs.Usage()
		return 1
	}

	reg := compiler.NewRegistry()
	for _, path := range fs.Args() {
		if err := reg.Add(path); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
	}

	results, err := reg.CheckAll()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	status, warningCount := 0, 0
	for _, res := range results {
		if res.SyntaxError != nil {
			fmt.Fprintf(stderr, "Error: %s:%d:%d: %s\n",
				res.Filename, res.SyntaxError.Line, res.SyntaxError.Column, res.SyntaxError)
			status = 1
			continue
		}
		n := res.Warnings.WarningCount()
		warningCount += n
		if res.Warnings.Count() > 0 {
			fmt.Fprintln(stderr, res.FormatWarnings(*caret))
		}
		if *strict && n > 0 {
			status = 1
		}
	}

	fmt.Fprintf(stdout, "%d warning(s)\n", warningCount)
	return status
}

func handleCases(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cases", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Show each case document as it runs")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: scc cases [-v] <file.md>...\n")
		fmt.Fprintf(stderr, "Run the test cases of Markdown case documents\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: no case document specified")
		fs.Usage()
		return 1
	}

	total, failed := 0, 0
	for _, path := range fs.Args() {
		if *verbose {
			fmt.Fprintf(stderr, "Running %s...\n", path)
		}

		n, failures, err := compiler.RunFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
		total += n
		failed += len(failures)
		for _, f := range failures {
			fmt.Fprintf(stderr, "FAIL: %s\n", f)
		}
	}

	fmt.Fprintf(stdout, "%d cases, %d failed\n", total, failed)
	if failed > 0 {
		return 1
	}
	return 0
}
