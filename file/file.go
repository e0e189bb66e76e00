/*
File    : go-trash/file/file.go
*/

// Package file implements the script-file execution mode of the Trash
// interpreter: read a source file, parse it, and execute it against a
// fresh global environment preloaded with the standard library.
package file

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/themartin/go-trash/eval"
	"github.com/themartin/go-trash/parser"
	"github.com/themartin/go-trash/scope"
	"github.com/themartin/go-trash/std"
)

var redColor = color.New(color.FgRed)

// Run reads and executes a Trash source file, writing program output
// to out and diagnostics to errOut. It returns a non-nil error when
// the file cannot be read, fails to parse, or fails at runtime.
func Run(fileName string, out io.Writer, errOut io.Writer) error {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(errOut, "could not read file '%s': %v\n", fileName, err)
		return err
	}
	return RunSource(string(source), out, errOut)
}

// RunSource parses and executes source text. Parse errors and runtime
// errors are reported in red on errOut and returned.
func RunSource(source string, out io.Writer, errOut io.Writer) error {
	root, parseErr := parser.Parse(source)
	if parseErr != nil {
		redColor.Fprintf(errOut, "%s\n", parseErr.Error())
		return parseErr
	}

	evaluator := eval.NewEvaluator()
	evaluator.SetWriter(out)
	globals := scope.NewGlobal(std.Bindings())

	if err := evaluator.Execute(root, globals); err != nil {
		redColor.Fprintf(errOut, "%s\n", err.Error())
		return err
	}
	return nil
}

// Dump parses a source file and writes the canonical rendering of its
// AST to out. Used by the "ast" command to inspect what the parser
// produced.
func Dump(fileName string, out io.Writer, errOut io.Writer) error {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(errOut, "could not read file '%s': %v\n", fileName, err)
		return err
	}
	root, parseErr := parser.Parse(string(source))
	if parseErr != nil {
		redColor.Fprintf(errOut, "%s\n", parseErr.Error())
		return parseErr
	}
	fmt.Fprintln(out, root.Literal())
	return nil
}
