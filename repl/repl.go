/*
File    : go-trash/repl/repl.go

Package repl implements the Read-Eval-Print Loop of the Trash
interpreter. The REPL provides an interactive environment where users
can enter Trash code line by line against a persistent global
environment, navigate command history with the arrow keys, and receive
colored feedback for errors.

The REPL uses the readline library for line editing and integrates with
the parser and evaluator to execute user input.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/themartin/go-trash/eval"
	"github.com/themartin/go-trash/parser"
	"github.com/themartin/go-trash/scope"
	"github.com/themartin/go-trash/std"
)

// Color definitions for REPL output:
// - blueColor: decorative lines and separators
// - yellowColor: version info
// - redColor: error messages
// - greenColor: banner
// - cyanColor: informational messages and instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents one interactive session's configuration.
type Repl struct {
	Banner  string // ASCII art banner displayed at startup
	Version string // Version string of the interpreter
	Line    string // Separator line for visual formatting
	Prompt  string // Command prompt shown to the user
}

// NewRepl creates and initializes a new REPL instance.
func NewRepl(banner, version, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Trash!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop: it displays the banner, sets up
// readline for editing and history, creates an evaluator with a global
// environment preloaded with the standard library, and processes input
// until '.exit' or end of input.
//
// The global environment persists across lines, so declarations made
// on one line stay visible on the next. Errors are printed and the
// session continues.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	evaluator := eval.NewEvaluator()
	evaluator.SetWriter(writer)
	globals := scope.NewGlobal(std.Bindings())

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt.
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.executeLine(writer, line, evaluator, globals)
	}
}

// executeLine parses and executes one line of input, reporting parse
// and runtime errors in red without ending the session.
func (r *Repl) executeLine(writer io.Writer, line string, evaluator *eval.Evaluator, globals *scope.Environment) {
	root, parseErr := parser.Parse(line)
	if parseErr != nil {
		redColor.Fprintf(writer, "%s\n", parseErr.Error())
		return
	}
	if err := evaluator.Execute(root, globals); err != nil {
		redColor.Fprintf(writer, "%s\n", err.Error())
	}
}
