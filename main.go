/*
File    : go-trash/main.go

The go-trash binary is the command-line front end of the Trash
interpreter. It provides three modes of operation:

 1. Script mode: `go-trash <file>` executes a Trash source file
 2. REPL mode: `go-trash` or `go-trash repl` starts an interactive session
 3. AST mode: `go-trash ast <file>` prints the parsed program in its
    canonical source form
*/
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/themartin/go-trash/file"
	"github.com/themartin/go-trash/repl"
)

// VERSION represents the current version of the Trash interpreter
var VERSION = "v1.0.0"

// PROMPT is the command prompt displayed in REPL mode
var PROMPT = "trash >>> "

// BANNER is the ASCII art logo displayed when starting the REPL
var BANNER = `
 _____ ____      _    ____  _   _
|_   _|  _ \    / \  / ___|| | | |
  | | | |_) |  / _ \ \___ \| |_| |
  | | |  _ <  / ___ \ ___) |  _  |
  |_| |_| \_\/_/   \_\____/|_| |_|
`

// LINE is a separator line used for visual formatting in the REPL
var LINE = "----------------------------------------------------------------"

// newRootCommand builds the go-trash command tree.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "go-trash [script]",
		Short:   "The Trash language interpreter",
		Long:    "go-trash parses and executes Trash scripts, or starts an interactive REPL when no script is given.",
		Version: VERSION,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				startRepl()
				return nil
			}
			cmd.SilenceUsage = true
			return file.Run(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Trash session",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			startRepl()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "ast <script>",
		Short: "Print the canonical form of a script's syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return file.Dump(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	})

	root.SilenceErrors = true
	return root
}

// startRepl runs an interactive session on standard output.
func startRepl() {
	repler := repl.NewRepl(BANNER, VERSION, LINE, PROMPT)
	repler.Start(os.Stdout)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
