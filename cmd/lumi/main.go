/*
File    : lumi/cmd/lumi/main.go

Package main is the Lumi command-line entry point, adapted from go-mix's
main/main.go: REPL by default, or execute a source file named on the
command line. Process entry point and CLI plumbing describe no language
semantics of their own; they're carried here only as the thin ambient
caller every example in the corpus wraps its engine with.
*/
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/lumi-lang/lumi/engine"
	"github.com/lumi-lang/lumi/repl"
)

const (
	version = "v0.1.0"
	prompt  = "lumi >>> "
	line    = "----------------------------------------------------------------"
)

var banner = `
 _  _   _ ___ __
| || | | ( _ ) '  \
| |__ |_  _|  _/
|____|  \__|_|
`

var redColor = color.New(color.FgRed)

func main() {
	if len(os.Args) > 1 {
		runFile(os.Args[1])
		return
	}
	repl.New(banner, version, prompt, line).Start(os.Stdout)
}

// runFile reads and evaluates a single source file, exiting 1 on any
// pipeline failure, rendered as one line.
func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "could not read %s: %v\n", path, err)
		os.Exit(1)
	}

	if _, err := engine.Evaluate(string(source), os.Stdout); err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
