/*
File    : lumi/repl/repl.go

Package repl implements the Read-Eval-Print Loop for the Lumi engine,
adapted from go-mix's repl/repl.go: readline-backed line editing and
colored output, wired here to engine.Evaluate instead of go-mix's
parser+eval.Evaluator pair. The interactive prompt and process entry
point describe no language semantics of their own; they're carried
anyway as the ambient caller every example in the corpus wraps its
engine with.
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/lumi-lang/lumi/engine"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for one interactive session.
type Repl struct {
	Banner  string
	Version string
	Prompt  string
	Line    string
}

// New creates a Repl ready to Start.
func New(banner, version, prompt, line string) *Repl {
	return &Repl{Banner: banner, Version: version, Prompt: prompt, Line: line}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Type your code and press enter. Type '.exit' to quit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the interactive loop until '.exit' or EOF. Each line is
// evaluated independently: the engine holds no state across calls, so
// a fresh global-slot vector backs every Evaluate call.
func (r *Repl) Start(writer io.Writer) {
	r.printBanner(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		fmt.Fprintf(writer, "could not start input: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
		rl.SaveHistory(line)

		r.evalAndPrint(writer, line)
	}
}

func (r *Repl) evalAndPrint(writer io.Writer, line string) {
	_, err := engine.Evaluate(line, writer)
	if err != nil {
		redColor.Fprintf(writer, "%v\n", err)
	}
}
