package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/zephyrtronium/calc"
)

// Terminal is a line-oriented view. Each input line is a command:
//
//	?expr	set the expression
//	C	calculate
//	S	switch to standard (infix) notation
//	R	switch to reverse Polish (postfix) notation
//	Q	quit
//
// Anything else prints help.
type Terminal struct {
	in       *bufio.Scanner
	out      io.Writer
	question string
	prompt   string
	answer   *color.Color
	err      *color.Color
}

// TerminalOptions configures a Terminal.
type TerminalOptions struct {
	// Prompt is printed before reading each command.
	Prompt string
	// Color enables colored answers and errors.
	Color bool
}

// NewTerminal creates a terminal view reading commands from in.
func NewTerminal(in io.Reader, out io.Writer, opts TerminalOptions) *Terminal {
	t := Terminal{
		in:     bufio.NewScanner(in),
		out:    out,
		prompt: opts.Prompt,
		answer: color.New(color.FgGreen),
		err:    color.New(color.FgRed, color.Bold),
	}
	if opts.Color {
		t.answer.EnableColor()
		t.err.EnableColor()
	} else {
		t.answer.DisableColor()
		t.err.DisableColor()
	}
	return &t
}

// Run reads and executes commands until the quit command, the end of input,
// or ctx is canceled. Requests go to h.
func (t *Terminal) Run(ctx context.Context, h Handler) error {
	t.help()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.prompt != "" {
			fmt.Fprint(t.out, t.prompt)
		}
		if !t.in.Scan() {
			return t.in.Err()
		}
		line := t.in.Text()
		r, sz := utf8.DecodeRuneInString(line)
		switch unicode.ToUpper(r) {
		case 'C':
			h.Calculate()
		case '?':
			t.question = line[sz:]
		case 'Q':
			fmt.Fprintln(t.out, "Bye")
			return nil
		case 'S':
			h.SetNotation(calc.Infix)
		case 'R':
			h.SetNotation(calc.Postfix)
		default:
			t.help()
		}
	}
}

func (t *Terminal) help() {
	fmt.Fprint(t.out, strings.Join([]string{
		"Use one of the following:",
		"  ?Expression - to set expression",
		"  C - to calculate",
		"  S - change to a standard calculator",
		"  R - change to a reverse polish calculator",
		"  Q - to exit",
		"",
	}, "\n"))
}

// Expression returns the most recently set expression.
func (t *Terminal) Expression() string {
	return t.question
}

// SetAnswer prints an answer.
func (t *Terminal) SetAnswer(answer string) {
	fmt.Fprintln(t.out, "Answer is "+t.answer.Sprint(answer))
}

// ShowError prints an error.
func (t *Terminal) ShowError(title, msg string) {
	t.err.Fprintln(t.out, "Error: "+title)
	fmt.Fprintln(t.out, msg)
}

var _ View = (*Terminal)(nil)
