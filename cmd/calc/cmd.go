package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/repl"
)

// errFailed reports that some expression failed after its error was printed.
var errFailed = errors.New("one or more expressions failed")

type flags struct {
	configFile string
	infix      bool
	strict     bool
	rightPow   bool
	format     string
	logLevel   string
	noColor    bool
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configFile, "config", "", "YAML configuration file")
	fs.BoolVar(&f.infix, "infix", false, "evaluate infix (standard) expressions instead of postfix")
	fs.BoolVar(&f.strict, "strict", false, "reject expressions that leave extra values")
	fs.BoolVar(&f.rightPow, "right-assoc-pow", false, "parse infix ^ as right-associative")
	fs.StringVar(&f.format, "format", "%.2f", "result formatting string")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// resolve loads the configuration file, if any, and applies flags that were
// set explicitly on top of it.
func (f *flags) resolve(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		var err error
		cfg, err = config.Load(f.configFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	if fs.Changed("infix") {
		cfg.Notation = calc.Postfix.String()
		if f.infix {
			cfg.Notation = calc.Infix.String()
		}
	}
	if fs.Changed("strict") {
		cfg.Strict = f.strict
	}
	if fs.Changed("right-assoc-pow") {
		cfg.RightAssocPow = f.rightPow
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.noColor {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:   "calc",
		Short: "Infix and reverse Polish calculator",
		Long: `Calc evaluates arithmetic expressions in infix or postfix (reverse Polish)
notation. Tokens must be separated by spaces, e.g. "( 3 + 4 ) * 2" or
"3 4 + 2 *". The operators are + - * / and ^.

With no subcommand, calc starts an interactive session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			opts := repl.TerminalOptions{Color: cfg.Color && !color.NoColor}
			if isTerminal(stdin) {
				opts.Prompt = "> "
			}
			view := repl.NewTerminal(stdin, stdout, opts)
			ctrl := repl.NewController(view, cfg, cfg.Logger(stderr))
			return view.Run(cmd.Context(), ctrl)
		},
	}
	f.register(root.PersistentFlags())
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newEvalCmd(&f, stdin, stdout, stderr), newConvertCmd(&f, stdin, stdout, stderr))
	return root
}

func newEvalCmd(f *flags, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		Long: `Evaluate each argument as an expression and print its result. With no
arguments, each line of standard input is an expression.

Expressions starting with - look like flags. Put them after --, as in
calc eval --infix -- "- 3", or read them from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			log := cfg.Logger(stderr)
			ctx := calc.NewContext(cfg.ContextOptions()...)
			n := cfg.StartNotation()
			errc := newErrPrinter(stderr, cfg.Color)
			return eachExpr(args, stdin, func(expr string) bool {
				log.Debug("evaluating", slog.String("expression", expr), slog.String("notation", n.String()))
				r, err := ctx.Evaluate(expr, n)
				if err != nil {
					errc.print(expr, err)
					return false
				}
				fmt.Fprintf(stdout, cfg.Format+"\n", r)
				return true
			})
		},
	}
}

func newConvertCmd(f *flags, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [expression...]",
		Short: "Convert infix expressions to postfix",
		Long: `Print the postfix form of each infix argument. With no arguments, each
line of standard input is an expression.

Expressions starting with - look like flags. Put them after --, as in
calc convert -- "- 3 + 4", or read them from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			var popts []calc.ParseOption
			if cfg.RightAssocPow {
				popts = append(popts, calc.RightAssocPow())
			}
			errc := newErrPrinter(stderr, cfg.Color)
			return eachExpr(args, stdin, func(expr string) bool {
				p, err := calc.Convert(expr, popts...)
				if err != nil {
					errc.print(expr, err)
					return false
				}
				fmt.Fprintln(stdout, p)
				return true
			})
		},
	}
}

// eachExpr calls fn with each argument, or with each non-blank line of in if
// there are no arguments. The result is errFailed if fn returns false for any
// expression.
func eachExpr(args []string, in io.Reader, fn func(string) bool) error {
	ok := true
	if len(args) > 0 {
		for _, arg := range args {
			ok = fn(arg) && ok
		}
	} else {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) == "" {
				continue
			}
			ok = fn(sc.Text()) && ok
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("reading expressions: %w", err)
		}
	}
	if !ok {
		return errFailed
	}
	return nil
}

type errPrinter struct {
	w io.Writer
	c *color.Color
}

func newErrPrinter(w io.Writer, enable bool) errPrinter {
	c := color.New(color.FgRed)
	if enable && !color.NoColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return errPrinter{w: w, c: c}
}

func (p errPrinter) print(expr string, err error) {
	p.c.Fprintf(p.w, "Error: %v: %q: %v\n", calc.KindOf(err), expr, err)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
