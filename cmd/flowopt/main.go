package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/errors"
	"github.com/wippyai/flowopt/listing"
	"github.com/wippyai/flowopt/optimizer"
)

var (
	errLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type options struct {
	in     string
	method string
	stop   optimizer.Step
	verify bool
}

func main() {
	var (
		inFile      = flag.String("in", "", "Path to method listing (- for stdin)")
		methodName  = flag.String("method", "", "Only process the named method")
		stopBefore  = flag.String("stop", "", "Stop before the named step ("+stepNames()+")")
		verify      = flag.Bool("verify", false, "Check basic block well-formedness")
		interactive = flag.Bool("i", false, "Interactive stage browser")
		watch       = flag.Bool("watch", false, "Re-run whenever the listing changes")
		verbose     = flag.Bool("v", false, "Debug logging to stderr")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: flowopt -in <file.lst> [-method name] [-stop step] [-verify] [-v]")
		fmt.Fprintln(os.Stderr, "       flowopt -in <file.lst> -watch")
		fmt.Fprintln(os.Stderr, "       flowopt -in <file.lst> -i  (interactive mode)")
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer func() { _ = log.Sync() }()
	optimizer.SetLogger(log)

	var err error
	opts := options{in: *inFile, method: *methodName, verify: *verify}
	if *stopBefore != "" {
		opts.stop, err = optimizer.ParseStep(*stopBefore)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case *interactive:
		err = runInteractive(opts)
	case *watch:
		err = runWatch(opts, log)
	default:
		// runOnce reports its own failures.
		if runOnce(opts, os.Stdout, os.Stderr) != nil {
			os.Exit(1)
		}
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func stepNames() string {
	var names []string
	for _, s := range optimizer.Steps() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// process parses src and optimizes every selected method. The returned
// program holds only methods that went through; err combines every
// parse and optimization failure.
func process(src string, opts options, onStep func(optimizer.Step, *ast.Method)) (*listing.Program, error) {
	prog, err := listing.Parse(src)
	if prog == nil {
		return nil, err
	}

	o := optimizer.New(optimizer.Config{
		AbortBefore: opts.stop,
		Verify:      opts.verify,
		OnStep:      onStep,
	})

	out := &listing.Program{Version: prog.Version}
	found := false
	for _, m := range prog.Methods {
		if opts.method != "" && m.Name != opts.method {
			continue
		}
		found = true
		if oerr := o.Optimize(m); oerr != nil {
			err = multierr.Append(err, oerr)
			continue
		}
		out.Methods = append(out.Methods, m)
	}
	if opts.method != "" && !found {
		err = multierr.Append(err, errors.NotFound(errors.PhaseLoad, "method", opts.method))
	}
	return out, err
}

// runOnce prints the optimized listing to stdout and one line per failure
// to stderr. It returns a non-nil error when anything failed.
func runOnce(opts options, stdout, stderr io.Writer) error {
	src, err := readInput(opts.in)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}

	prog, err := process(src, opts, nil)
	if prog != nil {
		if perr := listing.Print(stdout, prog); perr != nil {
			err = multierr.Append(err, perr)
		}
	}
	reportErrors(stderr, err)
	return err
}

func reportErrors(w io.Writer, err error) {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return
	}
	color := isTerminal(w)
	for _, e := range errs {
		line := "Error: " + e.Error()
		if color {
			line = errLineStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	summary := fmt.Sprintf("%d error(s)", len(errs))
	if color {
		summary = summaryStyle.Render(summary)
	}
	fmt.Fprintln(w, summary)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
