// fcidr computes the complement, set difference, union, or superset
// predicate of a chain of IPv4 CIDR ranges, emitting the result as a
// canonical list of non-overlapping CIDRs in ascending order.
//
//	fcidr 10.0.0.0/8 difference 10.0.0.0/9
//	echo 10.0.0.0/8 | fcidr union 10.0.128.0/24
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/cidrctl/fcidr/pkg/cidr"
	"github.com/cidrctl/fcidr/pkg/fcidr"
)

// runState is threaded into every subcommand's Run method via
// kong.Context.Run's binding mechanism, so each subcommand mutates the
// same accumulated set rather than constructing its own.
type runState struct {
	set *fcidr.Fcidr
	log *logrus.Logger
}

type cli struct {
	Verbose   bool       `short:"v" help:"Increase diagnostic verbosity."`
	LogFormat string     `help:"Diagnostic log format." enum:"text,json" default:"text" env:"FCIDR_LOG_FORMAT"`
	Cidr      *cidr.Cidr `arg:"" optional:"" help:"Starting CIDR. If omitted, CIDR lines are read from stdin."`

	Complement complementCmd `cmd:"" aliases:"!,not" help:"Compute the complement of the input CIDR(s)."`
	Difference differenceCmd `cmd:"" aliases:"-,exclude,minus" help:"Compute the set difference between the input CIDR(s) and another CIDR."`
	Union      unionCmd      `cmd:"" aliases:"+,include,plus" help:"Compute the set union of the input CIDR(s) and another CIDR."`
	Superset   supersetCmd   `cmd:"" aliases:">" help:"Test whether the input CIDR(s) are a superset of another CIDR."`
}

type complementCmd struct{}

func (*complementCmd) Run(state *runState) error {
	state.set.Complement()
	printCover(state.set)
	return nil
}

type differenceCmd struct {
	Cidr cidr.Cidr `arg:"" help:"CIDR to remove from the accumulated set."`
}

func (cmd *differenceCmd) Run(state *runState) error {
	state.set.Difference(cmd.Cidr)
	printCover(state.set)
	return nil
}

type unionCmd struct {
	Cidr cidr.Cidr `arg:"" help:"CIDR to add to the accumulated set."`
}

func (cmd *unionCmd) Run(state *runState) error {
	state.set.Union(cmd.Cidr)
	printCover(state.set)
	return nil
}

type supersetCmd struct {
	Cidr cidr.Cidr `arg:"" help:"CIDR to test for membership."`
}

// Run reports success by exiting 0 with no stdout output, and failure by
// returning an error — which main turns into a stderr diagnostic and a
// nonzero exit.
func (cmd *supersetCmd) Run(state *runState) error {
	if !state.set.IsSuperset(cmd.Cidr) {
		return fmt.Errorf("%s not a superset of %s", describe(state.set), cmd.Cidr)
	}
	return nil
}

func main() {
	var c cli
	parser := kong.Must(&c,
		kong.Name("fcidr"),
		kong.Description("Set algebra over IPv4 CIDR blocks."),
		kong.UsageOnError(),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := newLogger(c.Verbose, c.LogFormat)
	trace := fcidr.WithTrace(func(e fcidr.Event) {
		logger.WithField("op", e.Op).WithField("cidr", e.Arg.String()).Debug("applied")
	})

	set, err := accumulate(&c, kctx, trace)
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	kctx.Bind(&runState{set: set, log: logger})
	if err := kctx.Run(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// accumulate builds the starting Fcidr: either the singleton set of the
// leading positional CIDR, or — when that is absent and stdin is not a
// terminal — the union of every non-empty CIDR line read from stdin. If
// stdin is a terminal and no CIDR was given, print help and exit 2
// before any output is produced.
func accumulate(c *cli, kctx *kong.Context, trace fcidr.Option) (*fcidr.Fcidr, error) {
	if c.Cidr != nil {
		return fcidr.New(*c.Cidr, trace), nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		_ = kctx.PrintUsage(false)
		os.Exit(2)
	}

	set := fcidr.NewEmpty(trace)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parsed, err := cidr.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		set.Union(parsed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return set, nil
}

func printCover(set *fcidr.Fcidr) {
	for c := range set.All() {
		fmt.Println(c.String())
	}
}

// describe renders the accumulated set for the superset failure message.
func describe(set *fcidr.Fcidr) string {
	items := set.Slice()
	if len(items) == 0 {
		return "{}"
	}
	parts := make([]string, len(items))
	for i, c := range items {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
