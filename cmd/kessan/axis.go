package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/xtding233/kessan-board/internal/axis"
	"github.com/xtding233/kessan-board/internal/series"
	"github.com/xtding233/kessan-board/internal/unit"
)

type axisCmd struct {
	noBaseline bool
}

func (*axisCmd) Name() string     { return "axis" }
func (*axisCmd) Synopsis() string { return "print the chart scale for a list of values" }
func (*axisCmd) Usage() string {
	return `kessan axis [-no-baseline] <value>...

  Computes the min/mid/max of the value axis. The 0 of the "0年" baseline
  point is included unless -no-baseline is given. Values that do not parse
  count as 0. Put negative values after "--":

    kessan axis -- -200 1000
`
}

func (c *axisCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noBaseline, "no-baseline", false, "Do not add the implicit 0 baseline value.")
}

func (c *axisCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one value is required")
		return subcommands.ExitUsageError
	}
	var values []int
	if !c.noBaseline {
		values = append(values, 0)
	}
	for _, a := range f.Args() {
		values = append(values, series.ParseValue(a))
	}
	b := axis.Compute(values)
	l := b.Labels(unit.Man)
	fmt.Printf("max\t%d\t%s\n", b.Max, l.Max)
	fmt.Printf("mid\t%d\t%s\n", b.Mid, l.Mid)
	fmt.Printf("min\t%d\t%s\n", b.Min, l.Min)
	return subcommands.ExitSuccess
}
