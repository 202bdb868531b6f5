package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/xtding233/kessan-board/internal/board"
	"github.com/xtding233/kessan-board/internal/config"
	"github.com/xtding233/kessan-board/internal/engine"
)

type revealCmd struct {
	configDir string
	boardName string
	session   string
	players   int
	years     int
	seed      int64
	delay     int
	style     string
	raw       bool
}

func (*revealCmd) Name() string     { return "reveal" }
func (*revealCmd) Synopsis() string { return "play the financial results reveal and print the board" }
func (*revealCmd) Usage() string {
	return `kessan reveal [-config <dir>] [-board <name>] [-session <file.yaml>] [-players n] [-years n] [-seed n]

  Builds a board from the config files, applies the names and values of the
  session file, waits for the reveal and prints the result board. Years
  without values in the session file keep the generated defaults.
`
}

func (c *revealCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configDir, "config", "config", "Directory holding default.yaml and boards/.")
	f.StringVar(&c.boardName, "board", "", "Board preset under <config>/boards/.")
	f.StringVar(&c.session, "session", "", "YAML file with players, years, names and values.")
	f.IntVar(&c.players, "players", 0, "Number of players (1-4). 0 keeps the config value.")
	f.IntVar(&c.years, "years", 0, "Number of years (1-100). 0 keeps the config value.")
	f.Int64Var(&c.seed, "seed", -1, "Seed for the generated default values. Negative means random.")
	f.IntVar(&c.delay, "delay", -1, "Reveal delay in milliseconds. Negative keeps the config value.")
	f.StringVar(&c.style, "style", "auto", "Glamour style (auto, dark, light, notty, ascii).")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown without terminal styling.")
}

func (c *revealCmd) overrides() config.Overrides {
	var o config.Overrides
	if c.players > 0 {
		o.Players = &c.players
	}
	if c.years > 0 {
		o.Years = &c.years
	}
	if c.seed >= 0 {
		s := uint64(c.seed)
		o.Seed = &s
	}
	if c.delay >= 0 {
		o.DelayMS = &c.delay
	}
	return o
}

func (c *revealCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.NewLoader(c.configDir).Resolve(c.boardName, c.overrides())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	e := engine.New(cfg)
	defer e.Close()

	if c.session != "" {
		s, err := readSession(c.session)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := s.apply(e); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	if err := e.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(os.Stderr, "決算発表...")
	select {
	case <-e.Done():
	case <-ctx.Done():
		return subcommands.ExitFailure
	}

	out := board.Markdown(e.Payload(), cfg.Unit)
	if !c.raw {
		rendered, err := glamour.Render(out, c.style)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering board: %v\n", err)
			return subcommands.ExitFailure
		}
		out = rendered
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}
