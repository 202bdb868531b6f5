package board

import (
	"fmt"
	"strings"

	"github.com/xtding233/kessan-board/internal/engine"
	"github.com/xtding233/kessan-board/internal/unit"
)

// Markdown renders the result board: scale, standings and the yearly table.
func Markdown(p engine.Payload, u unit.Unit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 決算発表 %s\n\n", p.YearLabel)

	fmt.Fprint(&b, "## Scale\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| max | %s |\n", p.Labels.Max)
	fmt.Fprintf(&b, "| mid | %s |\n", p.Labels.Mid)
	minLabel := p.Labels.Min
	if p.Labels.MinNegative {
		minLabel = "**" + minLabel + "**"
	}
	fmt.Fprintf(&b, "| min | %s |\n\n", minLabel)

	if len(p.Standings) > 0 {
		fmt.Fprint(&b, "## Standings\n\n")
		fmt.Fprintln(&b, "| # | Name | Final | Peak | Best Year | Worst Year |")
		fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|---:|")
		for _, s := range p.Standings {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
				s.Rank, s.Name, u.ZeroAware(s.Final), u.ZeroAware(s.Peak), signed(u, s.Best), signed(u, s.Worst))
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprint(&b, "## Net Worth\n\n")
	header := []string{"Year"}
	align := []string{":---"}
	for _, r := range p.Roster {
		header = append(header, r.Name)
		align = append(align, "---:")
	}
	fmt.Fprintf(&b, "| %s |\n", strings.Join(header, " | "))
	fmt.Fprintf(&b, "|%s|\n", strings.Join(align, "|"))
	for i, pt := range p.Points {
		if p.Dense && !keepRow(i, len(p.Points)) {
			continue
		}
		row := []string{pt.YearLabel}
		for _, r := range p.Roster {
			row = append(row, u.Group(pt.Values[r.ID]))
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join(row, " | "))
	}

	return b.String()
}

// keepRow thins long games to every fifth year, always keeping both ends.
func keepRow(i, n int) bool {
	return i == 0 || i == n-1 || i%5 == 0
}

func signed(u unit.Unit, v int) string {
	if v > 0 {
		return "+" + u.Label(v)
	}
	return u.ZeroAware(v)
}
