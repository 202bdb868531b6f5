package engine

import (
	"sort"

	"github.com/xtding233/kessan-board/internal/roster"
)

// Standing summarizes one participant's run for the result board.
type Standing struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rank   int    `json:"rank"`
	Final  int    `json:"final"`
	Peak   int    `json:"peak"`
	Trough int    `json:"trough"`
	// Best is the largest single-year gain, Worst the largest loss (<= 0).
	Best  int `json:"best"`
	Worst int `json:"worst"`
}

// standings ranks by final value, highest first. Equal finals share a rank
// and keep slot order.
func standings(pts []RenderPoint, active []roster.Participant) []Standing {
	out := make([]Standing, len(active))
	for i, p := range active {
		s := Standing{ID: p.ID, Name: p.Name}
		prev := 0
		for j, pt := range pts {
			v := pt.Values[p.ID]
			s.Peak = max(s.Peak, v)
			s.Trough = min(s.Trough, v)
			if j > 0 {
				d := v - prev
				s.Best = max(s.Best, d)
				s.Worst = min(s.Worst, d)
			}
			prev = v
		}
		s.Final = prev
		out[i] = s
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Final > out[b].Final })
	for i := range out {
		if i > 0 && out[i].Final == out[i-1].Final {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}
