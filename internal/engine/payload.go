package engine

import (
	"github.com/xtding233/kessan-board/internal/axis"
	"github.com/xtding233/kessan-board/internal/reveal"
	"github.com/xtding233/kessan-board/internal/roster"
	"github.com/xtding233/kessan-board/internal/series"
)

// RenderPoint is one x position of the chart. Derived, never stored.
type RenderPoint struct {
	YearLabel string         `json:"yearLabel"`
	Values    map[string]int `json:"values"`
}

// Payload is everything the renderer needs for one frame of the board.
type Payload struct {
	Phase     reveal.Phase         `json:"phase"`
	Years     int                  `json:"years"`
	YearLabel string               `json:"yearLabel"`
	Points    []RenderPoint        `json:"points"`
	Roster    []roster.Participant `json:"roster"`
	Bounds    axis.Bounds          `json:"bounds"`
	Labels    axis.Labels          `json:"labels"`
	Dense     bool                 `json:"dense"`
	Standings []Standing           `json:"standings"`
}

// points prepends the "0年" baseline and keeps only active ids.
func points(recs []series.YearRecord, active []roster.Participant) []RenderPoint {
	out := make([]RenderPoint, 0, len(recs)+1)
	zero := make(map[string]int, len(active))
	for _, p := range active {
		zero[p.ID] = 0
	}
	out = append(out, RenderPoint{YearLabel: yearLabel(0), Values: zero})
	for i, r := range recs {
		vals := make(map[string]int, len(active))
		for _, p := range active {
			vals[p.ID] = r.Values[p.ID]
		}
		out = append(out, RenderPoint{YearLabel: yearLabel(i + 1), Values: vals})
	}
	return out
}

func values(pts []RenderPoint) []int {
	var out []int
	for _, pt := range pts {
		for _, v := range pt.Values {
			out = append(out, v)
		}
	}
	return out
}

func (p Payload) clone() Payload {
	out := p
	out.Points = make([]RenderPoint, len(p.Points))
	for i, pt := range p.Points {
		vals := make(map[string]int, len(pt.Values))
		for k, v := range pt.Values {
			vals[k] = v
		}
		out.Points[i] = RenderPoint{YearLabel: pt.YearLabel, Values: vals}
	}
	out.Roster = append([]roster.Participant(nil), p.Roster...)
	out.Standings = append([]Standing(nil), p.Standings...)
	return out
}
