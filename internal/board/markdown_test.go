package board_test

import (
	"strings"
	"testing"
	"time"

	"github.com/xtding233/kessan-board/internal/board"
	"github.com/xtding233/kessan-board/internal/engine"
	"github.com/xtding233/kessan-board/internal/growth"
	"github.com/xtding233/kessan-board/internal/unit"
)

func newEngine(players, years int) *engine.Engine {
	cfg := engine.DefaultConfig()
	cfg.Players = players
	cfg.Years = years
	cfg.RevealDelay = time.Hour
	cfg.RNG = growth.NewSeededRNG(1)
	return engine.New(cfg)
}

func TestMarkdownBoard(t *testing.T) {
	e := newEngine(2, 2)
	defer e.Close()
	_ = e.SetValue(0, "player1", "-200")
	_ = e.SetValue(1, "player1", "1000")
	_ = e.SetValue(0, "player2", "100")
	_ = e.SetValue(1, "player2", "50")

	got := board.Markdown(e.Payload(), unit.Man)
	for _, want := range []string{
		"# 決算発表 2年",
		"| max | 1,200万円 |",
		"| mid | 400万円 |",
		"| min | **-400万円** |",
		"| 1 | ももたろ社長 | 1,000万円 | 1,000万円 | +1,200万円 | -200万円 |",
		"| Year | ももたろ社長 | きんたろ社長 |",
		"| 0年 | 0 | 0 |",
		"| 2年 | 1,000 | 50 |",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("board missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "うらしま社長") {
		t.Fatalf("inactive participant rendered:\n%s", got)
	}
}

func TestMarkdownThinsDenseGames(t *testing.T) {
	e := newEngine(1, 23)
	defer e.Close()
	got := board.Markdown(e.Payload(), unit.Man)
	for _, want := range []string{"| 0年 |", "| 5年 |", "| 20年 |", "| 23年 |"} {
		if !strings.Contains(got, want) {
			t.Fatalf("dense board missing %q", want)
		}
	}
	if strings.Contains(got, "| 7年 |") {
		t.Fatalf("dense board kept an intermediate year")
	}
}
