package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xtding233/kessan-board/internal/config"
	"github.com/xtding233/kessan-board/internal/growth"
	"github.com/xtding233/kessan-board/internal/reveal"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

const defaultYAML = `
version: "1"
board:
  players: 4
  years: 10
reveal:
  delay_ms: 5000
unit:
  name: 万円
  zero: 0円
`

const boardYAML = `
board:
  players: 2
  years: 30
roster:
  - id: player2
    name: テスト社長
  - id: guest
    name: ゲスト
    profile: steady
reveal:
  delay_ms: 250
`

func TestResolveMergesBoardOverDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), defaultYAML+`
roster:
  - id: player1
  - id: player2
    color: "#000000"
`)
	writeFile(t, filepath.Join(dir, "boards", "party.yaml"), boardYAML)

	l := config.NewLoader(dir)
	cfg, err := l.Resolve("party", config.Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Players != 2 || cfg.Years != 30 {
		t.Fatalf("players=%d years=%d", cfg.Players, cfg.Years)
	}
	if cfg.RevealDelay != 250*time.Millisecond {
		t.Fatalf("delay=%s", cfg.RevealDelay)
	}
	if len(cfg.Participants) != 3 {
		t.Fatalf("participants=%d", len(cfg.Participants))
	}
	p2 := cfg.Participants[1]
	if p2.Name != "テスト社長" || p2.Color != "#000000" || p2.Profile != growth.Volatile {
		t.Fatalf("player2=%+v", p2)
	}
	if g := cfg.Participants[2]; g.ID != "guest" || g.Profile != growth.Steady || g.Color != "#22c55e" {
		t.Fatalf("guest=%+v", g)
	}
}

func TestResolveWithoutFilesUsesDefaults(t *testing.T) {
	l := config.NewLoader(t.TempDir())
	cfg, err := l.Resolve("", config.Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Players != 4 || cfg.Years != 10 || cfg.RevealDelay != reveal.DefaultDelay {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Unit.Zero != "0円" {
		t.Fatalf("unit=%+v", cfg.Unit)
	}
}

func TestOverridesWin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), defaultYAML)
	players, years, delay, seed := 1, 3, 0, uint64(9)
	cfg, err := config.NewLoader(dir).Resolve("", config.Overrides{
		Players: &players, Years: &years, DelayMS: &delay, Seed: &seed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Players != 1 || cfg.Years != 3 || cfg.RevealDelay != 0 || cfg.RNG == nil {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestValidateRaw(t *testing.T) {
	neg := -1
	bad := config.RawConfig{
		Roster: []config.ParticipantConfig{
			{ID: "a", Profile: "lottery"}, {ID: "a"}, {ID: ""}, {ID: "d"}, {ID: "e"},
		},
		Reveal: &config.RevealConfig{DelayMS: &neg},
		Unit:   &config.UnitConfig{Lang: "!!"},
	}
	err := config.ValidateRaw(bad)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"at most 4", "duplicated", "roster[2].id is required", "profile", "delay_ms", "unit.lang"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
	if err := config.ValidateRaw(config.RawConfig{}); err != nil {
		t.Fatalf("empty config: %v", err)
	}
}

func TestResolveRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), "board: [")
	if _, err := config.NewLoader(dir).Resolve("", config.Overrides{}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWatchLoaderInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	writeFile(t, path, "board:\n  years: 10\n")
	l := config.NewLoader(dir)
	if cfg, _ := l.Resolve("", config.Overrides{}); cfg.Years != 10 {
		t.Fatalf("years=%d", cfg.Years)
	}

	w := config.WatchLoader(l, 10*time.Millisecond)
	w.Start()
	defer w.Stop()

	writeFile(t, path, "board:\n  years: 20\n")
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cfg, _ := l.Resolve("", config.Overrides{}); cfg.Years == 20 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("loader still serves the stale config")
}

func TestWatchLoaderSeesBoardsAddedLater(t *testing.T) {
	dir := t.TempDir()
	l := config.NewLoader(dir)
	w := config.WatchLoader(l, 10*time.Millisecond)
	w.Start()
	defer w.Stop()

	path := filepath.Join(dir, "boards", "late.yaml")
	writeFile(t, path, "board:\n  years: 5\n")
	if cfg, err := l.Resolve("late", config.Overrides{}); err != nil || cfg.Years != 5 {
		t.Fatalf("years=%d err=%v", cfg.Years, err)
	}
	// let the watcher record the new file before it changes
	time.Sleep(50 * time.Millisecond)

	writeFile(t, path, "board:\n  years: 7\n")
	future := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cfg, _ := l.Resolve("late", config.Overrides{}); cfg.Years == 7 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("edit to a board created after Start was never seen")
}

func TestResolveUnknownBoardFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default.yaml"), defaultYAML)
	_, err := config.NewLoader(dir).Resolve("qiuck", config.Overrides{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want not-exist error, got %v", err)
	}
}

func TestParseEnvDefaults(t *testing.T) {
	t.Setenv("KESSAN_HTTP_ADDR", ":18080")
	var e config.ServerEnv
	if err := config.ParseEnv(&e); err != nil {
		t.Fatal(err)
	}
	if e.HTTPAddr != ":18080" || e.GRPCAddr != ":9090" || e.WatchInterval != 2*time.Second {
		t.Fatalf("env=%+v", e)
	}
	if err := config.LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing .env must be fine: %v", err)
	}
}

func TestShippedConfigResolves(t *testing.T) {
	l := config.NewLoader(filepath.Join("..", "..", "config"))
	cfg, err := l.Resolve("quick", config.Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Players != 2 || cfg.Years != 5 || cfg.RevealDelay != 1500*time.Millisecond {
		t.Fatalf("quick board: %+v", cfg)
	}
	if len(cfg.Participants) != 4 || cfg.Participants[3].Profile != growth.BoomBust {
		t.Fatalf("roster %+v", cfg.Participants)
	}
	if cfg.BaseYear != 2017 || cfg.Unit.Name != "万円" {
		t.Fatalf("base year %d unit %+v", cfg.BaseYear, cfg.Unit)
	}
}
