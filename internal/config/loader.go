package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/board files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/kessan/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) BoardPath(board string) string {
	return filepath.Join(p.BaseDir, "boards", board+".yaml")
}

// Files lists default.yaml plus every board file currently under BaseDir.
func (p Paths) Files() []string {
	files := []string{p.DefaultPath()}
	boards, _ := filepath.Glob(filepath.Join(p.BaseDir, "boards", "*.yaml"))
	return append(files, boards...)
}

// Loader reads YAML configs and merges default → board.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: board name, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → board. default.yaml may be absent;
// a named board must exist. It returns the merged RawConfig without validation.
func (l *Loader) LoadMerged(board string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[board]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath(), true)
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if board != "" {
		boardCfg, err := readYAML(l.paths.BoardPath(board), false)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read board %s: %w", board, err)
		}
		merged = mergeRaw(defCfg, boardCfg)
	}

	l.mu.Lock()
	l.cache[board] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. A missing optional file is a zero cfg.
func readYAML(path string, optional bool) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// mergeRaw overlays 'b' on 'a': set scalars and pointers in b win.
// Roster entries are matched by id; unknown ids are appended.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// board
	if b.Board.Players != nil {
		out.Board.Players = b.Board.Players
	}
	if b.Board.Years != nil {
		out.Board.Years = b.Board.Years
	}
	if b.Board.BaseYear != nil {
		out.Board.BaseYear = b.Board.BaseYear
	}

	// roster
	if len(b.Roster) > 0 {
		out.Roster = append([]ParticipantConfig(nil), a.Roster...)
		for _, p := range b.Roster {
			i := indexOf(out.Roster, p.ID)
			if i < 0 {
				out.Roster = append(out.Roster, p)
				continue
			}
			if p.Name != "" {
				out.Roster[i].Name = p.Name
			}
			if p.Color != "" {
				out.Roster[i].Color = p.Color
			}
			if p.Profile != "" {
				out.Roster[i].Profile = p.Profile
			}
		}
	}

	// reveal
	switch {
	case out.Reveal == nil && b.Reveal != nil:
		c := *b.Reveal
		out.Reveal = &c
	case out.Reveal != nil && b.Reveal != nil:
		c := *out.Reveal
		if b.Reveal.DelayMS != nil {
			c.DelayMS = b.Reveal.DelayMS
		}
		out.Reveal = &c
	}

	// unit
	switch {
	case out.Unit == nil && b.Unit != nil:
		c := *b.Unit
		out.Unit = &c
	case out.Unit != nil && b.Unit != nil:
		c := *out.Unit
		if b.Unit.Name != "" {
			c.Name = b.Unit.Name
		}
		if b.Unit.Zero != "" {
			c.Zero = b.Unit.Zero
		}
		if b.Unit.Lang != "" {
			c.Lang = b.Unit.Lang
		}
		out.Unit = &c
	}

	return out
}

func indexOf(ps []ParticipantConfig, id string) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}
