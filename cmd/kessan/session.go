package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/kessan-board/internal/engine"
)

// sessionFile is what a player would have typed into the entry form.
type sessionFile struct {
	Players int               `yaml:"players,omitempty"`
	Years   string            `yaml:"years,omitempty"`
	Names   map[string]string `yaml:"names,omitempty"`
	// Values[i] holds year i+1, participant id -> raw field text.
	Values []map[string]string `yaml:"values,omitempty"`
}

func readSession(path string) (sessionFile, error) {
	var s sessionFile
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read session: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse session %s: %w", path, err)
	}
	return s, nil
}

// apply replays the file in form order: counts first, then names, then cells.
func (s sessionFile) apply(e *engine.Engine) error {
	if s.Players > 0 {
		if err := e.SetPlayerCount(s.Players); err != nil {
			return err
		}
	}
	if s.Years != "" {
		if err := e.SetYearCountRaw(s.Years); err != nil {
			return err
		}
	}
	for id, name := range s.Names {
		if err := e.Rename(id, name); err != nil {
			return err
		}
	}
	for i, row := range s.Values {
		for id, raw := range row {
			if err := e.SetValue(i, id, raw); err != nil {
				return err
			}
		}
	}
	return nil
}
