package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/xtding233/kessan-board/internal/growth"
	"github.com/xtding233/kessan-board/internal/roster"
)

// ValidateRaw checks semantic constraints of a RawConfig. Player and year
// counts are not checked here: the engine clamps them.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// roster
	if len(cfg.Roster) > roster.MaxSlots {
		errs = append(errs, fmt.Sprintf("roster has %d entries, at most %d allowed", len(cfg.Roster), roster.MaxSlots))
	}
	seen := make(map[string]bool, len(cfg.Roster))
	for i, p := range cfg.Roster {
		if strings.TrimSpace(p.ID) == "" {
			errs = append(errs, fmt.Sprintf("roster[%d].id is required", i))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Sprintf("roster[%d].id %q is duplicated", i, p.ID))
		}
		seen[p.ID] = true
		if p.Profile != "" {
			if _, err := growth.ParseProfile(p.Profile); err != nil {
				errs = append(errs, fmt.Sprintf("roster[%d].profile: %v", i, err))
			}
		}
	}

	// board
	if cfg.Board.BaseYear != nil && *cfg.Board.BaseYear <= 0 {
		errs = append(errs, "board.base_year must be >= 1")
	}

	// reveal
	if cfg.Reveal != nil && cfg.Reveal.DelayMS != nil && *cfg.Reveal.DelayMS < 0 {
		errs = append(errs, "reveal.delay_ms must be >= 0")
	}

	// unit
	if cfg.Unit != nil && cfg.Unit.Lang != "" {
		if _, err := language.Parse(cfg.Unit.Lang); err != nil {
			errs = append(errs, fmt.Sprintf("unit.lang %q is not a language tag", cfg.Unit.Lang))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
