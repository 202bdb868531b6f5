// resolve.go
package config

import (
	"time"

	"golang.org/x/text/language"

	"github.com/xtding233/kessan-board/internal/engine"
	"github.com/xtding233/kessan-board/internal/growth"
	"github.com/xtding233/kessan-board/internal/roster"
	"github.com/xtding233/kessan-board/internal/unit"
)

// Overrides carries per-request or per-command settings that beat the files.
type Overrides struct {
	Players *int
	Years   *int
	DelayMS *int
	Seed    *uint64 // reproducible default data when set
}

// Resolve merges default → board, validates, then applies o.
func (l *Loader) Resolve(board string, o Overrides) (engine.Config, error) {
	raw, err := l.LoadMerged(board)
	if err != nil {
		return engine.Config{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return engine.Config{}, err
	}
	return Normalize(raw, o), nil
}

// Normalize turns a validated RawConfig into engine settings.
// Anything unset keeps engine.DefaultConfig.
func Normalize(raw RawConfig, o Overrides) engine.Config {
	cfg := engine.DefaultConfig()

	if len(raw.Roster) > 0 {
		cfg.Participants = participants(raw.Roster)
	}
	if raw.Board.Players != nil {
		cfg.Players = *raw.Board.Players
	}
	if raw.Board.Years != nil {
		cfg.Years = *raw.Board.Years
	}
	if raw.Board.BaseYear != nil {
		cfg.BaseYear = *raw.Board.BaseYear
	}
	if raw.Reveal != nil && raw.Reveal.DelayMS != nil {
		cfg.RevealDelay = time.Duration(*raw.Reveal.DelayMS) * time.Millisecond
	}
	if raw.Unit != nil {
		cfg.Unit = mergeUnit(cfg.Unit, *raw.Unit)
	}

	if o.Players != nil {
		cfg.Players = *o.Players
	}
	if o.Years != nil {
		cfg.Years = *o.Years
	}
	if o.DelayMS != nil {
		cfg.RevealDelay = time.Duration(*o.DelayMS) * time.Millisecond
	}
	if o.Seed != nil {
		cfg.RNG = growth.NewSeededRNG(*o.Seed)
	}

	// the engine clamps, but a 0 here would mean "unset"
	cfg.Players = max(cfg.Players, 1)
	cfg.Years = max(cfg.Years, 1)
	return cfg
}

// participants fills gaps in each entry from the default of the same slot.
func participants(entries []ParticipantConfig) []roster.Participant {
	defaults := roster.DefaultParticipants()
	var out []roster.Participant
	for i, e := range entries {
		if i >= roster.MaxSlots {
			break
		}
		p := defaults[i]
		p.ID = e.ID
		if e.Name != "" {
			p.Name = e.Name
		}
		if e.Color != "" {
			p.Color = e.Color
		}
		if prof, err := growth.ParseProfile(e.Profile); err == nil {
			p.Profile = prof
		}
		out = append(out, p)
	}
	return out
}

func mergeUnit(u unit.Unit, c UnitConfig) unit.Unit {
	if c.Name != "" {
		u.Name = c.Name
	}
	if c.Zero != "" {
		u.Zero = c.Zero
	}
	if c.Lang != "" {
		if tag, err := language.Parse(c.Lang); err == nil {
			u.Lang = tag
		}
	}
	return u
}
