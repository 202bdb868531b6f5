// types.go
package config

// Raw config loaded from YAML; mirrors the board file schema.
type RawConfig struct {
	Version string              `yaml:"version"`
	Board   BoardConfig         `yaml:"board"`
	Roster  []ParticipantConfig `yaml:"roster,omitempty"`
	Reveal  *RevealConfig       `yaml:"reveal,omitempty"`
	Unit    *UnitConfig         `yaml:"unit,omitempty"`
	Notes   string              `yaml:"notes,omitempty"`
}

type BoardConfig struct {
	Players  *int `yaml:"players"`
	Years    *int `yaml:"years"`
	BaseYear *int `yaml:"base_year"`
}

// ParticipantConfig overrides one roster slot, matched by id.
type ParticipantConfig struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name,omitempty"`
	Color   string `yaml:"color,omitempty"`
	Profile string `yaml:"profile,omitempty"` // steady | volatile | exponential | boom_bust
}

type RevealConfig struct {
	DelayMS *int `yaml:"delay_ms"`
}

type UnitConfig struct {
	Name string `yaml:"name,omitempty"` // e.g. "万円"
	Zero string `yaml:"zero,omitempty"` // e.g. "0円"
	Lang string `yaml:"lang,omitempty"` // BCP 47, e.g. "ja"
}
