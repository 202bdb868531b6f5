package growth

import (
	"fmt"
	"math"
	"strings"
)

// Profile selects the formula family used to pre-fill a slot's yearly values.
type Profile string

const (
	Steady      Profile = "steady"      // slot 1
	Volatile    Profile = "volatile"    // slot 2
	Exponential Profile = "exponential" // slot 3
	BoomBust    Profile = "boom_bust"   // slot 4
)

// SlotProfiles is the fixed slot -> profile mapping of a fresh board.
var SlotProfiles = [4]Profile{Steady, Volatile, Exponential, BoomBust}

// ParseProfile accepts the YAML spelling of a profile.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case Steady, Volatile, Exponential, BoomBust:
		return p, nil
	}
	return "", fmt.Errorf("unknown growth profile %q", s)
}

// NoiseBound is the exclusive upper bound of the perturbation added to p.
func (p Profile) NoiseBound() int {
	switch p {
	case Steady:
		return 300
	case Volatile:
		return 500
	case Exponential:
		return 200
	case BoomBust:
		return 400
	}
	return 0
}

// Trend is the deterministic part of the formula for 1-based year y.
func (p Profile) Trend(y int) int {
	switch p {
	case Steady:
		return 500 + y*250
	case Volatile:
		return 1000 + y*150 + int(math.Floor(math.Sin(float64(y)*0.8)*1000))
	case Exponential:
		return 200 + y*y*30
	case BoomBust:
		v := 3000 + y*100
		if y > 4 {
			v -= (y - 4) * 600
		}
		return v
	}
	return 0
}

// Generate returns one synthetic value for the 0-based yearIndex.
// Noise is drawn from rng on every call; nil rng means DefaultRNG.
func Generate(p Profile, yearIndex int, rng RandomSource) int {
	if rng == nil {
		rng = DefaultRNG()
	}
	y := yearIndex + 1
	return p.Trend(y) + noise(p.NoiseBound(), rng)
}

// GenerateRow fills one year for every slot, in slot order so that a seeded
// source yields the same row for the same inputs.
func GenerateRow(yearIndex int, slots []Slot, rng RandomSource) map[string]int {
	if rng == nil {
		rng = DefaultRNG()
	}
	row := make(map[string]int, len(slots))
	for _, s := range slots {
		row[s.ID] = Generate(s.Profile, yearIndex, rng)
	}
	return row
}

// Slot ties a participant id to the profile that pre-fills its values.
type Slot struct {
	ID      string
	Profile Profile
}

// noise => floor(rng * bound), in [0, bound)
func noise(bound int, rng RandomSource) int {
	if bound <= 0 {
		return 0
	}
	n := int(math.Floor(rng.Float64() * float64(bound)))
	if n >= bound { // guard a source that returns exactly 1
		n = bound - 1
	}
	return n
}
