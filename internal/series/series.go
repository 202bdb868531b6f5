package series

import (
	"github.com/xtding233/kessan-board/internal/growth"
)

const (
	MinYears     = 1
	MaxYears     = 100
	DefaultYears = 10
	// DefaultBaseYear labels index 0 internally; charts use relative years.
	DefaultBaseYear = 2017
)

// YearRecord is one tracked year: participant id -> net worth in 万円.
type YearRecord struct {
	Year   int            `json:"year"`
	Values map[string]int `json:"values"`
}

func (r YearRecord) clone() YearRecord {
	v := make(map[string]int, len(r.Values))
	for k, x := range r.Values {
		v[k] = x
	}
	return YearRecord{Year: r.Year, Values: v}
}

// Store keeps len(records) equal to the configured year count after every call.
type Store struct {
	records  []YearRecord
	slots    []growth.Slot
	baseYear int
	rng      growth.RandomSource
}

// New generates n years (clamped) for every slot, active or not.
func New(n int, slots []growth.Slot, baseYear int, rng growth.RandomSource) *Store {
	if rng == nil {
		rng = growth.DefaultRNG()
	}
	s := &Store{
		slots:    append([]growth.Slot(nil), slots...),
		baseYear: baseYear,
		rng:      rng,
	}
	s.grow(ClampYears(n))
	return s
}

// ClampYears bounds n to [MinYears, MaxYears].
func ClampYears(n int) int {
	if n < MinYears {
		return MinYears
	}
	if n > MaxYears {
		return MaxYears
	}
	return n
}

// SetYearCount resizes the series and reports whether anything changed.
// Growing appends freshly generated rows; shrinking drops the tail for good.
func (s *Store) SetYearCount(n int) bool {
	n = ClampYears(n)
	switch {
	case n == len(s.records):
		return false
	case n > len(s.records):
		s.grow(n)
	default:
		// release the dropped rows
		for i := n; i < len(s.records); i++ {
			s.records[i] = YearRecord{}
		}
		s.records = s.records[:n]
	}
	return true
}

func (s *Store) grow(n int) {
	for i := len(s.records); i < n; i++ {
		s.records = append(s.records, YearRecord{
			Year:   s.baseYear + i,
			Values: growth.GenerateRow(i, s.slots, s.rng),
		})
	}
}

// SetValue stores the parsed raw input, 0 when it does not parse.
// Out-of-range indexes and unknown ids are ignored.
func (s *Store) SetValue(index int, id string, raw string) bool {
	return s.Set(index, id, ParseValue(raw))
}

// Set stores v directly; see SetValue.
func (s *Store) Set(index int, id string, v int) bool {
	if index < 0 || index >= len(s.records) || !s.known(id) {
		return false
	}
	if cur, ok := s.records[index].Values[id]; ok && cur == v {
		return false
	}
	s.records[index].Values[id] = v
	return true
}

func (s *Store) known(id string) bool {
	for _, sl := range s.slots {
		if sl.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) Len() int { return len(s.records) }

// Value returns the stored value and whether index/id exist.
func (s *Store) Value(index int, id string) (int, bool) {
	if index < 0 || index >= len(s.records) {
		return 0, false
	}
	v, ok := s.records[index].Values[id]
	return v, ok
}

// Records returns a deep copy of the series.
func (s *Store) Records() []YearRecord {
	out := make([]YearRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.clone()
	}
	return out
}
