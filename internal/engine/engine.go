package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xtding233/kessan-board/internal/axis"
	"github.com/xtding233/kessan-board/internal/growth"
	"github.com/xtding233/kessan-board/internal/reveal"
	"github.com/xtding233/kessan-board/internal/roster"
	"github.com/xtding233/kessan-board/internal/series"
	"github.com/xtding233/kessan-board/internal/unit"
)

// ErrLocked is returned for edits once the reveal has started.
var ErrLocked = errors.New("board is locked for the reveal")

// DenseYears is the year count above which the chart drops point markers.
const DenseYears = 20

// Config seeds a new Engine.
type Config struct {
	Participants []roster.Participant
	Players      int
	Years        int
	BaseYear     int
	RevealDelay  time.Duration
	Unit         unit.Unit
	RNG          growth.RandomSource // nil => crypto-backed, unseeded
}

// DefaultConfig is the board as it opens: four presidents, ten years.
func DefaultConfig() Config {
	return Config{
		Participants: roster.DefaultParticipants(),
		Players:      roster.MaxSlots,
		Years:        series.DefaultYears,
		BaseYear:     series.DefaultBaseYear,
		RevealDelay:  reveal.DefaultDelay,
		Unit:         unit.Man,
	}
}

// Engine owns one board. Every exported method runs to completion under
// a single lock, so external events are applied strictly in order.
type Engine struct {
	mu       sync.Mutex
	roster   *roster.Roster
	series   *series.Store
	machine  *reveal.Machine[Payload]
	unit     unit.Unit
	onChange func()
}

// New builds an engine; series rows are generated for every slot.
func New(cfg Config) *Engine {
	r := roster.New(cfg.Participants)
	if cfg.Players > 0 {
		r.SetActiveCount(cfg.Players)
	}
	years := cfg.Years
	if years == 0 {
		years = series.DefaultYears
	}
	baseYear := cfg.BaseYear
	if baseYear == 0 {
		baseYear = series.DefaultBaseYear
	}
	u := cfg.Unit
	if u.Name == "" {
		u = unit.Man
	}
	return &Engine{
		roster:  r,
		series:  series.New(years, r.Slots(), baseYear, cfg.RNG),
		machine: reveal.New[Payload](cfg.RevealDelay),
		unit:    u,
	}
}

// OnChange registers f, called after any mutation that changed state.
func (e *Engine) OnChange(f func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = f
}

// OnResult registers f, called with the frozen payload on entering Result.
func (e *Engine) OnResult(f func(Payload)) { e.machine.OnResult(f) }

// edit runs fn while the board is still in Input.
func (e *Engine) edit(fn func() bool) error {
	e.mu.Lock()
	if e.machine.Phase() != reveal.Input {
		e.mu.Unlock()
		return ErrLocked
	}
	changed := fn()
	hook := e.onChange
	e.mu.Unlock()

	if changed && hook != nil {
		hook()
	}
	return nil
}

// SetPlayerCount activates the first k slots (clamped to 1..4).
func (e *Engine) SetPlayerCount(k int) error {
	return e.edit(func() bool { return e.roster.SetActiveCount(k) })
}

// SetYearCount resizes the series (clamped to 1..100).
func (e *Engine) SetYearCount(n int) error {
	return e.edit(func() bool { return e.series.SetYearCount(n) })
}

// SetYearCountRaw is SetYearCount for unparsed field input; junk means 1.
func (e *Engine) SetYearCountRaw(raw string) error {
	return e.SetYearCount(series.ParseYearCount(raw))
}

// SetValue stores the parsed raw input for one cell; junk means 0.
func (e *Engine) SetValue(yearIndex int, id, raw string) error {
	return e.edit(func() bool { return e.series.SetValue(yearIndex, id, raw) })
}

// Rename changes a display name; unknown ids are ignored.
func (e *Engine) Rename(id, name string) error {
	return e.edit(func() bool { return e.roster.Rename(id, name) })
}

// Start locks the board and begins the reveal. The payload captured here is
// the one shown in Result.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Start(e.payload(reveal.Animating))
}

// Skip jumps straight to Result while Animating.
func (e *Engine) Skip() bool { return e.machine.Skip() }

// Close disarms a pending reveal timer.
func (e *Engine) Close() { e.machine.Stop() }

func (e *Engine) Phase() reveal.Phase { return e.machine.Phase() }

// Done is closed once the result board is showing.
func (e *Engine) Done() <-chan struct{} { return e.machine.Done() }

func (e *Engine) Active() []roster.Participant {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roster.Active()
}

func (e *Engine) Roster() []roster.Participant {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roster.All()
}

func (e *Engine) Records() []series.YearRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.series.Records()
}

func (e *Engine) Points() []RenderPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return points(e.series.Records(), e.roster.Active())
}

func (e *Engine) Bounds() axis.Bounds {
	e.mu.Lock()
	defer e.mu.Unlock()
	return axis.Compute(values(points(e.series.Records(), e.roster.Active())))
}

// Payload is the live view in Input and the frozen one afterwards.
func (e *Engine) Payload() Payload {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.machine.Frozen(); ok {
		p = p.clone()
		p.Phase = e.machine.Phase()
		return p
	}
	return e.payload(reveal.Input)
}

func (e *Engine) payload(phase reveal.Phase) Payload {
	active := e.roster.Active()
	recs := e.series.Records()
	pts := points(recs, active)
	b := axis.Compute(values(pts))
	return Payload{
		Phase:     phase,
		Years:     len(recs),
		YearLabel: yearLabel(len(recs)),
		Points:    pts,
		Roster:    active,
		Bounds:    b,
		Labels:    b.Labels(e.unit),
		Dense:     len(recs) > DenseYears,
		Standings: standings(pts, active),
	}
}

func yearLabel(n int) string { return fmt.Sprintf("%d年", n) }
