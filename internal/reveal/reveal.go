package reveal

import (
	"errors"
	"sync"
	"time"
)

// Phase is where the board is in the reveal flow.
type Phase string

const (
	Input     Phase = "input"
	Animating Phase = "animating"
	Result    Phase = "result"
)

// DefaultDelay is how long the intro plays before the result board.
const DefaultDelay = 5 * time.Second

var ErrAlreadyStarted = errors.New("reveal already started")

// Machine runs Input -> Animating -> Result once. The snapshot passed to
// Start is what the result shows; later state changes never reach it.
type Machine[T any] struct {
	mu       sync.Mutex
	delay    time.Duration
	phase    Phase
	frozen   T
	timer    *time.Timer
	done     chan struct{}
	onResult func(T)
}

// New returns a machine in Input. A negative delay means DefaultDelay.
func New[T any](delay time.Duration) *Machine[T] {
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Machine[T]{delay: delay, phase: Input, done: make(chan struct{})}
}

// OnResult registers f to run (outside the lock) on entering Result.
func (m *Machine[T]) OnResult(f func(T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onResult = f
}

// Start freezes snapshot and arms the timer. A second Start is rejected
// and does not restart a pending timer.
func (m *Machine[T]) Start(snapshot T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != Input {
		return ErrAlreadyStarted
	}
	m.phase = Animating
	m.frozen = snapshot
	m.timer = time.AfterFunc(m.delay, func() { m.finish() })
	return nil
}

// Skip cancels the pending timer and shows the result now.
// It reports whether a transition happened.
func (m *Machine[T]) Skip() bool {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()
	return m.finish()
}

// Stop disarms the timer without moving on; used on shutdown.
func (m *Machine[T]) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
	}
}

func (m *Machine[T]) finish() bool {
	m.mu.Lock()
	if m.phase != Animating {
		m.mu.Unlock()
		return false
	}
	m.phase = Result
	m.timer = nil
	close(m.done)
	f, snap := m.onResult, m.frozen
	m.mu.Unlock()

	if f != nil {
		f(snap)
	}
	return true
}

func (m *Machine[T]) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Frozen returns the snapshot taken at Start; ok is false while in Input.
func (m *Machine[T]) Frozen() (snap T, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == Input {
		return snap, false
	}
	return m.frozen, true
}

// Done is closed once the machine reaches Result.
func (m *Machine[T]) Done() <-chan struct{} { return m.done }

func (m *Machine[T]) Delay() time.Duration { return m.delay }
