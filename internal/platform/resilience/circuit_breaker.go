package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It is called after the
// breaker lock is released.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker guards one upstream dependency (Riot, Anubis). After
// FailureThreshold consecutive failures it rejects calls for OpenTimeout, then
// lets HalfOpenMaxReq probes through; all probes must succeed to close again.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state     CircuitState
	failures  int
	openedAt  time.Time
	probes    int
	successes int

	now      func() time.Time
	onChange StateChangeFunc
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	notify := b.noop()
	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		notify = b.moveTo(CircuitStateHalfOpen)
	}

	var err error
	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			err = ErrCircuitOpen
		} else {
			b.probes++
		}
	}
	b.mu.Unlock()

	notify()
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	notify := b.noop()
	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.successes++
		if b.successes >= b.cfg.HalfOpenMaxReq {
			notify = b.moveTo(CircuitStateClosed)
		}
	}
	b.mu.Unlock()

	notify()
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	notify := b.noop()
	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			notify = b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		notify = b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	b.mu.Unlock()

	notify()
}

// State reports half_open once the open window has elapsed, even before the
// next Allow performs the transition.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) noop() func() { return func() {} }

// moveTo resets the per-state counters and returns the observer call to run
// once the lock is released. Callers hold b.mu.
func (b *CircuitBreaker) moveTo(to CircuitState) func() {
	from := b.state
	b.state = to
	b.probes = 0
	b.successes = 0
	switch to {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}

	fn := b.onChange
	if fn == nil || from == to {
		return b.noop()
	}
	return func() { fn(from, to) }
}
