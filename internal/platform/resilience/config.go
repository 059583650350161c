package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// Guard pairs a breaker with an on/off switch and a classifier deciding
// which errors count against the dependency.
type Guard struct {
	breaker   *CircuitBreaker
	enabled   bool
	isFailure func(error) bool
}

func NewGuard(cfg CircuitBreakerConfig, isFailure func(error) bool) *Guard {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	if isFailure == nil {
		isFailure = func(err error) bool { return err != nil }
	}
	return &Guard{
		breaker:   NewCircuitBreaker(cfg),
		enabled:   cfg.Enabled,
		isFailure: isFailure,
	}
}

func (g *Guard) Allow() error {
	if g == nil || !g.enabled {
		return nil
	}
	return g.breaker.Allow()
}

// Record must be called exactly once for every call that passed Allow.
func (g *Guard) Record(err error) {
	if g == nil || !g.enabled {
		return
	}
	if err != nil && g.isFailure(err) {
		g.breaker.RecordFailure()
		return
	}
	g.breaker.RecordSuccess()
}

func (g *Guard) State() CircuitState {
	if g == nil || !g.enabled {
		return CircuitStateClosed
	}
	return g.breaker.State()
}

func (g *Guard) OnStateChange(fn StateChangeFunc) {
	if g == nil {
		return
	}
	g.breaker.OnStateChange(fn)
}
