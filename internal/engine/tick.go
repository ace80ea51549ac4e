// Package engine provides the delta-time simulation loop that drives the
// match. All game logic hangs off OnStep; the engine only paces.
package engine

import (
	"log/slog"
	"time"
)

// Engine drives the simulation forward at a fixed logical timestep.
type Engine struct {
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval (default 100ms)
	Running  bool

	// OnStep receives the elapsed sim-time delta, in seconds, every tick.
	OnStep func(dt float64)

	elapsed float64
}

// NewEngine creates an engine with default pacing: 10 logical ticks per
// simulated second.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: 100 * time.Millisecond,
	}
}

// Elapsed returns total simulated seconds processed.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Step advances the simulation by dt seconds. Exposed so hosts and tests can
// drive time directly without the real-time loop.
func (e *Engine) Step(dt float64) {
	e.elapsed += dt
	if e.OnStep != nil {
		e.OnStep(dt)
	}
}

// Run starts the paced loop. Blocks until Stop is called. Each iteration
// advances sim time by the tick interval regardless of wall-clock jitter.
func (e *Engine) Run() {
	e.Running = true
	dt := e.Interval.Seconds()
	slog.Info("simulation engine started", "interval", e.Interval, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.Step(dt)

		// Sleep for the remainder of the tick interval, adjusted for speed.
		spent := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if spent < target {
			time.Sleep(target - spent)
		}
	}

	slog.Info("simulation engine stopped", "sim_seconds", e.elapsed)
}

// RunFor drives the loop without pacing until the given sim-time horizon —
// headless fast-forward for batch matches.
func (e *Engine) RunFor(simSeconds float64) {
	e.Running = true
	dt := e.Interval.Seconds()
	for e.Running && e.elapsed < simSeconds {
		e.Step(dt)
	}
	e.Running = false
}

// Stop halts the loop.
func (e *Engine) Stop() {
	e.Running = false
}
