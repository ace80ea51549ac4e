package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepAccumulatesElapsed(t *testing.T) {
	e := NewEngine()
	var deltas []float64
	e.OnStep = func(dt float64) { deltas = append(deltas, dt) }

	e.Step(0.1)
	e.Step(0.25)

	assert.InDelta(t, 0.35, e.Elapsed(), 1e-9)
	assert.Equal(t, []float64{0.1, 0.25}, deltas)
}

func TestStepWithoutCallback(t *testing.T) {
	e := NewEngine()
	e.Step(1.0)
	assert.Equal(t, 1.0, e.Elapsed())
}

func TestRunForReachesHorizon(t *testing.T) {
	e := NewEngine()
	e.Interval = 250 * time.Millisecond // exact in binary, so the tick count is too
	steps := 0
	e.OnStep = func(dt float64) { steps++ }

	e.RunFor(5.0)

	assert.False(t, e.Running)
	assert.GreaterOrEqual(t, e.Elapsed(), 5.0)
	assert.Equal(t, 20, steps)
}

func TestRunForStopsEarly(t *testing.T) {
	e := NewEngine()
	e.OnStep = func(dt float64) {
		if e.Elapsed() >= 1.0 {
			e.Stop()
		}
	}

	e.RunFor(100.0)

	assert.Less(t, e.Elapsed(), 2.0)
}
