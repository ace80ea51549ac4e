package econ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/vanguard/internal/world"
)

func TestNewLedgerStartsEmpty(t *testing.T) {
	l := NewLedger()
	for _, kind := range world.Resources() {
		assert.Zero(t, l.Amount(kind), "kind %s", kind)
	}
	assert.Zero(t, l.EconomyStrength())
}

func TestAddAndAmount(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Credits: 300, world.Energy: 100})
	l.Add(world.Cost{world.Credits: 200})

	assert.Equal(t, 500, l.Amount(world.Credits))
	assert.Equal(t, 100, l.Amount(world.Energy))
}

func TestAddIgnoresUnknownKinds(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Resource("plasma"): 999})
	assert.Zero(t, l.Amount(world.Resource("plasma")))
}

func TestCanAfford(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Credits: 500, world.Energy: 200})

	assert.True(t, l.CanAfford(world.Cost{world.Credits: 500}))
	assert.True(t, l.CanAfford(world.Cost{world.Credits: 300, world.Energy: 200}))
	assert.False(t, l.CanAfford(world.Cost{world.Credits: 501}))
	assert.False(t, l.CanAfford(world.Cost{world.Resource("plasma"): 1}))
	assert.True(t, l.CanAfford(world.Cost{}))
}

func TestSpend(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Credits: 500})

	require.True(t, l.Spend(world.Cost{world.Credits: 200}))
	assert.Equal(t, 300, l.Amount(world.Credits))
}

func TestSpendClampsAtZero(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Credits: 100})

	covered := l.Spend(world.Cost{world.Credits: 250})

	assert.False(t, covered)
	assert.Zero(t, l.Amount(world.Credits))
}

func TestOnChangeObserver(t *testing.T) {
	l := NewLedger()
	var seen []int
	l.OnChange(func(kind world.Resource, amount int) {
		if kind == world.Credits {
			seen = append(seen, amount)
		}
	})

	l.Add(world.Cost{world.Credits: 400})
	l.Spend(world.Cost{world.Credits: 150})

	assert.Equal(t, []int{400, 250}, seen)
}

func TestNeed(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Credits: 100})

	// Target for credits is 5000, so 100 leaves a 0.98 deficit.
	assert.InDelta(t, 0.98, l.Need(world.Credits), 1e-9)
	assert.Equal(t, 1.0, l.Need(world.Energy))

	l.Add(world.Cost{world.Credits: 10000})
	assert.Zero(t, l.Need(world.Credits))
}

func TestNeedsBounded(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Credits: 99999, world.Data: 50})

	for kind, need := range l.Needs() {
		assert.GreaterOrEqual(t, need, 0.0, "kind %s", kind)
		assert.LessOrEqual(t, need, 1.0, "kind %s", kind)
	}
}

func TestEconomyStrength(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Credits: 2000, world.Energy: 3000})
	assert.InDelta(t, 0.5, l.EconomyStrength(), 1e-9)

	l.Add(world.Cost{world.Credits: 50000})
	assert.Equal(t, 1.0, l.EconomyStrength())
}

func TestSnapshotIsCopy(t *testing.T) {
	l := NewLedger()
	l.Add(world.Cost{world.Credits: 100})

	snap := l.Snapshot()
	snap[world.Credits] = 9999

	assert.Equal(t, 100, l.Amount(world.Credits))
}

func TestDesiredAmountFallback(t *testing.T) {
	assert.Equal(t, 5000, DesiredAmount(world.Credits))
	assert.Equal(t, 1000, DesiredAmount(world.Resource("plasma")))
}
