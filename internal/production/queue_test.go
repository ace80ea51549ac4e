package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/vanguard/internal/econ"
	"github.com/talgya/vanguard/internal/world"
)

func fundedLedger() *econ.Ledger {
	l := econ.NewLedger()
	l.Add(world.Cost{world.Credits: 5000, world.Energy: 2000})
	return l
}

func hasHQ(typeID string) bool { return typeID == "hq" }

func TestEnqueueSpendsOnSuccess(t *testing.T) {
	q := NewQueue(4)
	l := fundedLedger()
	def := world.Definition{ID: "trooper", Cost: world.Cost{world.Credits: 150}, IsUnit: true, Requires: "hq"}

	require.True(t, q.Enqueue(def, l, hasHQ))

	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 4850, l.Amount(world.Credits))
}

func TestEnqueueRejectsWhenFull(t *testing.T) {
	q := NewQueue(1)
	l := fundedLedger()
	def := world.Definition{ID: "trooper", Cost: world.Cost{world.Credits: 150}, IsUnit: true}

	require.True(t, q.Enqueue(def, l, nil))
	before := l.Amount(world.Credits)

	assert.False(t, q.Enqueue(def, l, nil))
	assert.Equal(t, before, l.Amount(world.Credits), "a rejected order must not spend")
	assert.Equal(t, 1, q.Len())
}

func TestEnqueueRejectsMissingPrerequisite(t *testing.T) {
	q := NewQueue(4)
	l := fundedLedger()
	def := world.Definition{ID: "guardian", Cost: world.Cost{world.Credits: 220}, IsUnit: true, Requires: "barracks"}

	assert.False(t, q.Enqueue(def, l, hasHQ))
	assert.False(t, q.Enqueue(def, l, nil))
	assert.Equal(t, 5000, l.Amount(world.Credits))
	assert.Zero(t, q.Len())
}

func TestEnqueueRejectsUnaffordable(t *testing.T) {
	q := NewQueue(4)
	l := econ.NewLedger()
	def := world.Definition{ID: "outpost", Cost: world.Cost{world.Credits: 1200}}

	assert.False(t, q.Enqueue(def, l, nil))
	assert.Zero(t, q.Len())
}

func TestTickCompletesOldestFirst(t *testing.T) {
	q := NewQueue(4)
	l := fundedLedger()

	require.True(t, q.Enqueue(world.Definition{ID: "first", Cost: world.Cost{}, IsUnit: true}, l, nil))
	require.True(t, q.Enqueue(world.Definition{ID: "second", Cost: world.Cost{}}, l, nil))

	_, done := q.Tick(5.0)
	assert.False(t, done, "half the interval should not complete anything")

	entry, done := q.Tick(5.0)
	require.True(t, done)
	assert.Equal(t, "first", entry.ID)
	assert.True(t, entry.IsUnit)

	entry, done = q.Tick(CompletionInterval)
	require.True(t, done)
	assert.Equal(t, "second", entry.ID)
	assert.Zero(t, q.Len())
}

func TestTickIdleQueueConsumesTimer(t *testing.T) {
	q := NewQueue(4)
	l := fundedLedger()

	_, done := q.Tick(CompletionInterval)
	assert.False(t, done)

	// The elapsed interval was consumed while idle, so a fresh order still
	// waits the full cadence.
	require.True(t, q.Enqueue(world.Definition{ID: "trooper", Cost: world.Cost{}, IsUnit: true}, l, nil))
	_, done = q.Tick(1.0)
	assert.False(t, done)
	_, done = q.Tick(CompletionInterval - 1.0)
	assert.True(t, done)
}

func TestPendingIsCopy(t *testing.T) {
	q := NewQueue(4)
	l := fundedLedger()
	require.True(t, q.Enqueue(world.Definition{ID: "trooper", Cost: world.Cost{}, IsUnit: true}, l, nil))

	pending := q.Pending()
	pending[0].ID = "mutated"

	assert.Equal(t, "trooper", q.Pending()[0].ID)
}

func TestNewQueueMinimumCapacity(t *testing.T) {
	q := NewQueue(0)
	l := fundedLedger()

	assert.True(t, q.Enqueue(world.Definition{ID: "a", Cost: world.Cost{}}, l, nil))
	assert.False(t, q.Enqueue(world.Definition{ID: "b", Cost: world.Cost{}}, l, nil))
}
