// Package production provides the bounded construction queue. Costs are paid
// at enqueue time; completion runs on one coarse global timer rather than
// per-item build durations.
package production

import (
	"log/slog"

	"github.com/talgya/vanguard/internal/econ"
	"github.com/talgya/vanguard/internal/world"
)

// CompletionInterval is the global production cadence: one queued item
// finishes roughly every 10 seconds of sim time, regardless of what it is.
const CompletionInterval = 10.0

// Entry is one pending construction order. Its cost was already deducted.
type Entry struct {
	ID     string
	Cost   world.Cost
	IsUnit bool
}

// Queue is a bounded FIFO of pending construction. Oldest completes first.
type Queue struct {
	max     int
	entries []Entry
	timer   float64
}

// NewQueue creates a queue holding at most max entries.
func NewQueue(max int) *Queue {
	if max < 1 {
		max = 1
	}
	return &Queue{max: max}
}

// Len returns the number of pending entries.
func (q *Queue) Len() int { return len(q.entries) }

// Full reports whether the queue is at capacity.
func (q *Queue) Full() bool { return len(q.entries) >= q.max }

// Pending returns a copy of the queue contents, oldest first.
func (q *Queue) Pending() []Entry {
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Enqueue reserves production of an entity. It fails without mutating
// anything when the queue is full, the required building is missing, or the
// cost is not covered. On success the cost is spent immediately.
func (q *Queue) Enqueue(def world.Definition, ledger *econ.Ledger, hasBuilding func(typeID string) bool) bool {
	if q.Full() {
		slog.Debug("production queue full", "id", def.ID, "len", len(q.entries))
		return false
	}
	if def.Requires != "" && (hasBuilding == nil || !hasBuilding(def.Requires)) {
		slog.Debug("production prerequisite missing", "id", def.ID, "requires", def.Requires)
		return false
	}
	if !ledger.CanAfford(def.Cost) {
		slog.Debug("production unaffordable", "id", def.ID)
		return false
	}

	ledger.Spend(def.Cost)
	q.entries = append(q.entries, Entry{ID: def.ID, Cost: def.Cost, IsUnit: def.IsUnit})
	return true
}

// Tick advances the completion timer by dt seconds. When the timer elapses
// and the queue is non-empty, the head entry is dequeued and returned.
func (q *Queue) Tick(dt float64) (Entry, bool) {
	q.timer += dt
	if q.timer < CompletionInterval {
		return Entry{}, false
	}
	q.timer -= CompletionInterval
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head, true
}
