// Package econ provides the faction resource ledger: stockpile bookkeeping,
// afford/spend/add, desired-amount targets, and the economy-strength gauge
// the decision engine reads.
package econ

import (
	"log/slog"

	"github.com/talgya/vanguard/internal/world"
)

// economyCeiling is the flat stockpile total treated as a "full" economy.
// EconomyStrength divides by this, not by per-resource targets.
const economyCeiling = 10000

// desiredAmounts are the per-kind stockpile targets every "do we need more X"
// decision compares against.
var desiredAmounts = map[world.Resource]int{
	world.Credits: 5000,
	world.Energy:  3000,
	world.Nanites: 1000,
	world.Data:    500,
}

// defaultDesired covers kinds missing from the table.
const defaultDesired = 1000

// ChangeFunc observes stockpile mutations: the kind touched and its new total.
type ChangeFunc func(kind world.Resource, amount int)

// Ledger tracks a faction's stockpile per resource kind. Every enumerated
// kind is always present as a key (default 0).
type Ledger struct {
	stock    map[world.Resource]int
	onChange []ChangeFunc
}

// NewLedger creates a ledger with every resource kind keyed at zero.
func NewLedger() *Ledger {
	stock := make(map[world.Resource]int, len(world.Resources()))
	for _, kind := range world.Resources() {
		stock[kind] = 0
	}
	return &Ledger{stock: stock}
}

// OnChange registers an observer for stockpile mutations.
func (l *Ledger) OnChange(fn ChangeFunc) {
	l.onChange = append(l.onChange, fn)
}

// Amount returns the current stockpile for a kind.
func (l *Ledger) Amount(kind world.Resource) int {
	return l.stock[kind]
}

// CanAfford reports whether every kind in cost is stocked at or above the
// required amount. A kind absent from the stockpile is insufficient.
func (l *Ledger) CanAfford(cost world.Cost) bool {
	for kind, amount := range cost {
		have, ok := l.stock[kind]
		if !ok || have < amount {
			return false
		}
	}
	return true
}

// Spend deducts cost from the stockpile. Spend does not gate on CanAfford —
// that check is the caller's precondition — but it clamps each kind at zero
// rather than going negative, and reports whether the full amount was
// covered.
func (l *Ledger) Spend(cost world.Cost) bool {
	covered := true
	for kind, amount := range cost {
		have, ok := l.stock[kind]
		if !ok {
			continue
		}
		if have < amount {
			slog.Warn("stockpile deficiency on spend",
				"kind", kind, "have", have, "needed", amount)
			amount = have
			covered = false
		}
		l.stock[kind] = have - amount
		l.notify(kind)
	}
	return covered
}

// Add credits amounts to the stockpile. Kinds not already present are
// ignored, matching Spend.
func (l *Ledger) Add(income world.Cost) {
	for kind, amount := range income {
		if _, ok := l.stock[kind]; !ok {
			continue
		}
		l.stock[kind] += amount
		l.notify(kind)
	}
}

// DesiredAmount returns the target stockpile for a kind.
func DesiredAmount(kind world.Resource) int {
	if d, ok := desiredAmounts[kind]; ok {
		return d
	}
	return defaultDesired
}

// Need returns how far a kind is below its target, in [0, 1]:
// 1 − stock/desired, clamped. 0 means the target is met or exceeded.
func (l *Ledger) Need(kind world.Resource) float64 {
	desired := DesiredAmount(kind)
	return world.Clamp01(1.0 - float64(l.stock[kind])/float64(desired))
}

// Needs returns the need ratio for every stocked kind.
func (l *Ledger) Needs() map[world.Resource]float64 {
	needs := make(map[world.Resource]float64, len(l.stock))
	for kind := range l.stock {
		needs[kind] = l.Need(kind)
	}
	return needs
}

// EconomyStrength gauges the whole economy in [0, 1] as the stockpile total
// over a flat ceiling. Deliberately not normalized per-kind: a Credits glut
// reads as strength even while Data runs dry — Need covers the per-kind view.
func (l *Ledger) EconomyStrength() float64 {
	total := 0
	for _, amount := range l.stock {
		total += amount
	}
	return world.Clamp01(float64(total) / economyCeiling)
}

// Snapshot returns a copy of the stockpile for reporting.
func (l *Ledger) Snapshot() map[world.Resource]int {
	out := make(map[world.Resource]int, len(l.stock))
	for kind, amount := range l.stock {
		out[kind] = amount
	}
	return out
}

func (l *Ledger) notify(kind world.Resource) {
	for _, fn := range l.onChange {
		fn(kind, l.stock[kind])
	}
}
