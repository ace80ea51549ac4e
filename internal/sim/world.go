// The simulated world: entity registry, factory, placement rules, resource
// nodes, movement stepping, a crude combat exchange, and generator income.
package sim

import (
	"log/slog"
	"math"

	"github.com/talgya/vanguard/internal/econ"
	"github.com/talgya/vanguard/internal/entropy"
	"github.com/talgya/vanguard/internal/world"
)

// Combat and map tuning for the harness.
const (
	attackRange  = 6.0
	mapHalfSize  = 200.0
	minClearance = 2.0
)

// unitStats is the simulated stat line per trainable unit type.
var unitStats = map[string]struct {
	health, damage, speed float64
}{
	// Strength proxy is health × damage, so a trooper is worth 10 — the
	// controller's aggression-scaled strength targets assume that scale.
	"trooper":    {health: 10, damage: 1.0, speed: 3.0},
	"guardian":   {health: 16, damage: 0.8, speed: 2.2},
	"marauder":   {health: 8, damage: 1.6, speed: 3.6},
	"scout_bike": {health: 5, damage: 0.4, speed: 6.0},
}

// definitions is the entity catalog: costs, prerequisites, footprints.
var definitions = map[string]world.Definition{
	"hq":           {ID: "hq", Cost: world.Cost{}, Footprint: 6, IsUnit: false},
	"commerce_hub": {ID: "commerce_hub", Cost: world.Cost{world.Credits: 800}, Footprint: 4, Requires: "hq"},
	"solar_array":  {ID: "solar_array", Cost: world.Cost{world.Credits: 500}, Footprint: 4, Requires: "hq"},
	"nanite_forge": {ID: "nanite_forge", Cost: world.Cost{world.Credits: 700, world.Energy: 200}, Footprint: 4, Requires: "hq"},
	"data_spire":   {ID: "data_spire", Cost: world.Cost{world.Credits: 600, world.Energy: 150}, Footprint: 3, Requires: "hq"},
	"outpost":      {ID: "outpost", Cost: world.Cost{world.Credits: 1200, world.Nanites: 200}, Footprint: 5, Requires: "hq"},
	"research_lab": {ID: "research_lab", Cost: world.Cost{world.Credits: 1000, world.Energy: 300}, Footprint: 4, Requires: "hq"},

	"trooper":    {ID: "trooper", Cost: world.Cost{world.Credits: 150, world.Energy: 50}, IsUnit: true, Requires: "hq"},
	"guardian":   {ID: "guardian", Cost: world.Cost{world.Credits: 220, world.Energy: 80}, IsUnit: true, Requires: "hq"},
	"marauder":   {ID: "marauder", Cost: world.Cost{world.Credits: 200, world.Energy: 60, world.Nanites: 20}, IsUnit: true, Requires: "hq"},
	"scout_bike": {ID: "scout_bike", Cost: world.Cost{world.Credits: 80, world.Energy: 30}, IsUnit: true, Requires: "hq"},
}

// generatorIncome is resources per second per generator building, scaled by
// building level.
var generatorIncome = map[string]world.Cost{
	"hq":           {world.Credits: 10, world.Energy: 6, world.Data: 1},
	"commerce_hub": {world.Credits: 12},
	"solar_array":  {world.Energy: 10},
	"nanite_forge": {world.Nanites: 4},
	"data_spire":   {world.Data: 3},
	"outpost":      {world.Credits: 4},
}

// LedgerLookup resolves a faction's ledger so generator income can be
// credited. The match runner wires this to the faction registry.
type LedgerLookup func(world.FactionID) *econ.Ledger

// World is the flat simulated battlefield.
type World struct {
	Terrain *world.HeightMap
	Rand    *entropy.Source

	// OnDamage fires when a faction's unit takes damage, with the position
	// of the hit. Wired to Controller.NotifyUnderAttack.
	OnDamage func(victim world.FactionID, pos world.Vec3)

	Ledgers LedgerLookup

	units     []*Unit
	buildings []*Building
	nodes     []world.ResourceNode

	// Kill and loss tallies per faction, for match scoring.
	Kills  map[world.FactionID]int
	Losses map[world.FactionID]int

	incomeAccum float64
}

// NewWorld creates a battlefield for a seed: terrain plus scattered resource
// nodes.
func NewWorld(seed int64) *World {
	w := &World{
		Terrain: world.NewHeightMap(seed),
		Rand:    entropy.NewSource(seed),
		Kills:   make(map[world.FactionID]int),
		Losses:  make(map[world.FactionID]int),
	}
	w.scatterNodes(24)
	return w
}

func (w *World) scatterNodes(count int) {
	kinds := world.Resources()
	for i := 0; i < count; i++ {
		x, z := w.Rand.Offset(mapHalfSize * 0.9)
		w.nodes = append(w.nodes, world.ResourceNode{
			Position: w.Terrain.SurfacePoint(x, z),
			Kind:     kinds[w.Rand.Intn(len(kinds))],
			Amount:   500 + w.Rand.Intn(2000),
		})
	}
}

// AllUnits implements world.Query.
func (w *World) AllUnits() []world.Unit {
	out := make([]world.Unit, 0, len(w.units))
	for _, u := range w.units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// AllBuildings implements world.Query.
func (w *World) AllBuildings() []world.Building {
	out := make([]world.Building, 0, len(w.buildings))
	for _, b := range w.buildings {
		if b.Alive() {
			out = append(out, b)
		}
	}
	return out
}

// AllResourceNodes implements world.NodeQuery.
func (w *World) AllResourceNodes() []world.ResourceNode {
	out := make([]world.ResourceNode, len(w.nodes))
	copy(out, w.nodes)
	return out
}

// DefinitionFor implements world.Factory.
func (w *World) DefinitionFor(id string) (world.Definition, bool) {
	def, ok := definitions[id]
	return def, ok
}

// CreateUnit implements world.Factory. Unknown identifiers return nil.
func (w *World) CreateUnit(id string, pos world.Vec3, owner world.FactionID) world.Unit {
	stats, ok := unitStats[id]
	if !ok {
		return nil
	}
	u := &Unit{
		id:        newID(),
		faction:   owner,
		typeID:    id,
		pos:       pos,
		health:    stats.health,
		maxHealth: stats.health,
		damage:    stats.damage,
		speed:     stats.speed,
	}
	w.units = append(w.units, u)
	return u
}

// CreateBuilding implements world.Factory.
func (w *World) CreateBuilding(id string, pos world.Vec3, owner world.FactionID) world.Building {
	if _, ok := definitions[id]; !ok {
		return nil
	}
	b := &Building{
		id:      newID(),
		faction: owner,
		typeID:  id,
		pos:     pos,
		health:  100,
		level:   1,
	}
	w.buildings = append(w.buildings, b)
	return b
}

// CanPlace implements world.Placement: inside the map, clear of standing
// buildings.
func (w *World) CanPlace(buildingID string, pos world.Vec3) bool {
	if math.Abs(pos.X) > mapHalfSize || math.Abs(pos.Z) > mapHalfSize {
		return false
	}
	footprint := definitions[buildingID].Footprint
	for _, b := range w.buildings {
		if !b.Alive() {
			continue
		}
		clearance := footprint + definitions[b.typeID].Footprint + minClearance
		if b.pos.Dist(pos) < clearance {
			return false
		}
	}
	return true
}

// Step advances the battlefield: movement, the combat exchange, and
// generator income (credited once per whole second).
func (w *World) Step(dt float64) {
	for _, u := range w.units {
		if u.Alive() {
			u.step(dt)
		}
	}

	w.resolveCombat(dt)

	w.incomeAccum += dt
	for w.incomeAccum >= 1.0 {
		w.incomeAccum -= 1.0
		w.applyIncome()
	}

	w.compactDead()
}

// resolveCombat has every unit strike the nearest enemy in range. Crude, but
// enough to exercise retreat and adaptation paths.
func (w *World) resolveCombat(dt float64) {
	for _, u := range w.units {
		if !u.Alive() {
			continue
		}
		target := w.nearestEnemy(u)
		if target == nil || u.pos.Dist(target.pos) > attackRange {
			continue
		}
		target.health -= u.damage * dt
		if w.OnDamage != nil {
			w.OnDamage(target.faction, target.pos)
		}
		if !target.Alive() {
			w.Kills[u.faction]++
			w.Losses[target.faction]++
			slog.Debug("unit destroyed",
				"victim_faction", target.faction, "type", target.typeID,
				"killer_faction", u.faction)
		}
	}
}

func (w *World) nearestEnemy(u *Unit) *Unit {
	var best *Unit
	bestDist := math.MaxFloat64
	for _, other := range w.units {
		if !other.Alive() || other.faction == u.faction {
			continue
		}
		d := u.pos.Dist(other.pos)
		if d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}

func (w *World) applyIncome() {
	if w.Ledgers == nil {
		return
	}
	for _, b := range w.buildings {
		if !b.Alive() {
			continue
		}
		income, ok := generatorIncome[b.typeID]
		if !ok {
			continue
		}
		ledger := w.Ledgers(b.faction)
		if ledger == nil {
			continue
		}
		scaled := make(world.Cost, len(income))
		for kind, amount := range income {
			scaled[kind] = amount * b.level
		}
		ledger.Add(scaled)
	}
}

// compactDead removes dead entities, reverse traversal for index stability.
func (w *World) compactDead() {
	for i := len(w.units) - 1; i >= 0; i-- {
		if !w.units[i].Alive() {
			w.units = append(w.units[:i], w.units[i+1:]...)
		}
	}
	for i := len(w.buildings) - 1; i >= 0; i-- {
		if !w.buildings[i].Alive() {
			w.buildings = append(w.buildings[:i], w.buildings[i+1:]...)
		}
	}
}

// LivingUnits returns how many living units a faction owns.
func (w *World) LivingUnits(id world.FactionID) int {
	n := 0
	for _, u := range w.units {
		if u.Alive() && u.faction == id {
			n++
		}
	}
	return n
}
