// Package intel tracks what a faction knows about its opponents and the map:
// last known enemy positions and strength estimates, plus scouted resource
// nodes. Knowledge is a snapshot — possibly stale between refreshes.
package intel

import (
	"log/slog"
	"sort"

	"github.com/talgya/vanguard/internal/world"
)

// EnemyIntel is the cached picture of one hostile faction.
type EnemyIntel struct {
	Faction            world.FactionID
	LastPosition       world.Vec3
	LastUpdate         float64 // sim-time seconds of the last sighting
	EstimatedStrength  float64
	KnownUnitTypes     []string
	KnownBuildingTypes []string
}

// NodeIntel is a scouted resource deposit.
type NodeIntel struct {
	Position  world.Vec3
	Kind      world.Resource
	Amount    int
	Harvested bool
}

// Tracker holds one faction's intelligence picture.
type Tracker struct {
	owner   world.FactionID
	enemies map[world.FactionID]*EnemyIntel
	nodes   map[world.Vec3]*NodeIntel

	unitTypes     map[world.FactionID]map[string]bool
	buildingTypes map[world.FactionID]map[string]bool
}

// NewTracker creates an empty intelligence picture for a faction.
func NewTracker(owner world.FactionID) *Tracker {
	return &Tracker{
		owner:         owner,
		enemies:       make(map[world.FactionID]*EnemyIntel),
		nodes:         make(map[world.Vec3]*NodeIntel),
		unitTypes:     make(map[world.FactionID]map[string]bool),
		buildingTypes: make(map[world.FactionID]map[string]bool),
	}
}

// Refresh rescans the world and replaces the per-faction position/strength
// snapshot. Type knowledge accumulates across refreshes — a unit once seen
// stays known. now is sim-time seconds.
func (t *Tracker) Refresh(q world.Query, now float64) {
	type sighting struct {
		strength float64
		posSum   world.Vec3
		count    int
	}
	seen := make(map[world.FactionID]*sighting)

	for _, u := range q.AllUnits() {
		if u.Faction() == t.owner || !u.Alive() {
			continue
		}
		s := seen[u.Faction()]
		if s == nil {
			s = &sighting{}
			seen[u.Faction()] = s
		}
		// Strength proxy: remaining health × damage output.
		s.strength += u.Health() * u.Damage()
		s.posSum = s.posSum.Add(u.Position())
		s.count++
		t.learnUnitType(u.Faction(), u.TypeID())
	}

	for _, b := range q.AllBuildings() {
		if b.Faction() == t.owner || !b.Alive() {
			continue
		}
		t.learnBuildingType(b.Faction(), b.TypeID())
	}

	for fid, s := range seen {
		e := t.enemies[fid]
		if e == nil {
			e = &EnemyIntel{Faction: fid}
			t.enemies[fid] = e
			slog.Debug("new hostile faction sighted", "owner", t.owner, "faction", fid)
		}
		centroid := world.Vec3{
			X: s.posSum.X / float64(s.count),
			Y: s.posSum.Y / float64(s.count),
			Z: s.posSum.Z / float64(s.count),
		}
		e.LastPosition = centroid
		e.LastUpdate = now
		e.EstimatedStrength = s.strength
		e.KnownUnitTypes = sortedKeys(t.unitTypes[fid])
		e.KnownBuildingTypes = sortedKeys(t.buildingTypes[fid])
	}
	// Factions with no sighting this pass keep their stale entry — knowledge
	// persists until explicitly pruned.
}

// TotalEnemyStrength sums the per-faction strength estimates.
func (t *Tracker) TotalEnemyStrength() float64 {
	total := 0.0
	for _, e := range t.enemies {
		total += e.EstimatedStrength
	}
	return total
}

// StrengthRatio compares our strength against the estimated enemy total.
// The denominator is floored at 1 so an unscouted map reads as dominance,
// not a division blowup.
func (t *Tracker) StrengthRatio(ourStrength float64) float64 {
	enemy := t.TotalEnemyStrength()
	if enemy < 1.0 {
		enemy = 1.0
	}
	return ourStrength / enemy
}

// Enemies returns the current per-faction intel records.
func (t *Tracker) Enemies() []*EnemyIntel {
	out := make([]*EnemyIntel, 0, len(t.enemies))
	for _, e := range t.enemies {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Faction < out[j].Faction })
	return out
}

// EnemyPositions returns the last known position of every tracked faction.
func (t *Tracker) EnemyPositions() []world.Vec3 {
	out := make([]world.Vec3, 0, len(t.enemies))
	for _, e := range t.Enemies() {
		out = append(out, e.LastPosition)
	}
	return out
}

// StrongestEnemy returns the intel record with the highest strength estimate,
// or nil when nothing has been sighted.
func (t *Tracker) StrongestEnemy() *EnemyIntel {
	var best *EnemyIntel
	for _, e := range t.Enemies() {
		if best == nil || e.EstimatedStrength > best.EstimatedStrength {
			best = e
		}
	}
	return best
}

// Prune drops intel older than maxAge seconds. Never called implicitly.
func (t *Tracker) Prune(now, maxAge float64) {
	for fid, e := range t.enemies {
		if now-e.LastUpdate > maxAge {
			delete(t.enemies, fid)
		}
	}
}

// ObserveNode records a scouted resource deposit, keyed by position.
func (t *Tracker) ObserveNode(n world.ResourceNode) {
	existing := t.nodes[n.Position]
	if existing == nil {
		t.nodes[n.Position] = &NodeIntel{
			Position: n.Position, Kind: n.Kind, Amount: n.Amount, Harvested: n.Harvested,
		}
		return
	}
	existing.Amount = n.Amount
	existing.Harvested = n.Harvested
}

// Nodes returns every scouted deposit.
func (t *Tracker) Nodes() []*NodeIntel {
	out := make([]*NodeIntel, 0, len(t.nodes))
	for _, n := range t.nodes {
		out = append(out, n)
	}
	return out
}

// UnscoutedNode returns a known, unharvested deposit farthest from home —
// scout groups head there. Nil when everything known is harvested.
func (t *Tracker) UnscoutedNode(home world.Vec3) *NodeIntel {
	var best *NodeIntel
	bestDist := -1.0
	for _, n := range t.nodes {
		if n.Harvested {
			continue
		}
		d := n.Position.Dist(home)
		if d > bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func (t *Tracker) learnUnitType(fid world.FactionID, typeID string) {
	if t.unitTypes[fid] == nil {
		t.unitTypes[fid] = make(map[string]bool)
	}
	t.unitTypes[fid][typeID] = true
}

func (t *Tracker) learnBuildingType(fid world.FactionID, typeID string) {
	if t.buildingTypes[fid] == nil {
		t.buildingTypes[fid] = make(map[string]bool)
	}
	t.buildingTypes[fid][typeID] = true
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
