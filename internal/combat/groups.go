// Package combat manages named unit groups: formation, membership, shared
// orders, retreat, and dissolution once the last member is gone.
package combat

import (
	"fmt"
	"log/slog"

	"github.com/talgya/vanguard/internal/world"
)

// GroupKind classifies what a group is for.
type GroupKind string

const (
	GroupAttack  GroupKind = "attack"
	GroupDefense GroupKind = "defense"
	GroupScout   GroupKind = "scout"
)

// GroupState is the group lifecycle: Forming → Active → Dissolved.
type GroupState string

const (
	StateForming   GroupState = "forming"
	StateActive    GroupState = "active"
	StateDissolved GroupState = "dissolved"
)

// Formation caps per group kind.
const (
	DefenseGroupSize = 3
	AttackGroupSize  = 5
	ScoutGroupSize   = 2
)

// Group is a named set of units pursuing one shared objective. A unit belongs
// to at most one group at a time — a caller invariant, not enforced here.
type Group struct {
	Name      string
	Kind      GroupKind
	State     GroupState
	Objective string

	Position world.Vec3 // centroid of living members

	// Target drives orders; TargetPosition is the display copy. Both are set
	// together by SetAttackTarget and Retreat. The origin means "no target".
	Target         world.Vec3
	TargetPosition world.Vec3

	units []world.Unit
}

// Units returns the current membership.
func (g *Group) Units() []world.Unit { return g.units }

// Size returns the current member count.
func (g *Group) Size() int { return len(g.units) }

// AddUnit adds a unit to the group. Idempotent — a member is never added
// twice. The group goes Active on its first member.
func (g *Group) AddUnit(u world.Unit) {
	if u == nil {
		return
	}
	for _, m := range g.units {
		if m.ID() == u.ID() {
			return
		}
	}
	g.units = append(g.units, u)
	if g.State == StateForming {
		g.State = StateActive
	}
}

// RemoveUnit removes a unit from the group. Idempotent.
func (g *Group) RemoveUnit(id string) {
	for i, m := range g.units {
		if m.ID() == id {
			g.units = append(g.units[:i], g.units[i+1:]...)
			return
		}
	}
}

// SetAttackTarget points the group at a position, updating both the order
// target and the display copy.
func (g *Group) SetAttackTarget(pos world.Vec3) {
	g.Target = pos
	g.TargetPosition = pos
}

// ExecuteOrders propagates the current target as a movement destination to
// every member. A zero target issues nothing.
func (g *Group) ExecuteOrders() {
	if g.Target.IsZero() {
		return
	}
	for _, u := range g.units {
		u.MoveTo(g.Target)
	}
}

// Retreat overrides the target with a fallback position and re-issues
// movement orders immediately.
func (g *Group) Retreat(to world.Vec3) {
	g.SetAttackTarget(to)
	g.ExecuteOrders()
}

// AverageHealth returns the mean health of living members, 0 for an empty
// group.
func (g *Group) AverageHealth() float64 {
	if len(g.units) == 0 {
		return 0
	}
	total := 0.0
	for _, u := range g.units {
		total += u.Health()
	}
	return total / float64(len(g.units))
}

// Strength returns the group's health × damage total.
func (g *Group) Strength() float64 {
	total := 0.0
	for _, u := range g.units {
		if u.Alive() {
			total += u.Health() * u.Damage()
		}
	}
	return total
}

// Manager owns a faction's groups while they are non-empty.
type Manager struct {
	faction world.FactionID
	groups  []*Group
	seq     int
}

// NewManager creates a group manager for a faction.
func NewManager(faction world.FactionID) *Manager {
	return &Manager{faction: faction}
}

// Groups returns the live group list.
func (m *Manager) Groups() []*Group { return m.groups }

// ActiveCount returns how many groups are currently alive.
func (m *Manager) ActiveCount() int { return len(m.groups) }

// Find returns a group by name, or nil.
func (m *Manager) Find(name string) *Group {
	for _, g := range m.groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// FirstOfKind returns the oldest live group of a kind, or nil.
func (m *Manager) FirstOfKind(kind GroupKind) *Group {
	for _, g := range m.groups {
		if g.Kind == kind {
			return g
		}
	}
	return nil
}

// CreateGroup starts a new forming group.
func (m *Manager) CreateGroup(kind GroupKind, objective string) *Group {
	m.seq++
	g := &Group{
		Name:      fmt.Sprintf("%s-%d", kind, m.seq),
		Kind:      kind,
		State:     StateForming,
		Objective: objective,
	}
	m.groups = append(m.groups, g)
	return g
}

// FormDefenseGroup assembles up to DefenseGroupSize idle units and sends them
// to hold an outpost.
func (m *Manager) FormDefenseGroup(idle []world.Unit, outpost world.Vec3) *Group {
	g := m.CreateGroup(GroupDefense, "Defend outpost")
	for i, u := range idle {
		if i >= DefenseGroupSize {
			break
		}
		g.AddUnit(u)
		u.MoveTo(outpost)
	}
	g.Position = outpost
	slog.Info("defense group formed",
		"faction", m.faction, "group", g.Name, "units", g.Size())
	return g
}

// FormAttackGroup assembles up to AttackGroupSize idle units with a patrol
// objective and marches them toward home — a placeholder posture until a real
// target is assigned by a launched attack.
func (m *Manager) FormAttackGroup(idle []world.Unit, home world.Vec3) *Group {
	g := m.CreateGroup(GroupAttack, "Patrol")
	for i, u := range idle {
		if i >= AttackGroupSize {
			break
		}
		g.AddUnit(u)
	}
	g.SetAttackTarget(home)
	g.ExecuteOrders()
	slog.Info("attack group formed",
		"faction", m.faction, "group", g.Name, "units", g.Size())
	return g
}

// FormScoutGroup sends up to ScoutGroupSize idle units toward a point of
// interest.
func (m *Manager) FormScoutGroup(idle []world.Unit, toward world.Vec3) *Group {
	g := m.CreateGroup(GroupScout, "Scout")
	for i, u := range idle {
		if i >= ScoutGroupSize {
			break
		}
		g.AddUnit(u)
	}
	g.SetAttackTarget(toward)
	g.ExecuteOrders()
	return g
}

// InGroup reports whether a unit ID is a member of any live group.
func (m *Manager) InGroup(id string) bool {
	for _, g := range m.groups {
		for _, u := range g.units {
			if u.ID() == id {
				return true
			}
		}
	}
	return false
}

// Update drops dead members, refreshes centroids, and dissolves groups whose
// membership reached zero. Reverse traversal keeps removal index-stable.
func (m *Manager) Update() {
	for i := len(m.groups) - 1; i >= 0; i-- {
		g := m.groups[i]

		for j := len(g.units) - 1; j >= 0; j-- {
			if !g.units[j].Alive() {
				g.units = append(g.units[:j], g.units[j+1:]...)
			}
		}

		if len(g.units) == 0 {
			g.State = StateDissolved
			m.groups = append(m.groups[:i], m.groups[i+1:]...)
			slog.Debug("group dissolved", "faction", m.faction, "group", g.Name)
			continue
		}

		var sum world.Vec3
		for _, u := range g.units {
			sum = sum.Add(u.Position())
		}
		n := float64(len(g.units))
		g.Position = world.Vec3{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}
	}
}
