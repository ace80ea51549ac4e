package combat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/vanguard/internal/world"
)

// fakeUnit records movement orders so tests can inspect what a group issued.
type fakeUnit struct {
	id     string
	pos    world.Vec3
	health float64
	damage float64
	dest   world.Vec3
	moves  int
}

func newFakeUnit(i int, pos world.Vec3) *fakeUnit {
	return &fakeUnit{id: fmt.Sprintf("u-%d", i), pos: pos, health: 10, damage: 1.0}
}

func (f *fakeUnit) ID() string                    { return f.id }
func (f *fakeUnit) Faction() world.FactionID      { return 1 }
func (f *fakeUnit) Position() world.Vec3          { return f.pos }
func (f *fakeUnit) TypeID() string                { return "trooper" }
func (f *fakeUnit) Health() float64               { return f.health }
func (f *fakeUnit) MaxHealth() float64            { return 10 }
func (f *fakeUnit) Damage() float64               { return f.damage }
func (f *fakeUnit) Alive() bool                   { return f.health > 0 }
func (f *fakeUnit) MoveTo(pos world.Vec3)         { f.dest = pos; f.moves++ }
func (f *fakeUnit) SetDestination(pos world.Vec3) { f.dest = pos }
func (f *fakeUnit) IsMoving() bool                { return f.moves > 0 }

func idleUnits(n int) []world.Unit {
	out := make([]world.Unit, n)
	for i := range out {
		out[i] = newFakeUnit(i, world.Vec3{X: float64(i)})
	}
	return out
}

func TestAddUnitIdempotent(t *testing.T) {
	m := NewManager(1)
	g := m.CreateGroup(GroupAttack, "Patrol")
	u := newFakeUnit(0, world.Vec3{})

	assert.Equal(t, StateForming, g.State)

	g.AddUnit(u)
	g.AddUnit(u)

	assert.Equal(t, 1, g.Size())
	assert.Equal(t, StateActive, g.State)
}

func TestExecuteOrdersWithoutTarget(t *testing.T) {
	m := NewManager(1)
	g := m.CreateGroup(GroupDefense, "Defend outpost")
	u := newFakeUnit(0, world.Vec3{X: 5})
	g.AddUnit(u)

	g.ExecuteOrders()
	assert.Zero(t, u.moves, "a zero target must not issue movement")

	g.SetAttackTarget(world.Vec3{X: 40})
	g.ExecuteOrders()
	assert.Equal(t, 1, u.moves)
	assert.Equal(t, world.Vec3{X: 40}, u.dest)
}

func TestFormDefenseGroupHoldsOutpost(t *testing.T) {
	m := NewManager(1)
	idle := idleUnits(5)
	outpost := world.Vec3{X: 60, Z: 10}

	g := m.FormDefenseGroup(idle, outpost)

	assert.Equal(t, DefenseGroupSize, g.Size())
	assert.Equal(t, outpost, g.Position)
	// Members march to the outpost but the group carries no attack target, so
	// later ExecuteOrders passes leave them in place.
	assert.True(t, g.Target.IsZero())
	for _, u := range idle[:DefenseGroupSize] {
		assert.Equal(t, outpost, u.(*fakeUnit).dest)
	}
	assert.Zero(t, idle[DefenseGroupSize].(*fakeUnit).moves, "overflow units stay idle")
}

func TestFormAttackGroupPatrolsHome(t *testing.T) {
	m := NewManager(1)
	idle := idleUnits(AttackGroupSize + 2)
	home := world.Vec3{X: -100}

	g := m.FormAttackGroup(idle, home)

	assert.Equal(t, AttackGroupSize, g.Size())
	assert.Equal(t, "Patrol", g.Objective)
	assert.Equal(t, home, g.Target)
	for _, u := range idle[:AttackGroupSize] {
		assert.Equal(t, home, u.(*fakeUnit).dest)
	}
}

func TestFormScoutGroupSize(t *testing.T) {
	m := NewManager(1)
	idle := idleUnits(4)

	g := m.FormScoutGroup(idle, world.Vec3{X: 150})

	assert.Equal(t, ScoutGroupSize, g.Size())
	assert.Equal(t, world.Vec3{X: 150}, g.Target)
}

func TestRetreatReissuesOrders(t *testing.T) {
	m := NewManager(1)
	g := m.FormAttackGroup(idleUnits(3), world.Vec3{X: 100})
	fallback := world.Vec3{X: -100}

	g.Retreat(fallback)

	assert.Equal(t, fallback, g.Target)
	assert.Equal(t, fallback, g.TargetPosition)
	for _, u := range g.Units() {
		assert.Equal(t, fallback, u.(*fakeUnit).dest)
	}
}

func TestInGroup(t *testing.T) {
	m := NewManager(1)
	idle := idleUnits(4)
	m.FormDefenseGroup(idle, world.Vec3{X: 10})

	assert.True(t, m.InGroup(idle[0].ID()))
	assert.False(t, m.InGroup(idle[3].ID()))
}

func TestUpdateDropsDeadAndDissolves(t *testing.T) {
	m := NewManager(1)
	idle := idleUnits(3)
	g := m.FormDefenseGroup(idle, world.Vec3{})
	require.Equal(t, 3, g.Size())

	idle[0].(*fakeUnit).health = 0
	m.Update()
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, 1, m.ActiveCount())

	for _, u := range idle {
		u.(*fakeUnit).health = 0
	}
	m.Update()
	assert.Equal(t, StateDissolved, g.State)
	assert.Zero(t, m.ActiveCount())
	assert.False(t, m.InGroup(idle[1].ID()))
}

func TestUpdateRecomputesCentroid(t *testing.T) {
	m := NewManager(1)
	g := m.CreateGroup(GroupAttack, "Patrol")
	g.AddUnit(newFakeUnit(0, world.Vec3{X: 0, Z: 0}))
	g.AddUnit(newFakeUnit(1, world.Vec3{X: 10, Z: 20}))

	m.Update()

	assert.InDelta(t, 5.0, g.Position.X, 1e-9)
	assert.InDelta(t, 10.0, g.Position.Z, 1e-9)
}

func TestGroupHealthAndStrength(t *testing.T) {
	g := &Group{}
	assert.Zero(t, g.AverageHealth())

	a := newFakeUnit(0, world.Vec3{})
	b := newFakeUnit(1, world.Vec3{})
	b.health = 4
	g.AddUnit(a)
	g.AddUnit(b)

	assert.InDelta(t, 7.0, g.AverageHealth(), 1e-9)
	assert.InDelta(t, 10*1.0+4*1.0, g.Strength(), 1e-9)
}

func TestFirstOfKind(t *testing.T) {
	m := NewManager(1)
	assert.Nil(t, m.FirstOfKind(GroupAttack))

	m.FormDefenseGroup(idleUnits(3), world.Vec3{})
	first := m.FormAttackGroup(idleUnits(5), world.Vec3{})
	m.FormAttackGroup(idleUnits(5), world.Vec3{})

	assert.Same(t, first, m.FirstOfKind(GroupAttack))
	assert.Equal(t, "attack-2", first.Name)
}
