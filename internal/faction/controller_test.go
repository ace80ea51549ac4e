package faction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/vanguard/internal/combat"
	"github.com/talgya/vanguard/internal/entropy"
	"github.com/talgya/vanguard/internal/faction"
	"github.com/talgya/vanguard/internal/profile"
	"github.com/talgya/vanguard/internal/sim"
	"github.com/talgya/vanguard/internal/world"
)

// harness wires a controller to the in-process sim world, terrain omitted so
// positions stay on the flat plane and distances are exact.
func newHarness(t *testing.T, arch string) (*faction.Controller, *sim.World) {
	t.Helper()
	battlefield := sim.NewWorld(1)
	deps := faction.Deps{
		Factory:   battlefield,
		Placement: battlefield,
		Query:     battlefield,
		Nodes:     battlefield,
		Rand:      entropy.NewSource(1),
	}
	c := faction.NewController(1, "test-1", profile.ByArchetype(arch), deps, nil)
	return c, battlefield
}

func TestEstablishBaseActivates(t *testing.T) {
	c, _ := newHarness(t, profile.ArchBalanced)
	assert.False(t, c.Active())

	c.EstablishBase(world.Vec3{X: 10, Z: 20}, world.Cost{world.Credits: 2000})

	assert.True(t, c.Active())
	assert.Equal(t, world.Vec3{X: 10, Z: 20}, c.Home())
	assert.Equal(t, 2000, c.Ledger.Amount(world.Credits))

	// The starting grant fires resource_changed before the base event lands.
	events := c.RecentEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, faction.EventResourceChanged, events[0].Type)
	assert.Equal(t, faction.EventBaseEstablished, events[len(events)-1].Type)
}

func TestTickInactiveIsNoop(t *testing.T) {
	c, _ := newHarness(t, profile.ArchBalanced)
	c.Tick(10.0)
	assert.Zero(t, c.Clock())
}

func TestThreatLevelFromProximity(t *testing.T) {
	c, battlefield := newHarness(t, profile.ArchBalanced)
	c.EstablishBase(world.Vec3{}, world.Cost{})

	// One enemy 15 units out: pressure is (30−15)/30.
	battlefield.CreateUnit("trooper", world.Vec3{X: 15}, 2)
	c.Tick(5.0) // crosses the intelligence cadence

	assert.InDelta(t, 0.5, c.ThreatLevel(), 1e-9)
}

func TestEconomicDecisionQueuesGenerator(t *testing.T) {
	c, battlefield := newHarness(t, profile.ArchBalanced)
	c.EstablishBase(world.Vec3{}, world.Cost{world.Credits: 1000})
	battlefield.CreateBuilding("hq", c.Home(), 1)

	// Credits sit at 20% of target, so the credit generator goes up first.
	c.Tick(3.0)

	pending := c.Queue.Pending()
	require.NotEmpty(t, pending)
	assert.Equal(t, "commerce_hub", pending[0].ID)
	assert.Equal(t, 200, c.Ledger.Amount(world.Credits), "cost is sunk at enqueue")
}

func TestTrainsDefensiveUnitsUnderThreat(t *testing.T) {
	c, battlefield := newHarness(t, profile.ArchBalanced)
	c.EstablishBase(world.Vec3{}, world.Cost{
		world.Credits: 5000, world.Energy: 2000, world.Nanites: 500,
	})
	battlefield.CreateBuilding("hq", c.Home(), 1)
	battlefield.CreateUnit("trooper", world.Vec3{X: 3}, 2)

	c.Tick(5.0)

	var ids []string
	for _, e := range c.Queue.Pending() {
		ids = append(ids, e.ID)
	}
	assert.Contains(t, ids, "guardian", "high threat picks the defensive unit")
	assert.NotContains(t, ids, "marauder")
}

func TestProductionSpawnsQueuedUnit(t *testing.T) {
	c, battlefield := newHarness(t, profile.ArchBalanced)
	c.EstablishBase(world.Vec3{}, world.Cost{world.Credits: 400, world.Energy: 100})
	battlefield.CreateBuilding("hq", c.Home(), 1)

	for i := 0; i < 13; i++ {
		c.Tick(1.0)
	}

	assert.Equal(t, 1, battlefield.LivingUnits(1), "one completion interval elapsed")

	var types []faction.EventType
	for _, e := range c.RecentEvents() {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, faction.EventUnitCreated)
}

func TestResearchLifecycle(t *testing.T) {
	c, battlefield := newHarness(t, profile.ArchTechnologist)
	c.EstablishBase(world.Vec3{}, world.Cost{world.Data: 200})
	battlefield.CreateBuilding("research_lab", c.Home(), 1)

	for i := 0; i < 8; i++ {
		c.Tick(5.0)
	}

	// Technologist's aggression edges out its economy focus, so the weapons
	// track starts, costs 100 Data, and lands after 30 sim-seconds.
	assert.Equal(t, []string{"weapons_program"}, c.CompletedResearch())
	assert.Equal(t, 100, c.Ledger.Amount(world.Data))

	var types []faction.EventType
	for _, e := range c.RecentEvents() {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, faction.EventResearchDone)
}

func TestFormsAttackGroupFromIdleUnits(t *testing.T) {
	c, battlefield := newHarness(t, profile.ArchBalanced)
	c.EstablishBase(world.Vec3{}, world.Cost{})
	for i := 0; i < 6; i++ {
		battlefield.CreateUnit("trooper", world.Vec3{X: float64(i)}, 1)
	}

	c.Tick(3.0)

	assert.Equal(t, 1, c.Groups.ActiveCount())
	g := c.Groups.FirstOfKind(combat.GroupAttack)
	require.NotNil(t, g, "no threat and an aggressive lean forms an attack group")
	assert.Equal(t, combat.AttackGroupSize, g.Size())
	assert.Len(t, c.IdleUnits(), 1, "the overflow unit stays idle")
}

func TestNotifyUnderAttack(t *testing.T) {
	c, _ := newHarness(t, profile.ArchBalanced)

	c.NotifyUnderAttack(world.Vec3{X: 5})
	assert.Empty(t, c.RecentEvents(), "inactive factions ignore contact reports")

	c.EstablishBase(world.Vec3{}, world.Cost{})
	c.NotifyUnderAttack(world.Vec3{X: 5})

	events := c.RecentEvents()
	last := events[len(events)-1]
	assert.Equal(t, faction.EventUnderAttack, last.Type)
	assert.Equal(t, world.Vec3{X: 5}, last.Position)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	c, _ := newHarness(t, profile.ArchBalanced)
	var got []faction.EventType
	c.Subscribe(func(e faction.Event) { got = append(got, e.Type) })

	c.EstablishBase(world.Vec3{}, world.Cost{world.Credits: 100})

	assert.Contains(t, got, faction.EventBaseEstablished)
	assert.Contains(t, got, faction.EventResourceChanged)
}

func TestRegistry(t *testing.T) {
	battlefield := sim.NewWorld(1)
	reg := faction.NewRegistry()
	deps := faction.Deps{Factory: battlefield, Query: battlefield, Rand: entropy.NewSource(1)}

	a := faction.NewController(1, "a", profile.ByArchetype(profile.ArchRusher), deps, reg)
	b := faction.NewController(2, "b", profile.ByArchetype(profile.ArchTurtle), deps, reg)
	a.EstablishBase(world.Vec3{}, world.Cost{})
	b.EstablishBase(world.Vec3{X: 100}, world.Cost{})

	assert.Len(t, reg.All(), 2)
	assert.Same(t, b, reg.ByID(2))
	assert.Nil(t, reg.ByID(99))

	reg.Tick(1.0)
	assert.Equal(t, 1.0, a.Clock())
	assert.Equal(t, 1.0, b.Clock())
}
