// Decision functions evaluated each reaction interval, in fixed order:
// economic, military, expansion, research. Each gates on an explicit
// precondition and silently skips when it fails — a skipped decision is
// simply re-attempted next interval.
package faction

import (
	"fmt"
	"log/slog"

	"github.com/talgya/vanguard/internal/combat"
	"github.com/talgya/vanguard/internal/production"
	"github.com/talgya/vanguard/internal/profile"
	"github.com/talgya/vanguard/internal/world"
)

// generatorFor maps each resource kind to the building that produces it.
var generatorFor = map[world.Resource]string{
	world.Credits: "commerce_hub",
	world.Energy:  "solar_array",
	world.Nanites: "nanite_forge",
	world.Data:    "data_spire",
}

// Trainable unit identifiers.
const (
	unitTrooper  = "trooper"   // balanced default
	unitGuardian = "guardian"  // defensive, picked under threat
	unitMarauder = "marauder"  // aggressive shock unit
	unitScout    = "scout_bike"

	buildingOutpost     = "outpost"
	buildingResearchLab = "research_lab"
)

// Research tracks.
const (
	techEfficiency = "efficiency_protocols"
	techWeapons    = "weapons_program"
)

// evaluateEconomy builds a generator for the neediest starved resource and
// occasionally upgrades a building when the economy is flush and quiet.
func (c *Controller) evaluateEconomy() {
	// A kind below 30% of its desired amount reads as need > 0.7.
	for _, kind := range world.Resources() {
		if c.Ledger.Need(kind) <= 0.7 {
			continue
		}
		id, ok := generatorFor[kind]
		if !ok {
			continue
		}
		if c.enqueueBuild(id) {
			slog.Debug("queued resource generator",
				"faction", c.Name, "kind", kind, "building", id)
		}
		break // one generator per pass
	}

	if c.Ledger.EconomyStrength() > 0.7 && c.ThreatLevel() < 0.3 {
		c.upgradeRandomBuilding()
	}
}

func (c *Controller) upgradeRandomBuilding() {
	buildings := c.OwnedBuildings()
	if len(buildings) == 0 || c.deps.Rand == nil {
		return
	}
	b := buildings[c.deps.Rand.Intn(len(buildings))]
	up, ok := b.(world.Upgradable)
	if !ok {
		return
	}
	if up.Upgrade() {
		slog.Debug("building upgraded", "faction", c.Name, "building", b.TypeID())
	}
}

// evaluateMilitary trains units up to the aggression-scaled strength target,
// forms combat groups from idle units, dispatches scouts, and launches
// attacks when the balance of power allows.
func (c *Controller) evaluateMilitary() {
	owned := c.OwnedUnits()
	strength := c.MilitaryStrength()
	threat := c.ThreatLevel()

	if strength < c.Profile.CurrentAggression*100 && len(owned) < maxOwnedUnits {
		c.trainUnits(threat)
	}

	idle := c.IdleUnits()
	if len(idle) >= minGroupIdle && c.Groups.ActiveCount() < maxActiveGroups {
		c.formGroup(idle, threat)
	}

	c.dispatchScouts()
	c.maybeLaunchAttack(strength)
}

// trainUnits queues unit production. The type follows threat first, then
// temperament; the batch size scales with aggression.
func (c *Controller) trainUnits(threat float64) {
	unitID := unitTrooper
	switch {
	case threat > 0.6:
		unitID = unitGuardian
	case c.Profile.CurrentAggression > 1.0:
		unitID = unitMarauder
	}

	count := 1 + int(c.Profile.CurrentAggression*2)
	queued := 0
	for i := 0; i < count; i++ {
		if !c.enqueueBuild(unitID) {
			break
		}
		queued++
	}
	if queued > 0 {
		slog.Debug("training queued",
			"faction", c.Name, "unit", unitID, "count", queued)
	}
}

// formGroup turns idle units into a defense or attack group depending on the
// current posture.
func (c *Controller) formGroup(idle []world.Unit, threat float64) {
	defensive := threat > 0.4 ||
		c.Profile.PreferredStrategy == profile.StrategyDefensive
	if defensive {
		c.Groups.FormDefenseGroup(idle, c.defensePoint())
	} else {
		c.Groups.FormAttackGroup(idle, c.home)
	}
}

// defensePoint is the outpost to hold — the newest owned outpost, or home.
func (c *Controller) defensePoint() world.Vec3 {
	point := c.home
	for _, b := range c.OwnedBuildings() {
		if b.TypeID() == buildingOutpost {
			point = b.Position()
		}
	}
	return point
}

// dispatchScouts sends a small group toward the farthest known unharvested
// deposit when no scout group is already out.
func (c *Controller) dispatchScouts() {
	if c.Groups.FirstOfKind(combat.GroupScout) != nil {
		return
	}
	node := c.Intel.UnscoutedNode(c.home)
	if node == nil {
		return
	}
	idle := c.IdleUnits()
	if len(idle) < combat.ScoutGroupSize {
		return
	}
	c.Groups.FormScoutGroup(idle, node.Position)
}

// maybeLaunchAttack commits an attack group against the strongest known
// enemy. Gates: clear material advantage, an aggressive temperament, an
// available group, and the profile's attack score.
func (c *Controller) maybeLaunchAttack(strength float64) {
	enemy := c.Intel.TotalEnemyStrength()
	if strength <= 1.5*enemy {
		return
	}
	if c.Profile.CurrentAggression <= 0.7 {
		return
	}
	group := c.Groups.FirstOfKind(combat.GroupAttack)
	if group == nil {
		return
	}
	target := c.Intel.StrongestEnemy()
	if target == nil {
		return
	}

	advantage := strength
	if enemy >= 1.0 {
		advantage = strength / enemy
	}
	distance := group.Position.Dist(target.LastPosition)
	// Reinforcement estimate: how long the enemy needs to close the gap,
	// assuming a nominal closing speed of 2 units/s.
	reinforcementTime := distance / 2.0

	if !c.Profile.ShouldAttack(advantage, distance, reinforcementTime) {
		return
	}

	group.Objective = fmt.Sprintf("Assault faction %d", target.Faction)
	group.SetAttackTarget(target.LastPosition)
	group.ExecuteOrders()
	c.emit(EventAttackLaunched, group.Name, target.LastPosition)
	slog.Info("attack launched",
		"faction", c.Name, "group", group.Name,
		"target_faction", target.Faction,
		"advantage", fmt.Sprintf("%.2f", advantage))
}

// evaluateExpansion plants an outpost away from home when the economy is
// strong, the base is quiet, and there is building headroom.
func (c *Controller) evaluateExpansion() {
	if c.Ledger.EconomyStrength() <= 0.8 {
		return
	}
	if c.ThreatLevel() >= 0.2 {
		return
	}
	if len(c.OwnedBuildings()) >= maxOwnedBuildings {
		return
	}
	if c.deps.Rand == nil || c.deps.Placement == nil {
		return
	}

	// Expansion reach scales with the expansion trait.
	reach := 20.0 + c.Profile.ExpansionRate*60.0
	dx, dz := c.deps.Rand.Offset(reach)
	pos := world.Vec3{X: c.home.X + dx, Z: c.home.Z + dz}
	if c.deps.Terrain != nil {
		pos.Y = c.deps.Terrain.GroundHeightAt(pos.X, pos.Z)
	}

	if !c.deps.Placement.CanPlace(buildingOutpost, pos) {
		return
	}
	if c.enqueueBuild(buildingOutpost) {
		slog.Info("expansion queued",
			"faction", c.Name,
			"x", fmt.Sprintf("%.1f", pos.X), "z", fmt.Sprintf("%.1f", pos.Z))
		c.pendingOutpost = &pos
	}
}

// evaluateResearch starts a tech track when a lab stands and Data is banked.
func (c *Controller) evaluateResearch() {
	if c.currentResearch != "" {
		return
	}
	if !c.HasBuildingType("research") {
		// Research-minded profiles put up the lab themselves.
		if c.Profile.ResearchFocus > 0.6 {
			c.enqueueBuild(buildingResearchLab)
		}
		return
	}
	if c.Ledger.Amount(world.Data) <= 100 {
		return
	}

	tech := techWeapons
	if c.Profile.EconomyFocus > c.Profile.AggressionLevel {
		tech = techEfficiency
	}
	cost := world.Cost{world.Data: 100}
	if !c.Ledger.CanAfford(cost) {
		return
	}
	c.Ledger.Spend(cost)
	c.currentResearch = tech
	c.researchTimer = 0
	slog.Info("research started", "faction", c.Name, "tech", tech)
}

// updateResearch advances the in-flight tech track.
func (c *Controller) updateResearch(dt float64) {
	if c.currentResearch == "" {
		return
	}
	c.researchTimer += dt
	if c.researchTimer < researchTime {
		return
	}
	c.completedTech = append(c.completedTech, c.currentResearch)
	c.emit(EventResearchDone, c.currentResearch, c.home)
	slog.Info("research complete", "faction", c.Name, "tech", c.currentResearch)
	c.currentResearch = ""
	c.researchTimer = 0
}

// enqueueBuild resolves a definition and reserves it on the production queue.
func (c *Controller) enqueueBuild(id string) bool {
	if c.deps.Factory == nil {
		return false
	}
	def, ok := c.deps.Factory.DefinitionFor(id)
	if !ok {
		slog.Warn("unknown entity definition", "faction", c.Name, "id", id)
		return false
	}
	return c.Queue.Enqueue(def, c.Ledger, c.HasBuildingType)
}

// updateProduction pops finished queue entries and spawns them near home.
// The cost was sunk at enqueue; a failed spawn is logged, not refunded.
func (c *Controller) updateProduction(dt float64) {
	entry, ok := c.Queue.Tick(dt)
	if !ok {
		return
	}
	if c.deps.Factory == nil {
		return
	}

	pos := c.spawnPoint(entry)

	if entry.IsUnit {
		u := c.deps.Factory.CreateUnit(entry.ID, pos, c.ID)
		if u == nil {
			slog.Warn("unit spawn failed", "faction", c.Name, "id", entry.ID)
			return
		}
		c.emit(EventUnitCreated, entry.ID, pos)
		return
	}

	if c.deps.Placement != nil && !c.deps.Placement.CanPlace(entry.ID, pos) {
		slog.Warn("placement rejected", "faction", c.Name, "id", entry.ID)
		return
	}
	b := c.deps.Factory.CreateBuilding(entry.ID, pos, c.ID)
	if b == nil {
		slog.Warn("building spawn failed", "faction", c.Name, "id", entry.ID)
		return
	}
	c.emit(EventBuildingCreated, entry.ID, pos)
}

// spawnPoint picks where a finished entry appears: the reserved outpost site
// when one is pending, otherwise a scatter around home.
func (c *Controller) spawnPoint(entry production.Entry) world.Vec3 {
	if !entry.IsUnit && entry.ID == buildingOutpost && c.pendingOutpost != nil {
		pos := *c.pendingOutpost
		c.pendingOutpost = nil
		return pos
	}
	pos := c.home
	if c.deps.Rand != nil {
		dx, dz := c.deps.Rand.Offset(8.0)
		pos.X += dx
		pos.Z += dz
	}
	if c.deps.Terrain != nil {
		pos.Y = c.deps.Terrain.GroundHeightAt(pos.X, pos.Z)
	}
	return pos
}

// updateGroupTactics applies the retreat rule to engaged attack groups.
func (c *Controller) updateGroupTactics() {
	enemy := c.Intel.TotalEnemyStrength()
	for _, g := range c.Groups.Groups() {
		if g.Kind != combat.GroupAttack || g.Target.IsZero() {
			continue
		}
		healthPct := groupHealthPct(g)
		ratio := enemy
		if s := g.Strength(); s >= 1.0 {
			ratio = enemy / s
		}
		if c.Profile.ShouldRetreat(healthPct, ratio) {
			g.Retreat(c.home)
			slog.Info("group retreating",
				"faction", c.Name, "group", g.Name,
				"health", fmt.Sprintf("%.2f", healthPct),
				"odds", fmt.Sprintf("%.2f", ratio))
		}
	}
}

// groupHealthPct is the group's remaining health fraction.
func groupHealthPct(g *combat.Group) float64 {
	total, capacity := 0.0, 0.0
	for _, u := range g.Units() {
		total += u.Health()
		capacity += u.MaxHealth()
	}
	if capacity <= 0 {
		return 0
	}
	return total / capacity
}
