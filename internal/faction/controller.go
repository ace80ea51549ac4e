// Package faction hosts the decision engine: the per-faction controller that
// reads profile, ledger, and intelligence each reaction interval and emits
// build/train/expand/research/attack actions through injected capabilities.
package faction

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/vanguard/internal/combat"
	"github.com/talgya/vanguard/internal/econ"
	"github.com/talgya/vanguard/internal/entropy"
	"github.com/talgya/vanguard/internal/intel"
	"github.com/talgya/vanguard/internal/production"
	"github.com/talgya/vanguard/internal/profile"
	"github.com/talgya/vanguard/internal/world"
)

// Tick cadences, in sim-seconds. The decision interval itself comes from the
// profile's reaction time.
const (
	intelInterval = 5.0

	// threatRadius is how close a known enemy position must be to the home
	// base to contribute to the threat level.
	threatRadius = 30.0

	productionQueueMax = 8
	maxOwnedUnits      = 50
	maxOwnedBuildings  = 20
	maxActiveGroups    = 5
	minGroupIdle       = 5

	scoutSightRange = 40.0
	researchTime    = 30.0
)

// Deps bundles the injected capabilities the controller acts through. All
// world mutation goes via these; the controller itself only decides.
type Deps struct {
	Factory   world.Factory
	Placement world.Placement
	Query     world.Query
	Nodes     world.NodeQuery
	Terrain   world.Terrain
	Rand      *entropy.Source
}

// Controller is one AI faction's brain.
type Controller struct {
	ID      world.FactionID
	Name    string
	Profile *profile.Profile
	Ledger  *econ.Ledger
	Intel   *intel.Tracker
	Groups  *combat.Manager
	Queue   *production.Queue

	deps Deps
	home world.Vec3

	active bool
	clock  float64 // sim-time seconds since activation

	decisionTimer float64
	intelTimer    float64

	// Research bookkeeping.
	currentResearch string
	researchTimer   float64
	completedTech   []string

	// Site reserved by the expansion decision for the next outpost.
	pendingOutpost *world.Vec3

	listeners []Listener
	events    []Event
}

// NewController creates a faction controller and registers it. The faction
// starts inactive; EstablishBase activates it.
func NewController(id world.FactionID, name string, prof *profile.Profile, deps Deps, reg *Registry) *Controller {
	c := &Controller{
		ID:      id,
		Name:    name,
		Profile: prof,
		Ledger:  econ.NewLedger(),
		Intel:   intel.NewTracker(id),
		Groups:  combat.NewManager(id),
		Queue:   production.NewQueue(productionQueueMax),
		deps:    deps,
	}
	c.Ledger.OnChange(func(kind world.Resource, amount int) {
		c.emit(EventResourceChanged, fmt.Sprintf("%s=%d", kind, amount), c.home)
	})
	if reg != nil {
		reg.register(c)
	}
	return c
}

// EstablishBase plants the faction at a position, grants the starting
// stockpile, and activates the decision loop.
func (c *Controller) EstablishBase(pos world.Vec3, startingStock world.Cost) {
	if c.deps.Terrain != nil {
		pos.Y = c.deps.Terrain.GroundHeightAt(pos.X, pos.Z)
	}
	c.home = pos
	c.Ledger.Add(startingStock)
	c.active = true
	c.emit(EventBaseEstablished, c.Name, pos)
	slog.Info("base established",
		"faction", c.Name, "strategy", c.Profile.PreferredStrategy,
		"x", fmt.Sprintf("%.1f", pos.X), "z", fmt.Sprintf("%.1f", pos.Z))
}

// Home returns the base position.
func (c *Controller) Home() world.Vec3 { return c.home }

// Active reports whether the decision loop is running.
func (c *Controller) Active() bool { return c.active }

// SetActive suspends or resumes the whole tick body. Ticks are atomic, so no
// partial-tick cancellation is needed.
func (c *Controller) SetActive(active bool) { c.active = active }

// Clock returns sim-time seconds since activation.
func (c *Controller) Clock() float64 { return c.clock }

// Tick advances the faction by dt seconds. Stage order is load-bearing:
// timers, intelligence, decisions (economic, military, expansion, research),
// production, groups — later stages read state the earlier ones mutate.
func (c *Controller) Tick(dt float64) {
	if !c.active {
		return
	}
	c.clock += dt
	c.decisionTimer += dt
	c.intelTimer += dt

	if c.intelTimer >= intelInterval {
		c.intelTimer -= intelInterval
		c.updateIntelligence()
	}

	if c.decisionTimer >= c.Profile.ReactionTime {
		c.decisionTimer = 0
		c.evaluateEconomy()
		c.evaluateMilitary()
		c.evaluateExpansion()
		c.evaluateResearch()
	}

	c.updateResearch(dt)
	c.updateProduction(dt)
	c.Groups.Update()
	c.updateGroupTactics()
}

// updateIntelligence refreshes the enemy snapshot and feeds the observed
// ratios back into the profile's adaptive state.
func (c *Controller) updateIntelligence() {
	if c.deps.Query == nil {
		return
	}
	c.Intel.Refresh(c.deps.Query, c.clock)
	c.observeNodes()

	our := c.MilitaryStrength()
	enemy := c.Intel.TotalEnemyStrength()

	// Slow trim of the baseline from the strength ratio.
	c.Profile.NudgeAggression(c.Intel.StrengthRatio(our))

	// Fast loop: the opponent-over-us ratio drives regime selection.
	playerRatio := enemy
	if our >= 1.0 {
		playerRatio = enemy / our
	}
	c.Profile.AdaptToSituation(playerRatio, c.Ledger.EconomyStrength(), c.ThreatLevel())
}

// observeNodes records resource deposits within sight of any owned unit.
func (c *Controller) observeNodes() {
	if c.deps.Nodes == nil {
		return
	}
	units := c.OwnedUnits()
	for _, n := range c.deps.Nodes.AllResourceNodes() {
		for _, u := range units {
			if u.Position().Dist(n.Position) <= scoutSightRange {
				c.Intel.ObserveNode(n)
				break
			}
		}
	}
}

// ThreatLevel sums proximity pressure from known enemy positions near the
// home base, clamped to [0, 1]. An enemy on top of the base contributes 1.
func (c *Controller) ThreatLevel() float64 {
	total := 0.0
	for _, pos := range c.Intel.EnemyPositions() {
		d := c.home.Dist(pos)
		if d < threatRadius {
			total += (threatRadius - d) / threatRadius
		}
	}
	return world.Clamp01(total)
}

// OwnedUnits returns the faction's living units.
func (c *Controller) OwnedUnits() []world.Unit {
	if c.deps.Query == nil {
		return nil
	}
	var out []world.Unit
	for _, u := range c.deps.Query.AllUnits() {
		if u.Faction() == c.ID && u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// OwnedBuildings returns the faction's standing buildings.
func (c *Controller) OwnedBuildings() []world.Building {
	if c.deps.Query == nil {
		return nil
	}
	var out []world.Building
	for _, b := range c.deps.Query.AllBuildings() {
		if b.Faction() == c.ID && b.Alive() {
			out = append(out, b)
		}
	}
	return out
}

// IdleUnits returns owned units that are neither moving nor grouped.
func (c *Controller) IdleUnits() []world.Unit {
	var out []world.Unit
	for _, u := range c.OwnedUnits() {
		if !u.IsMoving() && !c.Groups.InGroup(u.ID()) {
			out = append(out, u)
		}
	}
	return out
}

// UnitsByType returns owned units whose type identifier contains the
// substring.
func (c *Controller) UnitsByType(sub string) []world.Unit {
	var out []world.Unit
	for _, u := range c.OwnedUnits() {
		if strings.Contains(u.TypeID(), sub) {
			out = append(out, u)
		}
	}
	return out
}

// HasBuildingType reports whether any owned building's type identifier
// contains the substring.
func (c *Controller) HasBuildingType(sub string) bool {
	for _, b := range c.OwnedBuildings() {
		if strings.Contains(b.TypeID(), sub) {
			return true
		}
	}
	return false
}

// MilitaryStrength is the health × damage total over owned living units — a
// proxy, not a calibrated metric.
func (c *Controller) MilitaryStrength() float64 {
	total := 0.0
	for _, u := range c.OwnedUnits() {
		total += u.Health() * u.Damage()
	}
	return total
}

// NotifyUnderAttack records hostile contact at a position. Damage resolution
// happens outside; the controller only reacts.
func (c *Controller) NotifyUnderAttack(pos world.Vec3) {
	if !c.active {
		return
	}
	c.emit(EventUnderAttack, "hostile contact", pos)
}

// RecordBattleResult forwards a battle outcome into the profile's learning.
func (c *Controller) RecordBattleResult(won bool) {
	c.Profile.RecordBattleResult(won)
	slog.Info("battle recorded",
		"faction", c.Name, "won", won,
		"record", fmt.Sprintf("%d-%d", c.Profile.BattlesWon, c.Profile.BattlesLost),
		"win_rate", fmt.Sprintf("%.2f", c.Profile.WinRate))
}

// CompletedResearch returns the finished tech identifiers.
func (c *Controller) CompletedResearch() []string {
	out := make([]string, len(c.completedTech))
	copy(out, c.completedTech)
	return out
}

// Summary returns a one-line faction status string.
func (c *Controller) Summary() string {
	return fmt.Sprintf("%s [%s/%s] credits=%s units=%d buildings=%d groups=%d threat=%.2f",
		c.Name,
		c.Profile.Name,
		c.Profile.PreferredStrategy,
		humanize.Comma(int64(c.Ledger.Amount(world.Credits))),
		len(c.OwnedUnits()),
		len(c.OwnedBuildings()),
		c.Groups.ActiveCount(),
		c.ThreatLevel(),
	)
}
