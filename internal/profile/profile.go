// Package profile models an AI faction's personality: baseline traits tuned
// per archetype and difficulty, plus the adaptive state that shifts with the
// course of a match (current aggression, risk tolerance, preferred strategy,
// battle record).
package profile

import (
	"math"

	"github.com/talgya/vanguard/internal/world"
)

// Strategy is the AI's coarse behavioral mode, used to bias later decisions.
type Strategy string

const (
	StrategyEconomic      Strategy = "Economic"
	StrategyAggressive    Strategy = "Aggressive"
	StrategyDefensive     Strategy = "Defensive"
	StrategyTechnological Strategy = "Technological"
	StrategyBalanced      Strategy = "Balanced"
)

// Trait bounds. Aggression runs on a doubled scale so difficulty multipliers
// have headroom; everything else is a unit fraction.
const (
	AggressionMax = 2.0
	AggressionMin = 0.0

	// Floors the adaptive loop may not push below — a cornered AI still acts.
	adaptAggressionFloor = 0.1
	adaptRiskFloor       = 0.1

	ReactionMin = 0.25 // seconds between decision passes
	ReactionMax = 10.0
)

// Profile holds one faction's personality. Baseline fields are set at
// creation (archetype + difficulty) and only drift through long-term
// learning; the adaptive block is recomputed continuously during a match.
type Profile struct {
	Name string `json:"name"`

	// Baseline traits.
	AggressionLevel  float64 `json:"aggression_level"`  // [0, 2]
	ExpansionRate    float64 `json:"expansion_rate"`    // [0, 1]
	EconomyFocus     float64 `json:"economy_focus"`     // [0, 1]
	DefenseFocus     float64 `json:"defense_focus"`     // [0, 1]
	ResearchFocus    float64 `json:"research_focus"`    // [0, 1]
	RiskTolerance    float64 `json:"risk_tolerance"`    // [0, 1]
	ReactionTime     float64 `json:"reaction_time"`     // seconds, [0.25, 10]
	RetreatThreshold float64 `json:"retreat_threshold"` // health fraction, [0, 1]
	LearningRate     float64 `json:"learning_rate"`     // [0, 1]

	// Tactical preferences.
	PrefersFlanking bool               `json:"prefers_flanking"`
	UnitWeights     map[string]float64 `json:"unit_weights"` // composition class → weight

	AdaptationEnabled    bool    `json:"adaptation_enabled"`
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`

	// Adaptive state — reset by InitializeDynamicValues.
	CurrentAggression    float64  `json:"current_aggression"`
	CurrentRiskTolerance float64  `json:"current_risk_tolerance"`
	PreferredStrategy    Strategy `json:"preferred_strategy"`
	BattlesWon           int      `json:"battles_won"`
	BattlesLost          int      `json:"battles_lost"`
	WinRate              float64  `json:"win_rate"`
}

// InitializeDynamicValues resets the adaptive block to baseline: current
// aggression/risk back to their trait values, battle counters zeroed, and the
// preferred strategy derived from whichever focus dominates.
func (p *Profile) InitializeDynamicValues() {
	p.CurrentAggression = world.Clamp(p.AggressionLevel, AggressionMin, AggressionMax)
	p.CurrentRiskTolerance = world.Clamp01(p.RiskTolerance)
	p.BattlesWon = 0
	p.BattlesLost = 0
	p.WinRate = 0
	p.PreferredStrategy = dominantStrategy(
		p.EconomyFocus, p.AggressionLevel, p.DefenseFocus, p.ResearchFocus)
}

// Clone returns an independent copy of the profile.
func (p *Profile) Clone() *Profile {
	out := *p
	out.UnitWeights = make(map[string]float64, len(p.UnitWeights))
	for class, w := range p.UnitWeights {
		out.UnitWeights[class] = w
	}
	return &out
}

// AdaptToSituation shifts the adaptive state from the observed match state.
// playerStrengthRatio is opponent strength over ours, resourceRatio our
// stockpile total over target, threatLevel the clamped home-base pressure.
// No-op when adaptation is disabled.
func (p *Profile) AdaptToSituation(playerStrengthRatio, resourceRatio, threatLevel float64) {
	if !p.AdaptationEnabled {
		return
	}

	switch {
	case playerStrengthRatio > 1.5:
		// Opponent materially stronger: pull in our horns.
		p.CurrentAggression = math.Max(adaptAggressionFloor, p.CurrentAggression-0.2)
		p.CurrentRiskTolerance = math.Max(adaptRiskFloor, p.CurrentRiskTolerance-0.2)
		p.PreferredStrategy = StrategyDefensive
	case playerStrengthRatio < 0.7:
		// Opponent materially weaker: press the advantage.
		p.CurrentAggression = math.Min(AggressionMax, p.CurrentAggression+0.2)
		p.CurrentRiskTolerance = math.Min(1.0, p.CurrentRiskTolerance+0.2)
		p.PreferredStrategy = StrategyAggressive
	default:
		economyWeight := p.EconomyFocus * (1.0 - resourceRatio)
		aggressionWeight := p.CurrentAggression * (1.0 - threatLevel)
		defenseWeight := p.DefenseFocus * threatLevel
		researchWeight := p.ResearchFocus
		p.PreferredStrategy = dominantStrategy(
			economyWeight, aggressionWeight, defenseWeight, researchWeight)
	}

	// Overrides fire after the regime branch and may overwrite its choice.
	// Starvation forces economy; acute threat beats everything.
	if resourceRatio < 0.3 {
		p.PreferredStrategy = StrategyEconomic
	}
	if threatLevel > 0.7 {
		p.PreferredStrategy = StrategyDefensive
	}
}

// RecordBattleResult updates the battle record and, on losses, tightens the
// profile: risk tolerance drops, and once the win rate slips below 0.3 the
// baseline itself shifts toward defense.
func (p *Profile) RecordBattleResult(won bool) {
	if won {
		p.BattlesWon++
	} else {
		p.BattlesLost++
	}
	p.WinRate = float64(p.BattlesWon) / float64(p.BattlesWon+p.BattlesLost)

	if won || !p.AdaptationEnabled {
		return
	}

	p.CurrentRiskTolerance = math.Max(adaptRiskFloor,
		p.CurrentRiskTolerance-0.1*p.LearningRate)

	if p.WinRate < 0.3 {
		p.DefenseFocus = math.Min(1.0, p.DefenseFocus+0.1*p.LearningRate)
		p.AggressionLevel = math.Max(adaptAggressionFloor,
			p.AggressionLevel-0.1*p.LearningRate)
	}
}

// AttackDecisionScore scores a prospective attack: advantage dominates, then
// proximity, then how quickly the enemy can reinforce, then temperament. The
// whole score is scaled by current risk tolerance, so a cautious profile
// needs a bigger edge before committing.
func (p *Profile) AttackDecisionScore(advantage, distance, reinforcementTime float64) float64 {
	score := 0.4*advantage +
		0.3*(1.0-world.Clamp01(distance/100.0)) +
		0.2*(1.0-world.Clamp01(reinforcementTime/60.0)) +
		0.1*p.CurrentAggression
	return score * p.CurrentRiskTolerance
}

// ShouldAttack reports whether the attack score clears the commit threshold.
func (p *Profile) ShouldAttack(advantage, distance, reinforcementTime float64) bool {
	return p.AttackDecisionScore(advantage, distance, reinforcementTime) > 0.5
}

// ShouldRetreat reports whether a group should break off: health below the
// retreat threshold, hopeless odds, or odds beyond what the current risk
// tolerance stomachs.
func (p *Profile) ShouldRetreat(healthPct, enemyStrengthRatio float64) bool {
	if healthPct < p.RetreatThreshold {
		return true
	}
	if enemyStrengthRatio > 3.0 {
		return true
	}
	return enemyStrengthRatio > 2.0-p.CurrentRiskTolerance
}

// NudgeAggression shifts the baseline aggression (and defense focus, when
// falling behind) from the periodic intelligence strength ratio. This is the
// slow trim; AdaptToSituation is the fast loop.
func (p *Profile) NudgeAggression(strengthRatio float64) {
	if !p.AdaptationEnabled {
		return
	}
	switch {
	case strengthRatio > 2.0:
		p.AggressionLevel = math.Min(AggressionMax, p.AggressionLevel+0.05)
	case strengthRatio < 0.5:
		p.AggressionLevel = math.Max(adaptAggressionFloor, p.AggressionLevel-0.05)
		p.DefenseFocus = math.Min(1.0, p.DefenseFocus+0.05)
	}
}

// dominantStrategy picks the label of the strictly largest weight, checking
// economy, aggression, defense, research in that fixed order. When no weight
// strictly dominates the rest, the profile is Balanced.
func dominantStrategy(economy, aggression, defense, research float64) Strategy {
	switch {
	case economy > aggression && economy > defense && economy > research:
		return StrategyEconomic
	case aggression > economy && aggression > defense && aggression > research:
		return StrategyAggressive
	case defense > economy && defense > aggression && defense > research:
		return StrategyDefensive
	case research > economy && research > aggression && research > defense:
		return StrategyTechnological
	}
	return StrategyBalanced
}
