// Archetypes — the built-in personality templates a faction starts from.
// Each fixes the baseline trait mix; difficulty then scales it.
package profile

// Archetype constants — the 5 built-in personalities.
const (
	ArchRusher       = "Rusher"
	ArchTurtle       = "Turtle"
	ArchBoomer       = "BoomingEconomist"
	ArchTechnologist = "Technologist"
	ArchBalanced     = "Balanced"
)

// Unit composition classes referenced by UnitWeights.
const (
	ClassInfantry = "infantry"
	ClassVehicle  = "vehicle"
	ClassAir      = "air"
)

// ByArchetype returns a fresh profile for a named archetype, adaptive state
// initialized. Unknown names get the balanced template.
func ByArchetype(name string) *Profile {
	p, ok := archetypeTemplates[name]
	if !ok {
		p = archetypeTemplates[ArchBalanced]
	}
	out := p.Clone()
	out.InitializeDynamicValues()
	return out
}

// ArchetypeNames lists the built-in archetypes in display order.
func ArchetypeNames() []string {
	return []string{ArchRusher, ArchTurtle, ArchBoomer, ArchTechnologist, ArchBalanced}
}

// archetypeTemplates maps archetype name to its baseline trait mix.
var archetypeTemplates = map[string]Profile{
	ArchRusher: {
		Name:                 ArchRusher,
		AggressionLevel:      1.4,
		ExpansionRate:        0.3,
		EconomyFocus:         0.3,
		DefenseFocus:         0.2,
		ResearchFocus:        0.2,
		RiskTolerance:        0.8,
		ReactionTime:         2.0,
		RetreatThreshold:     0.2, // Fights nearly to the last
		LearningRate:         0.5,
		PrefersFlanking:      false,
		UnitWeights:          map[string]float64{ClassInfantry: 0.7, ClassVehicle: 0.2, ClassAir: 0.1},
		AdaptationEnabled:    true,
		DifficultyMultiplier: 1.0,
	},
	ArchTurtle: {
		Name:                 ArchTurtle,
		AggressionLevel:      0.4,
		ExpansionRate:        0.2,
		EconomyFocus:         0.5,
		DefenseFocus:         0.9,
		ResearchFocus:        0.5,
		RiskTolerance:        0.3,
		ReactionTime:         4.0,
		RetreatThreshold:     0.5, // Preserves its army
		LearningRate:         0.4,
		PrefersFlanking:      false,
		UnitWeights:          map[string]float64{ClassInfantry: 0.5, ClassVehicle: 0.4, ClassAir: 0.1},
		AdaptationEnabled:    true,
		DifficultyMultiplier: 1.0,
	},
	ArchBoomer: {
		Name:                 ArchBoomer,
		AggressionLevel:      0.5,
		ExpansionRate:        0.9,
		EconomyFocus:         0.9,
		DefenseFocus:         0.4,
		ResearchFocus:        0.5,
		RiskTolerance:        0.4,
		ReactionTime:         3.0,
		RetreatThreshold:     0.4,
		LearningRate:         0.5,
		PrefersFlanking:      true,
		UnitWeights:          map[string]float64{ClassInfantry: 0.4, ClassVehicle: 0.4, ClassAir: 0.2},
		AdaptationEnabled:    true,
		DifficultyMultiplier: 1.0,
	},
	ArchTechnologist: {
		Name:                 ArchTechnologist,
		AggressionLevel:      0.6,
		ExpansionRate:        0.4,
		EconomyFocus:         0.5,
		DefenseFocus:         0.5,
		ResearchFocus:        0.9,
		RiskTolerance:        0.5,
		ReactionTime:         3.0,
		RetreatThreshold:     0.4,
		LearningRate:         0.7, // Learns fastest of the archetypes
		PrefersFlanking:      true,
		UnitWeights:          map[string]float64{ClassInfantry: 0.3, ClassVehicle: 0.3, ClassAir: 0.4},
		AdaptationEnabled:    true,
		DifficultyMultiplier: 1.0,
	},
	ArchBalanced: {
		Name:                 ArchBalanced,
		AggressionLevel:      0.8,
		ExpansionRate:        0.5,
		EconomyFocus:         0.5,
		DefenseFocus:         0.5,
		ResearchFocus:        0.5,
		RiskTolerance:        0.5,
		ReactionTime:         3.0,
		RetreatThreshold:     0.35,
		LearningRate:         0.5,
		PrefersFlanking:      false,
		UnitWeights:          map[string]float64{ClassInfantry: 0.5, ClassVehicle: 0.3, ClassAir: 0.2},
		AdaptationEnabled:    true,
		DifficultyMultiplier: 1.0,
	},
}
