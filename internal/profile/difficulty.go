// Difficulty presets layered over an archetype's baseline.
package profile

import "github.com/talgya/vanguard/internal/world"

// Difficulty selects how hard the AI plays.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyInsane Difficulty = "insane"
)

// difficultyPreset fixes the multiplier, baseline aggression, reaction time,
// and whether the AI adapts at all.
type difficultyPreset struct {
	Multiplier   float64
	Aggression   float64
	ReactionTime float64
	Adaptation   bool
}

var difficultyPresets = map[Difficulty]difficultyPreset{
	DifficultyEasy:   {Multiplier: 0.6, Aggression: 0.4, ReactionTime: 6.0, Adaptation: false},
	DifficultyNormal: {Multiplier: 1.0, Aggression: 0.8, ReactionTime: 3.0, Adaptation: true},
	DifficultyHard:   {Multiplier: 1.5, Aggression: 1.0, ReactionTime: 2.0, Adaptation: true},
	DifficultyInsane: {Multiplier: 2.0, Aggression: 1.2, ReactionTime: 1.5, Adaptation: true},
}

// ParseDifficulty maps a string to a difficulty, defaulting to normal.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyInsane:
		return Difficulty(s)
	}
	return DifficultyNormal
}

// ApplyDifficulty overwrites the preset-controlled traits, scales by the
// multiplier, and re-derives the adaptive state.
func (p *Profile) ApplyDifficulty(d Difficulty) {
	preset, ok := difficultyPresets[d]
	if !ok {
		preset = difficultyPresets[DifficultyNormal]
	}
	p.DifficultyMultiplier = preset.Multiplier
	p.AggressionLevel = preset.Aggression
	p.ReactionTime = preset.ReactionTime
	p.AdaptationEnabled = preset.Adaptation

	p.ApplyDifficultyMultiplier()
	p.InitializeDynamicValues()
}

// MultiplierFor returns the difficulty multiplier alone, for profiles whose
// other traits come from elsewhere (YAML definitions).
func MultiplierFor(d Difficulty) float64 {
	if preset, ok := difficultyPresets[d]; ok {
		return preset.Multiplier
	}
	return 1.0
}

// ApplyDifficultyMultiplier scales aggression and expansion up and reaction
// time down by the multiplier, clamping each to its documented bounds.
func (p *Profile) ApplyDifficultyMultiplier() {
	m := p.DifficultyMultiplier
	if m <= 0 {
		m = 1.0
	}
	p.AggressionLevel = world.Clamp(p.AggressionLevel*m, AggressionMin, AggressionMax)
	p.ExpansionRate = world.Clamp01(p.ExpansionRate * m)
	p.ReactionTime = world.Clamp(p.ReactionTime/m, ReactionMin, ReactionMax)
}
