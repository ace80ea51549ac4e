// Package config loads optional YAML personality definitions. Without a
// config file the built-in archetypes apply; a file replaces any archetype it
// names wholesale.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/vanguard/internal/profile"
)

// ProfileSpec is the YAML shape of one personality.
type ProfileSpec struct {
	AggressionLevel  float64            `yaml:"aggression_level"`
	ExpansionRate    float64            `yaml:"expansion_rate"`
	EconomyFocus     float64            `yaml:"economy_focus"`
	DefenseFocus     float64            `yaml:"defense_focus"`
	ResearchFocus    float64            `yaml:"research_focus"`
	RiskTolerance    float64            `yaml:"risk_tolerance"`
	ReactionTime     float64            `yaml:"reaction_time"`
	RetreatThreshold float64            `yaml:"retreat_threshold"`
	LearningRate     float64            `yaml:"learning_rate"`
	PrefersFlanking  bool               `yaml:"prefers_flanking"`
	UnitWeights      map[string]float64 `yaml:"unit_weights"`
	Adaptation       *bool              `yaml:"adaptation"` // nil = enabled
}

// File is the top-level YAML document: archetype name → personality.
type File struct {
	Profiles map[string]ProfileSpec `yaml:"profiles"`
}

// Load reads a YAML profile file. An empty path returns an empty File (all
// built-ins apply).
func Load(path string) (*File, error) {
	f := &File{Profiles: map[string]ProfileSpec{}}
	if path == "" {
		return f, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if f.Profiles == nil {
		f.Profiles = map[string]ProfileSpec{}
	}
	return f, nil
}

// ProfileFor builds a profile for an archetype at a difficulty, preferring a
// YAML definition over the built-in template.
func (f *File) ProfileFor(archetype string, d profile.Difficulty) *profile.Profile {
	spec, ok := f.Profiles[archetype]
	if !ok {
		p := profile.ByArchetype(archetype)
		p.ApplyDifficulty(d)
		return p
	}

	p := &profile.Profile{
		Name:                 archetype,
		AggressionLevel:      spec.AggressionLevel,
		ExpansionRate:        spec.ExpansionRate,
		EconomyFocus:         spec.EconomyFocus,
		DefenseFocus:         spec.DefenseFocus,
		ResearchFocus:        spec.ResearchFocus,
		RiskTolerance:        spec.RiskTolerance,
		ReactionTime:         spec.ReactionTime,
		RetreatThreshold:     spec.RetreatThreshold,
		LearningRate:         spec.LearningRate,
		PrefersFlanking:      spec.PrefersFlanking,
		UnitWeights:          spec.UnitWeights,
		AdaptationEnabled:    spec.Adaptation == nil || *spec.Adaptation,
		DifficultyMultiplier: 1.0,
	}
	if p.UnitWeights == nil {
		p.UnitWeights = map[string]float64{profile.ClassInfantry: 1.0}
	}
	// YAML profiles keep their own aggression/reaction/adaptation; only the
	// difficulty multiplier is layered on.
	p.DifficultyMultiplier = profile.MultiplierFor(d)
	p.ApplyDifficultyMultiplier()
	p.InitializeDynamicValues()
	return p
}
