package battle

import (
	"fmt"

	"autobattle/internal/config"
)

// BuildInput turns the YAML definitions into a ready-to-run Input.
// Ability references are resolved here; a dangling reference or an
// unrecognised enum value is a fatal error.
func BuildInput(uc *config.UnitsConfig, ac *config.AbilitiesConfig, sc *config.StageConfig) (Input, error) {
	abilities := map[string]Ability{}
	for _, def := range ac.Abilities {
		ab, err := buildAbility(def)
		if err != nil {
			return Input{}, err
		}
		if _, dup := abilities[ab.ID]; dup {
			return Input{}, fmt.Errorf("config: duplicate ability id %q", ab.ID)
		}
		abilities[ab.ID] = ab
	}

	var heroes []*Unit
	for i, def := range uc.Heroes {
		u, err := buildUnit(def, true, abilities)
		if err != nil {
			return Input{}, err
		}
		u.Pos = Position{Row: def.Row, Col: def.Col}
		if def.Row == 0 && def.Col == 0 && i > 0 {
			u.Pos = Position{Row: i, Col: 0}
		}
		heroes = append(heroes, u)
	}

	enemyDefs := map[string]config.UnitDef{}
	for _, def := range uc.Enemies {
		enemyDefs[def.ID] = def
	}

	var waves [][]*Unit
	for wi, ids := range sc.Waves {
		var wave []*Unit
		for i, id := range ids {
			def, ok := enemyDefs[id]
			if !ok {
				return Input{}, fmt.Errorf("config: wave %d references unknown enemy %q", wi+1, id)
			}
			u, err := buildUnit(def, false, abilities)
			if err != nil {
				return Input{}, err
			}
			u.ID = fmt.Sprintf("%s.w%d.%d", def.ID, wi+1, i+1)
			wave = append(wave, u)
		}
		waves = append(waves, wave)
	}

	return Input{
		Heroes:         heroes,
		Waves:          waves,
		GridWidth:      sc.Grid.Width,
		GridHeight:     sc.Grid.Height,
		ScrollDistance: sc.ScrollDistance,
		TickCeiling:    sc.TickCeiling,
	}, nil
}

func buildUnit(def config.UnitDef, hero bool, abilities map[string]Ability) (*Unit, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("config: unit without id")
	}
	var abs []Ability
	for _, id := range def.Abilities {
		ab, ok := abilities[id]
		if !ok {
			return nil, fmt.Errorf("config: unit %q references unknown ability %q", def.ID, id)
		}
		abs = append(abs, ab)
	}
	name := def.Name
	if name == "" {
		name = def.ID
	}
	base := Stats{
		HP:          def.Stats.MaxHP,
		MaxHP:       def.Stats.MaxHP,
		Damage:      def.Stats.Damage,
		Speed:       def.Stats.Speed,
		Defense:     def.Stats.Defense,
		CritChance:  def.Stats.CritChance,
		CritDamage:  def.Stats.CritDamage,
		Evasion:     def.Stats.Evasion,
		Accuracy:    def.Stats.Accuracy,
		Penetration: def.Stats.Penetration,
		Lifesteal:   def.Stats.Lifesteal,
	}
	if base.CritDamage == 0 {
		base.CritDamage = 1.5
	}
	if base.Accuracy == 0 {
		base.Accuracy = 1
	}
	return NewUnit(def.ID, name, hero, base, abs), nil
}

func buildAbility(def config.AbilityDef) (Ability, error) {
	ab := Ability{
		ID:       def.ID,
		Name:     def.Name,
		Type:     AbilityType(def.Type),
		Range:    def.Range,
		Cooldown: def.Cooldown,
	}
	if ab.Name == "" {
		ab.Name = ab.ID
	}
	for _, ed := range def.Effects {
		ef := AbilityEffect{
			Kind:          EffectKind(ed.Kind),
			Target:        TargetType(ed.Target),
			Value:         ed.Value,
			Radius:        ed.Radius,
			Pattern:       AreaPattern(ed.Pattern),
			Status:        StatusType(ed.Status),
			Duration:      ed.Duration,
			DamagePerTick: ed.DamagePerTick,
		}
		if ed.Modifier != nil {
			ef.Modifier = &StatModifier{
				Stat:    StatName(ed.Modifier.Stat),
				Value:   ed.Modifier.Value,
				Percent: ed.Modifier.Percent,
			}
		}
		ab.Effects = append(ab.Effects, ef)
	}
	if err := validateAbility(&ab); err != nil {
		return Ability{}, fmt.Errorf("config: %w", err)
	}
	return ab, nil
}
