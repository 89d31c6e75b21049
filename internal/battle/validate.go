package battle

import "fmt"

// validateInput is the only fatal path in the engine: malformed rosters
// and ability definitions are rejected here, before the first tick.
func validateInput(in *Input) error {
	if len(in.Heroes) == 0 {
		return fmt.Errorf("battle: no heroes")
	}
	if len(in.Waves) == 0 {
		return fmt.Errorf("battle: no enemy waves")
	}
	seen := map[string]bool{}
	check := func(u *Unit) error {
		if u == nil || u.ID == "" {
			return fmt.Errorf("battle: unit without id")
		}
		if seen[u.ID] {
			return fmt.Errorf("battle: duplicate unit id %q", u.ID)
		}
		seen[u.ID] = true
		if u.Base.MaxHP <= 0 {
			return fmt.Errorf("battle: unit %q has no max hp", u.ID)
		}
		for i := range u.Abilities {
			if err := validateAbility(&u.Abilities[i]); err != nil {
				return fmt.Errorf("battle: unit %q: %w", u.ID, err)
			}
		}
		return nil
	}
	for _, h := range in.Heroes {
		if err := check(h); err != nil {
			return err
		}
		if !h.Hero {
			return fmt.Errorf("battle: unit %q in hero roster is not flagged as hero", h.ID)
		}
	}
	for wi, wave := range in.Waves {
		if len(wave) == 0 {
			return fmt.Errorf("battle: wave %d is empty", wi+1)
		}
		for _, en := range wave {
			if err := check(en); err != nil {
				return err
			}
			if en.Hero {
				return fmt.Errorf("battle: unit %q in wave %d is flagged as hero", en.ID, wi+1)
			}
		}
	}
	return nil
}

func validateAbility(ab *Ability) error {
	if ab.ID == "" {
		return fmt.Errorf("ability without id")
	}
	switch ab.Type {
	case Offensive, Support:
	default:
		return fmt.Errorf("ability %q: unknown type %q", ab.ID, ab.Type)
	}
	if ab.Range < 1 {
		return fmt.Errorf("ability %q: range must be at least 1", ab.ID)
	}
	if ab.Cooldown < 0 {
		return fmt.Errorf("ability %q: negative cooldown", ab.ID)
	}
	if len(ab.Effects) == 0 {
		return fmt.Errorf("ability %q: no effects", ab.ID)
	}
	for _, ef := range ab.Effects {
		switch ef.Kind {
		case EffectDamage, EffectHeal, EffectBuff, EffectStatus, EffectLifesteal:
		default:
			return fmt.Errorf("ability %q: unknown effect kind %q", ab.ID, ef.Kind)
		}
		switch ef.Target {
		case TargetEnemy, TargetArea, TargetSelf:
		default:
			return fmt.Errorf("ability %q: unknown target type %q", ab.ID, ef.Target)
		}
		switch ef.Pattern {
		case PatternNone, PatternCleave, PatternBlast:
		default:
			return fmt.Errorf("ability %q: unknown area pattern %q", ab.ID, ef.Pattern)
		}
		if ef.Kind == EffectStatus {
			if _, ok := ClassifyStatus(ef.Status); !ok {
				return fmt.Errorf("ability %q: unknown status type %q", ab.ID, ef.Status)
			}
			if ef.Duration <= 0 {
				return fmt.Errorf("ability %q: status %q needs a positive duration", ab.ID, ef.Status)
			}
		}
		if ef.Kind == EffectBuff {
			if ef.Modifier == nil {
				return fmt.Errorf("ability %q: buff effect needs a stat modifier", ab.ID)
			}
			if ef.Duration <= 0 {
				return fmt.Errorf("ability %q: buff effect needs a positive duration", ab.ID)
			}
		}
		if ef.Modifier != nil {
			switch ef.Modifier.Stat {
			case StatDamage, StatSpeed, StatDefense, StatCritChance, StatCritDamage,
				StatEvasion, StatAccuracy, StatPenetration, StatLifesteal:
			default:
				return fmt.Errorf("ability %q: unknown stat %q", ab.ID, ef.Modifier.Stat)
			}
		}
	}
	return nil
}
