package battle

// statusCategories is the fixed classification table. Config validation
// rejects any status type missing from it before a simulation starts.
var statusCategories = map[StatusType]StatusCategory{
	StatusBurn:    CategoryDot,
	StatusPoison:  CategoryDot,
	StatusBleed:   CategoryDot,
	StatusStun:    CategoryControl,
	StatusFreeze:  CategoryControl,
	StatusRoot:    CategoryControl,
	StatusShield:  CategoryBuff,
	StatusHaste:   CategoryBuff,
	StatusRage:    CategoryBuff,
	StatusSlow:    CategoryDebuff,
	StatusWeaken:  CategoryDebuff,
	StatusSunder:  CategoryDebuff,
	StatusTaunt:   CategorySpecial,
	StatusStealth: CategorySpecial,
}

// ClassifyStatus maps a status type to its category.
func ClassifyStatus(t StatusType) (StatusCategory, bool) {
	c, ok := statusCategories[t]
	return c, ok
}

// tickStatusEffects runs before any unit acts: damage-over-time first,
// then duration decrement and expiry. An expiry triggers a stat
// recalculation on the owner.
func (e *Engine) tickStatusEffects() {
	for _, u := range e.allUnits() {
		if !u.Alive {
			continue
		}
		for _, se := range u.Effects {
			if se.DamagePerTick <= 0 {
				continue
			}
			e.dealDamage(nil, u, se.DamagePerTick, "dot", "")
			if !u.Alive {
				break
			}
		}
		if !u.Alive {
			continue
		}
		expired := false
		kept := u.Effects[:0]
		for _, se := range u.Effects {
			se.Remaining--
			if se.Remaining <= 0 {
				expired = true
				e.emit(EvStatusExpired, map[string]any{
					"target": u.ID, "status": string(se.Type), "id": se.ID,
				})
				continue
			}
			kept = append(kept, se)
		}
		u.Effects = kept
		if expired {
			u.Recalc()
		}
	}
}

// applyStatus attaches one timed effect and recalculates derived stats
// when the effect carries a modifier.
func (e *Engine) applyStatus(target *Unit, t StatusType, duration int, dpt float64, mod *StatModifier, sourceID string) *StatusEffect {
	cat := statusCategories[t]
	se := &StatusEffect{
		ID:            e.nextStatusID(t),
		Type:          t,
		Category:      cat,
		Duration:      duration,
		Remaining:     duration,
		DamagePerTick: dpt,
		Modifier:      mod,
	}
	target.Effects = append(target.Effects, se)
	if mod != nil {
		target.Recalc()
	}
	e.emit(EvStatusApplied, map[string]any{
		"target": target.ID, "status": string(t), "id": se.ID,
		"duration": duration, "source": sourceID,
	})
	return se
}
