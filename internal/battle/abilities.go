package battle

// act resolves one unit's turn. Selection order: a ready support heal
// when an ally needs it, a step toward the nearest enemy when out of
// effective range, the first ready offensive ability that lands on at
// least one target, and finally a basic attack. An ability that finds no
// valid target keeps its cooldown and falls through to the next option.
func (e *Engine) act(u *Unit) {
	if ab := e.readySupportHeal(u); ab != nil {
		if e.castAbility(u, ab) {
			e.finishAction(u, ab)
			return
		}
	}

	target := e.nearestEnemy(u)
	if target == nil {
		e.finishAction(u, nil)
		return
	}

	if Chebyshev(u.Pos, target.Pos) > u.EffectiveRange() {
		e.moveToward(u, target)
		e.finishAction(u, nil)
		return
	}

	for i := range u.Abilities {
		ab := &u.Abilities[i]
		if ab.Type != Offensive || u.AbilityCD[ab.ID] > 0 {
			continue
		}
		if e.castAbility(u, ab) {
			e.finishAction(u, ab)
			return
		}
	}

	e.basicAttack(u, target)
	e.finishAction(u, nil)
}

// readySupportHeal returns the first ready support ability carrying a
// heal effect, but only while some living ally sits below the trigger
// fraction of max hp.
func (e *Engine) readySupportHeal(u *Unit) *Ability {
	if e.woundedAlly(u, healTriggerFraction) == nil {
		return nil
	}
	for i := range u.Abilities {
		ab := &u.Abilities[i]
		if ab.Type != Support || u.AbilityCD[ab.ID] > 0 {
			continue
		}
		for _, ef := range ab.Effects {
			if ef.Kind == EffectHeal {
				return ab
			}
		}
	}
	return nil
}

// castAbility resolves every effect of one ability. It first computes
// all target sets; if no effect would touch anyone the cast is rejected
// without consuming the cooldown.
func (e *Engine) castAbility(u *Unit, ab *Ability) bool {
	type resolved struct {
		ef      AbilityEffect
		targets []*Unit
	}
	plan := make([]resolved, 0, len(ab.Effects))
	affected := false
	for _, ef := range ab.Effects {
		r := resolved{ef: ef}
		switch ef.Kind {
		case EffectDamage, EffectStatus:
			r.targets = e.hostileTargets(u, ab, ef)
			if len(r.targets) > 0 {
				affected = true
			}
		case EffectHeal:
			for _, a := range e.alliesOf(u) {
				if a.Alive && a.Stats.HP < a.Stats.MaxHP {
					r.targets = append(r.targets, a)
				}
			}
			if len(r.targets) > 0 {
				affected = true
			}
		case EffectBuff:
			for _, a := range e.alliesOf(u) {
				if a.Alive {
					r.targets = append(r.targets, a)
				}
			}
			if len(r.targets) > 0 {
				affected = true
			}
		case EffectLifesteal:
			// co-effect on the caster, resolved against damage dealt
		}
		plan = append(plan, r)
	}
	if !affected {
		return false
	}

	seen := map[string]bool{}
	var targetIDs []string
	for _, r := range plan {
		for _, t := range r.targets {
			if !seen[t.ID] {
				seen[t.ID] = true
				targetIDs = append(targetIDs, t.ID)
			}
		}
	}
	e.emit(EvAbilityUsed, map[string]any{
		"caster": u.ID, "ability": ab.ID, "name": ab.Name, "targets": targetIDs,
	})

	totalDamage := 0.0
	for _, r := range plan {
		switch r.ef.Kind {
		case EffectDamage:
			// ability damage applies the raw effect value; mitigation is
			// pre-baked, unlike the basic-attack path
			for _, t := range r.targets {
				totalDamage += e.dealDamage(u, t, r.ef.Value, "ability", ab.ID)
			}
		case EffectHeal:
			for _, t := range r.targets {
				e.healUnit(t, r.ef.Value, ab.ID)
			}
		case EffectBuff:
			for _, t := range r.targets {
				e.applyStatus(t, StatusShield, r.ef.Duration, 0, r.ef.Modifier, u.ID)
			}
		case EffectStatus:
			for _, t := range r.targets {
				e.applyStatus(t, r.ef.Status, r.ef.Duration, r.ef.DamagePerTick, r.ef.Modifier, u.ID)
			}
		case EffectLifesteal:
			if totalDamage > 0 && r.ef.Value > 0 {
				e.healUnit(u, totalDamage*r.ef.Value, ab.ID)
			}
		}
	}
	return true
}

// hostileTargets computes the opposing target set for a damage or status
// effect: single nearest, a named pattern, or a plain radius around the
// nearest in-range unit.
func (e *Engine) hostileTargets(u *Unit, ab *Ability, ef AbilityEffect) []*Unit {
	if ef.Target == TargetSelf {
		return []*Unit{u}
	}
	primary := e.nearestEnemy(u)
	if primary == nil {
		return nil
	}

	if ef.Target == TargetEnemy {
		if Chebyshev(u.Pos, primary.Pos) > ab.Range {
			return nil
		}
		return []*Unit{primary}
	}

	switch ef.Pattern {
	case PatternCleave:
		// one adjacent primary plus up to two enemies adjacent to both
		// the primary and the caster
		if Chebyshev(u.Pos, primary.Pos) > 1 {
			return nil
		}
		out := []*Unit{primary}
		extras := 0
		for _, c := range e.opponentsOf(u) {
			if !c.Alive || c == primary {
				continue
			}
			if Chebyshev(c.Pos, primary.Pos) <= 1 && Chebyshev(c.Pos, u.Pos) <= 1 {
				out = append(out, c)
				extras++
				if extras == 2 {
					break
				}
			}
		}
		return out
	case PatternBlast:
		// fixed 2x2 block anchored at the nearest in-range target
		if Chebyshev(u.Pos, primary.Pos) > ab.Range {
			return nil
		}
		anchor := primary.Pos
		block := [4]Position{
			anchor,
			{Row: anchor.Row, Col: anchor.Col + 1},
			{Row: anchor.Row + 1, Col: anchor.Col},
			{Row: anchor.Row + 1, Col: anchor.Col + 1},
		}
		var out []*Unit
		for _, c := range e.opponentsOf(u) {
			if !c.Alive {
				continue
			}
			for _, cell := range block {
				if c.Pos == cell {
					out = append(out, c)
					break
				}
			}
		}
		return out
	default:
		if Chebyshev(u.Pos, primary.Pos) > ab.Range {
			return nil
		}
		var out []*Unit
		for _, c := range e.opponentsOf(u) {
			if c.Alive && Chebyshev(c.Pos, primary.Pos) <= ef.Radius {
				out = append(out, c)
			}
		}
		return out
	}
}

// basicAttack is the fallback action: an evasion roll, a crit roll, then
// defense-mitigated damage with a floor of one.
func (e *Engine) basicAttack(u *Unit, target *Unit) {
	effEvasion := target.Stats.Evasion - (1 - u.Stats.Accuracy)
	if effEvasion < 0 {
		effEvasion = 0
	}
	if effEvasion > 0.95 {
		effEvasion = 0.95
	}
	if e.rng.Float64() < effEvasion {
		e.emit(EvEvaded, map[string]any{"attacker": u.ID, "target": target.ID})
		return
	}

	crit := e.rng.Float64() < u.Stats.CritChance
	base := u.Stats.Damage
	if crit {
		base *= u.Stats.CritDamage
	}
	dmg := base - target.Stats.Defense*(1-u.Stats.Penetration)*0.5
	if dmg < 1 {
		dmg = 1
	}

	e.emit(EvAttack, map[string]any{"attacker": u.ID, "target": target.ID, "crit": crit})
	if crit {
		e.emit(EvCriticalHit, map[string]any{"attacker": u.ID, "target": target.ID})
	}
	dealt := e.dealDamage(u, target, dmg, "attack", "")
	if u.Stats.Lifesteal > 0 && dealt > 0 {
		e.healUnit(u, dealt*u.Stats.Lifesteal, "lifesteal")
	}
}

// dealDamage applies amount to the target's hp, floored at zero, and
// returns what actually landed. src may be nil for damage-over-time.
func (e *Engine) dealDamage(src *Unit, target *Unit, amount float64, source, abilityID string) float64 {
	if !target.Alive || amount <= 0 {
		return 0
	}
	dealt := amount
	if dealt > target.Stats.HP {
		dealt = target.Stats.HP
	}
	target.Stats.HP -= dealt

	if src != nil {
		e.state.DamageByUnit[src.ID] += dealt
	}
	if abilityID != "" {
		e.state.DamageByAbility[abilityID] += dealt
	}

	payload := map[string]any{
		"target": target.ID, "amount": dealt, "source": source, "hp": target.Stats.HP,
	}
	if src != nil {
		payload["attacker"] = src.ID
	}
	e.emit(EvDamage, payload)

	if target.Stats.HP <= 0 {
		e.kill(target, src)
	}
	return dealt
}

func (e *Engine) healUnit(target *Unit, amount float64, source string) {
	if !target.Alive || amount <= 0 {
		return
	}
	healed := amount
	if room := target.Stats.MaxHP - target.Stats.HP; healed > room {
		healed = room
	}
	if healed <= 0 {
		return
	}
	target.Stats.HP += healed
	e.emit(EvHeal, map[string]any{
		"target": target.ID, "amount": healed, "hp": target.Stats.HP, "source": source,
	})
}

// kill marks the unit dead, frees its cell and drops its effects. The
// unit stays in its roster array for the historical record.
func (e *Engine) kill(target *Unit, by *Unit) {
	target.Alive = false
	target.Gauge = 0
	target.Effects = nil
	e.grid.Vacate(target.Pos)
	payload := map[string]any{"id": target.ID}
	if by != nil {
		payload["by"] = by.ID
	}
	e.emit(EvDeath, payload)
}
