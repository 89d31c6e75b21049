package battle

import "testing"

func TestBasicAttackEvadedWhenRollIsLow(t *testing.T) {
	st := testStats(100, 30, 10)
	st.Accuracy = 0.8
	attacker := testUnit("att", true, Position{0, 0}, st)
	tst := testStats(100, 10, 10)
	tst.Evasion = 0.5
	target := testUnit("tgt", false, Position{0, 1}, tst)

	e := newTestEngine(t, 3, 3, []*Unit{attacker}, []*Unit{target})
	e.rng = fixedRand(0) // roll 0 < effectiveEvasion 0.3

	e.basicAttack(attacker, target)
	if countEvents(e.log.Events(), EvEvaded) != 1 {
		t.Fatal("want an Evaded event")
	}
	if target.Stats.HP != 100 {
		t.Fatalf("evaded attack must not damage, hp=%v", target.Stats.HP)
	}
}

func TestBasicAttackCritAndMitigation(t *testing.T) {
	st := testStats(100, 40, 10)
	st.CritChance = 1 // always crits
	st.CritDamage = 2
	attacker := testUnit("att", true, Position{0, 0}, st)
	tst := testStats(200, 10, 10)
	tst.Defense = 20
	target := testUnit("tgt", false, Position{0, 1}, tst)

	e := newTestEngine(t, 3, 3, []*Unit{attacker}, []*Unit{target})
	e.basicAttack(attacker, target)

	// 40*2 - 20*0.5 = 70
	if target.Stats.HP != 130 {
		t.Fatalf("want 130 hp after crit, got %v", target.Stats.HP)
	}
	if countEvents(e.log.Events(), EvCriticalHit) != 1 {
		t.Fatal("want a CriticalHit event")
	}
	if countEvents(e.log.Events(), EvAttack) != 1 {
		t.Fatal("want an Attack event")
	}
}

func TestBasicAttackPenetrationAndFloor(t *testing.T) {
	st := testStats(100, 10, 10)
	st.Penetration = 0.5
	attacker := testUnit("att", true, Position{0, 0}, st)
	tst := testStats(100, 10, 10)
	tst.Defense = 40
	target := testUnit("tgt", false, Position{0, 1}, tst)

	e := newTestEngine(t, 3, 3, []*Unit{attacker}, []*Unit{target})
	e.basicAttack(attacker, target)

	// 10 - 40*(1-0.5)*0.5 = 0 -> floored to 1
	if target.Stats.HP != 99 {
		t.Fatalf("damage floor of 1 not applied, hp=%v", target.Stats.HP)
	}
}

func TestAOEDamageWithLifestealCoEffect(t *testing.T) {
	nova := Ability{ID: "nova", Name: "Nova", Type: Offensive, Range: 1, Cooldown: 3,
		Effects: []AbilityEffect{
			{Kind: EffectDamage, Target: TargetArea, Radius: 1, Value: 10},
			{Kind: EffectLifesteal, Target: TargetSelf, Value: 0.5},
		}}
	caster := testUnit("caster", true, Position{1, 1}, testStats(100, 10, 10), nova)
	caster.Stats.HP = 50
	e1 := testUnit("e1", false, Position{1, 2}, testStats(100, 10, 10))
	e2 := testUnit("e2", false, Position{0, 2}, testStats(100, 10, 10))
	e3 := testUnit("e3", false, Position{2, 2}, testStats(100, 10, 10))
	e := newTestEngine(t, 4, 4, []*Unit{caster}, []*Unit{e1, e2, e3})

	if !e.castAbility(caster, &caster.Abilities[0]) {
		t.Fatal("cast should land")
	}
	for _, foe := range []*Unit{e1, e2, e3} {
		if foe.Stats.HP != 90 {
			t.Fatalf("%s should take 10 damage, hp=%v", foe.ID, foe.Stats.HP)
		}
	}
	if n := countEvents(e.log.Events(), EvDamage); n != 3 {
		t.Fatalf("want 3 Damage events, got %d", n)
	}
	if caster.Stats.HP != 65 {
		t.Fatalf("lifesteal should heal 30*0.5=15, hp=%v", caster.Stats.HP)
	}
	if countEvents(e.log.Events(), EvAbilityUsed) != 1 {
		t.Fatal("want one AbilityUsed event")
	}
}

func TestCleavePatternLimits(t *testing.T) {
	cleave := Ability{ID: "cleave", Type: Offensive, Range: 1, Cooldown: 2,
		Effects: []AbilityEffect{{Kind: EffectDamage, Target: TargetArea, Pattern: PatternCleave, Value: 10}}}
	caster := testUnit("caster", true, Position{2, 1}, testStats(100, 10, 10), cleave)
	primary := testUnit("primary", false, Position{2, 2}, testStats(100, 10, 10))
	near1 := testUnit("near1", false, Position{1, 2}, testStats(100, 10, 10))
	near2 := testUnit("near2", false, Position{3, 2}, testStats(100, 10, 10))
	far := testUnit("far", false, Position{2, 3}, testStats(100, 10, 10)) // adjacent to primary only
	e := newTestEngine(t, 5, 5, []*Unit{caster}, []*Unit{primary, near1, near2, far})

	if !e.castAbility(caster, &caster.Abilities[0]) {
		t.Fatal("cleave should land")
	}
	for _, foe := range []*Unit{primary, near1, near2} {
		if foe.Stats.HP != 90 {
			t.Fatalf("%s should be hit, hp=%v", foe.ID, foe.Stats.HP)
		}
	}
	if far.Stats.HP != 100 {
		t.Fatal("unit adjacent only to the primary must not be cleaved")
	}
}

func TestBlastPatternHitsBlock(t *testing.T) {
	blast := Ability{ID: "blast", Type: Offensive, Range: 4, Cooldown: 2,
		Effects: []AbilityEffect{{Kind: EffectDamage, Target: TargetArea, Pattern: PatternBlast, Value: 10}}}
	caster := testUnit("caster", true, Position{0, 0}, testStats(100, 10, 10), blast)
	anchor := testUnit("anchor", false, Position{1, 2}, testStats(100, 10, 10))
	inBlock := testUnit("inblock", false, Position{2, 3}, testStats(100, 10, 10))
	outside := testUnit("outside", false, Position{0, 2}, testStats(100, 10, 10))
	e := newTestEngine(t, 5, 5, []*Unit{caster}, []*Unit{anchor, inBlock, outside})

	if !e.castAbility(caster, &caster.Abilities[0]) {
		t.Fatal("blast should land")
	}
	if anchor.Stats.HP != 90 || inBlock.Stats.HP != 90 {
		t.Fatal("2x2 block targets must be hit")
	}
	if outside.Stats.HP != 100 {
		t.Fatal("cells above the anchor are outside the block")
	}
}

func TestSupportHealPolicy(t *testing.T) {
	mend := Ability{ID: "mend", Type: Support, Range: 3, Cooldown: 3,
		Effects: []AbilityEffect{{Kind: EffectHeal, Target: TargetSelf, Value: 30}}}
	healer := testUnit("healer", true, Position{0, 0}, testStats(100, 10, 10), mend)
	ally := testUnit("ally", true, Position{1, 0}, testStats(100, 10, 10))
	foe := testUnit("foe", false, Position{0, 1}, testStats(100, 10, 10))
	e := newTestEngine(t, 3, 3, []*Unit{healer, ally}, []*Unit{foe})

	// everyone at full hp: the heal is skipped and its cooldown untouched
	e.act(healer)
	if countEvents(e.log.Events(), EvHeal) != 0 {
		t.Fatal("full-hp roster must not trigger the heal")
	}
	if healer.AbilityCD["mend"] != 0 {
		t.Fatal("unused ability must keep its cooldown at zero")
	}
	if countEvents(e.log.Events(), EvAttack) != 1 {
		t.Fatal("healer should fall through to a basic attack")
	}

	ally.Stats.HP = 40
	e.act(healer)
	heals := eventsOf(e.log.Events(), EvHeal)
	if len(heals) != 1 || heals[0].Payload["target"] != "ally" {
		t.Fatalf("want one Heal on ally, got %v", heals)
	}
	if ally.Stats.HP != 70 {
		t.Fatalf("want 70 hp after mend, got %v", ally.Stats.HP)
	}
	if healer.AbilityCD["mend"] != 3 {
		t.Fatalf("used ability must start its cooldown, got %d", healer.AbilityCD["mend"])
	}
}

func TestAbilityCooldownCountsActions(t *testing.T) {
	jab := Ability{ID: "jab", Type: Offensive, Range: 1, Cooldown: 2,
		Effects: []AbilityEffect{{Kind: EffectDamage, Target: TargetEnemy, Value: 5}}}
	hero := testUnit("hero", true, Position{0, 0}, testStats(100, 10, 10), jab)
	foe := testUnit("foe", false, Position{0, 1}, testStats(500, 1, 10))
	e := newTestEngine(t, 3, 3, []*Unit{hero}, []*Unit{foe})

	e.act(hero) // casts jab, cooldown 2
	if hero.AbilityCD["jab"] != 2 {
		t.Fatalf("want cooldown 2 after cast, got %d", hero.AbilityCD["jab"])
	}
	e.act(hero) // basic attack, cooldown ticks to 1
	if hero.AbilityCD["jab"] != 1 {
		t.Fatalf("want cooldown 1, got %d", hero.AbilityCD["jab"])
	}
	e.act(hero) // basic attack, cooldown reaches 0
	if hero.AbilityCD["jab"] != 0 {
		t.Fatalf("want cooldown 0, got %d", hero.AbilityCD["jab"])
	}
	before := countEvents(e.log.Events(), EvAbilityUsed)
	e.act(hero) // jab is ready again
	if countEvents(e.log.Events(), EvAbilityUsed) != before+1 {
		t.Fatal("ability should fire again once its cooldown runs out")
	}
}

func TestStatusEffectTargetsLikeDamage(t *testing.T) {
	shot := Ability{ID: "shot", Type: Offensive, Range: 4, Cooldown: 2,
		Effects: []AbilityEffect{
			{Kind: EffectDamage, Target: TargetEnemy, Value: 10},
			{Kind: EffectStatus, Target: TargetEnemy, Status: StatusBleed, Duration: 3, DamagePerTick: 4},
		}}
	hero := testUnit("hero", true, Position{0, 0}, testStats(100, 10, 10), shot)
	foe := testUnit("foe", false, Position{0, 3}, testStats(100, 10, 10))
	e := newTestEngine(t, 5, 5, []*Unit{hero}, []*Unit{foe})

	if !e.castAbility(hero, &hero.Abilities[0]) {
		t.Fatal("cast should land")
	}
	if len(foe.Effects) != 1 || foe.Effects[0].Type != StatusBleed {
		t.Fatalf("foe should carry bleed, got %v", foe.Effects)
	}
	if foe.Effects[0].Category != CategoryDot {
		t.Fatal("bleed must classify as dot")
	}
	applied := eventsOf(e.log.Events(), EvStatusApplied)
	if len(applied) != 1 || applied[0].Payload["target"] != "foe" {
		t.Fatalf("want one StatusApplied on foe, got %v", applied)
	}
}

func TestBuffAppliesShieldToAllies(t *testing.T) {
	rally := Ability{ID: "rally", Type: Offensive, Range: 1, Cooldown: 4,
		Effects: []AbilityEffect{
			{Kind: EffectDamage, Target: TargetEnemy, Value: 5},
			{Kind: EffectBuff, Target: TargetSelf, Duration: 3,
				Modifier: &StatModifier{Stat: StatDefense, Value: 10}},
		}}
	hero := testUnit("hero", true, Position{0, 0}, testStats(100, 10, 10), rally)
	ally := testUnit("ally", true, Position{1, 0}, testStats(100, 10, 10))
	foe := testUnit("foe", false, Position{0, 1}, testStats(100, 10, 10))
	e := newTestEngine(t, 3, 3, []*Unit{hero, ally}, []*Unit{foe})

	if !e.castAbility(hero, &hero.Abilities[0]) {
		t.Fatal("cast should land")
	}
	for _, u := range []*Unit{hero, ally} {
		if len(u.Effects) != 1 || u.Effects[0].Type != StatusShield {
			t.Fatalf("%s should carry a shield buff", u.ID)
		}
		if u.Stats.Defense != 10 {
			t.Fatalf("%s defense should rise to 10, got %v", u.ID, u.Stats.Defense)
		}
	}
}

func TestAbilityOutOfRangeFallsThrough(t *testing.T) {
	cleave := Ability{ID: "cleave", Type: Offensive, Range: 1, Cooldown: 2,
		Effects: []AbilityEffect{{Kind: EffectDamage, Target: TargetArea, Pattern: PatternCleave, Value: 50}}}
	shot := Ability{ID: "shot", Type: Offensive, Range: 3, Cooldown: 2,
		Effects: []AbilityEffect{{Kind: EffectDamage, Target: TargetEnemy, Value: 10}}}
	hero := testUnit("hero", true, Position{0, 0}, testStats(100, 10, 10), cleave, shot)
	foe := testUnit("foe", false, Position{0, 3}, testStats(100, 10, 10))
	e := newTestEngine(t, 5, 5, []*Unit{hero}, []*Unit{foe})

	e.act(hero)
	if hero.AbilityCD["cleave"] != 0 {
		t.Fatal("out-of-range cleave must not consume its cooldown")
	}
	if hero.AbilityCD["shot"] != 2 {
		t.Fatal("ranged ability should have been used instead")
	}
	if foe.Stats.HP != 90 {
		t.Fatalf("shot should deal 10, hp=%v", foe.Stats.HP)
	}
}
