package battle

// Stats are the live derived numbers for a unit. Everything except HP is
// recomputed from the unit's base stats plus active status modifiers; HP
// survives recalculation untouched.
type Stats struct {
	HP          float64 `json:"hp"`
	MaxHP       float64 `json:"max_hp"`
	Damage      float64 `json:"damage"`
	Speed       float64 `json:"speed"`
	Defense     float64 `json:"defense"`
	CritChance  float64 `json:"crit_chance"`
	CritDamage  float64 `json:"crit_damage"`
	Evasion     float64 `json:"evasion"`
	Accuracy    float64 `json:"accuracy"`
	Penetration float64 `json:"penetration,omitempty"`
	Lifesteal   float64 `json:"lifesteal,omitempty"`
}

type AbilityType string

const (
	Offensive AbilityType = "offensive"
	Support   AbilityType = "support"
)

type EffectKind string

const (
	EffectDamage    EffectKind = "damage"
	EffectHeal      EffectKind = "heal"
	EffectBuff      EffectKind = "buff"
	EffectStatus    EffectKind = "status"
	EffectLifesteal EffectKind = "lifesteal"
)

type TargetType string

const (
	TargetEnemy TargetType = "enemy"
	TargetArea  TargetType = "aoe"
	TargetSelf  TargetType = "self"
)

// AreaPattern names a special AOE footprint that replaces the plain radius.
type AreaPattern string

const (
	PatternNone   AreaPattern = ""
	PatternCleave AreaPattern = "cleave" // adjacent primary + up to two enemies adjacent to both primary and caster
	PatternBlast  AreaPattern = "blast"  // 2x2 block anchored at the nearest in-range target
)

type StatName string

const (
	StatDamage      StatName = "damage"
	StatSpeed       StatName = "speed"
	StatDefense     StatName = "defense"
	StatCritChance  StatName = "crit_chance"
	StatCritDamage  StatName = "crit_damage"
	StatEvasion     StatName = "evasion"
	StatAccuracy    StatName = "accuracy"
	StatPenetration StatName = "penetration"
	StatLifesteal   StatName = "lifesteal"
)

type StatModifier struct {
	Stat    StatName `json:"stat"`
	Value   float64  `json:"value"`
	Percent bool     `json:"percent"`
}

type AbilityEffect struct {
	Kind          EffectKind    `json:"kind"`
	Target        TargetType    `json:"target"`
	Value         float64       `json:"value,omitempty"`
	Radius        int           `json:"radius,omitempty"`
	Pattern       AreaPattern   `json:"pattern,omitempty"`
	Status        StatusType    `json:"status,omitempty"`
	Duration      int           `json:"duration,omitempty"`
	DamagePerTick float64       `json:"damage_per_tick,omitempty"`
	Modifier      *StatModifier `json:"modifier,omitempty"`
}

type Ability struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     AbilityType     `json:"type"`
	Range    int             `json:"range"`
	Cooldown int             `json:"cooldown"` // actions to wait between uses
	Effects  []AbilityEffect `json:"effects"`
}

type StatusType string

const (
	StatusBurn    StatusType = "burn"
	StatusPoison  StatusType = "poison"
	StatusBleed   StatusType = "bleed"
	StatusStun    StatusType = "stun"
	StatusFreeze  StatusType = "freeze"
	StatusRoot    StatusType = "root"
	StatusShield  StatusType = "shield"
	StatusHaste   StatusType = "haste"
	StatusRage    StatusType = "rage"
	StatusSlow    StatusType = "slow"
	StatusWeaken  StatusType = "weaken"
	StatusSunder  StatusType = "sunder"
	StatusTaunt   StatusType = "taunt"
	StatusStealth StatusType = "stealth"
)

type StatusCategory string

const (
	CategoryBuff    StatusCategory = "buff"
	CategoryDebuff  StatusCategory = "debuff"
	CategoryControl StatusCategory = "control"
	CategoryDot     StatusCategory = "dot"
	CategorySpecial StatusCategory = "special"
)

// StatusEffect is one timed application on a unit. ID is unique within a
// battle so the event stream can pair StatusApplied with StatusExpired.
type StatusEffect struct {
	ID            string         `json:"id"`
	Type          StatusType     `json:"type"`
	Category      StatusCategory `json:"category"`
	Duration      int            `json:"duration"`
	Remaining     int            `json:"remaining"`
	DamagePerTick float64        `json:"damage_per_tick,omitempty"`
	Modifier      *StatModifier  `json:"modifier,omitempty"`
}

// Unit is one combatant. It is created at battle start (or, for later
// waves, at wave-clear time) and stays in its roster array after death so
// the event log keeps a stable reference.
type Unit struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Hero      bool            `json:"hero"`
	Pos       Position        `json:"pos"`
	Base      Stats           `json:"base"`
	Stats     Stats           `json:"stats"`
	Effects   []*StatusEffect `json:"effects,omitempty"`
	Abilities []Ability       `json:"abilities,omitempty"`
	AbilityCD map[string]int  `json:"ability_cd,omitempty"`
	Gauge     float64         `json:"gauge"`
	GaugeRate float64         `json:"gauge_rate"`
	Alive     bool            `json:"alive"`
	Wave      int             `json:"wave,omitempty"`
}

func NewUnit(id, name string, hero bool, base Stats, abilities []Ability) *Unit {
	u := &Unit{
		ID:        id,
		Name:      name,
		Hero:      hero,
		Base:      base,
		Stats:     base,
		Abilities: abilities,
		AbilityCD: map[string]int{},
		Alive:     true,
	}
	u.Recalc()
	return u
}

// Recalc rebuilds derived stats from base plus the active modifiers.
// HP is never touched here; it only moves through damage and healing.
func (u *Unit) Recalc() {
	hp := u.Stats.HP
	u.Stats = u.Base
	u.Stats.HP = hp
	for _, se := range u.Effects {
		if se.Modifier == nil {
			continue
		}
		v := u.stat(se.Modifier.Stat)
		if se.Modifier.Percent {
			v *= 1 + se.Modifier.Value/100
		} else {
			// only flat modifiers floor at zero
			v += se.Modifier.Value
			if v < 0 {
				v = 0
			}
		}
		u.setStat(se.Modifier.Stat, v)
	}
	u.GaugeRate = u.Stats.Speed / CooldownDivisor
}

func (u *Unit) stat(name StatName) float64 {
	switch name {
	case StatDamage:
		return u.Stats.Damage
	case StatSpeed:
		return u.Stats.Speed
	case StatDefense:
		return u.Stats.Defense
	case StatCritChance:
		return u.Stats.CritChance
	case StatCritDamage:
		return u.Stats.CritDamage
	case StatEvasion:
		return u.Stats.Evasion
	case StatAccuracy:
		return u.Stats.Accuracy
	case StatPenetration:
		return u.Stats.Penetration
	case StatLifesteal:
		return u.Stats.Lifesteal
	}
	return 0
}

func (u *Unit) setStat(name StatName, v float64) {
	switch name {
	case StatDamage:
		u.Stats.Damage = v
	case StatSpeed:
		u.Stats.Speed = v
	case StatDefense:
		u.Stats.Defense = v
	case StatCritChance:
		u.Stats.CritChance = v
	case StatCritDamage:
		u.Stats.CritDamage = v
	case StatEvasion:
		u.Stats.Evasion = v
	case StatAccuracy:
		u.Stats.Accuracy = v
	case StatPenetration:
		u.Stats.Penetration = v
	case StatLifesteal:
		u.Stats.Lifesteal = v
	}
}

// Controlled reports whether a control-category status (stun, freeze,
// root) is active, which makes the unit skip its action.
func (u *Unit) Controlled() bool {
	for _, se := range u.Effects {
		if se.Category == CategoryControl {
			return true
		}
	}
	return false
}

// EffectiveRange is the longest range among ready offensive abilities,
// or 1 (melee) when none is ready.
func (u *Unit) EffectiveRange() int {
	r := 1
	for i := range u.Abilities {
		ab := &u.Abilities[i]
		if ab.Type != Offensive || u.AbilityCD[ab.ID] > 0 {
			continue
		}
		if ab.Range > r {
			r = ab.Range
		}
	}
	return r
}
