package config

type AbilitiesConfig struct {
	Abilities []AbilityDef `yaml:"abilities"`
}

type AbilityDef struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"` // offensive | support
	Range    int         `yaml:"range"`
	Cooldown int         `yaml:"cooldown"`
	Effects  []EffectDef `yaml:"effects"`
	Note     string      `yaml:"note"`
}

type EffectDef struct {
	Kind          string       `yaml:"kind"`   // damage | heal | buff | status | lifesteal
	Target        string       `yaml:"target"` // enemy | aoe | self
	Value         float64      `yaml:"value"`
	Radius        int          `yaml:"radius"`
	Pattern       string       `yaml:"pattern"` // cleave | blast
	Status        string       `yaml:"status"`
	Duration      int          `yaml:"duration"`
	DamagePerTick float64      `yaml:"damage_per_tick"`
	Modifier      *ModifierDef `yaml:"modifier"`
}

type ModifierDef struct {
	Stat    string  `yaml:"stat"`
	Value   float64 `yaml:"value"`
	Percent bool    `yaml:"percent"`
}
