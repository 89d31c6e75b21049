package config

type UnitsConfig struct {
	Heroes  []UnitDef `yaml:"heroes"`
	Enemies []UnitDef `yaml:"enemies"`
}

type UnitDef struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Stats     StatsDef `yaml:"stats"`
	Row       int      `yaml:"row"`
	Col       int      `yaml:"col"`
	Abilities []string `yaml:"abilities"`
	Note      string   `yaml:"note"`
}

type StatsDef struct {
	MaxHP       float64 `yaml:"max_hp"`
	Damage      float64 `yaml:"damage"`
	Speed       float64 `yaml:"speed"`
	Defense     float64 `yaml:"defense"`
	CritChance  float64 `yaml:"crit_chance"`
	CritDamage  float64 `yaml:"crit_damage"`
	Evasion     float64 `yaml:"evasion"`
	Accuracy    float64 `yaml:"accuracy"`
	Penetration float64 `yaml:"penetration"`
	Lifesteal   float64 `yaml:"lifesteal"`
}
