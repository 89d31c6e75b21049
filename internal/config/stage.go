package config

type StageConfig struct {
	Grid           GridDef    `yaml:"grid"`
	ScrollDistance int        `yaml:"scroll_distance"`
	TickCeiling    int        `yaml:"tick_ceiling"`
	Waves          [][]string `yaml:"waves"` // enemy ids per wave, in spawn order
	Note           string     `yaml:"note"`
}

type GridDef struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}
