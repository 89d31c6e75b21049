package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

func LoadAll(dir string) (*UnitsConfig, *AbilitiesConfig, *StageConfig, error) {
	var uc UnitsConfig
	var ac AbilitiesConfig
	var sc StageConfig
	if err := loadYAML(filepath.Join(dir, "units.yaml"), &uc); err != nil {
		return nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "abilities.yaml"), &ac); err != nil {
		return nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "stage.yaml"), &sc); err != nil {
		return nil, nil, nil, err
	}
	return &uc, &ac, &sc, nil
}
