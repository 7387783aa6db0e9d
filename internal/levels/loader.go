package levels

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/campaign.yaml
var defaultCampaignYAML []byte

// yamlCampaign represents the YAML structure of a campaign file.
type yamlCampaign struct {
	Levels []yamlLevel          `yaml:"levels"`
	Bonus  map[string]yamlBonus `yaml:"bonus_levels"`
}

type yamlLevel struct {
	Level  int         `yaml:"level"`
	Name   string      `yaml:"name"`
	Tier   int         `yaml:"tier"`
	Stages []yamlStage `yaml:"stages"`
}

type yamlStage struct {
	Stage      int       `yaml:"stage"`
	Blocks     []Point   `yaml:"blocks"`
	Platforms  []float64 `yaml:"platforms"`
	Enemies    []float64 `yaml:"enemies"`
	EnemySpeed float64   `yaml:"enemy_speed"`
	Bonus      BonusRule `yaml:"bonus,omitempty"`
	ExtraLife  bool      `yaml:"extra_life,omitempty"`
}

type yamlBonus struct {
	Gems  []Point `yaml:"gems"`
	Rocks []Point `yaml:"rocks"`
}

// Default returns the embedded campaign.
func Default() (*Campaign, error) {
	c, err := Parse(defaultCampaignYAML)
	if err != nil {
		return nil, fmt.Errorf("levels: embedded campaign: %w", err)
	}
	return c, nil
}

// Load returns the campaign at path, or the embedded one when path is empty.
func Load(path string) (*Campaign, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a campaign document.
func Parse(data []byte) (*Campaign, error) {
	var yc yamlCampaign
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	c := &Campaign{
		Levels: make([]Level, 0, len(yc.Levels)),
		Bonus:  make(map[string]BonusDef, len(yc.Bonus)),
	}
	for _, yl := range yc.Levels {
		lvl := Level{
			Number: yl.Level,
			Name:   yl.Name,
			Tier:   yl.Tier,
			Stages: make([]StageDef, 0, len(yl.Stages)),
		}
		for _, ys := range yl.Stages {
			rule := ys.Bonus
			if rule == "" {
				rule = BonusNone
			}
			speed := ys.EnemySpeed
			if speed == 0 {
				speed = 1
			}
			lvl.Stages = append(lvl.Stages, StageDef{
				Level:      yl.Level,
				Number:     ys.Stage,
				Blocks:     ys.Blocks,
				Platforms:  ys.Platforms,
				Enemies:    ys.Enemies,
				EnemySpeed: speed,
				Bonus:      rule,
				ExtraLife:  ys.ExtraLife,
			})
		}
		c.Levels = append(c.Levels, lvl)
	}
	for key, yb := range yc.Bonus {
		c.Bonus[key] = BonusDef{Gems: yb.Gems, Rocks: yb.Rocks}
	}

	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}
