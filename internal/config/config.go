// Package config loads game tuning from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/streetbook/internal/engine"
)

// Config is the full streetbook configuration file.
type Config struct {
	Game *GameSettings `hcl:"game,block"`
	Save *SaveSettings `hcl:"save,block"`
}

// GameSettings overrides the engine's tuning constants. Zero values fall
// back to the defaults.
type GameSettings struct {
	StartingBankroll int     `hcl:"starting_bankroll,optional"`
	StartingEnergy   int     `hcl:"starting_energy,optional"`
	MaxEnergy        int     `hcl:"max_energy,optional"`
	Juice            float64 `hcl:"juice,optional"`
	BustThreshold    int     `hcl:"bust_threshold,optional"`
	WinThreshold     int     `hcl:"win_threshold,optional"`
	HeatLimit        int     `hcl:"heat_limit,optional"`
	Seed             int64   `hcl:"seed,optional"`
}

// SaveSettings controls persistence.
type SaveSettings struct {
	Path string `hcl:"path,optional"`
}

// Load parses the config file at path. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode config: %s", diags.Error())
	}
	return &cfg, nil
}

// LoadString parses configuration from a literal, for tests.
func LoadString(src string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(src), "config.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode config: %s", diags.Error())
	}
	return &cfg, nil
}

// Rules merges the game settings over the engine defaults.
func (c *Config) Rules() engine.Rules {
	rules := engine.DefaultRules()
	g := c.Game
	if g == nil {
		return rules
	}

	if g.StartingBankroll > 0 {
		rules.StartingBankroll = g.StartingBankroll
	}
	if g.StartingEnergy > 0 {
		rules.StartingEnergy = g.StartingEnergy
	}
	if g.MaxEnergy > 0 {
		rules.MaxEnergy = g.MaxEnergy
	}
	if g.Juice > 0 {
		rules.Juice = g.Juice
	}
	if g.BustThreshold > 0 {
		rules.BustThreshold = g.BustThreshold
	}
	if g.WinThreshold > 0 {
		rules.WinThreshold = g.WinThreshold
	}
	if g.HeatLimit > 0 {
		rules.HeatLimit = g.HeatLimit
	}
	return rules
}

// Seed returns the configured RNG seed, or 0 when unset.
func (c *Config) Seed() int64 {
	if c.Game == nil {
		return 0
	}
	return c.Game.Seed
}

// SavePath returns the configured save location, or def when unset.
func (c *Config) SavePath(def string) string {
	if c.Save == nil || c.Save.Path == "" {
		return def
	}
	return c.Save.Path
}

// Validate rejects settings that would make the game unplayable.
func (c *Config) Validate() error {
	rules := c.Rules()

	if rules.BustThreshold >= rules.StartingBankroll {
		return fmt.Errorf("bust threshold %d must be below the starting bankroll %d",
			rules.BustThreshold, rules.StartingBankroll)
	}
	if rules.WinThreshold <= rules.StartingBankroll {
		return fmt.Errorf("win threshold %d must be above the starting bankroll %d",
			rules.WinThreshold, rules.StartingBankroll)
	}
	if rules.StartingEnergy > rules.MaxEnergy {
		return fmt.Errorf("starting energy %d exceeds max energy %d",
			rules.StartingEnergy, rules.MaxEnergy)
	}
	if rules.Juice <= 0 || rules.Juice >= 1 {
		return fmt.Errorf("juice %v must be between 0 and 1", rules.Juice)
	}
	return nil
}
