package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/clustree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// runConfig holds the settings of a single run. It may be loaded from a YAML
// file; command line flags override file settings.
type runConfig struct {
	Branching int    `yaml:"branching"`
	Threshold int    `yaml:"threshold"`
	Count     int    `yaml:"count"`
	Max       int    `yaml:"max"`
	Seed      uint64 `yaml:"seed"`
	Input     string `yaml:"input"`
	Format    string `yaml:"format"`
	Width     int    `yaml:"width"`
	Check     bool   `yaml:"check"`
	Trace     string `yaml:"trace"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		Branching: clustree.DefaultBranchingFactor,
		Threshold: clustree.DefaultClosenessThreshold,
		Count:     100,
		Max:       1000,
		Seed:      1,
		Format:    "console",
		Trace:     "error",
	}
}

// loadRunConfig reads a YAML configuration file on top of the defaults.
func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlags overrides settings with flags explicitly set on the command line.
func (cfg *runConfig) applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("branching") {
		cfg.Branching, _ = flags.GetInt("branching")
	}
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetInt("threshold")
	}
	if flags.Changed("count") {
		cfg.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("max") {
		cfg.Max, _ = flags.GetInt("max")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("input") {
		cfg.Input, _ = flags.GetString("input")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("check") {
		cfg.Check, _ = flags.GetBool("check")
	}
	if flags.Changed("trace") {
		cfg.Trace, _ = flags.GetString("trace")
	}
}

func (cfg runConfig) treeConfig() clustree.Config {
	return clustree.Config{
		BranchingFactor:    cfg.Branching,
		ClosenessThreshold: cfg.Threshold,
	}
}

func (cfg runConfig) validate() error {
	switch cfg.Format {
	case "console", "dot", "html", "none":
	default:
		return fmt.Errorf("%w: unknown output format %q", clustree.ErrIllegalArguments, cfg.Format)
	}
	if cfg.Input == "" && (cfg.Count < 0 || cfg.Max <= 0) {
		return fmt.Errorf("%w: need count >= 0 and max > 0 for random input",
			clustree.ErrIllegalArguments)
	}
	return nil
}
