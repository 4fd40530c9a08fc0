// Package config holds the tool configuration and its viper bindings.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/quintrel/balloontool/internal/cluster"
	"github.com/quintrel/balloontool/internal/extract"
	"github.com/quintrel/balloontool/internal/overlay"
)

// Zone configures grid construction.
type Zone struct {
	// LettersOnCols labels columns with letters instead of rows.
	LettersOnCols bool `mapstructure:"letters_on_cols" yaml:"letters_on_cols"`
	// ReverseRows numbers rows bottom-up, for drawings whose zone
	// reference frame starts at the lower edge.
	ReverseRows bool `mapstructure:"reverse_rows" yaml:"reverse_rows"`
	// CacheTTLSeconds bounds how long built grids stay cached.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
}

// Extract configures the OCR passes.
type Extract struct {
	Language      string  `mapstructure:"language" yaml:"language"`
	MinConfidence float64 `mapstructure:"min_confidence" yaml:"min_confidence"`
	// DualRotation enables the additional 90-degree pass for vertical
	// dimension text.
	DualRotation bool `mapstructure:"dual_rotation" yaml:"dual_rotation"`
}

// Config is the full tool configuration.
type Config struct {
	Cluster cluster.Config `mapstructure:"cluster" yaml:"cluster"`
	Zone    Zone           `mapstructure:"zone" yaml:"zone"`
	Extract Extract        `mapstructure:"extract" yaml:"extract"`
	Overlay overlay.Style  `mapstructure:"overlay" yaml:"overlay"`
}

// Default returns the built-in configuration.
func Default() Config {
	style := overlay.DefaultStyle()
	opts := extract.DefaultOptions()
	return Config{
		Cluster: cluster.DefaultConfig(),
		Zone: Zone{
			CacheTTLSeconds: 300,
		},
		Extract: Extract{
			Language:      opts.Language,
			MinConfidence: opts.MinConfidence,
			DualRotation:  true,
		},
		Overlay: style,
	}
}

// Load overlays viper's merged sources (file, env, flags) onto the
// defaults.
func Load() (Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Cluster.MatchIoU < 0 || c.Cluster.MatchIoU > 1 {
		return fmt.Errorf("cluster.match_iou must be in [0,1], got %v", c.Cluster.MatchIoU)
	}
	if c.Cluster.MinBoxSize < 0 {
		return fmt.Errorf("cluster.min_box_size must be non-negative, got %v", c.Cluster.MinBoxSize)
	}
	if c.Extract.MinConfidence < 0 || c.Extract.MinConfidence > 1 {
		return fmt.Errorf("extract.min_confidence must be in [0,1], got %v", c.Extract.MinConfidence)
	}
	if c.Zone.CacheTTLSeconds < 0 {
		return fmt.Errorf("zone.cache_ttl_seconds must be non-negative, got %d", c.Zone.CacheTTLSeconds)
	}
	return nil
}
