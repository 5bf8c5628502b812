package trellis

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables read by Driver and the backends.
type Config struct {
	// Debug enables Group debug mode.
	Debug bool `yaml:"debug"`

	// KeyRepeatDelay is the time a key must be held before it repeats.
	KeyRepeatDelay float64 `yaml:"key_repeat_delay"`
	// KeyRepeatInterval is the time between repeats.
	KeyRepeatInterval float64 `yaml:"key_repeat_interval"`

	// LineSpacing multiplies the font height for TextMetrics.
	LineSpacing float64 `yaml:"line_spacing"`

	// BlinkPeriod is the half period of a blinking text cursor.
	BlinkPeriod float64 `yaml:"blink_period"`
}

// DefaultConfig returns the settings used when no configuration is given.
func DefaultConfig() Config {
	return Config{
		KeyRepeatDelay:    0.5,
		KeyRepeatInterval: 1.0 / 30,
		LineSpacing:       1,
		BlinkPeriod:       0.5,
	}
}

// LoadConfig parses YAML over DefaultConfig. Keys absent from data keep their
// defaults.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.KeyRepeatDelay <= 0:
		return fmt.Errorf("config: key_repeat_delay must be positive, got %g", c.KeyRepeatDelay)
	case c.KeyRepeatInterval <= 0:
		return fmt.Errorf("config: key_repeat_interval must be positive, got %g", c.KeyRepeatInterval)
	case c.LineSpacing <= 0:
		return fmt.Errorf("config: line_spacing must be positive, got %g", c.LineSpacing)
	case c.BlinkPeriod <= 0:
		return fmt.Errorf("config: blink_period must be positive, got %g", c.BlinkPeriod)
	}
	return nil
}
