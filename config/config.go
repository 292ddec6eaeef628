// Package config loads the filter's YAML configuration: the enable flag and
// shortcut name spec.md names explicitly, plus the ring sizing and logging
// knobs a real deployment needs. Grounded on
// harperreed-radio-metadata-streamer's internal/application/config package,
// the closest analog in the retrieval pack for a long-lived background
// worker's config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the ring-buffered stream filter.
type Config struct {
	// Enable gates the filter entirely; when false, Open fails with
	// ErrDisabled and the source is used unwrapped (spec.md §6).
	Enable bool `yaml:"enable"`

	// ShortcutName is the identity advertised for explicit selection by a
	// host application (spec.md §6); it carries no behavior here.
	ShortcutName string `yaml:"shortcut_name"`

	Ring    RingConfig `yaml:"ring"`
	Logging LogConfig  `yaml:"logging"`
}

// RingConfig sizes the circular buffer (spec.md §3).
type RingConfig struct {
	BlockSize  int `yaml:"block_size"`
	BlockCount int `yaml:"block_count"`
}

// LogConfig configures the logging package.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the spec's defaults: a 10 MiB ring (1 MiB × 10 blocks),
// disabled, shortcut name "ringbuf".
func Default() Config {
	return Config{
		Enable:       false,
		ShortcutName: "ringbuf",
		Ring: RingConfig{
			BlockSize:  1 << 20,
			BlockCount: 10,
		},
		Logging: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// Load reads and parses a YAML config file, filling in Default() for any
// zero-valued fields left unset by the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}

// Validate enforces the sizing guard invariant from spec.md §3: the two
// reserved guard gaps must leave room inside the ring's total capacity
// (block_size × block_count) for the producer to always make progress.
func (c Config) Validate() error {
	if c.Ring.BlockSize <= 0 {
		return fmt.Errorf("config: ring.block_size must be positive")
	}
	if c.Ring.BlockCount <= 0 {
		return fmt.Errorf("config: ring.block_count must be positive")
	}

	const rwGap = 1 << 10
	const seekGap = 1 << 20
	capacity := int64(c.Ring.BlockSize) * int64(c.Ring.BlockCount)
	if rwGap+seekGap >= capacity {
		return fmt.Errorf("config: ring capacity %d too small for RW_GAP+SEEK_GAP=%d", capacity, rwGap+seekGap)
	}
	return nil
}
