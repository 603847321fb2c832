// Package config defines the configuration structures for the essentia demo
// CLI. No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// EngineConfig tunes the simulation engine itself: the built-in reactions'
// default rate percents, the flask's initial environment, and how many ticks
// a single CLI invocation advances by default.
type EngineConfig struct {
	StartingTemperatureMilliKelvin int64  `mapstructure:"starting_temperature_millikelvin"`
	TickBatchSize                  uint32 `mapstructure:"tick_batch_size"`
	TickDurationMilliseconds       uint32 `mapstructure:"tick_duration_milliseconds"`
	DissolutionRatePercent         uint32 `mapstructure:"dissolution_rate_percent"`
	PrecipitationRatePercent       uint32 `mapstructure:"precipitation_rate_percent"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string `mapstructure:"format"` // "json" | "console"
	Output           string `mapstructure:"output"`
	EnableCaller     bool   `mapstructure:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace"`
}

// MetricsConfig holds the optional prometheus exporter's parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

// ScenarioEssenceConfig describes one essence to register with the flask
// before a scenario runs.
type ScenarioEssenceConfig struct {
	Name                   string `mapstructure:"name"`
	SpecificHeatCapacity   uint64 `mapstructure:"specific_heat_capacity"`
	SolventForm            string `mapstructure:"solvent_form"`
	SolventSaturationLimit int64  `mapstructure:"solvent_saturation_limit"`
	SoluteForm             string `mapstructure:"solute_form"`
	SoluteWeight           int64  `mapstructure:"solute_weight"`
}

// ScenarioFormConfig describes one form (phase) to register with the flask.
type ScenarioFormConfig struct {
	Name string `mapstructure:"name"`
}

// ScenarioSubstanceConfig describes one starting pile of matter.
type ScenarioSubstanceConfig struct {
	Essence      string           `mapstructure:"essence"`
	Form         string           `mapstructure:"form"`
	QuantityMmol uint64           `mapstructure:"quantity_mmol"`
	Solutes      map[string]int64 `mapstructure:"solutes"`
}

// ScenarioConfig is the YAML description the demo CLI loads to build a flask
// and drive it through a tick plan: essences, forms, starting substances,
// and how many ticks to run.
type ScenarioConfig struct {
	Name       string                    `mapstructure:"name"`
	Essences   []ScenarioEssenceConfig   `mapstructure:"essences"`
	Forms      []ScenarioFormConfig      `mapstructure:"forms"`
	Substances []ScenarioSubstanceConfig `mapstructure:"substances"`
	Ticks      uint32                    `mapstructure:"ticks"`
	Engine     EngineConfig              `mapstructure:"engine"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the demo CLI.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Engine.TickBatchSize < 1 {
		return fmt.Errorf("config: engine.tick_batch_size must be >= 1, got %d", c.Engine.TickBatchSize)
	}
	if c.Engine.DissolutionRatePercent > 100 {
		return fmt.Errorf("config: engine.dissolution_rate_percent must be <= 100, got %d", c.Engine.DissolutionRatePercent)
	}
	if c.Engine.PrecipitationRatePercent > 100 {
		return fmt.Errorf("config: engine.precipitation_rate_percent must be <= 100, got %d", c.Engine.PrecipitationRatePercent)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			return fmt.Errorf("config: metrics.port %d is out of range [1, 65535]", c.Metrics.Port)
		}
		if c.Metrics.Namespace == "" {
			return fmt.Errorf("config: metrics.namespace is required when metrics.enabled is true")
		}
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Process-wide singleton
// ─────────────────────────────────────────────────────────────────────────────

var (
	mu      sync.RWMutex
	current *Config
)

// Set installs cfg as the process-wide configuration, replacing any
// previous value. Safe for concurrent use.
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// Get returns the process-wide configuration installed by Set, or nil if
// none has been installed yet. Safe for concurrent use.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
