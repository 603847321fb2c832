package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultStartingTemperatureMilliKelvin is room temperature, 298.15K.
	DefaultStartingTemperatureMilliKelvin = 298150
	DefaultTickBatchSize                  = 1
	DefaultTickDurationMilliseconds       = 1000
	DefaultDissolutionRatePercent         = 10
	DefaultPrecipitationRatePercent       = 10

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsPort      = 9090
	DefaultMetricsNamespace = "essentia"
	DefaultMetricsSubsystem = "engine"
)

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults fills zero-value fields in cfg with well-known defaults.
// It must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the platform default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Engine.StartingTemperatureMilliKelvin == 0 {
		cfg.Engine.StartingTemperatureMilliKelvin = DefaultStartingTemperatureMilliKelvin
	}
	if cfg.Engine.TickBatchSize == 0 {
		cfg.Engine.TickBatchSize = DefaultTickBatchSize
	}
	if cfg.Engine.TickDurationMilliseconds == 0 {
		cfg.Engine.TickDurationMilliseconds = DefaultTickDurationMilliseconds
	}
	if cfg.Engine.DissolutionRatePercent == 0 {
		cfg.Engine.DissolutionRatePercent = DefaultDissolutionRatePercent
	}
	if cfg.Engine.PrecipitationRatePercent == 0 {
		cfg.Engine.PrecipitationRatePercent = DefaultPrecipitationRatePercent
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = DefaultMetricsPort
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// ApplyScenarioDefaults fills zero-value fields in a ScenarioConfig's nested
// EngineConfig the same way ApplyDefaults does for the root Config.
func ApplyScenarioDefaults(s *ScenarioConfig) {
	if s == nil {
		return
	}
	if s.Ticks == 0 {
		s.Ticks = 1
	}
	cfg := &Config{Engine: s.Engine}
	ApplyDefaults(cfg)
	s.Engine = cfg.Engine
}
