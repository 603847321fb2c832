package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all CLI settings.
const envPrefix = "ESSENTIA"

// newViper builds a pre-configured Viper instance with the CLI's standard
// settings: YAML file type, ESSENTIA_ env prefix, automatic env binding, and
// a key replacer that maps "." → "_" so that nested keys like
// "engine.tick_batch_size" resolve to "ESSENTIA_ENGINE_TICK_BATCH_SIZE".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvs(v, Config{})

	return v
}

// bindEnvs recursively binds each field of the given struct to an environment
// variable using its "mapstructure" tag.
func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ift := reflect.TypeOf(iface)
	if ift.Kind() == reflect.Ptr {
		ift = ift.Elem()
	}
	for i := 0; i < ift.NumField(); i++ {
		field := ift.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "," {
			continue
		}
		newParts := append(parts, tag)
		if field.Type.Kind() == reflect.Struct {
			bindEnvs(v, reflect.New(field.Type).Elem().Interface(), newParts...)
		} else {
			key := strings.Join(newParts, ".")
			_ = v.BindEnv(key)
		}
	}
}

// Load reads the YAML file at configPath, merges any ESSENTIA_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result. It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from ESSENTIA_* environment
// variables, with no config file required.
//
// Environment variable naming convention:
//
//	ESSENTIA_<SECTION>_<FIELD>   e.g.  ESSENTIA_ENGINE_TICK_BATCH_SIZE
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// LoadScenario reads a scenario YAML file (essences, forms, substances, tick
// plan) from scenarioPath. Unlike Load, it does not validate against
// Config.Validate — a scenario's engine overrides are validated indirectly
// the first time they are defaulted and wired into a run.
func LoadScenario(scenarioPath string) (*ScenarioConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(scenarioPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read scenario file %q: %w", scenarioPath, err)
	}

	scenario := &ScenarioConfig{}
	if err := v.Unmarshal(scenario); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal scenario: %w", err)
	}

	ApplyScenarioDefaults(scenario)

	return scenario, nil
}

// WatchScenario monitors scenarioPath for changes and invokes onChange with
// the newly parsed ScenarioConfig whenever the file is modified on disk. It
// backs the demo CLI's --watch flag. Watch is non-blocking; it starts a
// background goroutine managed by viper. If the changed file fails to parse,
// onChange is NOT called and the error is silently swallowed (viper
// behaviour).
func WatchScenario(scenarioPath string, onChange func(*ScenarioConfig)) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(scenarioPath)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read scenario file %q: %w", scenarioPath, err)
	}

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		scenario := &ScenarioConfig{}
		if err := v.Unmarshal(scenario); err != nil {
			return
		}
		ApplyScenarioDefaults(scenario)
		onChange(scenario)
	})

	return nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
