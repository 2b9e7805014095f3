// Package config loads the rbtree command configuration from defaults, an
// optional YAML file and RBTREE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidOrder       = errors.New("invalid key order")
	ErrInvalidCodec       = errors.New("invalid snapshot codec")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
)

const (
	envPrefix      = "RBTREE"
	configName     = "rbtree"
	configType     = "yaml"
	systemConfigAt = "/etc/rbtree"
)

var (
	validLevels  = []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
	validFormats = []string{FormatText, FormatJSON}
	validOrders  = []string{OrderLexical, OrderNumeric, OrderFold}
	validCodecs  = []string{"json", "gob", "yaml"}
)

// Config holds the rbtree command configuration.
type Config struct {
	Logging       LoggingConfig       `mapstructure:"logging"`
	Order         OrderConfig         `mapstructure:"order"`
	Snapshot      SnapshotConfig      `mapstructure:"snapshot"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OrderConfig selects how keys read from input files are compared.
type OrderConfig struct {
	Mode string `mapstructure:"mode"`
}

// SnapshotConfig holds snapshot file settings.
type SnapshotConfig struct {
	Codec     string `mapstructure:"codec"`
	Directory string `mapstructure:"directory"`
	Compress  bool   `mapstructure:"compress"`
}

// ObservabilityConfig holds telemetry export settings.
type ObservabilityConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	Environment  string  `mapstructure:"environment"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from configPath, or from rbtree.yaml in the
// working directory, ./config or /etc/rbtree when configPath is empty. A
// missing default file is not an error; a missing explicit file is.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		_, statErr := os.Stat(configPath)
		if statErr != nil {
			return nil, fmt.Errorf("failed to read config file: %w", statErr)
		}

		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType(configType)
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath(systemConfigAt)
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	viperCfg.SetDefault("order.mode", DefaultOrderMode)

	viperCfg.SetDefault("snapshot.codec", DefaultSnapshotCodec)
	viperCfg.SetDefault("snapshot.compress", DefaultSnapshotCompress)
	viperCfg.SetDefault("snapshot.directory", DefaultSnapshotDirectory)

	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.otlp_headers", "")
	viperCfg.SetDefault("observability.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("observability.sample_ratio", DefaultSampleRatio)
	viperCfg.SetDefault("observability.environment", DefaultEnvironment)
}

func validateConfig(config *Config) error {
	config.Logging.Level = strings.ToLower(config.Logging.Level)
	config.Logging.Format = strings.ToLower(config.Logging.Format)
	config.Order.Mode = strings.ToLower(config.Order.Mode)
	config.Snapshot.Codec = strings.ToLower(config.Snapshot.Codec)

	if !slices.Contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	if !slices.Contains(validFormats, config.Logging.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if !slices.Contains(validOrders, config.Order.Mode) {
		return fmt.Errorf("%w: %q", ErrInvalidOrder, config.Order.Mode)
	}

	if !slices.Contains(validCodecs, config.Snapshot.Codec) {
		return fmt.Errorf("%w: %q", ErrInvalidCodec, config.Snapshot.Codec)
	}

	ratio := config.Observability.SampleRatio
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, ratio)
	}

	return nil
}

// SlogLevel returns the configured level as an [slog.Level].
func (c *LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// JSON reports whether logs are written as JSON.
func (c *LoggingConfig) JSON() bool {
	return c.Format == FormatJSON
}
