package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/medctx/medctx/internal"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

const (
	EnvPrefix             = "MEDCTX"
	DefaultMaxRequestSize = 5 << 20 // 5MB
)

var defaultConfig = Config{
	NLP: NLP{
		ServerURL:        "http://localhost:5557",
		MinServerVersion: "0.1.0",
		Timeout:          30 * time.Second,
		MaxConcurrency:   1,
		QueueWait:        60 * time.Second,
	},
	Server: ServerConfig{
		Port:            8000,
		MaxRequestSize:  DefaultMaxRequestSize,
		ShutdownTimeout: 10 * time.Second,
	},
	Log: LogConfig{
		Level:  "info",
		Format: "text",
	},
	OpenTelemetry: OpenTelemetryConfig{
		ServiceName: "medctx",
	},
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config.yaml is not an error unless configFile was given explicitly.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment variables take precedence over config file
	loadDotEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("config.yaml not found, using defaults and environment")
	}

	// AutomaticEnv only applies to keys viper already knows about
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	explicit := cfg
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	keepExplicitZeros(v, &cfg, &explicit)

	return &cfg, nil
}

// keepExplicitZeros restores the settings whose zero value is meaningful when they were set
// explicitly. An empty nlp.min_server_version disables the version check and a zero
// server.max_request_size disables the body size limit.
func keepExplicitZeros(v *viper.Viper, cfg, explicit *Config) {
	if v.IsSet("nlp.min_server_version") {
		cfg.NLP.MinServerVersion = explicit.NLP.MinServerVersion
	}
	if v.IsSet("server.max_request_size") {
		cfg.Server.MaxRequestSize = explicit.Server.MaxRequestSize
	}
}

var envKeys = []string{
	"nlp.server_url",
	"nlp.min_server_version",
	"nlp.timeout",
	"nlp.retry_max",
	"nlp.max_concurrency",
	"nlp.queue_wait",
	"nlp.startup_retries",
	"server.host",
	"server.port",
	"server.max_request_size",
	"server.shutdown_timeout",
	"log.level",
	"log.format",
	"auth.secret",
	"auth.required",
	"opentelemetry.enabled",
	"opentelemetry.service_name",
}

// applyDefaults fills every zero-valued field of cfg from defaultConfig. mergo cannot tell an
// explicit zero from an unset field; see keepExplicitZeros.
func applyDefaults(cfg *Config) error {
	if err := mergo.Merge(cfg, defaultConfig); err != nil {
		return fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	internal.SetLogFormat(cfg.Log.Format)
	log.Info("Log level set to: ", level)
}
