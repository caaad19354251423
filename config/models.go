package config

import "time"

// Config holds the configuration of the application
// Use cmd.NewAppState to build the runtime state from it
type Config struct {
	NLP           NLP                 `mapstructure:"nlp"           yaml:"nlp"`
	Server        ServerConfig        `mapstructure:"server"        yaml:"server"`
	Log           LogConfig           `mapstructure:"log"           yaml:"log"`
	Auth          AuthConfig          `mapstructure:"auth"          yaml:"auth"`
	OpenTelemetry OpenTelemetryConfig `mapstructure:"opentelemetry" yaml:"opentelemetry"`
}

// NLP configures the NLP server that hosts the spaCy model and its ConText component.
// The model name itself is a build-time constant, see ModelName.
type NLP struct {
	ServerURL        string        `mapstructure:"server_url"         yaml:"server_url"`
	MinServerVersion string        `mapstructure:"min_server_version" yaml:"min_server_version"`
	Timeout          time.Duration `mapstructure:"timeout"            yaml:"timeout"            jsonschema:"type=string"`
	RetryMax         int           `mapstructure:"retry_max"          yaml:"retry_max"`
	MaxConcurrency   int           `mapstructure:"max_concurrency"    yaml:"max_concurrency"`
	QueueWait        time.Duration `mapstructure:"queue_wait"         yaml:"queue_wait"         jsonschema:"type=string"`
	StartupRetries   int           `mapstructure:"startup_retries"    yaml:"startup_retries"`
}

type ServerConfig struct {
	Host               string        `mapstructure:"host"                 yaml:"host"`
	Port               int           `mapstructure:"port"                 yaml:"port"`
	MaxRequestSize     int64         `mapstructure:"max_request_size"     yaml:"max_request_size"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"     yaml:"shutdown_timeout"     jsonschema:"type=string"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins" yaml:"cors_allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"   yaml:"secret"`
	Required bool   `mapstructure:"required" yaml:"required"`
}

type OpenTelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"      yaml:"enabled"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}
