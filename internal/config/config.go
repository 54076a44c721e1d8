package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Service *svcConfig
	Model   *modelConfig
	Events  *eventsConfig
}

type svcConfig struct {
	Address            string   `envconfig:"SUSTAINAMINE_ADDRESS" default:":8080"`
	MetricsAddress     string   `envconfig:"SUSTAINAMINE_METRICS_ADDRESS" default:":8081"`
	LogLevel           string   `envconfig:"SUSTAINAMINE_LOG_LEVEL" default:"info"`
	CorsAllowedOrigins []string `envconfig:"SUSTAINAMINE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	// PathPrefix is stripped from incoming paths when the API sits behind a gateway.
	PathPrefix string `envconfig:"SUSTAINAMINE_PATH_PREFIX" default:""`
}

type modelConfig struct {
	// FactorsFile overrides the built-in emission factors. Empty keeps the defaults.
	FactorsFile string `envconfig:"SUSTAINAMINE_FACTORS_FILE" default:""`
	// PoliciesDir holds extra rego compliance policies. Empty disables them.
	PoliciesDir string `envconfig:"SUSTAINAMINE_POLICIES_DIR" default:""`
}

type eventsConfig struct {
	// Enabled logs an audit event for every estimate and report.
	Enabled bool   `envconfig:"SUSTAINAMINE_EVENTS_ENABLED" default:"false"`
	Topic   string `envconfig:"SUSTAINAMINE_EVENTS_TOPIC" default:"sustainamine.events"`
	// QueueLimit bounds the events waiting for the writer. The oldest are dropped first.
	QueueLimit int `envconfig:"SUSTAINAMINE_EVENTS_QUEUE_LIMIT" default:"1000"`
}

// New reads the configuration from the environment once and caches it.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg, err := Load()
		if err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// Load reads a fresh configuration from the environment.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
