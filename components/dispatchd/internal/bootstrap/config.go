package bootstrap

import (
	"github.com/LerianStudio/mdispatch/common"
)

const ApplicationName = "dispatchd"

// Config is the top level configuration struct for the dispatch gateway
// demo service. It is populated from the environment via
// common.SetConfigFromEnvVars and checked with
// common/net/http.ValidateStruct before the server starts.
type Config struct {
	EnvName         string `env:"ENV_NAME" validate:"required"`
	LogLevel        string `env:"LOG_LEVEL"`
	ServerAddress   string `env:"SERVER_ADDRESS" validate:"required"`
	OtelServiceName string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	QueueCapacity   int    `env:"QUEUE_CAPACITY"`
	GraphCacheSize  int    `env:"GRAPH_CACHE_SIZE"`
	FriendJWTSecret string `env:"FRIEND_JWT_SECRET" validate:"required"`
}

// LoadConfig reads Config from the environment, applying the defaults a
// bare SetConfigFromEnvVars call would leave zero-valued.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := common.SetConfigFromEnvVars(cfg); err != nil {
		return nil, err
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = common.GetenvOrDefault("SERVER_ADDRESS", ":8081")
	}

	if cfg.QueueCapacity == 0 {
		cfg.QueueCapacity = int(common.GetenvIntOrDefault("QUEUE_CAPACITY", 1000))
	}

	if cfg.GraphCacheSize == 0 {
		cfg.GraphCacheSize = int(common.GetenvIntOrDefault("GRAPH_CACHE_SIZE", 100))
	}

	if cfg.FriendJWTSecret == "" {
		cfg.FriendJWTSecret = common.GetenvOrDefault("FRIEND_JWT_SECRET", "dev-only-insecure-secret")
	}

	if cfg.OtelServiceName == "" {
		cfg.OtelServiceName = common.GetenvOrDefault("OTEL_RESOURCE_SERVICE_NAME", ApplicationName)
	}

	return cfg, nil
}
