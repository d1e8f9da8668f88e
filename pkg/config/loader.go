package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("STATIOND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without the STATIOND_ prefix for Docker deploys
	viper.BindEnv("http.port", "HTTP_PORT", "STATIOND_HTTP_PORT")
	viper.BindEnv("database.url", "DATABASE_URL", "STATIOND_DATABASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL", "STATIOND_REDIS_URL")
	viper.BindEnv("queue.broker", "QUEUE_BROKER", "STATIOND_QUEUE_BROKER")
	viper.BindEnv("queue.nats.url", "NATS_URL", "STATIOND_QUEUE_NATS_URL")
	viper.BindEnv("queue.rabbitmq.url", "RABBITMQ_URL", "STATIOND_QUEUE_RABBITMQ_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET", "STATIOND_JWT_SECRET")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	viper.SetDefault("app.name", "stationd")
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("database.auto_migrate", true)
	viper.SetDefault("queue.broker", "none")
	viper.SetDefault("jwt.access_token_duration", "30m")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("seed.enabled", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret must be set")
	}

	return &cfg, nil
}
