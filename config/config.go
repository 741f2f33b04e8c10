package config

import (
	"time"

	"main/utils"
)

type RedisConfig struct {
	URL string
}

// EngineConfig bounds the engine's remote calls and background work.
type EngineConfig struct {
	// StoreTimeout caps each reset/complete/uncomplete call. On timeout the
	// call is treated as failed and rollback semantics apply.
	StoreTimeout time.Duration
	// SessionCleanupInterval drives the maintenance scheduler.
	SessionCleanupInterval time.Duration
	// MetricsSampleInterval drives system metrics sampling.
	MetricsSampleInterval time.Duration
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
	}
}

func LoadEngineConfig() EngineConfig {
	return EngineConfig{
		StoreTimeout:           utils.GetEnvAsDuration("ENGINE_STORE_TIMEOUT", 10*time.Second),
		SessionCleanupInterval: utils.GetEnvAsDuration("SESSION_CLEANUP_INTERVAL", 15*time.Minute),
		MetricsSampleInterval:  utils.GetEnvAsDuration("METRICS_SAMPLE_INTERVAL", 30*time.Second),
	}
}
