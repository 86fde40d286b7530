package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	// RedisURL selects the Redis game store; empty means in-process memory.
	RedisURL        string
	RedisMaxRetries int

	// DatabaseURL selects the PostgreSQL archive; empty means in-process memory.
	DatabaseURL         string
	ArchiveEnsureSchema bool

	GameTTLSec   int
	HistoryLimit int
	MessagesDir  string
}

// GameTTL is GameTTLSec as a duration.
func (c *AppConfig) GameTTL() time.Duration {
	return time.Duration(c.GameTTLSec) * time.Second
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		RedisMaxRetries:     8,
		ArchiveEnsureSchema: true,
		GameTTLSec:          86400,
		HistoryLimit:        10,
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("REDIS_MAX_RETRIES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RedisMaxRetries = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ARCHIVE_ENSURE_SCHEMA")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ArchiveEnsureSchema = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("GAME_TTL_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GameTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}

	if cfg.RedisURL != "" && !strings.HasPrefix(cfg.RedisURL, "redis://") && !strings.HasPrefix(cfg.RedisURL, "rediss://") {
		return nil, errors.New("REDIS_URL must use the redis:// or rediss:// scheme")
	}
	if cfg.DatabaseURL != "" && !strings.HasPrefix(cfg.DatabaseURL, "postgres://") && !strings.HasPrefix(cfg.DatabaseURL, "postgresql://") && !strings.Contains(cfg.DatabaseURL, "=") {
		return nil, errors.New("DATABASE_URL must be a postgres URL or key=value connection string")
	}

	return cfg, nil
}
