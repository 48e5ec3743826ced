package config

import (
	"errors"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is loaded from environment variables. Secrets (DB password, JWT
// secret, operator key hash) are env-only and never logged.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Matrix   MatrixConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME" env-default:"skill-matrix"`
	Environment string `env:"APP_ENV" env-default:"local"`
	HTTPPort    string `env:"HTTP_PORT" env-default:"8080"`
}

// DatabaseConfig selects the storage driver. "postgres" is the production
// driver; "sqlite" keeps the whole store in a single file.
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"postgres"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBName     string `env:"DB_NAME" env-default:"skill_matrix"`
	DBUser     string `env:"DB_USER" env-default:"skill_matrix"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`

	PoolMaxConns    int32         `env:"DB_POOL_MAX_CONNS" env-default:"10"`
	PoolMinConns    int32         `env:"DB_POOL_MIN_CONNS" env-default:"0"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"5s"`
	PoolMaxConnLife time.Duration `env:"DB_POOL_MAX_CONN_LIFETIME" env-default:"30m"`
	PoolMaxConnIdle time.Duration `env:"DB_POOL_MAX_CONN_IDLE_TIME" env-default:"5m"`

	SQLitePath string `env:"SQLITE_PATH" env-default:"data/skill-matrix.db"`
}

type RedisConfig struct {
	Host     string        `env:"REDIS_HOST" env-default:""`
	Port     string        `env:"REDIS_PORT" env-default:"6379"`
	Password string        `env:"REDIS_PASSWORD"`
	TTL      time.Duration `env:"REDIS_TTL" env-default:"10m"`
}

// Enabled reports whether a Redis cache should be attempted at all. An empty
// host means the deployment runs without a cache.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c RedisConfig) Addr() string {
	return strings.TrimSpace(c.Host) + ":" + strings.TrimSpace(c.Port)
}

type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenExpiresIn  time.Duration `env:"JWT_EXPIRES_IN" env-default:"12h"`
	OperatorKeyHash string        `env:"OPERATOR_KEY_HASH"`
}

// Enabled reports whether mutating routes are protected. Leaving both
// secrets empty runs the API open, as the original internal tool did.
func (c AuthConfig) Enabled() bool {
	return strings.TrimSpace(c.JWTSecret) != "" && strings.TrimSpace(c.OperatorKeyHash) != ""
}

// MatrixConfig covers the collation choice for partial name filters on the
// competence matrix.
type MatrixConfig struct {
	CaseInsensitiveFilters bool `env:"MATRIX_CASE_INSENSITIVE" env-default:"true"`
}

var errUnknownDriver = errors.New("unknown database driver")

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}

	switch strings.TrimSpace(cfg.Database.Driver) {
	case "postgres", "sqlite":
	default:
		return Config{}, errUnknownDriver
	}

	return cfg, nil
}
