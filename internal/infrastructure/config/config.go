package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DriverMemory = "memory"
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
)

type Config struct {
	Port       string `env:"PORT,        default=5000"`
	Env        string `env:"ENV,         default=development"`
	JWTSecret  string `env:"JWT_SECRET"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	LogPretty  bool   `env:"LOG_PRETTY,  default=false"`
	BasePath   string `env:"BASE_PATH"`
	CORSOrigin string `env:"CORS_ORIGIN, default=*"`

	StoreDriver string        `env:"STORE_DRIVER, default=mongo"`
	CacheDriver string        `env:"CACHE_DRIVER, default=memory"`
	CacheTTL    time.Duration `env:"CACHE_TTL,    default=5m"`

	AuditWorkers    int           `env:"AUDIT_WORKERS,    default=4"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Login LoginConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type LoginConfig struct {
	RatePerMinute int `env:"LOGIN_RATE_PER_MINUTE, default=20"`
	Burst         int `env:"LOGIN_RATE_BURST,      default=5"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,    default=cloud_marketplace"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	DB       int    `env:"REDIS_DB,   default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Load reads configuration from environment variables using go-envconfig.
// Outside production a .env file in the working directory is loaded first;
// it never overrides variables already set.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("ENV") != EnvProduction {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from l. Tests use envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	cfg.BasePath = strings.TrimRight(cfg.BasePath, "/")
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var problems []string
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		problems = append(problems, fmt.Sprintf("ENV %q must be development, production or test", c.Env))
	}
	if c.StoreDriver != DriverMongo && c.StoreDriver != DriverMemory {
		problems = append(problems, fmt.Sprintf("STORE_DRIVER %q must be mongo or memory", c.StoreDriver))
	}
	if c.CacheDriver != DriverMemory && c.CacheDriver != DriverRedis {
		problems = append(problems, fmt.Sprintf("CACHE_DRIVER %q must be memory or redis", c.CacheDriver))
	}
	if c.CacheTTL <= 0 {
		problems = append(problems, "CACHE_TTL must be positive")
	}
	if c.Login.RatePerMinute <= 0 || c.Login.Burst <= 0 {
		problems = append(problems, "LOGIN_RATE_PER_MINUTE and LOGIN_RATE_BURST must be positive")
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		problems = append(problems, "BASE_PATH must start with /")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
