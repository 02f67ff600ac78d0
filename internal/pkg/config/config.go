package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	BcryptCost       int           `env:"BCRYPT_COST,          default=10"`
	AllowedOrigins   []string      `env:"CORS_ALLOWED_ORIGINS, default=http://127.0.0.1:5500"`
	// The startup repair pass assumes a single instance. Disable it on every
	// replica but one when scaling out.
	ReconcileOnStart bool          `env:"RECONCILE_ON_START,   default=true"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT,     default=10s"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Unsplash UnsplashConfig
}

type MongoConfig struct {
	URI          string `env:"MONGODB_URL,        default=mongodb://localhost:27017"`
	Database     string `env:"MONGO_DB,           default=outfit_share"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=false"`
}

// RedisConfig is optional. An empty Addr disables the image cache.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type UnsplashConfig struct {
	AccessKey string        `env:"UNSPLASH_ACCESS_KEY"`
	BaseURL   string        `env:"UNSPLASH_BASE_URL,  default=https://api.unsplash.com"`
	CacheTTL  time.Duration `env:"UNSPLASH_CACHE_TTL, default=1m"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load for use in main.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
