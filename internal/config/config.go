package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAdminPin is the fallback admin secret. Never run with it in production.
const DefaultAdminPin = "0000"

const defaultRedisURL = "redis://127.0.0.1/"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Admin   AdminConfig   `mapstructure:"admin"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host                    string        `mapstructure:"host"`
	Port                    int           `mapstructure:"port"`
	Mode                    string        `mapstructure:"mode"`
	ReadTimeout             time.Duration `mapstructure:"read_timeout"`
	WriteTimeout            time.Duration `mapstructure:"write_timeout"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
}

type StoreConfig struct {
	Backend       string         `mapstructure:"backend"` // "redis" | "memory" | "postgres"
	KeyPrefix     string         `mapstructure:"key_prefix"`
	PurgeInterval time.Duration  `mapstructure:"purge_interval"`
	Redis         RedisConfig    `mapstructure:"redis"`
	Postgres      PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	PoolSize int    `mapstructure:"pool_size"`
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	DB              string        `mapstructure:"db"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// AdminConfig holds the shared admin secret. PinHash, when set, is a bcrypt
// hash and takes precedence over Pin.
type AdminConfig struct {
	Pin     string `mapstructure:"pin"`
	PinHash string `mapstructure:"pin_hash"`
}

// UsesDefaultPin reports whether the insecure fallback secret is in effect.
func (a AdminConfig) UsesDefaultPin() bool {
	return a.PinHash == "" && a.Pin == DefaultAdminPin
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads an optional config file, overlays environment variables, and returns Config.
// A missing file is not an error; every setting has a default.
func Load(path string) (*Config, error) {
	// .env is a convenience for local runs only.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Environment variable override: STORE_REDIS_URL -> store.redis.url
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Well-known names used by hosted KV providers.
	_ = v.BindEnv("store.redis.url", "STORE_REDIS_URL", "REDIS_URL", "KV_URL")
	_ = v.BindEnv("admin.pin", "ADMIN_PIN")
	_ = v.BindEnv("admin.pin_hash", "ADMIN_PIN_HASH")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.graceful_shutdown_timeout", 10*time.Second)

	v.SetDefault("store.backend", "redis")
	v.SetDefault("store.key_prefix", "")
	v.SetDefault("store.purge_interval", time.Minute)
	v.SetDefault("store.redis.url", defaultRedisURL)
	v.SetDefault("store.redis.pool_size", 10)
	v.SetDefault("store.postgres.host", "127.0.0.1")
	v.SetDefault("store.postgres.port", 5432)
	v.SetDefault("store.postgres.db", "pastebin")
	v.SetDefault("store.postgres.user", "postgres")
	v.SetDefault("store.postgres.sslmode", "disable")
	v.SetDefault("store.postgres.max_idle_conns", 5)
	v.SetDefault("store.postgres.max_open_conns", 20)
	v.SetDefault("store.postgres.conn_max_lifetime", time.Hour)
	v.SetDefault("store.postgres.auto_migrate", true)

	v.SetDefault("admin.pin", DefaultAdminPin)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept"})
	v.SetDefault("cors.max_age", 12*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks settings that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "redis", "memory", "postgres":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Admin.Pin == "" && c.Admin.PinHash == "" {
		return errors.New("admin pin must not be empty")
	}
	return nil
}
