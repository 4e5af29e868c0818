package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SeedStatic   = "static"
	SeedPostgres = "postgres"
	SeedSQLite   = "sqlite"
)

type Config struct {
	Port       string `mapstructure:"PORT"`
	AppEnv     string `mapstructure:"APP_ENV"`
	SeedSource string `mapstructure:"SEED_SOURCE"`
	SeedFile   string `mapstructure:"SEED_FILE"`
	SeedDB     bool   `mapstructure:"SEED_DB"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	SnapshotCacheTTL time.Duration `mapstructure:"SNAPSHOT_CACHE_TTL"`

	JWTSecret          string `mapstructure:"JWT_SECRET"`
	AllowedOrigins     string `mapstructure:"ALLOWED_ORIGINS"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// LoadConfig reads <path>/app.env and the environment, environment first. A
// <path>/.env file, when present, is loaded into the environment beforehand.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SEED_SOURCE", SeedStatic)
	v.SetDefault("SEED_DB", true)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("SQLITE_PATH", "catalog.db")
	v.SetDefault("SNAPSHOT_CACHE_TTL", "10m")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)

	v.BindEnv("SEED_FILE")
	v.BindEnv("DB_HOST")
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("DB_NAME")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("ALLOWED_ORIGINS")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if config.Port != "" && !strings.Contains(config.Port, ":") {
		config.Port = ":" + config.Port
	}
	err = config.Validate()
	return
}

func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

func (c Config) Validate() error {
	switch c.SeedSource {
	case SeedStatic, SeedSQLite:
	case SeedPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("SEED_SOURCE=postgres needs DB_HOST and DB_NAME")
		}
	default:
		return fmt.Errorf("unknown SEED_SOURCE %q", c.SeedSource)
	}
	if c.Production() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
