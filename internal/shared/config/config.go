// Package config loads runtime settings from an optional properties file and
// the process environment. Every key has a hardcoded fallback so the service
// starts against a local MySQL with no file present.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback; Validate rejects it in
// production.
const DefaultJWTSecret = "change-me-in-production"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set when APP_ENV=production")

type Config struct {
	AppEnv string
	Port   string

	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	HTTPShutdownTimeout time.Duration

	DB DBConfig

	RedisAddr    string
	KafkaBroker  string
	KafkaGroupID string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	OutboxPollInterval     time.Duration
	SalaryAllowNonPositive bool
}

type DBConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectRetries  int
}

// Load reads CONFIG_FILE (default ".env") when it exists and then resolves
// every key from the environment, falling back to defaults. Values already
// present in the environment win over the file.
func Load() *Config {
	file := getEnv("CONFIG_FILE", ".env")
	_ = godotenv.Load(file)

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}

	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),

		HTTPReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		HTTPWriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		HTTPIdleTimeout:     getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),

		DB: DBConfig{
			Driver:          driver,
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", defaultPort),
			User:            getEnv("DB_USER", "ems"),
			Password:        getEnv("DB_PASSWORD", "ems"),
			Name:            getEnv("DB_NAME", "employee_management"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnectRetries:  getEnvInt("DB_CONNECT_RETRIES", 5),
		},
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		KafkaBroker:            getEnv("KAFKA_BROKER", ""),
		KafkaGroupID:           getEnv("KAFKA_GROUP_ID", "go-ems-audit"),
		JWTSecret:              getEnv("JWT_SECRET", DefaultJWTSecret),
		AccessTokenTTL:         getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:        getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		OutboxPollInterval:     getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		SalaryAllowNonPositive: getEnvBool("SALARY_ALLOW_NON_POSITIVE", false),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate refuses settings that are only safe on a developer machine.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return ErrDefaultJWTSecret
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
