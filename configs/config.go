package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string

	ReplicaDSNs     []string
	LogLevel        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	AutoMigrate  bool
	OTLPEndpoint string
}

func LoadConfig() *Config {
	return &Config{
		DatabaseURL:     getEnv("BLOGLY_DATABASE_URL", ""),
		DBHost:          getEnv("BLOGLY_DB_HOST", "localhost"),
		DBPort:          getEnv("BLOGLY_DB_PORT", "5432"),
		DBUser:          getEnv("BLOGLY_DB_USER", "postgres"),
		DBPass:          getEnv("BLOGLY_DB_PASS", "postgres"),
		DBName:          getEnv("BLOGLY_DB_NAME", "blogly"),
		ReplicaDSNs:     splitList(getEnv("BLOGLY_DB_REPLICAS", "")),
		LogLevel:        getEnv("BLOGLY_DB_LOG_LEVEL", "warn"),
		MaxOpenConns:    atoiDef(getEnv("BLOGLY_DB_MAX_OPEN_CONNS", ""), 40),
		MaxIdleConns:    atoiDef(getEnv("BLOGLY_DB_MAX_IDLE_CONNS", ""), 10),
		ConnMaxLifetime: durationDef(getEnv("BLOGLY_DB_CONN_MAX_LIFETIME", ""), 30*time.Minute),
		AutoMigrate:     getEnv("BLOGLY_AUTO_MIGRATE", "false") == "true",
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// DSN returns BLOGLY_DATABASE_URL when set, otherwise a keyword DSN built
// from the individual parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func atoiDef(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func durationDef(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
