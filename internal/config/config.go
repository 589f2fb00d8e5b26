package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBLogLevel string

	RedisHost     string
	RedisPort     string
	SessionStore  string
	SessionSecret string
	SessionTTL    time.Duration
	RememberTTL   time.Duration

	GinMode     string
	HTTPAddr    string
	CORSOrigins []string

	LogLevel string
	LogJSON  bool
	LogFile  string

	LoginRatePerMin int

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// IsProduction reports whether the server runs in gin release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

var defaults = map[string]any{
	"DB_DRIVER":          "mysql",
	"DB_HOST":            "localhost",
	"DB_PORT":            "3306",
	"DB_USER":            "jobboard",
	"DB_PASSWORD":        "jobboard",
	"DB_NAME":            "job_board",
	"DB_LOG_LEVEL":       "warn",
	"REDIS_HOST":         "localhost",
	"REDIS_PORT":         "6379",
	"SESSION_STORE":      "redis",
	"SESSION_SECRET":     "default-secret-key-change-me",
	"SESSION_TTL":        "24h",
	"REMEMBER_TTL":       "720h",
	"GIN_MODE":           "debug",
	"HTTP_ADDR":          ":8080",
	"CORS_ORIGINS":       "",
	"LOG_LEVEL":          "info",
	"LOG_JSON":           false,
	"LOG_FILE":           "",
	"LOGIN_RATE_PER_MIN": 30,
	"ADMIN_EMAIL":        "admin@admin.com",
	"ADMIN_PASSWORD":     "Admin123!",
	"ADMIN_NAME":         "Administrator",
}

// Load reads configuration from the environment, a .env file and, when
// CONFIG_PATH is set, a YAML file. Environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.Fatalf("read config: %v", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBName:          v.GetString("DB_NAME"),
		DBLogLevel:      v.GetString("DB_LOG_LEVEL"),
		RedisHost:       v.GetString("REDIS_HOST"),
		RedisPort:       v.GetString("REDIS_PORT"),
		SessionStore:    strings.ToLower(v.GetString("SESSION_STORE")),
		SessionSecret:   v.GetString("SESSION_SECRET"),
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		RememberTTL:     v.GetDuration("REMEMBER_TTL"),
		GinMode:         v.GetString("GIN_MODE"),
		HTTPAddr:        v.GetString("HTTP_ADDR"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogJSON:         v.GetBool("LOG_JSON"),
		LogFile:         v.GetString("LOG_FILE"),
		LoginRatePerMin: v.GetInt("LOGIN_RATE_PER_MIN"),
		AdminEmail:      v.GetString("ADMIN_EMAIL"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		AdminName:       v.GetString("ADMIN_NAME"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
