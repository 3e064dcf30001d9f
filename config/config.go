package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided
// via the environment or an app.env file.
type AppConfig struct {
	AppPort     string `mapstructure:"APP_PORT"`
	GinMode     string `mapstructure:"GIN_MODE"`
	DatabaseURI string `mapstructure:"DATABASE_URI"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`

	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     int    `mapstructure:"REDIS_PORT"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	// Points Engine knobs
	GoalBonusPoints         int `mapstructure:"GOAL_BONUS_POINTS"`
	DefaultDailyGoalMinutes int `mapstructure:"DEFAULT_DAILY_GOAL_MINUTES"`
	LeaderboardSize         int `mapstructure:"LEADERBOARD_SIZE"`
	LeaderboardCacheTTLSec  int `mapstructure:"LEADERBOARD_CACHE_TTL_SEC"`

	RateLimitPerMinute int      `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	AllowedOrigins     []string `mapstructure:"-"`

	// Logging configuration
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogPath       string `mapstructure:"LOG_PATH"`
	GinLogPath    string `mapstructure:"GIN_LOG_PATH"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`
	LogCompress   bool   `mapstructure:"LOG_COMPRESS"`

	// Dev helpers
	SeedEnabled bool `mapstructure:"SEED_ENABLED"`
}

var cfg AppConfig
var loaded bool

// Load reads configuration once during boot. Precedence: app.env file (if
// present) -> environment variables -> built-in defaults.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read config file: %v", err)
		}
		// no file is fine, env + defaults apply
	}

	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	// ALLOWED_ORIGINS arrives as a comma separated string
	cfg.AllowedOrigins = splitAndTrim(v.GetString("ALLOWED_ORIGINS"))

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in the environment")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// SetForTesting replaces the cached configuration. Tests only.
func SetForTesting(c AppConfig) {
	cfg = c
	loaded = true
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "screenwise")
	v.SetDefault("DB_NAME", "screenwise")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TOKEN_TTL_HOURS", 72)
	v.SetDefault("GOAL_BONUS_POINTS", 50)
	v.SetDefault("DEFAULT_DAILY_GOAL_MINUTES", 120)
	v.SetDefault("LEADERBOARD_SIZE", 10)
	v.SetDefault("LEADERBOARD_CACHE_TTL_SEC", 60)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PATH", "logs/app.log")
	v.SetDefault("GIN_LOG_PATH", "logs/gin.log")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 7)
	v.SetDefault("LOG_COMPRESS", false)
	v.SetDefault("SEED_ENABLED", false)
}

// bindEnvKeys makes viper see plain environment variables even when no
// config file exists.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"APP_PORT", "GIN_MODE",
		"DATABASE_URI", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"REDIS_HOST", "REDIS_PORT", "REDIS_DB", "REDIS_PASSWORD",
		"JWT_SECRET", "TOKEN_TTL_HOURS",
		"GOAL_BONUS_POINTS", "DEFAULT_DAILY_GOAL_MINUTES",
		"LEADERBOARD_SIZE", "LEADERBOARD_CACHE_TTL_SEC",
		"RATE_LIMIT_PER_MINUTE", "ALLOWED_ORIGINS",
		"LOG_LEVEL", "LOG_PATH", "GIN_LOG_PATH",
		"LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "LOG_COMPRESS",
		"SEED_ENABLED",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
