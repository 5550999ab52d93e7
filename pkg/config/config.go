package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Redis (optional; empty disables caching)
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Simulation
	DefaultSimulations int     `mapstructure:"DEFAULT_SIMULATIONS"`
	MinSimulations     int     `mapstructure:"MIN_SIMULATIONS"`
	MaxSimulations     int     `mapstructure:"MAX_SIMULATIONS"`
	TeamScoreStd       float64 `mapstructure:"TEAM_SCORE_STD"`

	// Input files
	SkillProjectionsPath string `mapstructure:"SKILL_PROJECTIONS_PATH"`
	QBProjectionsPath    string `mapstructure:"QB_PROJECTIONS_PATH"`
	ScoreboardPath       string `mapstructure:"SCOREBOARD_PATH"`
	DraftPath            string `mapstructure:"DRAFT_PATH"`

	// Live data
	LiveRefreshInterval     time.Duration `mapstructure:"LIVE_REFRESH_INTERVAL"`
	ESPNTimeout             time.Duration `mapstructure:"ESPN_TIMEOUT"`
	ESPNRateLimit           int           `mapstructure:"ESPN_RATE_LIMIT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	SkipInitialFetch        bool          `mapstructure:"SKIP_INITIAL_FETCH"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("DEFAULT_SIMULATIONS", 10000)
	viper.SetDefault("MIN_SIMULATIONS", 1000)
	viper.SetDefault("MAX_SIMULATIONS", 100000)
	viper.SetDefault("TEAM_SCORE_STD", 13.5)
	viper.SetDefault("SKILL_PROJECTIONS_PATH", "data/projections-skill.csv")
	viper.SetDefault("QB_PROJECTIONS_PATH", "data/projections-qb.csv")
	viper.SetDefault("SCOREBOARD_PATH", "data/Scoreboard.txt")
	viper.SetDefault("DRAFT_PATH", "data/Draft.txt")
	viper.SetDefault("LIVE_REFRESH_INTERVAL", "60s")
	viper.SetDefault("ESPN_TIMEOUT", "10s")
	viper.SetDefault("ESPN_RATE_LIMIT", 10) // requests per second
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("SKIP_INITIAL_FETCH", false)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
