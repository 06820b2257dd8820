package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds settings for the leaderboard HTTP service.
type ServerConfig struct {
	Address  string // host:port for the HTTP listener
	DBPath   string // SQLite database holding weekly leaderboard rows
	AuditDir string // directory for compressed submission audit logs; empty disables

	MaxScorePerMinute     float64       // score rate ceiling used by the plausibility check
	ScoreSlack            float64       // multiplier applied to the rate ceiling
	ScoreBuffer           float64       // flat allowance added to the ceiling
	AssumedMaxRun         time.Duration // assumed run length before the claim timestamp
	MaxClockSkew          time.Duration // accepted |now - claim timestamp|
	MaxSubmissionsPerHour int           // per-wallet accepted submissions in the trailing hour
	LeaderboardSize       int           // rows returned by a leaderboard query
}

// DefaultServerConfig returns the built-in server settings.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:               ":8787",
		DBPath:                "~/.trenches/leaderboard.db",
		AuditDir:              "",
		MaxScorePerMinute:     2500,
		ScoreSlack:            1.5,
		ScoreBuffer:           1000,
		AssumedMaxRun:         5 * time.Minute,
		MaxClockSkew:          10 * time.Minute,
		MaxSubmissionsPerHour: 5,
		LeaderboardSize:       25,
	}
}

// LoadServerConfig reads an optional .env file and overlays TRENCHES_*
// environment variables onto the defaults. A missing .env is not an error.
func LoadServerConfig(envFiles ...string) (ServerConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ServerConfig{}, err
	}
	return ServerConfigFromEnv(), nil
}

// ServerConfigFromEnv builds a ServerConfig from the process environment.
func ServerConfigFromEnv() ServerConfig {
	cfg := DefaultServerConfig()

	cfg.Address = GetEnv("TRENCHES_ADDR", cfg.Address)
	cfg.DBPath = GetEnv("TRENCHES_DB", cfg.DBPath)
	cfg.AuditDir = GetEnv("TRENCHES_AUDIT_DIR", cfg.AuditDir)

	if v := getEnvFloat("TRENCHES_MAX_SCORE_PER_MINUTE"); v > 0 {
		cfg.MaxScorePerMinute = v
	}
	if v := getEnvFloat("TRENCHES_SCORE_SLACK"); v > 0 {
		cfg.ScoreSlack = v
	}
	if v := getEnvFloat("TRENCHES_SCORE_BUFFER"); v >= 0 && os.Getenv("TRENCHES_SCORE_BUFFER") != "" {
		cfg.ScoreBuffer = v
	}
	if v := getEnvDuration("TRENCHES_ASSUMED_MAX_RUN"); v > 0 {
		cfg.AssumedMaxRun = v
	}
	if v := getEnvDuration("TRENCHES_MAX_CLOCK_SKEW"); v > 0 {
		cfg.MaxClockSkew = v
	}
	if v := getEnvInt("TRENCHES_MAX_SUBMISSIONS_PER_HOUR"); v > 0 {
		cfg.MaxSubmissionsPerHour = v
	}
	if v := getEnvInt("TRENCHES_LEADERBOARD_SIZE"); v > 0 {
		cfg.LeaderboardSize = v
	}
	return cfg
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}

func getEnvFloat(key string) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return f
}

func getEnvDuration(key string) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return 0
	}
	return d
}
