// Package config is the single source of truth for the harness's ambient
// settings — dice seeding, HTTP bind address, log level — adapted from the
// teacher's internal/config package (one DefaultX/XFromEnv pair per
// concern, env-var overrides via strconv) but pared down to what a
// deterministic turn-based core actually needs: there is no video/audio/
// spatial config here, since this engine has no render loop of its own.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DiceConfig controls the randomness source cmd/bbsim constructs for its
// demo match; cmd/bbserve does not read it.
type DiceConfig struct {
	Seed int64 // 0 means unset; the caller picks its own fallback seed
}

// DefaultDice returns seed 0 (unset, the caller picks a seed); tests and replays
// always construct dice.Fixed directly and never go through this config.
func DefaultDice() DiceConfig {
	return DiceConfig{Seed: 0}
}

func DiceFromEnv() DiceConfig {
	cfg := DefaultDice()
	if s := getEnvInt64("BB_DICE_SEED", 0); s != 0 {
		cfg.Seed = s
	}
	return cfg
}

// ServerConfig holds HTTP server settings for cmd/bbserve.
type ServerConfig struct {
	Addr           string
	RequestsPerSec float64
	Burst          int
}

func DefaultServer() ServerConfig {
	return ServerConfig{
		Addr:           ":8080",
		RequestsPerSec: 20,
		Burst:          40,
	}
}

func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()
	if addr := os.Getenv("BB_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if rps := getEnvFloat("BB_RATE_LIMIT_RPS", 0); rps > 0 {
		cfg.RequestsPerSec = rps
	}
	if burst := getEnvInt("BB_RATE_LIMIT_BURST", 0); burst > 0 {
		cfg.Burst = burst
	}
	return cfg
}

// SimConfig controls cmd/bbsim's scripted demo match.
type SimConfig struct {
	Turns      int
	LogLevel   string
	PacePerSec float64 // actions paced per second via golang.org/x/time/rate, 0 = unthrottled
}

func DefaultSim() SimConfig {
	return SimConfig{Turns: 16, LogLevel: "info", PacePerSec: 0}
}

func SimFromEnv() SimConfig {
	cfg := DefaultSim()
	if t := getEnvInt("BB_SIM_TURNS", 0); t > 0 {
		cfg.Turns = t
	}
	if lvl := os.Getenv("BB_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if p := getEnvFloat("BB_SIM_PACE", -1); p >= 0 {
		cfg.PacePerSec = p
	}
	return cfg
}

// AppConfig bundles every sub-config a binary might need.
type AppConfig struct {
	Dice   DiceConfig
	Server ServerConfig
	Sim    SimConfig
}

// Load reads a .env file if present (trying .env first, then ../.env,
// else environment only) and returns the full
// environment-overridden configuration.
func Load() AppConfig {
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("../.env")
	}
	return AppConfig{
		Dice:   DiceFromEnv(),
		Server: ServerFromEnv(),
		Sim:    SimFromEnv(),
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
