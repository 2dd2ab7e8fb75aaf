package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultServerHasSaneDefaults(t *testing.T) {
	cfg := DefaultServer()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Greater(t, cfg.RequestsPerSec, 0.0)
}

func TestServerFromEnvOverridesAddr(t *testing.T) {
	os.Setenv("BB_ADDR", ":9090")
	defer os.Unsetenv("BB_ADDR")
	cfg := ServerFromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestDiceFromEnvOverridesSeed(t *testing.T) {
	os.Setenv("BB_DICE_SEED", "42")
	defer os.Unsetenv("BB_DICE_SEED")
	cfg := DiceFromEnv()
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestSimFromEnvIgnoresInvalidTurns(t *testing.T) {
	os.Setenv("BB_SIM_TURNS", "not-a-number")
	defer os.Unsetenv("BB_SIM_TURNS")
	cfg := SimFromEnv()
	assert.Equal(t, DefaultSim().Turns, cfg.Turns)
}
