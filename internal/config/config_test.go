package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"GONNX_MODEL_PATH", "CATAN_VP_TARGET", "CATAN_MAX_TURNS", "CATAN_PLAYERS", "CATAN_SEED", "SETTLERS_ENGINE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "models", cfg.ModelPath)
	assert.Equal(t, 10, cfg.VictoryTarget)
	assert.Equal(t, 500, cfg.MaxTurns)
	assert.Equal(t, "*=easy", cfg.Players)
	assert.Zero(t, cfg.Seed)
	assert.Empty(t, cfg.EnginePath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CATAN_VP_TARGET", "8")
	t.Setenv("CATAN_MAX_TURNS", "oops")
	t.Setenv("CATAN_SEED", "42")
	t.Setenv("SETTLERS_ENGINE", "/opt/engine")
	cfg := Load()
	assert.Equal(t, 8, cfg.VictoryTarget)
	assert.Equal(t, 500, cfg.MaxTurns)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "/opt/engine", cfg.EnginePath)
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileOverlay(t *testing.T) {
	t.Setenv("CATAN_MAX_TURNS", "300")
	path := writeFile(t, `
victory_target: 12
seed: 7
seats:
  - name: alice
    difficulty: medium
  - name: bob
    difficulty: easy
  - name: carol
    difficulty: random
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.VictoryTarget)
	assert.Equal(t, 300, cfg.MaxTurns)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, []string{"medium", "easy", "random"}, cfg.SeatDifficulties())
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.SeatNames())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "seats: [oops"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "seats:\n  - difficulty: easy\n  - difficulty: easy\n"))
	assert.ErrorContains(t, err, "need 3-4 seats")

	_, err = LoadFile(writeFile(t, "seats:\n  - name: a\n  - name: b\n  - name: c\n"))
	assert.ErrorContains(t, err, "no difficulty")
}

func TestSeatNamesNeedEveryName(t *testing.T) {
	cfg := &Config{Seats: []Seat{{Name: "a", Difficulty: "easy"}, {Difficulty: "easy"}, {Name: "c", Difficulty: "easy"}}}
	assert.Nil(t, cfg.SeatNames())
	assert.Len(t, cfg.SeatDifficulties(), 3)
	assert.Nil(t, (&Config{}).SeatDifficulties())
}
