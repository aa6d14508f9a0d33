package config

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battleship/internal/game"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"BATTLESHIP_SEED", "BATTLESHIP_COUNTING", "BATTLESHIP_PROVE", "BATTLESHIP_RECEIPT", "BATTLESHIP_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg, err := Parse("play", nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, game.CountHits, cfg.Counting)
	assert.False(t, cfg.Prove)
	assert.True(t, cfg.Receipt)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestEnvThenFlags(t *testing.T) {
	t.Setenv("BATTLESHIP_SEED", "42")
	t.Setenv("BATTLESHIP_COUNTING", "sunk")
	t.Setenv("BATTLESHIP_PROVE", "true")
	t.Setenv("BATTLESHIP_LOG_LEVEL", "debug")

	cfg, err := Parse("play", nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, game.CountSunk, cfg.Counting)
	assert.True(t, cfg.Prove)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg, err = Parse("play", []string{"-seed", "7", "-counting", "hits", "-prove=false", "-receipt=false"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, game.CountHits, cfg.Counting)
	assert.False(t, cfg.Prove)
	assert.False(t, cfg.Receipt)
}

func TestBadEnvFallsBack(t *testing.T) {
	t.Setenv("BATTLESHIP_SEED", "many")
	t.Setenv("BATTLESHIP_PROVE", "perhaps")
	var warn bytes.Buffer
	cfg, err := Parse("play", nil, &warn)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.False(t, cfg.Prove)
	assert.Contains(t, warn.String(), "invalid uint for BATTLESHIP_SEED")
	assert.Contains(t, warn.String(), "invalid bool for BATTLESHIP_PROVE")
}

func TestBadCounting(t *testing.T) {
	t.Setenv("BATTLESHIP_COUNTING", "")
	_, err := Parse("play", []string{"-counting", "ships"}, io.Discard)
	assert.ErrorIs(t, err, ErrBadCounting)
}

func TestResolvedSeed(t *testing.T) {
	cfg := &Config{Seed: 9}
	assert.Equal(t, uint64(9), cfg.ResolvedSeed())

	cfg.Seed = 0
	before := uint64(time.Now().UnixNano())
	assert.GreaterOrEqual(t, cfg.ResolvedSeed(), before)
}
