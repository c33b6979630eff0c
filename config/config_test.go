package config

import (
	"flag"
	"testing"

	"disastle/meta"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
		require.NoError(t, err)

		require.Equal(t, []string{"alice", "bob"}, cfg.Players)
		require.Equal(t, meta.Disasters, cfg.Disasters)
		require.Equal(t, meta.ShopSize, cfg.ShopSize)
		require.Equal(t, "info", cfg.LogLevel)
		require.Zero(t, cfg.Seed)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("DISASTLE_PLAYERS", "ann,ben,cat")
		t.Setenv("DISASTLE_SEED", "42")
		t.Setenv("DISASTLE_DISASTERS", "4")

		cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
		require.NoError(t, err)

		require.Equal(t, []string{"ann", "ben", "cat"}, cfg.Players)
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, 4, cfg.Disasters)
	})

	t.Run("flags override the environment", func(t *testing.T) {
		t.Setenv("DISASTLE_SEED", "42")

		cfg, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-seed", "7", "-players", " x , y ,", "-rounds", "3"})
		require.NoError(t, err)

		require.Equal(t, uint64(7), cfg.Seed)
		require.Equal(t, []string{"x", "y"}, cfg.Players)
		require.Equal(t, 3, cfg.Rounds)
	})

	t.Run("rejecting bad environment values", func(t *testing.T) {
		t.Setenv("DISASTLE_SEED", "minus one")

		_, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), nil)
		require.Error(t, err)
	})

	t.Run("rejecting an unsafe opening shop", func(t *testing.T) {
		_, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-safe", "3"})
		require.Error(t, err)
	})

	t.Run("catalog tables come in pairs", func(t *testing.T) {
		_, err := ParseConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-disaster-table", "d.json"})
		require.Error(t, err)
	})
}
