package main

import (
	"os"
	"path/filepath"
	"testing"

	"disastle/config"
	"disastle/meta"

	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Players:      []string{"alice", "bob"},
		Disasters:    meta.Disasters,
		Catastrophes: meta.Catastrophes,
		SafeCards:    meta.SafeCards,
		ShopSize:     meta.ShopSize,
		Seed:         3,
		LogLevel:     "error",
	}
}

func TestRun(t *testing.T) {
	t.Run("playing a few rounds and writing the report", func(t *testing.T) {
		cfg := testConfig()
		cfg.Rounds = 4
		cfg.ReportDir = t.TempDir()

		require.NoError(t, run(cfg))

		entries, err := os.ReadDir(cfg.ReportDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		for _, name := range []string{"draw_distribution.csv", "damage_distribution.csv", "expected_damage.csv"} {
			_, err := os.Stat(filepath.Join(cfg.ReportDir, entries[0].Name(), name))
			require.NoError(t, err, name)
		}
	})

	t.Run("rejecting more players than thrones", func(t *testing.T) {
		cfg := testConfig()
		cfg.Players = []string{"a", "b", "c", "d", "e"}

		require.Error(t, run(cfg))
	})

	t.Run("loading catalog tables from files", func(t *testing.T) {
		dir := t.TempDir()
		write := func(name, content string) string {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			return path
		}
		cfg := testConfig()
		cfg.Players = []string{"solo"}
		cfg.Disasters, cfg.Catastrophes = 1, 1
		cfg.DisastersFile = write("disasters.json", `[["Flood", "1", "0", "2x"]]`)
		cfg.CatastrophesFile = write("catastrophes.json", `[["Dragon", "2x", "2x", "x"]]`)

		require.NoError(t, run(cfg))

		cfg.Disasters = 2
		require.Error(t, run(cfg), "the table only holds one disaster")
	})
}
