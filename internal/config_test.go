package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indexlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
engine: linearhash
num_fields: 2
linearhash:
  total_bytes: 40
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, EngineLinearHash, cfg.Engine)
	require.Equal(t, 2, cfg.NumFields)
	require.Equal(t, 40, cfg.LinearHash.TotalBytes)

	// Unset sections fall back to defaults.
	require.Equal(t, 64, cfg.BPTree.PageSize)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, EngineBPTree, cfg.Engine)
	require.Equal(t, 3, cfg.NumFields)
	require.Equal(t, 128, cfg.LinearHash.TotalBytes)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown engine", func(c *Config) { c.Engine = "lsm" }},
		{"zero fields", func(c *Config) { c.NumFields = 0 }},
		{"zero page size", func(c *Config) { c.BPTree.PageSize = 0 }},
		{"zero byte budget", func(c *Config) {
			c.Engine = EngineLinearHash
			c.LinearHash.TotalBytes = 0
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
