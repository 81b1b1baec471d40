package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"intergen/internal/config"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "environment: development\n"))
	require.NoError(t, err)

	require.Equal(t, "candidates.jsonl", cfg.Output)
	require.Equal(t, 1, cfg.Workers)
	require.False(t, cfg.ContinueOnFailure)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
	require.Equal(t, 0.08, cfg.Generator.LengthTol)
	require.Equal(t, 1.0, cfg.Generator.AngleTol)
	require.Equal(t, 300.0, cfg.Generator.MaxArea)
	require.Equal(t, 3, cfg.Generator.RoundDigits)
	require.Equal(t, 2.5, cfg.Generator.Vacuum)
	require.Equal(t, 15.0, cfg.Generator.SurfaceVacuum)
	require.True(t, cfg.Generator.LowestMismatch)
	require.Equal(t, -1.0, cfg.Generator.LeadRatio)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
output: out.jsonl
workers: 4
continueOnFailure: true
generator:
  lengthTol: 0.05
  rotateXZ: true
  leadRatio: 0.25
`))
	require.NoError(t, err)

	require.Equal(t, "out.jsonl", cfg.Output)
	require.Equal(t, 4, cfg.Workers)
	require.True(t, cfg.ContinueOnFailure)
	require.Equal(t, 0.05, cfg.Generator.LengthTol)
	require.True(t, cfg.Generator.RotateXZ)
	require.Equal(t, 0.25, cfg.Generator.LeadRatio)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative length tolerance", "generator:\n  lengthTol: -0.05\n"},
		{"negative angle tolerance", "generator:\n  angleTol: -1\n"},
		{"negative max area", "generator:\n  maxArea: -10\n"},
		{"negative round digits", "generator:\n  roundDigits: -1\n"},
		{"negative vacuum", "generator:\n  vacuum: -1\n"},
		{"lead ratio too large", "generator:\n  leadRatio: 0.5\n"},
		{"negative workers", "workers: -1\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.yaml))
			require.Error(t, err)
		})
	}
}
