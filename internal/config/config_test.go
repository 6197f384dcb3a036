package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsAreSane(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.25, cfg.Matching.Entity.Threshold)
	assert.Equal(t, 0.2, cfg.Matching.Relation.Threshold)
	assert.Equal(t, 0.9, cfg.Matching.Mapping.Strong)
	assert.Equal(t, 0.7, cfg.Matching.Mapping.Partial)

	// Compliance aggregate weights must sum to 1.
	c := cfg.Compliance
	assert.InDelta(t, 1.0,
		c.EntityMatchWeight+c.RelationMatchWeight+c.EntityCoverageWeight+c.RelationCoverageWeight, 1e-9)
	assert.Greater(t, c.ExcellentMin, c.GoodMin)
	assert.Greater(t, c.GoodMin, c.FairMin)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = "9090"

[matching.entity]
threshold = 0.4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 0.4, cfg.Matching.Entity.Threshold)
	// Untouched values keep their defaults.
	assert.Equal(t, 0.5, cfg.Matching.Entity.BusinessMapping)
	assert.Equal(t, 0.2, cfg.Matching.Relation.Threshold)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is { not toml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
