package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fourbecs/becs/internal/core/ecs"
)

func TestDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, ecs.DefaultIndexBits, cfg.ECS.IndexBits)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "data/templates.yaml", cfg.Templates.Path)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "becs.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ecs]
index_bits = 4

[logging]
level = "debug"
format = "json"

[scripting]
predicates = ["is_mobile"]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ECS.IndexBits)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "scripts", cfg.Scripting.Dir)
	assert.Equal(t, []string{"is_mobile"}, cfg.Scripting.Predicates)

	l, err := cfg.Layout()
	require.NoError(t, err)
	assert.Equal(t, 960, l.Capacity())
}

func TestValidate(t *testing.T) {
	_, err := Parse([]byte("[ecs]\nindex_bits = 40\n"))
	assert.ErrorIs(t, err, ecs.ErrInvalidLayout)

	_, err = Parse([]byte("[logging]\nformat = \"xml\"\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("[logging]\nlevel = \"verbose\"\n"))
	assert.Error(t, err)

	cfg, err := Parse([]byte("[logging]\nlevel = \"warn\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
