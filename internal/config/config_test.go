package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(100*1024), cfg.MinFileSize)
	assert.Equal(t, 600, cfg.MinDimension)
	assert.True(t, cfg.SeparateNoMetadata)
	assert.Equal(t, 50, cfg.SaveInterval)
	assert.Contains(t, cfg.IgnoreDirs, "$RECYCLE.BIN")
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := "min_file_size: 2048\nmin_dimension: 100\nsave_interval: 5\njunk_dir: Trash\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), cfg.MinFileSize)
	assert.Equal(t, 100, cfg.MinDimension)
	assert.Equal(t, 5, cfg.SaveInterval)
	assert.Equal(t, "Trash", cfg.JunkDir)
	// Untouched fields keep their defaults.
	assert.Equal(t, "Duplicates", cfg.DuplicatesDir)
	assert.True(t, cfg.SeparateNoMetadata)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(filepath.Join(tmpDir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{not yaml::"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("save_interval: 0\n"), 0644))
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestActionValid(t *testing.T) {
	assert.True(t, ActionIgnore.Valid())
	assert.True(t, ActionMove.Valid())
	assert.True(t, ActionDelete.Valid())
	assert.False(t, Action("shred").Valid())
}

func TestIgnoreSet(t *testing.T) {
	cfg := Default()
	set := cfg.IgnoreSet()
	assert.True(t, set["$RECYCLE.BIN"])
	assert.False(t, set["Photos"])
}
