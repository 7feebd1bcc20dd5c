package xodrqc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, DefaultMaxVerticalRoadGap, config.MaxVerticalRoadGap)
	assert.GreaterOrEqual(t, config.Workers, 1)
	assert.False(t, config.IgnorePreconditions)
}

func TestLoadConfig(t *testing.T) {
	content := `file: map.xodr
schema_dir: ./schemas
report: report.xml
workers: 2
lenient_schema: true
max_vertical_road_gap: 80.5
`
	fileName := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0644))

	config, err := LoadConfig(fileName)
	require.NoError(t, err)
	assert.Equal(t, "map.xodr", config.FileName)
	assert.Equal(t, "./schemas", config.SchemaDir)
	assert.Equal(t, 2, config.Workers)
	assert.True(t, config.LenientSchema)
	assert.Equal(t, 80.5, config.MaxVerticalRoadGap)
}

func TestLoadConfigInvalid(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte("workers: -3\n"), 0644))
	_, err := LoadConfig(fileName)
	assert.Error(t, err, "Negative worker counts fail validation")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
