package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, envVar := range []string{
		"DATABASE_PATH", "FILE_STORAGE_PATH", "ORIGINALS_SUBDIR", "THUMBNAILS_SUBDIR",
		"THUMBNAIL_MAX_SIZE", "PLANT_ID_API_KEY", "PLANT_ID_BASE_URL", "PLANT_ID_LANGUAGE",
		"PLANT_ID_SIMULATION",
	} {
		t.Setenv(envVar, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "photos.db", cfg.DatabasePath)
	assert.True(t, filepath.IsAbs(cfg.FileStoragePath))
	assert.Equal(t, filepath.Join(cfg.FileStoragePath, "originals"), cfg.OriginalsPath)
	assert.Equal(t, filepath.Join(cfg.FileStoragePath, "thumbnails"), cfg.ThumbnailsPath)
	assert.Equal(t, 300, cfg.ThumbnailMaxSize)
	assert.Empty(t, cfg.PlantIDAPIKey)
	assert.Equal(t, "https://api.plant.id/v2/identify", cfg.PlantIDBaseURL)
	assert.Equal(t, "et", cfg.PlantIDLang)
	assert.False(t, cfg.SimulationMode)
}

func TestLoadConfigOverrides(t *testing.T) {
	storage := t.TempDir()
	t.Setenv("DATABASE_PATH", "/data/app.db")
	t.Setenv("FILE_STORAGE_PATH", storage)
	t.Setenv("ORIGINALS_SUBDIR", "raw")
	t.Setenv("THUMBNAIL_MAX_SIZE", "512")
	t.Setenv("PLANT_ID_API_KEY", "env-key")
	t.Setenv("PLANT_ID_SIMULATION", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/data/app.db", cfg.DatabasePath)
	assert.Equal(t, filepath.Join(storage, "raw"), cfg.OriginalsPath)
	assert.Equal(t, 512, cfg.ThumbnailMaxSize)
	assert.Equal(t, "env-key", cfg.PlantIDAPIKey)
	assert.True(t, cfg.SimulationMode)
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("THUMBNAIL_MAX_SIZE", "not a number")
	t.Setenv("PLANT_ID_SIMULATION", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.ThumbnailMaxSize)
	assert.False(t, cfg.SimulationMode)
}
