package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultOriginalsSubDir  = "originals"
	DefaultThumbnailsSubDir = "thumbnails"
)

const defaultThumbnailMaxSize = 300

type Config struct {
	// database path
	DatabasePath string

	// file storage configuration
	FileStoragePath string // primary root for uploaded photos and derived assets
	OriginalsPath   string // full-calculated path for uploaded originals
	ThumbnailsPath  string // full-calculated path for thumbnails

	// thumbnail generation settings
	ThumbnailMaxSize int

	// recognition service settings
	PlantIDAPIKey  string // optional override; the settings store is consulted first
	PlantIDBaseURL string
	PlantIDLang    string // language selector for common names
	SimulationMode bool   // substitute canned suggestions when the service fails or is unconfigured
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %v. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "photos.db")

	fileStorage := getEnvOrDefault("FILE_STORAGE_PATH", filepath.Join(".", "file_storage"))
	absFileStorage, err := filepath.Abs(fileStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for file storage '%s': %w", fileStorage, err)
	}

	originalsSubDir := getEnvOrDefault("ORIGINALS_SUBDIR", DefaultOriginalsSubDir)
	absOriginalsPath := filepath.Join(absFileStorage, originalsSubDir)

	thumbSubDir := getEnvOrDefault("THUMBNAILS_SUBDIR", DefaultThumbnailsSubDir)
	absThumbnailsPath := filepath.Join(absFileStorage, thumbSubDir)

	thumbMaxSize := getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize)

	cfg := Config{
		DatabasePath:     dbPath,
		FileStoragePath:  absFileStorage,
		OriginalsPath:    absOriginalsPath,
		ThumbnailsPath:   absThumbnailsPath,
		ThumbnailMaxSize: thumbMaxSize,
		PlantIDAPIKey:    os.Getenv("PLANT_ID_API_KEY"),
		PlantIDBaseURL:   getEnvOrDefault("PLANT_ID_BASE_URL", "https://api.plant.id/v2/identify"),
		PlantIDLang:      getEnvOrDefault("PLANT_ID_LANGUAGE", "et"),
		SimulationMode:   getEnvBoolOrDefault("PLANT_ID_SIMULATION", false),
	}

	return cfg, nil
}
