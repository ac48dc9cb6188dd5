package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/database"
	"github.com/camden-git/floracatalog/models"
)

// setupTestDB creates a file-backed SQLite database in a temp directory so
// tests can exercise concurrent connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.InitGormDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

func createTestPhoto(t *testing.T, db *gorm.DB, filePath string) *models.Photo {
	t.Helper()

	photo := &models.Photo{FilePath: filePath}
	require.NoError(t, NewPhotoRepository(db).Create(photo))
	return photo
}

func createTestSpecies(t *testing.T, db *gorm.DB, scientificName string) *models.Species {
	t.Helper()

	species := &models.Species{ScientificName: scientificName}
	require.NoError(t, NewSpeciesRepository(db).Create(species))
	return species
}
