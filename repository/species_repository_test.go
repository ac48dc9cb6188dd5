package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
)

func strPtr(s string) *string { return &s }

func TestSpeciesCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSpeciesRepository(db)

	species := &models.Species{
		ScientificName: "Taraxacum officinale",
		CommonName:     strPtr("dandelion"),
		Family:         strPtr("Asteraceae"),
	}
	require.NoError(t, repo.Create(species))
	assert.NotZero(t, species.ID)

	got, err := repo.GetByID(species.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taraxacum officinale", got.ScientificName)

	byName, err := repo.GetByScientificName("Taraxacum officinale")
	require.NoError(t, err)
	assert.Equal(t, species.ID, byName.ID)
}

func TestSpeciesCreateDuplicateNameFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSpeciesRepository(db)

	require.NoError(t, repo.Create(&models.Species{ScientificName: "Bellis perennis"}))
	err := repo.Create(&models.Species{ScientificName: "Bellis perennis"})
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}

func TestSpeciesFindOrCreateReusesExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSpeciesRepository(db)

	existing := createTestSpecies(t, db, "Primula veris")

	resolved, err := repo.FindOrCreate(&models.Species{
		ScientificName: "Primula veris",
		CommonName:     strPtr("should not overwrite"),
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resolved.ID)

	// the existing row is returned unchanged
	got, err := repo.GetByID(existing.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CommonName)
}

func TestSpeciesFindOrCreateInsertsNew(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSpeciesRepository(db)

	resolved, err := repo.FindOrCreate(&models.Species{
		ScientificName: "Convallaria majalis",
		Family:         strPtr("Asparagaceae"),
	})
	require.NoError(t, err)
	assert.NotZero(t, resolved.ID)

	got, err := repo.GetByScientificName("Convallaria majalis")
	require.NoError(t, err)
	require.NotNil(t, got.Family)
	assert.Equal(t, "Asparagaceae", *got.Family)
}

func TestSpeciesFindOrCreateConcurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSpeciesRepository(db)

	const workers = 5
	ids := make([]uint, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resolved, err := repo.FindOrCreate(&models.Species{ScientificName: "Tulipa gesneriana"})
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = resolved.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var count int64
	require.NoError(t, db.Model(&models.Species{}).Where("scientific_name = ?", "Tulipa gesneriana").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSpeciesList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSpeciesRepository(db)

	createTestSpecies(t, db, "Trifolium repens")
	createTestSpecies(t, db, "Bellis perennis")
	createTestSpecies(t, db, "Primula veris")

	listed, err := repo.List(0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Bellis perennis", listed[0].ScientificName)
	assert.Equal(t, "Primula veris", listed[1].ScientificName)
	assert.Equal(t, "Trifolium repens", listed[2].ScientificName)

	page, err := repo.List(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Primula veris", page[0].ScientificName)
}

func TestSpeciesUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSpeciesRepository(db)

	species := createTestSpecies(t, db, "Campanula patula")
	require.NoError(t, repo.Update(species.ID, nil, strPtr("spreading bellflower"), nil, strPtr("Harilik kellukas")))

	got, err := repo.GetByID(species.ID)
	require.NoError(t, err)
	assert.Equal(t, "Campanula patula", got.ScientificName)
	require.NotNil(t, got.CommonName)
	assert.Equal(t, "spreading bellflower", *got.CommonName)
	require.NotNil(t, got.LocalizedName)
	assert.Equal(t, "Harilik kellukas", *got.LocalizedName)

	assert.ErrorIs(t, repo.Update(9999, strPtr("x"), nil, nil, nil), gorm.ErrRecordNotFound)
}

func TestSpeciesDeleteCascadesRelations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSpeciesRepository(db)
	relRepo := NewRelationRepository(db)

	species := createTestSpecies(t, db, "Leucanthemum vulgare")
	photo := createTestPhoto(t, db, "/photos/daisy.jpg")
	require.NoError(t, relRepo.Create(&models.PhotoSpeciesRelation{
		PhotoID: photo.ID, SpeciesID: species.ID, Category: models.RelationCategoryPrimary,
	}))

	require.NoError(t, repo.Delete(species.ID))

	_, err := repo.GetByID(species.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	relations, err := relRepo.ListBySpecies(species.ID)
	require.NoError(t, err)
	assert.Empty(t, relations)
}
