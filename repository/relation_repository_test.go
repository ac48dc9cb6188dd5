package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
)

func TestRelationCreateAndListByPhoto(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)

	photo := createTestPhoto(t, db, "/photos/meadow.jpg")
	first := createTestSpecies(t, db, "Taraxacum officinale")
	second := createTestSpecies(t, db, "Bellis perennis")

	require.NoError(t, repo.Create(&models.PhotoSpeciesRelation{
		PhotoID: photo.ID, SpeciesID: first.ID, Category: models.RelationCategoryPrimary,
	}))
	require.NoError(t, repo.Create(&models.PhotoSpeciesRelation{
		PhotoID: photo.ID, SpeciesID: second.ID, Category: models.RelationCategorySecondary,
	}))

	relations, err := repo.ListByPhoto(photo.ID)
	require.NoError(t, err)
	require.Len(t, relations, 2)
	assert.Equal(t, models.RelationCategoryPrimary, relations[0].Category)
	assert.Equal(t, models.RelationCategorySecondary, relations[1].Category)
}

func TestRelationListBySpecies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)

	species := createTestSpecies(t, db, "Primula veris")
	photoA := createTestPhoto(t, db, "/photos/a.jpg")
	photoB := createTestPhoto(t, db, "/photos/b.jpg")

	require.NoError(t, repo.Create(&models.PhotoSpeciesRelation{
		PhotoID: photoA.ID, SpeciesID: species.ID, Category: models.RelationCategoryPrimary,
	}))
	require.NoError(t, repo.Create(&models.PhotoSpeciesRelation{
		PhotoID: photoB.ID, SpeciesID: species.ID, Category: models.RelationCategorySecondary,
	}))

	relations, err := repo.ListBySpecies(species.ID)
	require.NoError(t, err)
	assert.Len(t, relations, 2)
}

func TestRelationDeleteByPhoto(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)

	photo := createTestPhoto(t, db, "/photos/field.jpg")
	other := createTestPhoto(t, db, "/photos/forest.jpg")
	species := createTestSpecies(t, db, "Convallaria majalis")

	require.NoError(t, repo.Create(&models.PhotoSpeciesRelation{
		PhotoID: photo.ID, SpeciesID: species.ID, Category: models.RelationCategoryPrimary,
	}))
	require.NoError(t, repo.Create(&models.PhotoSpeciesRelation{
		PhotoID: other.ID, SpeciesID: species.ID, Category: models.RelationCategoryPrimary,
	}))

	deleted, err := repo.DeleteByPhoto(photo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := repo.ListByPhoto(photo.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := repo.ListByPhoto(other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	// no rows for the photo is not an error
	deleted, err = repo.DeleteByPhoto(photo.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRelationDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)

	assert.ErrorIs(t, repo.Delete(42), gorm.ErrRecordNotFound)
}
