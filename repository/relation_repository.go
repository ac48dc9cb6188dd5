package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
)

// RelationRepository handles database operations for PhotoSpeciesRelation
// entities
type RelationRepository struct {
	DB *gorm.DB
}

// NewRelationRepository creates a new instance of RelationRepository
func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{DB: db}
}

// Create creates a new photo-species relation
func (r *RelationRepository) Create(relation *models.PhotoSpeciesRelation) error {
	err := r.DB.Create(relation).Error
	if err != nil {
		return fmt.Errorf("failed to create relation photo=%d species=%d: %w",
			relation.PhotoID, relation.SpeciesID, err)
	}
	return nil
}

// GetByID retrieves a relation by its ID
func (r *RelationRepository) GetByID(id uint) (*models.PhotoSpeciesRelation, error) {
	var relation models.PhotoSpeciesRelation
	err := r.DB.First(&relation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get relation by ID %d: %w", id, err)
	}
	return &relation, nil
}

// List retrieves relations with pagination
func (r *RelationRepository) List(offset, limit int) ([]models.PhotoSpeciesRelation, error) {
	if limit <= 0 {
		limit = 100
	}
	var relations []models.PhotoSpeciesRelation
	err := r.DB.Offset(offset).Limit(limit).Find(&relations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list relations: %w", err)
	}
	return relations, nil
}

// ListByPhoto retrieves all relations for a specific photo
func (r *RelationRepository) ListByPhoto(photoID uint) ([]models.PhotoSpeciesRelation, error) {
	var relations []models.PhotoSpeciesRelation
	err := r.DB.Where("photo_id = ?", photoID).Order("id ASC").Find(&relations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list relations for photo ID %d: %w", photoID, err)
	}
	return relations, nil
}

// ListBySpecies retrieves all relations for a specific species
func (r *RelationRepository) ListBySpecies(speciesID uint) ([]models.PhotoSpeciesRelation, error) {
	var relations []models.PhotoSpeciesRelation
	err := r.DB.Where("species_id = ?", speciesID).Order("id ASC").Find(&relations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list relations for species ID %d: %w", speciesID, err)
	}
	return relations, nil
}

// Delete removes a relation by its ID
func (r *RelationRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.PhotoSpeciesRelation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete relation ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByPhoto removes every relation for the given photo and returns the
// number of rows deleted. The identification pipeline uses this before
// inserting a fresh relation set.
func (r *RelationRepository) DeleteByPhoto(photoID uint) (int64, error) {
	result := r.DB.Where("photo_id = ?", photoID).Delete(&models.PhotoSpeciesRelation{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete relations for photo ID %d: %w", photoID, result.Error)
	}
	return result.RowsAffected, nil
}
