package repository

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
)

// SpeciesRepository handles database operations for Species entities
type SpeciesRepository struct {
	DB *gorm.DB
}

// NewSpeciesRepository creates a new instance of SpeciesRepository
func NewSpeciesRepository(db *gorm.DB) *SpeciesRepository {
	return &SpeciesRepository{DB: db}
}

// Create creates a new species record in the database
func (r *SpeciesRepository) Create(species *models.Species) error {
	err := r.DB.Create(species).Error
	if err != nil {
		return fmt.Errorf("failed to create species %s: %w", species.ScientificName, err)
	}
	return nil
}

// GetByID retrieves a species by its ID
func (r *SpeciesRepository) GetByID(id uint) (*models.Species, error) {
	var species models.Species
	err := r.DB.First(&species, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get species by ID %d: %w", id, err)
	}
	return &species, nil
}

// GetByScientificName retrieves a species by exact scientific name match
func (r *SpeciesRepository) GetByScientificName(name string) (*models.Species, error) {
	var species models.Species
	err := r.DB.Where("scientific_name = ?", name).First(&species).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get species by scientific name %q: %w", name, err)
	}
	return &species, nil
}

// List retrieves species with pagination, ordered by scientific name
func (r *SpeciesRepository) List(offset, limit int) ([]models.Species, error) {
	if limit <= 0 {
		limit = 100
	}
	var speciesList []models.Species
	err := r.DB.Order("scientific_name ASC").Offset(offset).Limit(limit).Find(&speciesList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	return speciesList, nil
}

// Update updates an existing species' details. Only non-nil arguments are
// applied.
func (r *SpeciesRepository) Update(speciesID uint, scientificName, commonName, family, localizedName *string) error {
	updates := map[string]interface{}{}
	if scientificName != nil {
		updates["scientific_name"] = *scientificName
	}
	if commonName != nil {
		updates["common_name"] = *commonName
	}
	if family != nil {
		updates["family"] = *family
	}
	if localizedName != nil {
		updates["localized_name"] = *localizedName
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.DB.Model(&models.Species{}).Where("id = ?", speciesID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update species ID %d: %w", speciesID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a species by its ID, cascading deletion of its relations
func (r *SpeciesRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("species_id = ?", id).Delete(&models.PhotoSpeciesRelation{}).Error; err != nil {
			return fmt.Errorf("failed to delete relations for species ID %d: %w", id, err)
		}
		result := tx.Delete(&models.Species{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete species ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindOrCreate looks up a species by exact scientific name and reuses the
// existing row, or inserts a new one. Concurrent callers racing to create the
// same scientific name are resolved by the database uniqueness constraint: a
// losing insert is re-resolved to the winner's row instead of erroring.
// Existing rows are returned unchanged; the candidate's common name and
// family never overwrite catalog data.
func (r *SpeciesRepository) FindOrCreate(species *models.Species) (*models.Species, error) {
	existing, err := r.GetByScientificName(species.ScientificName)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	createErr := r.DB.Create(species).Error
	if createErr == nil {
		log.Printf("repository: created new species %q with ID %d", species.ScientificName, species.ID)
		return species, nil
	}

	if isUniqueViolation(createErr) {
		// lost the race, another caller inserted this name first
		existing, err := r.GetByScientificName(species.ScientificName)
		if err != nil {
			return nil, fmt.Errorf("failed to re-resolve species %q after conflict: %w", species.ScientificName, err)
		}
		return existing, nil
	}

	return nil, fmt.Errorf("failed to create species %s: %w", species.ScientificName, createErr)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
