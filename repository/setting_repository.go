package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
)

// SettingRepository handles database operations for AppSetting entities
type SettingRepository struct {
	DB *gorm.DB
}

// NewSettingRepository creates a new instance of SettingRepository
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

// List retrieves all application settings, ordered by key
func (r *SettingRepository) List() ([]models.AppSetting, error) {
	var settings []models.AppSetting
	err := r.DB.Order("key ASC").Find(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// Get retrieves a setting by its key
func (r *SettingRepository) Get(key string) (*models.AppSetting, error) {
	var setting models.AppSetting
	err := r.DB.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return &setting, nil
}

// Create creates a new setting, generating its ID and timestamps
func (r *SettingRepository) Create(setting *models.AppSetting) error {
	now := time.Now().Unix()
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	if setting.CreatedAt == 0 {
		setting.CreatedAt = now
	}
	setting.UpdatedAt = now

	err := r.DB.Create(setting).Error
	if err != nil {
		return fmt.Errorf("failed to create setting %q: %w", setting.Key, err)
	}
	return nil
}

// Upsert updates an existing setting's value (and description when given) or
// creates the setting when it does not exist yet.
func (r *SettingRepository) Upsert(key, value string, description *string) (*models.AppSetting, error) {
	setting, err := r.Get(key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		desc := fmt.Sprintf("Automatically created setting: %s", key)
		if description != nil {
			desc = *description
		}
		created := &models.AppSetting{
			Key:         key,
			Value:       &value,
			Description: &desc,
		}
		if err := r.Create(created); err != nil {
			return nil, err
		}
		return created, nil
	}

	updates := map[string]interface{}{
		"value":      value,
		"updated_at": time.Now().Unix(),
	}
	if description != nil {
		updates["description"] = *description
	}
	if err := r.DB.Model(setting).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update setting %q: %w", key, err)
	}
	return r.Get(key)
}

// Delete removes a setting by its key
func (r *SettingRepository) Delete(key string) error {
	result := r.DB.Where("key = ?", key).Delete(&models.AppSetting{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PlantIDAPIKey returns the stored recognition-service credential, or an
// empty string when the setting is missing or blank.
func (r *SettingRepository) PlantIDAPIKey() (string, error) {
	setting, err := r.Get(models.SettingPlantIDAPIKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if setting.Value == nil {
		return "", nil
	}
	return *setting.Value, nil
}
