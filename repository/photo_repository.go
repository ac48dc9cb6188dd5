package repository

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/camden-git/floracatalog/models"
)

const defaultBrowseLimit = 20

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// PhotoRepository handles database operations for Photo entities
type PhotoRepository struct {
	DB *gorm.DB
}

// NewPhotoRepository creates a new instance of PhotoRepository
func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

// Create creates a new photo record in the database
func (r *PhotoRepository) Create(photo *models.Photo) error {
	err := r.DB.Create(photo).Error
	if err != nil {
		return fmt.Errorf("failed to create photo %s: %w", photo.FilePath, err)
	}
	return nil
}

// GetByID retrieves a photo by its ID
func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.DB.First(&photo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get photo by ID %d: %w", id, err)
	}
	return &photo, nil
}

// GetByPath retrieves a photo by its unique storage path
func (r *PhotoRepository) GetByPath(filePath string) (*models.Photo, error) {
	var photo models.Photo
	err := r.DB.Where("file_path = ?", filePath).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get photo by path %s: %w", filePath, err)
	}
	return &photo, nil
}

// Browse retrieves photos with optional filtering on species, location and
// date, newest first. The dynamic query is built with squirrel and executed
// over GORM's underlying connection.
func (r *PhotoRepository) Browse(filter PhotoFilter) ([]models.Photo, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultBrowseLimit
	}

	queryBuilder := psql.Select(
		"photos.id", "photos.file_path", "photos.date", "photos.location",
		"photos.gps_latitude", "photos.gps_longitude", "photos.gps_altitude",
		"photos.camera_make", "photos.camera_model", "photos.thumbnail_path",
	).Distinct().From("photos")

	if filter.SpeciesID != nil || filter.SpeciesName != "" {
		queryBuilder = queryBuilder.
			Join("photo_species_relations ON photo_species_relations.photo_id = photos.id").
			Join("species ON species.id = photo_species_relations.species_id")

		if filter.SpeciesID != nil {
			queryBuilder = queryBuilder.Where(sq.Eq{"photo_species_relations.species_id": *filter.SpeciesID})
		}
		if filter.SpeciesName != "" {
			like := "%" + filter.SpeciesName + "%"
			queryBuilder = queryBuilder.Where(sq.Or{
				sq.Like{"species.scientific_name": like},
				sq.Like{"species.common_name": like},
			})
		}
	}

	if filter.Location != "" {
		queryBuilder = queryBuilder.Where(sq.Like{"photos.location": "%" + filter.Location + "%"})
	}
	if filter.Date != "" {
		queryBuilder = queryBuilder.Where(sq.Like{"photos.date": "%" + filter.Date + "%"})
	}

	queryBuilder = queryBuilder.
		OrderBy("photos.id DESC").
		Offset(uint64(filter.Offset)).
		Limit(uint64(limit))

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build photo browse query: %w", err)
	}

	sqlDB, err := r.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	rows, err := sqlDB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to browse photos: %w", err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var p models.Photo
		err := rows.Scan(
			&p.ID, &p.FilePath, &p.Date, &p.Location,
			&p.GPSLatitude, &p.GPSLongitude, &p.GPSAltitude,
			&p.CameraMake, &p.CameraModel, &p.ThumbnailPath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photo rows: %w", err)
	}
	return photos, nil
}

// Update updates an existing photo's user-editable fields. Only non-nil
// arguments are applied.
func (r *PhotoRepository) Update(photoID uint, date, location *string, gpsLatitude, gpsLongitude, gpsAltitude *float64) error {
	updates := map[string]interface{}{}
	if date != nil {
		updates["date"] = *date
	}
	if location != nil {
		updates["location"] = *location
	}
	if gpsLatitude != nil {
		updates["gps_latitude"] = *gpsLatitude
	}
	if gpsLongitude != nil {
		updates["gps_longitude"] = *gpsLongitude
	}
	if gpsAltitude != nil {
		updates["gps_altitude"] = *gpsAltitude
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.DB.Model(&models.Photo{}).Where("id = ?", photoID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update photo ID %d: %w", photoID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a photo by its ID, cascading deletion of its relations
func (r *PhotoRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&models.PhotoSpeciesRelation{}).Error; err != nil {
			return fmt.Errorf("failed to delete relations for photo ID %d: %w", id, err)
		}
		result := tx.Delete(&models.Photo{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete photo ID %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
