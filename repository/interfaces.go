package repository

import (
	"github.com/camden-git/floracatalog/models"
)

// PhotoFilter describes the optional filters for browsing photos. Zero values
// mean "no filter"; Limit of 0 falls back to a default page size.
type PhotoFilter struct {
	SpeciesID   *uint
	SpeciesName string // substring match on scientific or common name
	Location    string // substring match
	Date        string // substring match, supports partial dates
	Offset      int
	Limit       int
}

// PhotoRepositoryInterface defines the methods for photo data operations
type PhotoRepositoryInterface interface {
	Create(photo *models.Photo) error
	GetByID(id uint) (*models.Photo, error)
	GetByPath(filePath string) (*models.Photo, error)
	Browse(filter PhotoFilter) ([]models.Photo, error)
	Update(photoID uint, date, location *string, gpsLatitude, gpsLongitude, gpsAltitude *float64) error
	Delete(id uint) error
}

// SpeciesRepositoryInterface defines the methods for species data operations
type SpeciesRepositoryInterface interface {
	Create(species *models.Species) error
	GetByID(id uint) (*models.Species, error)
	GetByScientificName(name string) (*models.Species, error)
	List(offset, limit int) ([]models.Species, error)
	Update(speciesID uint, scientificName, commonName, family, localizedName *string) error
	Delete(id uint) error
	// FindOrCreate returns the existing row for the species' scientific name
	// or inserts a new one. Safe under concurrent callers racing on the same
	// name; the database uniqueness constraint is the arbiter.
	FindOrCreate(species *models.Species) (*models.Species, error)
}

// RelationRepositoryInterface defines the methods for photo-species relation
// data operations
type RelationRepositoryInterface interface {
	Create(relation *models.PhotoSpeciesRelation) error
	GetByID(id uint) (*models.PhotoSpeciesRelation, error)
	List(offset, limit int) ([]models.PhotoSpeciesRelation, error)
	ListByPhoto(photoID uint) ([]models.PhotoSpeciesRelation, error)
	ListBySpecies(speciesID uint) ([]models.PhotoSpeciesRelation, error)
	Delete(id uint) error
	DeleteByPhoto(photoID uint) (int64, error)
}

// SettingRepositoryInterface defines the methods for application settings
type SettingRepositoryInterface interface {
	List() ([]models.AppSetting, error)
	Get(key string) (*models.AppSetting, error)
	Create(setting *models.AppSetting) error
	Upsert(key, value string, description *string) (*models.AppSetting, error)
	Delete(key string) error
	PlantIDAPIKey() (string, error)
}
