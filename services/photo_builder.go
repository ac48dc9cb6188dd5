package services

import (
	"fmt"
	"log"

	"github.com/camden-git/floracatalog/metadata"
	"github.com/camden-git/floracatalog/models"
)

// PhotoBuilder assembles a photo record from user-supplied fields and
// extracted metadata. Explicit user input always wins over inferred facts.
type PhotoBuilder struct {
	Extractor metadata.Extractor
}

func NewPhotoBuilder(extractor metadata.Extractor) *PhotoBuilder {
	return &PhotoBuilder{Extractor: extractor}
}

// Build produces an unsaved photo record for the given file. Date and
// location fall back to extracted metadata only when the user supplied none;
// GPS and camera facts have no user-supplied equivalent and are always
// adopted. Metadata extraction failure never blocks the record; it is then
// built from user input alone.
func (b *PhotoBuilder) Build(filePath string, userDate, userLocation *string) *models.Photo {
	photo := &models.Photo{
		FilePath: filePath,
		Date:     userDate,
		Location: userLocation,
	}

	facts := metadata.Normalize(b.Extractor.Extract(filePath))
	if facts.IsEmpty() {
		log.Printf("services: no metadata extracted from %s, using user input only", filePath)
		return photo
	}

	if photo.Date == nil && facts.Date != nil {
		photo.Date = facts.Date
	}
	if photo.Location == nil && facts.Location != nil {
		photo.Location = facts.Location
	}

	photo.GPSLatitude = facts.GPSLatitude
	photo.GPSLongitude = facts.GPSLongitude
	photo.GPSAltitude = facts.GPSAltitude
	photo.CameraMake = facts.CameraMake
	photo.CameraModel = facts.CameraModel

	// coordinates stand in for a location when nothing else names one
	if photo.Location == nil && photo.GPSLatitude != nil && photo.GPSLongitude != nil {
		loc := fmt.Sprintf("%v, %v", *photo.GPSLatitude, *photo.GPSLongitude)
		photo.Location = &loc
	}

	return photo
}
