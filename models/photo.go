package models

// Photo represents a nature photograph record in the database using GORM.
// It corresponds to the 'photos' table.
type Photo struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	FilePath string  `gorm:"uniqueIndex;not null" json:"file_path"`
	Date     *string `gorm:"" json:"date,omitempty"`     // Nullable, YYYY-MM-DD or user-supplied text
	Location *string `gorm:"" json:"location,omitempty"` // Nullable, free text or "lat, lon"

	// GPS coordinates as signed decimal degrees
	GPSLatitude  *float64 `gorm:"" json:"gps_latitude,omitempty"`  // Nullable
	GPSLongitude *float64 `gorm:"" json:"gps_longitude,omitempty"` // Nullable
	GPSAltitude  *float64 `gorm:"" json:"gps_altitude,omitempty"`  // Nullable, meters

	// Camera information
	CameraMake  *string `gorm:"" json:"camera_make,omitempty"`  // Nullable
	CameraModel *string `gorm:"" json:"camera_model,omitempty"` // Nullable

	ThumbnailPath *string `gorm:"" json:"thumbnail_path,omitempty"` // Nullable

	// Relationships
	Species []PhotoSpeciesRelation `gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE" json:"species,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Photo) TableName() string {
	return "photos"
}
