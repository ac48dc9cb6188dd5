package models

// Species represents a plant species entry in the catalog using GORM.
// It corresponds to the 'species' table. The scientific name uniquely
// identifies a row; the database enforces this so concurrent identification
// requests cannot create duplicates.
type Species struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ScientificName string  `gorm:"uniqueIndex;not null" json:"scientific_name"`
	CommonName     *string `gorm:"" json:"common_name,omitempty"`    // Nullable
	Family         *string `gorm:"" json:"family,omitempty"`         // Nullable
	LocalizedName  *string `gorm:"" json:"localized_name,omitempty"` // Nullable, localized common name

	// Relationships
	Photos []PhotoSpeciesRelation `gorm:"foreignKey:SpeciesID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Species) TableName() string {
	return "species"
}
