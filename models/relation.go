package models

// Relation categories assigned by the identification pipeline. The rank of a
// candidate decides the label, not its absolute confidence.
const (
	RelationCategoryPrimary   = "primary"
	RelationCategorySecondary = "secondary"
)

// PhotoSpeciesRelation links a photo with a species using GORM.
// It corresponds to the 'photo_species_relations' table.
type PhotoSpeciesRelation struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PhotoID   uint   `gorm:"not null;index" json:"photo_id"`
	SpeciesID uint   `gorm:"not null;index" json:"species_id"`
	Category  string `gorm:"" json:"category"` // free-form label; pipeline writes primary/secondary
}

// TableName explicitly sets the table name for GORM.
func (PhotoSpeciesRelation) TableName() string {
	return "photo_species_relations"
}
