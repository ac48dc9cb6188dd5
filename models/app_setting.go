package models

// Setting keys consumed by the application itself.
const (
	SettingPlantIDAPIKey = "PLANT_ID_API_KEY"
)

// AppSetting represents an administrative key/value setting using GORM.
// It corresponds to the 'app_settings' table. The recognition-service
// credential lives here; a missing or blank value means the service is
// unconfigured.
type AppSetting struct {
	ID          string  `gorm:"primaryKey;size:50" json:"id"` // uuid string
	Key         string  `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value       *string `gorm:"type:text" json:"value,omitempty"`       // Nullable
	Description *string `gorm:"type:text" json:"description,omitempty"` // Nullable
	CreatedAt   int64   `gorm:"not null" json:"created_at"`             // Unix timestamp
	UpdatedAt   int64   `gorm:"not null" json:"updated_at"`             // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (AppSetting) TableName() string {
	return "app_settings"
}
