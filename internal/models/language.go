package models

// Language is shared reference data keyed by its BCP-47-ish code
// ("en" or "en-UK"). The code is immutable; only the display name changes.
type Language struct {
	Code string `gorm:"size:5;primaryKey"`
	Name string `gorm:"size:255;not null"`
}

// TableName overrides the table name for Language
func (Language) TableName() string {
	return "languages"
}
