package services

import (
	"errors"
	"regexp"

	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/types"
	"gorm.io/gorm"
)

// langCodeRe matches "en" or "en-UK".
var langCodeRe = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

// CreateLanguage adds a reference language. The code is the primary key and
// duplicates surface as AlreadyExists at commit.
func CreateLanguage(db *gorm.DB, code, name string) (*models.Language, error) {
	if !langCodeRe.MatchString(code) {
		return nil, types.InvalidArgument("language code must match xx or xx-XX")
	}
	if name == "" {
		return nil, types.InvalidArgument("language name must not be empty")
	}

	lang := models.Language{Code: code, Name: name}
	if err := db.Create(&lang).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.AlreadyExists("language %q already exists", code)
		}
		return nil, err
	}
	return &lang, nil
}

// GetLanguageByCode fetches a language by its code.
func GetLanguageByCode(db *gorm.DB, code string) (*models.Language, error) {
	var lang models.Language
	if err := db.First(&lang, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("language %q not found", code)
		}
		return nil, err
	}
	return &lang, nil
}

// ListLanguages returns all languages ordered by code.
func ListLanguages(db *gorm.DB) ([]models.Language, error) {
	var langs []models.Language
	if err := db.Order("code").Find(&langs).Error; err != nil {
		return nil, err
	}
	return langs, nil
}

// UpdateLanguageName renames a language. Setting the name it already has is
// rejected rather than treated as an idempotent success.
func UpdateLanguageName(db *gorm.DB, code, name string) (*models.Language, error) {
	if name == "" {
		return nil, types.InvalidArgument("language name must not be empty")
	}

	lang, err := GetLanguageByCode(db, code)
	if err != nil {
		return nil, err
	}
	if lang.Name == name {
		return nil, types.InvalidArgument("language %q is already named %q", code, name)
	}

	if err := db.Model(lang).Update("name", name).Error; err != nil {
		return nil, err
	}
	return lang, nil
}

// DeleteLanguage removes a language unconditionally. Words and dictlists that
// referenced it keep existing with their language reference nulled.
func DeleteLanguage(db *gorm.DB, code string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		lang, err := GetLanguageByCode(tx, code)
		if err != nil {
			return err
		}

		// SET NULL by hand so the delete is safe on dialects where the FK
		// constraint was not created by AutoMigrate.
		if err := tx.Model(&models.Word{}).Where("lang_code = ?", code).
			Update("lang_code", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.DictList{}).Where("lang_code = ?", code).
			Update("lang_code", nil).Error; err != nil {
			return err
		}

		return tx.Delete(lang).Error
	})
}
