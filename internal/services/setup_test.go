package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lexivault/lexivault/internal/config"
	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB creates an in-memory SQLite database for testing.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Every connection to :memory: is its own database; keep one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Language{},
		&models.Word{},
		&models.WordContext{},
		&models.DictList{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func newTestCredentials() *services.Credentials {
	return services.NewCredentials(&config.Config{
		SecretKey:          "test-secret",
		AccessTokenMinutes: 30,
		VerifyTokenMinutes: 60,
	})
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user, err := services.CreateUser(db, newTestCredentials(), username, username+"@example.com", "secret123")
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user
}

func seedLanguage(t *testing.T, db *gorm.DB, code, name string) *models.Language {
	t.Helper()
	lang, err := services.CreateLanguage(db, code, name)
	if err != nil {
		t.Fatalf("Failed to seed language %s: %v", code, err)
	}
	return lang
}

func seedWord(t *testing.T, db *gorm.DB, ownerID, langCode, newWord string) *models.Word {
	t.Helper()
	word, err := services.CreateWord(db, ownerID, services.CreateWordInput{
		LangCode: langCode,
		NewWord:  newWord,
	})
	if err != nil {
		t.Fatalf("Failed to seed word %s: %v", newWord, err)
	}
	return word
}

func membershipCount(t *testing.T, db *gorm.DB, listID uint64) int64 {
	t.Helper()
	var n int64
	if err := db.Table("dictlist_words").Where("dictlist_id = ?", listID).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count memberships: %v", err)
	}
	return n
}
