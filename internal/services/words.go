package services

import (
	"errors"
	"strings"

	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/types"
	"gorm.io/gorm"
)

// CreateWordInput carries the fields for a new vocabulary entry.
type CreateWordInput struct {
	LangCode    string
	NewWord     string
	Translation *string
	Note        *string
	Contexts    []string
}

// WordPatch is a partial update; only fields present in the request body are
// applied. NewWord and Contexts cannot be nulled; LangCode null clears the
// language.
type WordPatch struct {
	NewWord     types.Optional[string]   `json:"new_word"`
	Translation types.Optional[string]   `json:"translation"`
	Note        types.Optional[string]   `json:"note"`
	LangCode    types.Optional[string]   `json:"lang_code"`
	Contexts    types.Optional[[]string] `json:"contexts"`
}

// WordFilter narrows ListWords; absent fields are no-ops, present ones AND.
type WordFilter struct {
	LangCode   *string
	DictListID *uint64
}

// normalizeContexts trims each context and drops empty results.
func normalizeContexts(contexts []string) []string {
	out := make([]string, 0, len(contexts))
	for _, ctx := range contexts {
		ctx = strings.TrimSpace(ctx)
		if ctx != "" {
			out = append(out, ctx)
		}
	}
	return out
}

// CreateWord adds a vocabulary entry for the owner. The language code must
// resolve in the catalog; contexts are trimmed and empties discarded.
func CreateWord(db *gorm.DB, ownerID string, in CreateWordInput) (*models.Word, error) {
	if in.NewWord == "" {
		return nil, types.InvalidArgument("new_word must not be empty")
	}

	var created models.Word
	err := db.Transaction(func(tx *gorm.DB) error {
		lang, err := GetLanguageByCode(tx, in.LangCode)
		if err != nil {
			return err
		}

		created = models.Word{
			UserID:      ownerID,
			LangCode:    &lang.Code,
			NewWord:     in.NewWord,
			Translation: in.Translation,
			Note:        in.Note,
		}
		for _, ctx := range normalizeContexts(in.Contexts) {
			created.Contexts = append(created.Contexts, models.WordContext{Context: ctx})
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return GetWord(db, created.ID)
}

// GetWord fetches a word with its contexts and language.
func GetWord(db *gorm.DB, id uint64) (*models.Word, error) {
	var word models.Word
	err := db.Preload("Contexts").Preload("Language").First(&word, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("word %d not found", id)
		}
		return nil, err
	}
	return &word, nil
}

// GetOwnedWord fetches a word and enforces ownership: NotFound when the id
// does not exist, Forbidden when it belongs to someone else. The 404/403
// split leaks existence to authenticated callers; that is the documented
// contract, not an accident.
func GetOwnedWord(db *gorm.DB, id uint64, ownerID string) (*models.Word, error) {
	word, err := GetWord(db, id)
	if err != nil {
		return nil, err
	}
	if word.UserID != ownerID {
		return nil, types.Forbidden("word %d belongs to another user", id)
	}
	return word, nil
}

// ListWords returns the owner's words matching the filter.
func ListWords(db *gorm.DB, ownerID string, filter WordFilter) ([]models.Word, error) {
	query := db.Preload("Contexts").Preload("Language").Where("user_id = ?", ownerID)
	if filter.LangCode != nil {
		query = query.Where("lang_code = ?", *filter.LangCode)
	}
	if filter.DictListID != nil {
		query = query.Joins("JOIN dictlist_words dw ON dw.word_id = words.id").
			Where("dw.dictlist_id = ?", *filter.DictListID)
	}

	var words []models.Word
	if err := query.Order("words.id").Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

// UpdateWord applies a partial update. Contexts, when present, replace the
// whole list: an empty array clears it, it is not a no-op.
func UpdateWord(db *gorm.DB, word *models.Word, patch WordPatch) (*models.Word, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}

		if patch.NewWord.Set {
			if patch.NewWord.Null || patch.NewWord.Value == "" {
				return types.InvalidArgument("new_word must not be null or empty")
			}
			updates["new_word"] = patch.NewWord.Value
		}
		if patch.Translation.Set {
			if patch.Translation.Null {
				updates["translation"] = nil
			} else {
				updates["translation"] = patch.Translation.Value
			}
		}
		if patch.Note.Set {
			if patch.Note.Null {
				updates["note"] = nil
			} else {
				updates["note"] = patch.Note.Value
			}
		}
		if patch.LangCode.Set {
			if patch.LangCode.Null {
				updates["lang_code"] = nil
			} else {
				lang, err := GetLanguageByCode(tx, patch.LangCode.Value)
				if err != nil {
					return err
				}
				updates["lang_code"] = lang.Code
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(word).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Contexts.Set {
			if patch.Contexts.Null {
				return types.InvalidArgument("contexts must not be null")
			}
			if err := tx.Where("word_id = ?", word.ID).Delete(&models.WordContext{}).Error; err != nil {
				return err
			}
			for _, ctx := range normalizeContexts(patch.Contexts.Value) {
				row := models.WordContext{WordID: word.ID, Context: ctx}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetWord(db, word.ID)
}

// DeleteWord removes a word, its contexts and its dictlist memberships.
// The dictlists themselves are untouched.
func DeleteWord(db *gorm.DB, word *models.Word) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("word_id = ?", word.ID).Delete(&models.WordContext{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM dictlist_words WHERE word_id = ?", word.ID).Error; err != nil {
			return err
		}
		return tx.Delete(word).Error
	})
}
