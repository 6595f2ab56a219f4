package services

import (
	"errors"

	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateDictListInput carries the fields for a new dictlist.
type CreateDictListInput struct {
	Name          string
	LangCode      *string
	MaxWordsLimit *int
}

// DictListPatch is a partial update; Name cannot be nulled, LangCode null
// clears the language reference.
type DictListPatch struct {
	Name     types.Optional[string] `json:"name"`
	LangCode types.Optional[string] `json:"lang_code"`
}

// DictListFilter narrows ListDictLists; supplied predicates AND together.
type DictListFilter struct {
	LangCode *string
	WordID   *uint64
}

const maxDictListNameLen = 120

// CreateDictList creates a named word collection for the owner. The language
// is optional; the capacity limit, when set, must be positive.
func CreateDictList(db *gorm.DB, ownerID string, in CreateDictListInput) (*models.DictList, error) {
	if in.Name == "" || len(in.Name) > maxDictListNameLen {
		return nil, types.InvalidArgument("name must be 1-%d characters", maxDictListNameLen)
	}
	if in.MaxWordsLimit != nil && *in.MaxWordsLimit <= 0 {
		return nil, types.InvalidArgument("max_words_limit must be positive")
	}

	var created models.DictList
	err := db.Transaction(func(tx *gorm.DB) error {
		var langCode *string
		if in.LangCode != nil {
			lang, err := GetLanguageByCode(tx, *in.LangCode)
			if err != nil {
				return err
			}
			langCode = &lang.Code
		}

		created = models.DictList{
			UserID:        ownerID,
			LangCode:      langCode,
			Name:          in.Name,
			MaxWordsLimit: in.MaxWordsLimit,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return GetDictList(db, created.ID)
}

// GetDictList fetches a dictlist with its language and member words.
func GetDictList(db *gorm.DB, id uint64) (*models.DictList, error) {
	var list models.DictList
	err := db.Preload("Language").Preload("Words").Preload("Words.Contexts").
		First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("dictlist %d not found", id)
		}
		return nil, err
	}
	return &list, nil
}

// GetOwnedDictList fetches a dictlist and enforces ownership, with the same
// NotFound/Forbidden split as GetOwnedWord.
func GetOwnedDictList(db *gorm.DB, id uint64, ownerID string) (*models.DictList, error) {
	list, err := GetDictList(db, id)
	if err != nil {
		return nil, err
	}
	if list.UserID != ownerID {
		return nil, types.Forbidden("dictlist %d belongs to another user", id)
	}
	return list, nil
}

// ListDictLists returns the owner's dictlists matching the filter.
func ListDictLists(db *gorm.DB, ownerID string, filter DictListFilter) ([]models.DictList, error) {
	query := db.Preload("Language").Preload("Words").Where("user_id = ?", ownerID)
	if filter.LangCode != nil {
		query = query.Where("lang_code = ?", *filter.LangCode)
	}
	if filter.WordID != nil {
		query = query.Joins("JOIN dictlist_words dw ON dw.dictlist_id = dictlists.id").
			Where("dw.word_id = ?", *filter.WordID)
	}

	var lists []models.DictList
	if err := query.Order("dictlists.id").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// UpdateDictList applies a partial update to name and language.
func UpdateDictList(db *gorm.DB, list *models.DictList, patch DictListPatch) (*models.DictList, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}

		if patch.Name.Set {
			if patch.Name.Null || patch.Name.Value == "" || len(patch.Name.Value) > maxDictListNameLen {
				return types.InvalidArgument("name must be 1-%d characters", maxDictListNameLen)
			}
			updates["name"] = patch.Name.Value
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

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(list).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return GetDictList(db, list.ID)
}

// AssignWords adds words to a dictlist. Every candidate must be owned by the
// list's owner. Ids already present are ignored. The capacity check and the
// inserts run in one transaction holding a row lock on the dictlist, so a
// concurrent assign cannot push the membership past max_words_limit. The
// operation is all-or-nothing: if the new words would exceed the limit,
// none are added.
func AssignWords(db *gorm.DB, listID uint64, ownerID string, wordIDs []uint64) error {
	if len(wordIDs) == 0 {
		return types.InvalidArgument("word_ids must not be empty")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var list models.DictList
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&list, "id = ?", listID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("dictlist %d not found", listID)
			}
			return err
		}
		if list.UserID != ownerID {
			return types.Forbidden("dictlist %d belongs to another user", listID)
		}

		for _, id := range wordIDs {
			if _, err := GetOwnedWord(tx, id, list.UserID); err != nil {
				return err
			}
		}

		var memberIDs []uint64
		if err := tx.Table("dictlist_words").Where("dictlist_id = ?", list.ID).
			Pluck("word_id", &memberIDs).Error; err != nil {
			return err
		}
		members := make(map[uint64]struct{}, len(memberIDs))
		for _, id := range memberIDs {
			members[id] = struct{}{}
		}

		// Deduplicate the request and drop ids that are already members.
		newIDs := make([]uint64, 0, len(wordIDs))
		seen := make(map[uint64]struct{}, len(wordIDs))
		for _, id := range wordIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if _, member := members[id]; !member {
				newIDs = append(newIDs, id)
			}
		}
		if len(newIDs) == 0 {
			return nil
		}

		if list.MaxWordsLimit != nil && len(memberIDs)+len(newIDs) > *list.MaxWordsLimit {
			return types.InvalidArgument("dictlist %d capacity of %d words exceeded", list.ID, *list.MaxWordsLimit)
		}

		for _, id := range newIDs {
			if err := tx.Exec("INSERT INTO dictlist_words (dictlist_id, word_id) VALUES (?, ?)",
				list.ID, id).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UnassignWords removes words from a dictlist. Ids that are not members are
// ignored, so repeating the call succeeds with no further effect.
func UnassignWords(db *gorm.DB, listID uint64, ownerID string, wordIDs []uint64) error {
	if len(wordIDs) == 0 {
		return types.InvalidArgument("word_ids must not be empty")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		list, err := GetOwnedDictList(tx, listID, ownerID)
		if err != nil {
			return err
		}

		for _, id := range wordIDs {
			if _, err := GetOwnedWord(tx, id, list.UserID); err != nil {
				return err
			}
		}

		return tx.Exec("DELETE FROM dictlist_words WHERE dictlist_id = ? AND word_id IN ?",
			list.ID, wordIDs).Error
	})
}

// DeleteDictList removes a dictlist and its membership rows. Member words
// are not deleted.
func DeleteDictList(db *gorm.DB, list *models.DictList) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM dictlist_words WHERE dictlist_id = ?", list.ID).Error; err != nil {
			return err
		}
		return tx.Delete(list).Error
	})
}
