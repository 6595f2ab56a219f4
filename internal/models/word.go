package models

import (
	"time"
)

// Word is a vocabulary entry owned by exactly one user. LangCode is nullable
// so that deleting a Language can SET NULL instead of blocking or orphaning.
type Word struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement"`
	UserID      string  `gorm:"type:char(36);not null;index"`
	LangCode    *string `gorm:"size:5;index"`
	NewWord     string  `gorm:"size:255;not null"`
	Translation *string `gorm:"size:255"`
	Note        *string `gorm:"size:1024"`
	CreatedAt   time.Time
	Language    *Language     `gorm:"foreignKey:LangCode;references:Code;constraint:OnDelete:SET NULL"`
	Contexts    []WordContext `gorm:"foreignKey:WordID;constraint:OnDelete:CASCADE"`
	DictLists   []DictList    `gorm:"many2many:dictlist_words;joinForeignKey:word_id;joinReferences:dictlist_id;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for Word
func (Word) TableName() string {
	return "words"
}

// ContextStrings flattens the context rows into their plain strings.
func (w *Word) ContextStrings() []string {
	out := make([]string, 0, len(w.Contexts))
	for _, c := range w.Contexts {
		out = append(out, c.Context)
	}
	return out
}

// WordContext is a single usage example. Rows exist only as a side effect of
// replacing a word's context list and are cascade-deleted with the word.
type WordContext struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	WordID  uint64 `gorm:"not null;index"`
	Context string `gorm:"size:1024;not null"`
}

// TableName overrides the table name for WordContext
func (WordContext) TableName() string {
	return "word_contexts"
}
