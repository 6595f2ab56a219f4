package models

import (
	"time"
)

// DictList is a named, user-owned collection of word references.
// MaxWordsLimit nil means unlimited. Membership lives in the
// dictlist_words join table and cascades from either side.
type DictList struct {
	ID            uint64  `gorm:"primaryKey;autoIncrement"`
	UserID        string  `gorm:"type:char(36);not null;index"`
	LangCode      *string `gorm:"size:5;index"`
	Name          string  `gorm:"size:120;not null"`
	MaxWordsLimit *int
	CreatedAt     time.Time
	Language      *Language `gorm:"foreignKey:LangCode;references:Code;constraint:OnDelete:SET NULL"`
	Words         []Word    `gorm:"many2many:dictlist_words;joinForeignKey:dictlist_id;joinReferences:word_id;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for DictList
func (DictList) TableName() string {
	return "dictlists"
}
