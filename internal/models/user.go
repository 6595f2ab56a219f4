package models

import (
	"time"
)

// Role is the ordered privilege ladder. Comparisons are numeric: a check for
// "at least FullAccess" is role >= RoleFullAccess.
type Role int

const (
	RoleUnauthorized Role = 1
	RoleAuthorized   Role = 2
	RoleFullAccess   Role = 3
	RoleAdmin        Role = 4
)

// String returns the role name used in API payloads and logs.
func (r Role) String() string {
	switch r {
	case RoleUnauthorized:
		return "unauthorized"
	case RoleAuthorized:
		return "authorized"
	case RoleFullAccess:
		return "full_access"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

// User represents a registered account. Username and email are unique at the
// storage layer; duplicates surface as constraint violations at commit time.
type User struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	Username  string `gorm:"size:50;not null;uniqueIndex"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Role      Role   `gorm:"not null;default:1"`
	CreatedAt time.Time
	Words     []Word     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DictLists []DictList `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
