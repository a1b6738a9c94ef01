package models

import "time"

// Account is the persisted identity record. The secret is stored only as a
// bcrypt hash, never sent to clients.
type Account struct {
	AccountID   string `gorm:"type:char(36);primaryKey"`
	Handle      string `gorm:"size:255;not null;uniqueIndex"`
	Email       string `gorm:"size:320;index"`
	SecretHash  string `gorm:"size:255;not null"`
	DisplayName string `gorm:"size:255"`
	OrgName     string `gorm:"size:255"`
	Role        string `gorm:"size:32;not null;default:user"`
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// TableName overrides the table name for Account
func (Account) TableName() string {
	return "accounts"
}
