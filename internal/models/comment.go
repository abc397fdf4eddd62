// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a remark left by a user on an item. The target item is
// fixed at creation and serialized as a bare id to avoid unbounded
// nesting (item -> comments -> item -> ...).
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	ItemID    uint           `gorm:"not null;index" json:"item"`
	Item      Item           `gorm:"foreignKey:ItemID" json:"-"`
	Text      string         `gorm:"not null" json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnerID reports the owning user for authorization checks.
func (c *Comment) OwnerID() uint { return c.UserID }
