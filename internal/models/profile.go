// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultProfileImage is the placeholder shown until the user uploads an avatar.
const DefaultProfileImage = "profilepic.jpg"

// Profile holds per-user presentation data: avatar image and location.
// Exactly one profile exists per user; it is created in the same
// transaction as the user at registration time.
type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex" json:"-"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Image     string         `gorm:"not null" json:"image"`
	Location  string         `json:"location"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnerID reports the owning user for authorization checks.
func (p *Profile) OwnerID() uint { return p.UserID }
