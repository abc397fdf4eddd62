// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultItemImage is used when a recipe is created without an image URL.
const DefaultItemImage = "https://cdn-icons-png.flaticon.com/512/1147/1147805.png"

// Item represents a recipe shared by a user.
//
// PublishDate is fixed at creation. UpdateDate is refreshed by GORM on
// every field mutation; the view-count side effect deliberately bypasses
// it (see ItemRepository.GetDetail), so UpdateDate >= PublishDate always
// reflects the last content change.
type Item struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"-"`
	User        User       `gorm:"foreignKey:UserID" json:"user"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Image       string     `json:"image"`
	PublishDate time.Time  `gorm:"column:publish_date;autoCreateTime" json:"publish_date"`
	UpdateDate  time.Time  `gorm:"column:update_date;autoUpdateTime" json:"update_date"`
	CookingTime Duration   `gorm:"column:cooking_time" json:"cooking_time"`
	Views       uint       `gorm:"not null;default:0" json:"views"`
	// Rating is maintained by the external aggregator; items without one
	// are excluded from listings but remain reachable by id.
	Rating   *Rating        `gorm:"foreignKey:ItemID" json:"rating,omitempty"`
	Comments []Comment      `gorm:"foreignKey:ItemID" json:"comments,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OwnerID reports the owning user for authorization checks.
func (i *Item) OwnerID() uint { return i.UserID }

// ItemPageSize is the fixed page size of the public item listing.
const ItemPageSize = 3

// ItemPage is one bounded slice of the rated-item listing.
// Info carries the non-error "no results" signal for empty result sets.
type ItemPage struct {
	Results    []*Item `json:"results"`
	Count      int64   `json:"count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
	Info       string  `json:"info,omitempty"`
}
