// Package models contains data structures for the application's domain models.
package models

import "time"

// Rating is the per-item aggregate produced by the external rating
// component. This service only reads it: the item listing joins on it
// for filtering and ordering. The seed command and tests write rows
// directly in the aggregator's stead.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ItemID    uint      `gorm:"not null;uniqueIndex" json:"-"`
	Average   float64   `gorm:"not null" json:"average"`
	Count     int       `gorm:"not null" json:"count"`
	UpdatedAt time.Time `json:"-"`
}
