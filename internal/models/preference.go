package models

import "time"

// Preference is a single persisted key/value setting row.
type Preference struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"size:64;not null;uniqueIndex"`
	Value     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
