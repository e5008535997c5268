package models

import "time"

// Task is a named, reusable outreach goal the user can select before
// generating a message. Key is the user-visible label, Value the
// instruction text handed to the model.
type Task struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:255;not null"`
	Value     string `gorm:"type:text;not null"`
	Position  int    `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
