package models

import "time"

// HistoryEntry records a generated message the user explicitly saved,
// together with the settings that produced it.
type HistoryEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Message   string    `gorm:"type:text;not null"`
	Task      string    `gorm:"size:255"`
	Tone      string    `gorm:"size:64"`
	Length    string    `gorm:"size:16"`
	Model     string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"not null;index"`
}
