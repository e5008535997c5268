package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"linkdraft/internal/models"
)

// historyCap bounds the number of retained history entries.
const historyCap = 5

type HistoryRepository interface {
	// List returns entries most-recent-first.
	List(ctx context.Context) ([]models.HistoryEntry, error)
	// Append inserts entry and drops the oldest rows beyond the cap.
	Append(ctx context.Context, entry *models.HistoryEntry) error
	DeleteAll(ctx context.Context) error
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) List(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := r.db.WithContext(ctx).
		Order("created_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

func (r *historyRepository) Append(ctx context.Context, entry *models.HistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("creating history entry: %w", err)
		}
		var all []models.HistoryEntry
		if err := tx.Order("created_at desc, id desc").Find(&all).Error; err != nil {
			return fmt.Errorf("listing history: %w", err)
		}
		for _, old := range all[min(historyCap, len(all)):] {
			if err := tx.Delete(&models.HistoryEntry{}, old.ID).Error; err != nil {
				return fmt.Errorf("truncating history: %w", err)
			}
		}
		return nil
	})
}

func (r *historyRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.HistoryEntry{}).Error; err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
