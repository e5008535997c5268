package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"linkdraft/internal/models"
)

type TaskRepository interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	// DeleteAt removes the task at the given list position (0-based,
	// ordered by Position) and compacts the positions of the remainder.
	DeleteAt(ctx context.Context, index int) error
	DeleteAll(ctx context.Context) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Order("position asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Task{}).Count(&count).Error; err != nil {
			return fmt.Errorf("counting tasks: %w", err)
		}
		task.Position = int(count)
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("creating task: %w", err)
		}
		return nil
	})
}

func (r *taskRepository) DeleteAt(ctx context.Context, index int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tasks []models.Task
		if err := tx.Order("position asc").Find(&tasks).Error; err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}
		if index < 0 || index >= len(tasks) {
			return fmt.Errorf("task index %d out of range", index)
		}
		if err := tx.Delete(&models.Task{}, tasks[index].ID).Error; err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}
		// Compact positions so list order stays stable.
		for i := index + 1; i < len(tasks); i++ {
			if err := tx.Model(&models.Task{}).Where("id = ?", tasks[i].ID).
				Update("position", i-1).Error; err != nil {
				return fmt.Errorf("repositioning task: %w", err)
			}
		}
		return nil
	})
}

func (r *taskRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Task{}).Error; err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	return nil
}
