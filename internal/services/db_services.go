package services

import (
	"context"

	"gorm.io/gorm"

	"linkdraft/internal/repositories"
)

// DbServices aggregates all domain services backed by the database.
// Fields use plural names (e.g., Tasks) to align with Go conventions
// seen in service/store containers.
type DbServices struct {
	Preferences PreferencesService
	Tasks       TaskService
	History     HistoryService
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB) *DbServices {
	prefRepo := repositories.NewPreferenceRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)

	return &DbServices{
		Preferences: NewPreferencesService(prefRepo),
		Tasks:       NewTaskService(taskRepo),
		History:     NewHistoryService(historyRepo),
	}
}

// StartDbServices hands the runtime context to every DB-backed service.
func (s *DbServices) StartDbServices(ctx context.Context) {
	s.Preferences.Startup(ctx)
	s.Tasks.Startup(ctx)
	s.History.Startup(ctx)
}
