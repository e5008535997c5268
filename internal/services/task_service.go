package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"linkdraft/internal/models"
	"linkdraft/internal/repositories"
)

type TaskService interface {
	Startup(ctx context.Context)
	List() ([]models.Task, error)
	// Add stores a new task. Key and value must be non-blank after
	// trimming; the key must not collide with an existing task.
	Add(key, value string) (*models.Task, error)
	// Remove deletes the task at the given list position, preserving the
	// relative order of the rest.
	Remove(index int) error
	Clear() error
	// FindByKey resolves a task by its label. When legacy duplicates exist
	// the first match wins.
	FindByKey(key string) (*models.Task, bool, error)
}

type taskService struct {
	repo repositories.TaskRepository
	ctx  context.Context
}

func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo, ctx: context.Background()}
}

func (s *taskService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *taskService) List() ([]models.Task, error) {
	return s.repo.List(s.ctx)
}

func (s *taskService) Add(key, value string) (*models.Task, error) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return nil, fmt.Errorf("task name and description are required")
	}

	existing, err := s.repo.List(s.ctx)
	if err != nil {
		return nil, err
	}
	if lo.ContainsBy(existing, func(t models.Task) bool { return t.Key == key }) {
		return nil, fmt.Errorf("a task named %q already exists", key)
	}

	task := &models.Task{Key: key, Value: value}
	if err := s.repo.Create(s.ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Remove(index int) error {
	return s.repo.DeleteAt(s.ctx, index)
}

func (s *taskService) Clear() error {
	return s.repo.DeleteAll(s.ctx)
}

func (s *taskService) FindByKey(key string) (*models.Task, bool, error) {
	tasks, err := s.repo.List(s.ctx)
	if err != nil {
		return nil, false, err
	}
	task, found := lo.Find(tasks, func(t models.Task) bool { return t.Key == key })
	if !found {
		return nil, false, nil
	}
	return &task, true, nil
}
