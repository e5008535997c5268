package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"linkdraft/internal/models"
	"linkdraft/internal/repositories"
)

type HistoryService interface {
	Startup(ctx context.Context)
	// List returns saved messages most-recent-first, at most five.
	List() ([]models.HistoryEntry, error)
	// Save records a generated message with the settings that produced it.
	Save(message, task, tone, length, model string) (*models.HistoryEntry, error)
	Clear() error
}

type historyService struct {
	repo repositories.HistoryRepository
	ctx  context.Context
}

func NewHistoryService(repo repositories.HistoryRepository) HistoryService {
	return &historyService{repo: repo, ctx: context.Background()}
}

func (s *historyService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *historyService) List() ([]models.HistoryEntry, error) {
	return s.repo.List(s.ctx)
}

func (s *historyService) Save(message, task, tone, length, model string) (*models.HistoryEntry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("generate a message before saving")
	}

	entry := &models.HistoryEntry{
		Message:   message,
		Task:      task,
		Tone:      tone,
		Length:    length,
		Model:     model,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Append(s.ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *historyService) Clear() error {
	return s.repo.DeleteAll(s.ctx)
}
