package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"linkdraft/internal/browser"
	"linkdraft/internal/events"
	"linkdraft/internal/llm/client"
	"linkdraft/internal/prompt"
)

// ProfileService loads the user's own profile text from the active browser
// tab and, when an API key is configured, cleans the raw page text up with
// a summarization completion.
type ProfileService struct {
	prefs PreferencesService
	tabs  TabReader

	newCompleter func(apiKey string) Completer

	ctx context.Context

	mu   sync.Mutex
	busy bool
}

func NewProfileService(prefs PreferencesService, tabs TabReader) *ProfileService {
	return &ProfileService{
		prefs: prefs,
		tabs:  tabs,
		newCompleter: func(apiKey string) Completer {
			return client.NewOpenAIClient(apiKey)
		},
		ctx: context.Background(),
	}
}

func (s *ProfileService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// Busy reports whether a profile load is in flight.
func (s *ProfileService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LoadFromActiveTab reads the active LinkedIn tab, persists the raw text as
// the user profile, then attempts cleanup. A failed cleanup keeps the raw
// profile in place.
func (s *ProfileService) LoadFromActiveTab() (string, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrGenerationBusy
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	ctx := s.ctx
	events.Emit(ctx, events.SettingsStatus, events.NewInfo("Reading profile text from active LinkedIn tab..."))

	tab, err := s.tabs.ActiveTab(ctx)
	if err != nil {
		return "", fmt.Errorf("reading active tab: %w", err)
	}
	if !browser.IsProfileURL(tab.URL) {
		return "", ErrWrongPage
	}

	raw, err := s.tabs.ExtractText(ctx, tab)
	if err != nil {
		return "", fmt.Errorf("reading profile text: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyExtraction
	}

	if err := s.prefs.Set(FieldUserProfile, raw); err != nil {
		return "", fmt.Errorf("saving profile: %w", err)
	}

	apiKey := s.prefs.Get(FieldAPIKey)
	if strings.TrimSpace(apiKey) == "" {
		events.Emit(ctx, events.SettingsStatus, events.NewSuccess("Raw profile loaded. Add an API key if you want automatic cleanup."))
		return raw, nil
	}

	events.Emit(ctx, events.SettingsStatus, events.NewInfo("Cleaning profile with OpenAI..."))
	cleaned, err := s.newCompleter(apiKey).Complete(ctx, s.prefs.Get(FieldModel), prompt.ProfileCleanupPrompt(), raw)
	if err != nil {
		events.Emit(ctx, events.SettingsStatus, events.NewError(fmt.Sprintf("Raw profile loaded. Cleanup failed: %v", err)))
		return raw, nil
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		events.Emit(ctx, events.SettingsStatus, events.NewError("Raw profile loaded. Cleanup returned no text."))
		return raw, nil
	}

	if err := s.prefs.Set(FieldUserProfile, cleaned); err != nil {
		return "", fmt.Errorf("saving cleaned profile: %w", err)
	}
	events.Emit(ctx, events.SettingsStatus, events.NewSuccess("Profile loaded and cleaned."))
	return cleaned, nil
}
