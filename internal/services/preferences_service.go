package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/zalando/go-keyring"

	"linkdraft/internal/prompt"
	"linkdraft/internal/repositories"
)

const keyringService = "linkdraft"
const keyringAccount = "openai"

// Preference field names. These double as the persisted storage keys.
const (
	FieldModel             = "model"
	FieldTone              = "tone"
	FieldLength            = "length"
	FieldIncludeCta        = "includeCta"
	FieldIncludeCompliment = "includeCompliment"
	FieldTheme             = "themePreference"
	FieldAPIKey            = "apiKey"
	FieldUserProfile       = "userProfile"
	FieldSystemPrompt      = "systemPrompt"
)

const (
	DefaultModel  = "gpt-5-mini"
	DefaultTone   = "Professional"
	DefaultLength = prompt.LengthShort
	DefaultTheme  = "system"
)

var modelOptions = map[string]bool{
	"gpt-5":      true,
	"gpt-5-mini": true,
	"gpt-5-nano": true,
}

var themeOptions = map[string]bool{
	"system": true,
	"light":  true,
	"dark":   true,
}

var lengthOptions = map[string]bool{
	prompt.LengthShort:  true,
	prompt.LengthMedium: true,
	prompt.LengthLong:   true,
}

// debounceDelay coalesces bursts of settings edits into a single write.
const debounceDelay = 220 * time.Millisecond

// Preferences is a normalized snapshot of every user-configurable setting.
type Preferences struct {
	Model             string `json:"model"`
	Tone              string `json:"tone"`
	Length            string `json:"length"`
	IncludeCta        bool   `json:"includeCta"`
	IncludeCompliment bool   `json:"includeCompliment"`
	Theme             string `json:"theme"`
	APIKey            string `json:"apiKey"`
	UserProfile       string `json:"userProfile"`
	SystemPrompt      string `json:"systemPrompt"`
}

type PreferencesService interface {
	Startup(ctx context.Context)
	// Get returns the stored value for field, normalized: enum fields are
	// coerced into their allow-list, absent or corrupted values become the
	// documented default.
	Get(field string) string
	// Set persists value for field. Free-text fields are stored verbatim;
	// model and theme values outside their allow-lists are coerced to the
	// default rather than persisted.
	Set(field, value string) error
	// SetDebounced schedules a Set that fires once the field has been quiet
	// for the debounce window. A newer call cancels the pending one.
	SetDebounced(field, value string)
	// ModelOptions lists the model allow-list for the UI dropdown.
	ModelOptions() []string
	// RestoreDefaultSystemPrompt stores and returns the built-in template.
	RestoreDefaultSystemPrompt() (string, error)
	// Snapshot reads every field through Get.
	Snapshot() Preferences
}

type preferencesService struct {
	repo repositories.PreferenceRepository
	ctx  context.Context

	mu         sync.Mutex
	debouncers map[string]func(func())
}

func NewPreferencesService(repo repositories.PreferenceRepository) PreferencesService {
	return &preferencesService{
		repo:       repo,
		ctx:        context.Background(),
		debouncers: make(map[string]func(func())),
	}
}

func (s *preferencesService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *preferencesService) Get(field string) string {
	if field == FieldAPIKey {
		return s.getAPIKey()
	}

	value, found, err := s.repo.Get(s.ctx, field)
	if err != nil {
		// A broken row reads as absent; defaults take over.
		log.Printf("preferences: read %s failed: %v", field, err)
		found = false
	}
	return normalize(field, value, found)
}

func (s *preferencesService) Set(field, value string) error {
	if field == FieldAPIKey {
		return s.setAPIKey(value)
	}

	switch field {
	case FieldModel:
		if !modelOptions[value] {
			value = DefaultModel
		}
	case FieldTheme:
		if !themeOptions[value] {
			value = DefaultTheme
		}
	}
	return s.repo.Set(s.ctx, field, value)
}

func (s *preferencesService) SetDebounced(field, value string) {
	s.mu.Lock()
	d, ok := s.debouncers[field]
	if !ok {
		d = debounce.New(debounceDelay)
		s.debouncers[field] = d
	}
	s.mu.Unlock()

	d(func() {
		if err := s.Set(field, value); err != nil {
			log.Printf("preferences: debounced write of %s failed: %v", field, err)
		}
	})
}

func (s *preferencesService) ModelOptions() []string {
	return []string{"gpt-5", "gpt-5-mini", "gpt-5-nano"}
}

func (s *preferencesService) RestoreDefaultSystemPrompt() (string, error) {
	template := prompt.DefaultSystemPrompt()
	if err := s.Set(FieldSystemPrompt, template); err != nil {
		return "", err
	}
	return template, nil
}

func (s *preferencesService) Snapshot() Preferences {
	return Preferences{
		Model:             s.Get(FieldModel),
		Tone:              s.Get(FieldTone),
		Length:            s.Get(FieldLength),
		IncludeCta:        s.Get(FieldIncludeCta) == "true",
		IncludeCompliment: s.Get(FieldIncludeCompliment) == "true",
		Theme:             s.Get(FieldTheme),
		APIKey:            s.Get(FieldAPIKey),
		UserProfile:       s.Get(FieldUserProfile),
		SystemPrompt:      s.Get(FieldSystemPrompt),
	}
}

// getAPIKey checks the OS keyring first and falls back to the preference
// row for installs where no keyring backend is available.
func (s *preferencesService) getAPIKey() string {
	if key, err := keyring.Get(keyringService, keyringAccount); err == nil {
		return key
	}
	value, _, err := s.repo.Get(s.ctx, FieldAPIKey)
	if err != nil {
		log.Printf("preferences: read %s failed: %v", FieldAPIKey, err)
		return ""
	}
	return value
}

func (s *preferencesService) setAPIKey(value string) error {
	if strings.TrimSpace(value) == "" {
		if err := keyring.Delete(keyringService, keyringAccount); err != nil {
			log.Printf("preferences: keyring delete failed: %v", err)
		}
		return s.repo.Delete(s.ctx, FieldAPIKey)
	}
	if err := keyring.Set(keyringService, keyringAccount, value); err == nil {
		// Drop any stale fallback row so the keyring stays authoritative.
		return s.repo.Delete(s.ctx, FieldAPIKey)
	}
	return s.repo.Set(s.ctx, FieldAPIKey, value)
}

func normalize(field, value string, found bool) string {
	switch field {
	case FieldModel:
		if !modelOptions[value] {
			return DefaultModel
		}
	case FieldTheme:
		if !themeOptions[value] {
			return DefaultTheme
		}
	case FieldLength:
		if !lengthOptions[value] {
			return DefaultLength
		}
	case FieldTone:
		if strings.TrimSpace(value) == "" {
			return DefaultTone
		}
	case FieldIncludeCta:
		if !found {
			return "true"
		}
	case FieldIncludeCompliment:
		if !found {
			return "false"
		}
	case FieldSystemPrompt:
		if strings.TrimSpace(value) == "" {
			return prompt.DefaultSystemPrompt()
		}
	}
	return value
}
