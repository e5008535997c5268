package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"linkdraft/internal/browser"
	"linkdraft/internal/events"
	"linkdraft/internal/llm/client"
	"linkdraft/internal/models"
	"linkdraft/internal/prompt"
)

// GenerationState labels the orchestrator's position in a single attempt.
type GenerationState string

const (
	StateIdle                  GenerationState = "idle"
	StateValidating            GenerationState = "validating"
	StateAwaitingPageText      GenerationState = "awaiting_page_text"
	StateComposing             GenerationState = "composing"
	StateAwaitingModelResponse GenerationState = "awaiting_model_response"
)

// TaskPlaceholder is the sentinel value of the task dropdown when nothing
// is selected.
const TaskPlaceholder = "default"

// TabReader is the active-tab collaborator.
type TabReader interface {
	ActiveTab(ctx context.Context) (browser.Tab, error)
	ExtractText(ctx context.Context, tab browser.Tab) (string, error)
}

// Completer is the chat-completion collaborator.
type Completer interface {
	Complete(ctx context.Context, model, systemMessage, userMessage string) (string, error)
}

// GenerationService drives a single message-generation attempt end to end:
// validate preconditions, read the active tab, compose the prompt, call the
// model, expose the result. Exactly one attempt may be in flight at a time.
type GenerationService struct {
	prefs   PreferencesService
	tasks   TaskService
	history HistoryService
	tabs    TabReader

	// newCompleter builds the model client per attempt so key changes made
	// in settings take effect without a restart. Swappable in tests.
	newCompleter func(apiKey string) Completer

	ctx context.Context

	mu     sync.Mutex
	state  GenerationState
	output string
}

func NewGenerationService(prefs PreferencesService, tasks TaskService, history HistoryService, tabs TabReader) *GenerationService {
	return &GenerationService{
		prefs:   prefs,
		tasks:   tasks,
		history: history,
		tabs:    tabs,
		newCompleter: func(apiKey string) Completer {
			return client.NewOpenAIClient(apiKey)
		},
		ctx:   context.Background(),
		state: StateIdle,
	}
}

func (s *GenerationService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// State returns the current orchestrator state.
func (s *GenerationService) State() GenerationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether an attempt is in flight. The UI disables generate,
// copy, save and clear controls while busy.
func (s *GenerationService) Busy() bool {
	return s.State() != StateIdle
}

// Output returns the most recently generated message. A failed attempt
// leaves the prior output untouched.
func (s *GenerationService) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// ClearOutput resets the current output.
func (s *GenerationService) ClearOutput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = ""
}

// SaveOutput stores the current output into history together with the
// current preferences and the given task label.
func (s *GenerationService) SaveOutput(taskKey string) error {
	if s.Busy() {
		return ErrGenerationBusy
	}
	p := s.prefs.Snapshot()
	_, err := s.history.Save(s.Output(), taskKey, p.Tone, p.Length, p.Model)
	return err
}

// Generate runs one attempt and returns the generated message. Every
// failure is recoverable: state resets to idle and the user may retry.
func (s *GenerationService) Generate(taskKey, additionalContext string) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	ctx := events.WithAttempt(s.ctx, uuid.NewString())
	events.Emit(ctx, events.GenerationBusy, events.NewBusy(true, "Reading LinkedIn profile from the active tab..."))

	message, err := s.run(ctx, taskKey, additionalContext)

	s.finish()
	events.Emit(ctx, events.GenerationBusy, events.NewBusy(false, ""))
	if err != nil {
		events.Emit(ctx, events.GenerationStatus, events.NewError(err.Error()))
		return "", err
	}
	events.Emit(ctx, events.GenerationStatus, events.NewSuccess("Message generated. Review or save to history."))
	return message, nil
}

func (s *GenerationService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrGenerationBusy
	}
	s.state = StateValidating
	return nil
}

func (s *GenerationService) finish() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *GenerationService) setState(state GenerationState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *GenerationService) run(ctx context.Context, taskKey, additionalContext string) (string, error) {
	prefs, tasks, err := s.validate(taskKey)
	if err != nil {
		return "", err
	}

	s.setState(StateAwaitingPageText)
	tab, err := s.tabs.ActiveTab(ctx)
	if err != nil {
		return "", fmt.Errorf("reading active tab: %w", err)
	}
	if !browser.IsProfileURL(tab.URL) {
		return "", ErrWrongPage
	}
	recipientText, err := s.tabs.ExtractText(ctx, tab)
	if err != nil {
		return "", fmt.Errorf("reading profile text: %w", err)
	}
	if strings.TrimSpace(recipientText) == "" {
		return "", ErrEmptyExtraction
	}

	s.setState(StateComposing)
	events.Emit(ctx, events.GenerationStatus, events.NewInfo("Generating message..."))
	messages, err := prompt.Compose(prompt.Input{
		SystemPrompt:      prefs.SystemPrompt,
		Tasks:             tasks,
		TaskKey:           taskKey,
		Tone:              prefs.Tone,
		Length:            prefs.Length,
		IncludeCTA:        prefs.IncludeCta,
		IncludeCompliment: prefs.IncludeCompliment,
		AdditionalContext: additionalContext,
		UserProfile:       prefs.UserProfile,
		RecipientProfile:  recipientText,
	})
	if err != nil {
		return "", err
	}

	s.setState(StateAwaitingModelResponse)
	reply, err := s.newCompleter(prefs.APIKey).Complete(ctx, prefs.Model, messages.System, messages.User)
	if err != nil {
		return "", fmt.Errorf("generating message: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyResponse
	}

	s.mu.Lock()
	s.output = reply
	s.mu.Unlock()
	return reply, nil
}

// validate checks generation preconditions in a fixed order. The first
// failing check aborts the attempt before any tab or network access.
func (s *GenerationService) validate(taskKey string) (Preferences, []models.Task, error) {
	prefs := s.prefs.Snapshot()
	if strings.TrimSpace(prefs.APIKey) == "" {
		return prefs, nil, fmt.Errorf("%w: add your API key in Settings", ErrValidation)
	}
	if strings.TrimSpace(prefs.UserProfile) == "" {
		return prefs, nil, fmt.Errorf("%w: add your profile in Settings", ErrValidation)
	}
	if strings.TrimSpace(prefs.SystemPrompt) == "" {
		return prefs, nil, fmt.Errorf("%w: add a system prompt in Settings", ErrValidation)
	}

	tasks, err := s.tasks.List()
	if err != nil {
		return prefs, nil, fmt.Errorf("loading tasks: %w", err)
	}
	if len(tasks) == 0 {
		return prefs, nil, fmt.Errorf("%w: add a task in Settings", ErrValidation)
	}
	if strings.TrimSpace(taskKey) == "" || taskKey == TaskPlaceholder {
		return prefs, nil, fmt.Errorf("%w: select a task before generating", ErrValidation)
	}
	return prefs, tasks, nil
}
