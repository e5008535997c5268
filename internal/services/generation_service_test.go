package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"linkdraft/internal/browser"
	"linkdraft/internal/events"
	"linkdraft/internal/prompt"
)

const profileURL = "https://www.linkedin.com/in/jane-doe"

// newGeneration builds a fully seeded orchestrator over an in-memory store:
// API key, user profile and one task named "Intro" are configured, the fake
// tab points at a profile page and the fake model replies.
func newGeneration(t *testing.T) (*GenerationService, *fakeTabReader, *fakeCompleter) {
	t.Helper()
	keyring.MockInit()

	db := newTestDB(t)
	svc := NewDbServices(db)

	require.NoError(t, svc.Preferences.Set(FieldAPIKey, "sk-test"))
	require.NoError(t, svc.Preferences.Set(FieldUserProfile, "John Smith, recruiter at Initech"))
	_, err := svc.Tasks.Add("Intro", "Ask for a 15-min call")
	require.NoError(t, err)

	tabs := &fakeTabReader{
		tab:  browser.Tab{URL: profileURL},
		text: "Jane Doe, Senior Engineer at Acme",
	}
	completer := &fakeCompleter{reply: "Hi Jane, loved your talk."}

	gen := NewGenerationService(svc.Preferences, svc.Tasks, svc.History, tabs)
	gen.newCompleter = func(apiKey string) Completer {
		require.Equal(t, "sk-test", apiKey)
		return completer
	}
	return gen, tabs, completer
}

func TestGenerateSuccess(t *testing.T) {
	gen, _, completer := newGeneration(t)

	message, err := gen.Generate("Intro", "We met at GopherCon.")
	require.NoError(t, err)
	require.Equal(t, "Hi Jane, loved your talk.", message)
	require.Equal(t, message, gen.Output())
	require.Equal(t, StateIdle, gen.State())

	require.Equal(t, 1, completer.calls)
	require.Equal(t, "gpt-5-mini", completer.lastModel)
	require.Equal(t, prompt.DefaultSystemPrompt(), completer.lastSystem)
	require.Contains(t, completer.lastUser, "Task: Ask for a 15-min call")
	require.Contains(t, completer.lastUser, "Additional context: We met at GopherCon.")
	require.Contains(t, completer.lastUser, "Jane Doe, Senior Engineer at Acme")
}

func TestGenerateValidationStopsBeforeTabAccess(t *testing.T) {
	gen, tabs, completer := newGeneration(t)

	_, err := gen.Generate(TaskPlaceholder, "")
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, 0, tabs.activeCalls, "validation failure must not touch the tab")
	require.Equal(t, 0, completer.calls, "validation failure must not call the model")
	require.Equal(t, StateIdle, gen.State())
}

func TestGenerateValidationOrder(t *testing.T) {
	keyring.MockInit()
	db := newTestDB(t)
	svc := NewDbServices(db)
	tabs := &fakeTabReader{}
	gen := NewGenerationService(svc.Preferences, svc.Tasks, svc.History, tabs)

	// Nothing configured: the API key check fails first.
	_, err := gen.Generate("Intro", "")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "API key")

	require.NoError(t, svc.Preferences.Set(FieldAPIKey, "sk-test"))
	_, err = gen.Generate("Intro", "")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "profile")

	require.NoError(t, svc.Preferences.Set(FieldUserProfile, "John Smith"))
	_, err = gen.Generate("Intro", "")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "task")

	require.Equal(t, 0, tabs.activeCalls)
}

func TestGenerateWrongPage(t *testing.T) {
	gen, tabs, completer := newGeneration(t)
	tabs.tab = browser.Tab{URL: "https://example.com"}

	_, err := gen.Generate("Intro", "")
	require.ErrorIs(t, err, ErrWrongPage)
	require.Equal(t, 0, tabs.extractCalls, "wrong page must not be scraped")
	require.Equal(t, 0, completer.calls)
}

func TestGenerateTabError(t *testing.T) {
	gen, tabs, completer := newGeneration(t)
	tabs.tabErr = errors.New("no active tab found")

	_, err := gen.Generate("Intro", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no active tab found")
	require.Equal(t, 0, completer.calls)
}

func TestGenerateEmptyExtraction(t *testing.T) {
	gen, tabs, completer := newGeneration(t)
	tabs.text = "   \n\t  "

	_, err := gen.Generate("Intro", "")
	require.ErrorIs(t, err, ErrEmptyExtraction)
	require.Equal(t, 0, completer.calls)
}

func TestGenerateTaskVanished(t *testing.T) {
	gen, _, completer := newGeneration(t)

	_, err := gen.Generate("Vanished", "")
	require.ErrorIs(t, err, prompt.ErrTaskNotFound)
	require.Equal(t, 0, completer.calls)
}

func TestGenerateEmptyResponseKeepsOutput(t *testing.T) {
	gen, _, completer := newGeneration(t)

	_, err := gen.Generate("Intro", "")
	require.NoError(t, err)
	previous := gen.Output()

	completer.reply = "  \n "
	_, err = gen.Generate("Intro", "")
	require.ErrorIs(t, err, ErrEmptyResponse)
	require.Equal(t, previous, gen.Output(), "a failed attempt must not clobber prior output")
	require.Equal(t, StateIdle, gen.State())
}

func TestGenerateModelError(t *testing.T) {
	gen, _, completer := newGeneration(t)
	completer.err = errors.New("401 invalid api key")

	_, err := gen.Generate("Intro", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401 invalid api key", "collaborator error text passes through")
}

func TestGenerateSingleFlight(t *testing.T) {
	gen, _, _ := newGeneration(t)

	require.NoError(t, gen.begin())
	defer gen.finish()

	_, err := gen.Generate("Intro", "")
	require.ErrorIs(t, err, ErrGenerationBusy)

	require.ErrorIs(t, gen.SaveOutput("Intro"), ErrGenerationBusy)
}

func TestGenerateEmitsBusyEvents(t *testing.T) {
	gen, _, _ := newGeneration(t)

	var names []string
	var busy []bool
	events.SetCustomEmitter(func(ctx context.Context, name string, evt events.StatusEvent) {
		names = append(names, name)
		if name == events.GenerationBusy {
			busy = append(busy, evt.Busy)
		}
	})
	defer events.SetCustomEmitter(nil)

	_, err := gen.Generate("Intro", "")
	require.NoError(t, err)

	require.Equal(t, []bool{true, false}, busy, "controls lock for the attempt and unlock after")
	require.Contains(t, names, events.GenerationStatus)
}

func TestSaveOutput(t *testing.T) {
	gen, _, _ := newGeneration(t)

	require.Error(t, gen.SaveOutput("Intro"), "nothing generated yet")

	_, err := gen.Generate("Intro", "")
	require.NoError(t, err)
	require.NoError(t, gen.SaveOutput("Intro"))

	entries, err := gen.history.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Hi Jane, loved your talk.", entries[0].Message)
	require.Equal(t, "Intro", entries[0].Task)
	require.Equal(t, "gpt-5-mini", entries[0].Model)
}

func TestClearOutput(t *testing.T) {
	gen, _, _ := newGeneration(t)

	_, err := gen.Generate("Intro", "")
	require.NoError(t, err)
	require.NotEmpty(t, gen.Output())

	gen.ClearOutput()
	require.Empty(t, gen.Output())
}

func TestGenerateErrorMessagesAreUserFacing(t *testing.T) {
	gen, tabs, _ := newGeneration(t)
	tabs.tab = browser.Tab{URL: "https://example.com"}

	_, err := gen.Generate("Intro", "")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "linkedin.com/in/"), "wrong-page reason should tell the user what to open")
}
