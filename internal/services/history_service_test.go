package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"linkdraft/internal/repositories"
)

func newHistory(t *testing.T) HistoryService {
	t.Helper()
	return NewHistoryService(repositories.NewHistoryRepository(newTestDB(t)))
}

func TestHistorySaveAndList(t *testing.T) {
	history := newHistory(t)

	_, err := history.Save("Hi Jane, great talk!", "Intro", "Professional", "Short", "gpt-5-mini")
	require.NoError(t, err)

	entries, err := history.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Hi Jane, great talk!", entries[0].Message)
	require.Equal(t, "Intro", entries[0].Task)
	require.Equal(t, "Professional", entries[0].Tone)
	require.Equal(t, "Short", entries[0].Length)
	require.Equal(t, "gpt-5-mini", entries[0].Model)
	require.False(t, entries[0].CreatedAt.IsZero())
}

func TestHistoryRejectsBlankMessage(t *testing.T) {
	history := newHistory(t)

	_, err := history.Save("   ", "Intro", "Professional", "Short", "gpt-5-mini")
	require.Error(t, err)

	entries, err := history.List()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestHistoryBoundedMostRecentFirst(t *testing.T) {
	history := newHistory(t)

	for i := 1; i <= 6; i++ {
		_, err := history.Save(fmt.Sprintf("message %d", i), "Intro", "Professional", "Short", "gpt-5-mini")
		require.NoError(t, err)
	}

	entries, err := history.List()
	require.NoError(t, err)
	require.Len(t, entries, 5, "appending a 6th entry must drop the oldest")

	require.Equal(t, "message 6", entries[0].Message)
	require.Equal(t, "message 2", entries[4].Message)
	for _, entry := range entries {
		require.NotEqual(t, "message 1", entry.Message, "oldest entry must be evicted")
	}
}

func TestHistoryClear(t *testing.T) {
	history := newHistory(t)

	_, err := history.Save("a message", "Intro", "Professional", "Short", "gpt-5-mini")
	require.NoError(t, err)

	require.NoError(t, history.Clear())
	entries, err := history.List()
	require.NoError(t, err)
	require.Empty(t, entries)
}
