// Package prompt assembles the chat messages sent to the completion model.
// Composition is a pure function of its input: identical inputs always
// produce byte-identical messages.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"linkdraft/internal/models"
)

// ErrTaskNotFound reports that the selected task key no longer resolves to a
// stored task.
var ErrTaskNotFound = errors.New("selected task not found")

// Length labels and their guidance phrases handed to the model.
const (
	LengthShort  = "Short"
	LengthMedium = "Medium"
	LengthLong   = "Long"
)

var lengthGuidance = map[string]string{
	LengthShort:  "1-3 concise sentences",
	LengthMedium: "4-6 sentences with a bit more detail",
	LengthLong:   "7-9 sentences with a strong narrative",
}

// LengthGuidance returns the sentence-count guidance for a length label.
// Unknown labels fall back to the Short guidance.
func LengthGuidance(length string) string {
	if g, ok := lengthGuidance[length]; ok {
		return g
	}
	return lengthGuidance[LengthShort]
}

// Input carries everything the composer needs. Tasks is the full stored
// task list; TaskKey must resolve against it.
type Input struct {
	SystemPrompt      string
	Tasks             []models.Task
	TaskKey           string
	Tone              string
	Length            string
	IncludeCTA        bool
	IncludeCompliment bool
	AdditionalContext string
	UserProfile       string
	RecipientProfile  string
}

// Messages is the two-message request body for the chat completion call.
type Messages struct {
	System string
	User   string
}

// Compose resolves the selected task and builds the request messages. The
// recipient profile text is passed through untouched; filtering page noise
// is the model's job per the system prompt rules.
func Compose(in Input) (Messages, error) {
	task, found := lo.Find(in.Tasks, func(t models.Task) bool {
		return t.Key == in.TaskKey
	})
	if !found {
		return Messages{}, fmt.Errorf("%w: %q", ErrTaskNotFound, in.TaskKey)
	}

	additional := strings.TrimSpace(in.AdditionalContext)
	if additional == "" {
		additional = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", task.Value)
	fmt.Fprintf(&b, "Tone: %s\n", in.Tone)
	fmt.Fprintf(&b, "Length: %s (%s)\n", in.Length, LengthGuidance(in.Length))
	fmt.Fprintf(&b, "Include CTA: %s\n", yesNo(in.IncludeCTA))
	fmt.Fprintf(&b, "Include light compliment: %s\n", yesNo(in.IncludeCompliment))
	fmt.Fprintf(&b, "Additional context: %s\n", additional)
	b.WriteString("\nUser profile:\n")
	b.WriteString(in.UserProfile)
	b.WriteString("\n\nRecipient profile:\n")
	b.WriteString(in.RecipientProfile)
	b.WriteString("\n\nWrite the message only. Avoid placeholders.")

	return Messages{System: in.SystemPrompt, User: b.String()}, nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
