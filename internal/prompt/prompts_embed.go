package prompt

import (
	"embed"
	"strings"
)

// embeddedPrompts holds the built-in prompt templates so packaged executables
// can load them without needing access to the source tree.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

func mustPrompt(name string) string {
	data, err := embeddedPrompts.ReadFile("prompts/" + name)
	if err != nil {
		panic("missing embedded prompt " + name + ": " + err.Error())
	}
	return strings.TrimSpace(string(data))
}

// DefaultSystemPrompt returns the built-in outreach instruction template used
// whenever the user has not configured one.
func DefaultSystemPrompt() string {
	return mustPrompt("system_prompt.txt")
}

// ProfileCleanupPrompt returns the system instruction for summarizing raw
// profile page text.
func ProfileCleanupPrompt() string {
	return mustPrompt("profile_cleanup.txt")
}
