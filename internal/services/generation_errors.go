package services

import "errors"

// Recoverable generation failures. Each resets the orchestrator to idle;
// nothing here is fatal and there is no automatic retry.
var (
	// ErrGenerationBusy rejects a second generate while one is in flight.
	ErrGenerationBusy = errors.New("a generation is already in progress")

	// ErrValidation covers missing key/profile/prompt/task preconditions.
	// Failures wrap it with the specific user-facing reason.
	ErrValidation = errors.New("missing settings")

	// ErrWrongPage means the active tab is not a LinkedIn profile page.
	ErrWrongPage = errors.New("open a LinkedIn profile URL (linkedin.com/in/...) in the active tab")

	// ErrEmptyExtraction means the page yielded no text.
	ErrEmptyExtraction = errors.New("could not extract text from the active profile page, scroll and try again")

	// ErrEmptyResponse means the model returned blank content.
	ErrEmptyResponse = errors.New("model returned an empty message")
)
