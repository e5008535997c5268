package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"linkdraft/internal/services"
)

// App struct
type App struct {
	ctx        context.Context
	generation *services.GenerationService
	dbClose    func() error
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// CopyToClipboard writes text to the system clipboard. Refused while a
// generation is in flight, matching the disabled copy control.
func (a *App) CopyToClipboard(text string) error {
	if a.generation != nil && a.generation.Busy() {
		return services.ErrGenerationBusy
	}
	if text == "" {
		return fmt.Errorf("nothing to copy yet")
	}
	return runtime.ClipboardSetText(a.ctx, text)
}
