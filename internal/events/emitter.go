package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var Emit = func(ctx context.Context, name string, evt StatusEvent) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt StatusEvent) {
		if evt.AttemptID == "" {
			if attempt := AttemptFromContext(ctx); attempt != "" {
				evt.AttemptID = attempt
			}
		}

		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt StatusEvent)) {
	if f == nil {
		Emit = func(context.Context, string, StatusEvent) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt StatusEvent) {
		if evt.AttemptID == "" {
			if attempt := AttemptFromContext(ctx); attempt != "" {
				evt.AttemptID = attempt
			}
		}
		f(ctx, name, evt)
	}
}
