// Package browser reads page text from the user's running browser over the
// DevTools protocol. It never navigates or mutates pages; everything here is
// read-only against whatever tab the user already has open.
package browser

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

const (
	// DebuggerURLEnv overrides the DevTools endpoint of the browser to attach to.
	DebuggerURLEnv = "LINKDRAFT_DEBUGGER_URL"

	defaultDebuggerURL = "http://127.0.0.1:9222"
)

// profileURLPattern matches LinkedIn profile pages, including regional
// subdomains (www, fr, uk, ...).
var profileURLPattern = regexp.MustCompile(`(?i)^https?://([a-z]{2,3}\.)?linkedin\.com/in/`)

// IsProfileURL reports whether url points at a LinkedIn profile page.
func IsProfileURL(url string) bool {
	return profileURLPattern.MatchString(url)
}

// Tab identifies a browser tab the reader can extract text from.
type Tab struct {
	URL string

	page *rod.Page
}

// Reader attaches lazily to a running browser and keeps the connection for
// subsequent reads.
type Reader struct {
	controlURL string

	mu      sync.Mutex
	browser *rod.Browser
}

// NewReader builds a reader against debuggerURL. An empty debuggerURL falls
// back to LINKDRAFT_DEBUGGER_URL, then the default local DevTools port.
func NewReader(debuggerURL string) *Reader {
	if debuggerURL == "" {
		debuggerURL = os.Getenv(DebuggerURLEnv)
	}
	if debuggerURL == "" {
		debuggerURL = defaultDebuggerURL
	}
	return &Reader{controlURL: debuggerURL}
}

func (r *Reader) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	u, err := launcher.ResolveURL(r.controlURL)
	if err != nil {
		return nil, fmt.Errorf("resolve browser debugger url %q: %w", r.controlURL, err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser at %q: %w", r.controlURL, err)
	}
	r.browser = b
	return b, nil
}

// ActiveTab returns the tab the user is currently looking at: the first page
// whose document is visible, falling back to the most recently opened page.
func (r *Reader) ActiveTab(ctx context.Context) (Tab, error) {
	b, err := r.connect()
	if err != nil {
		return Tab{}, err
	}

	pages, err := b.Pages()
	if err != nil {
		return Tab{}, fmt.Errorf("list browser pages: %w", err)
	}
	if len(pages) == 0 {
		return Tab{}, fmt.Errorf("no active tab found")
	}

	for _, p := range pages {
		page := p.Context(ctx)
		obj, err := page.Eval(`() => document.visibilityState`)
		if err != nil {
			continue
		}
		if obj.Value.Str() != "visible" {
			continue
		}
		info, err := page.Info()
		if err != nil {
			continue
		}
		return Tab{URL: info.URL, page: page}, nil
	}

	page := pages[0].Context(ctx)
	info, err := page.Info()
	if err != nil {
		return Tab{}, fmt.Errorf("inspect browser page: %w", err)
	}
	return Tab{URL: info.URL, page: page}, nil
}

// ExtractText returns the trimmed visible body text of the tab. An empty
// string is a valid result; pages can legitimately have no body text yet.
func (r *Reader) ExtractText(ctx context.Context, tab Tab) (string, error) {
	if tab.page == nil {
		return "", fmt.Errorf("tab is not attached to a page")
	}
	obj, err := tab.page.Context(ctx).Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", fmt.Errorf("extract page text: %w", err)
	}
	return strings.TrimSpace(obj.Value.Str()), nil
}
