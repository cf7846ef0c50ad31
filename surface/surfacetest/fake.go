// CLAUDE:SUMMARY In-memory Surface fake for package tests — scripted Eval dispatch, no browser required.
// Package surfacetest provides a fake Surface implementation so that
// snapshot and actions tests run without a browser.
package surfacetest

import (
	"context"
	"strings"
	"sync"

	"github.com/ysmood/gson"

	"github.com/hazyhaar/domdrive/surface"
)

// Fake implements surface.Surface in memory. The zero value is a live
// surface with no page loaded; populate the fields to shape behaviour.
// Eval dispatches on recognisable fragments of the scripts domdrive
// issues; set EvalFunc to take over completely.
type Fake struct {
	mu sync.Mutex

	PageURL   string
	PageTitle string
	BodyText  string
	PageHTML  string

	ViewportW int
	ViewportH int

	ReadyState string // defaults to "complete"
	ClickHit   bool   // elementFromPoint found something
	TypeHit    bool   // a form field accepted the text
	PNG        []byte

	InfoErr       error
	EvalErr       error
	NavigateErr   error
	ScreenshotErr error

	EvalFunc     func(js string) (gson.JSON, error)
	NavigateFunc func(url string) error

	// Call records for assertions.
	Evaled      []string
	Navigations []string
}

var _ surface.Surface = (*Fake)(nil)

// Info implements surface.Surface.
func (f *Fake) Info(ctx context.Context) (surface.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return surface.Info{URL: f.PageURL, Title: f.PageTitle}, f.InfoErr
}

// Eval implements surface.Surface.
func (f *Fake) Eval(ctx context.Context, js string) (gson.JSON, error) {
	if err := ctx.Err(); err != nil {
		return gson.New(nil), err
	}
	f.mu.Lock()
	f.Evaled = append(f.Evaled, js)
	fn := f.EvalFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(js)
	}
	if f.EvalErr != nil {
		return gson.New(nil), f.EvalErr
	}

	// The type script reads window.innerWidth for its fallback targeting,
	// so its activeElement fragment must be matched before the viewport
	// probe.
	switch {
	case strings.Contains(js, "document.readyState"):
		state := f.ReadyState
		if state == "" {
			state = "complete"
		}
		return gson.New(state), nil
	case strings.Contains(js, "activeElement"):
		return gson.New(f.TypeHit), nil
	case strings.Contains(js, "window.innerWidth"):
		return gson.New(map[string]any{"w": f.ViewportW, "h": f.ViewportH}), nil
	case strings.Contains(js, "document.body.innerText"):
		return gson.New(map[string]any{"title": f.PageTitle, "text": f.BodyText}), nil
	case strings.Contains(js, "outerHTML"):
		return gson.New(f.PageHTML), nil
	case strings.Contains(js, "scrollBy"):
		return gson.New(nil), nil
	case strings.Contains(js, "PointerEvent"):
		return gson.New(f.ClickHit), nil
	}
	return gson.New(nil), nil
}

// Navigate implements surface.Surface. By default it records the URL and
// makes it the current page, which is what a real load eventually does.
func (f *Fake) Navigate(ctx context.Context, url string) error {
	f.mu.Lock()
	f.Navigations = append(f.Navigations, url)
	f.mu.Unlock()

	if f.NavigateFunc != nil {
		return f.NavigateFunc(url)
	}
	if f.NavigateErr != nil {
		return f.NavigateErr
	}
	f.mu.Lock()
	f.PageURL = url
	f.mu.Unlock()
	return nil
}

// Screenshot implements surface.Surface.
func (f *Fake) Screenshot(ctx context.Context) ([]byte, error) {
	if f.ScreenshotErr != nil {
		return nil, f.ScreenshotErr
	}
	return f.PNG, nil
}

// EvalCount returns how many scripts matching the fragment were evaluated.
func (f *Fake) EvalCount(fragment string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, js := range f.Evaled {
		if strings.Contains(js, fragment) {
			n++
		}
	}
	return n
}
