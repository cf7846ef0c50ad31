// CLAUDE:SUMMARY Tab wraps a Rod page and implements surface.Surface; opening a tab makes it the active surface.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/hazyhaar/domdrive/surface"
)

// Tab wraps a Rod page with domdrive-specific setup: stealth and resource
// blocking. It implements surface.Surface; Rod marshals every call onto
// the CDP connection that owns the page's rendering state.
type Tab struct {
	Page    *rod.Page
	Stealth StealthLevel
	manager *Manager
}

var _ surface.Surface = (*Tab)(nil)

// OpenTab creates a new tab, navigates it to the URL with stealth applied,
// and hands it to the surface registry as the active surface. The host
// owns the tab; domdrive only ever borrows it through the registry.
func (m *Manager) OpenTab(ctx context.Context, pageURL string) (*Tab, error) {
	b := m.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: no active browser")
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if len(m.cfg.ResourceBlocking) > 0 {
		if err := applyResourceBlocking(page, m.cfg.ResourceBlocking); err != nil {
			m.cfg.Logger.Warn("browser: resource blocking failed", "error", err)
		}
	}

	t := &Tab{Page: page, Stealth: m.cfg.Stealth, manager: m}

	if pageURL != "" {
		navCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := page.Context(navCtx).Navigate(pageURL); err != nil {
			page.Close()
			return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
		}
		if err := page.Context(navCtx).WaitLoad(); err != nil {
			m.cfg.Logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
		}
	}

	if m.reg != nil {
		m.reg.SetActive(t)
	}
	return t, nil
}

// Info implements surface.Surface.
func (t *Tab) Info(ctx context.Context) (surface.Info, error) {
	info, err := t.Page.Context(ctx).Info()
	if err != nil {
		return surface.Info{}, fmt.Errorf("browser: page info: %w", err)
	}
	return surface.Info{URL: info.URL, Title: info.Title}, nil
}

// Eval implements surface.Surface. js must be a function expression.
func (t *Tab) Eval(ctx context.Context, js string) (gson.JSON, error) {
	res, err := t.Page.Context(ctx).Eval(js)
	if err != nil {
		return gson.New(nil), fmt.Errorf("browser: eval: %w", err)
	}
	return res.Value, nil
}

// Navigate implements surface.Surface.
func (t *Tab) Navigate(ctx context.Context, url string) error {
	if err := t.Page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	return nil
}

// Screenshot implements surface.Surface; it rasterizes the visible
// viewport to a PNG.
func (t *Tab) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := t.Page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot: %w", err)
	}
	return data, nil
}

// Close closes the tab and clears it from the registry if it is still the
// active surface.
func (t *Tab) Close() error {
	if t.manager != nil && t.manager.reg != nil && t.manager.reg.Current() == surface.Surface(t) {
		t.manager.reg.SetActive(nil)
	}
	if t.Page != nil {
		return t.Page.Close()
	}
	return nil
}
