package snapshot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ysmood/gson"

	"github.com/hazyhaar/domdrive/surface"
	"github.com/hazyhaar/domdrive/surface/surfacetest"
)

func testService(t *testing.T, reg *surface.Registry, cfg Config) *Service {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return New(reg, cfg)
}

func loadedFake() *surfacetest.Fake {
	return &surfacetest.Fake{
		PageURL:   "https://example.com/page",
		PageTitle: "Example Page",
		BodyText:  "Welcome to the   example\n\npage body.",
		ViewportW: 1280,
		ViewportH: 720,
		PNG:       []byte{0x89, 'P', 'N', 'G'},
	}
}

func TestCapture_NoActiveSurface(t *testing.T) {
	reg := surface.NewRegistry()
	s := testService(t, reg, Config{})

	_, err := s.Capture(context.Background(), Options{IncludeText: true})
	if !errors.Is(err, surface.ErrNoActive) {
		t.Fatalf("err = %v, want ErrNoActive", err)
	}
	if got := err.Error(); got != "No active browser view is available." {
		t.Fatalf("message = %q", got)
	}
}

func TestCapture_NoPageLoaded(t *testing.T) {
	reg := surface.NewRegistry()
	reg.SetActive(&surfacetest.Fake{}) // live surface, blank page
	s := testService(t, reg, Config{})

	_, err := s.Capture(context.Background(), Options{IncludeText: true})
	if !errors.Is(err, ErrNoPageLoaded) {
		t.Fatalf("err = %v, want ErrNoPageLoaded", err)
	}
	if got := err.Error(); got != "No page is currently loaded." {
		t.Fatalf("message = %q", got)
	}
}

func TestCapture_InfoFailureIsNoPage(t *testing.T) {
	reg := surface.NewRegistry()
	reg.SetActive(&surfacetest.Fake{InfoErr: errors.New("target destroyed")})
	s := testService(t, reg, Config{})

	_, err := s.Capture(context.Background(), Options{})
	if !errors.Is(err, ErrNoPageLoaded) {
		t.Fatalf("err = %v, want ErrNoPageLoaded", err)
	}
}

func TestCapture_EncodingFailure(t *testing.T) {
	for name, f := range map[string]*surfacetest.Fake{
		"screenshot error": func() *surfacetest.Fake {
			f := loadedFake()
			f.ScreenshotErr = errors.New("boom")
			return f
		}(),
		"empty bytes": func() *surfacetest.Fake {
			f := loadedFake()
			f.PNG = nil
			return f
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			reg := surface.NewRegistry()
			reg.SetActive(f)
			s := testService(t, reg, Config{})

			_, err := s.Capture(context.Background(), Options{})
			if !errors.Is(err, ErrSnapshotEncoding) {
				t.Fatalf("err = %v, want ErrSnapshotEncoding", err)
			}
			if got := err.Error(); got != "Unable to encode snapshot image." {
				t.Fatalf("message = %q", got)
			}
		})
	}
}

func TestCapture_Full(t *testing.T) {
	f := loadedFake()
	reg := surface.NewRegistry()
	reg.SetActive(f)
	s := testService(t, reg, Config{})

	snap, err := s.Capture(context.Background(), Options{IncludeText: true})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if snap.URL != "https://example.com/page" {
		t.Errorf("URL = %q", snap.URL)
	}
	if snap.Title != "Example Page" {
		t.Errorf("Title = %q", snap.Title)
	}
	if snap.ViewportWidth != 1280 || snap.ViewportHeight != 720 {
		t.Errorf("viewport = %dx%d", snap.ViewportWidth, snap.ViewportHeight)
	}
	if len(snap.ImagePNG) == 0 {
		t.Error("ImagePNG empty")
	}
	if want := "Welcome to the example page body."; snap.TextSnippet != want {
		t.Errorf("TextSnippet = %q, want %q", snap.TextSnippet, want)
	}
}

func TestCapture_TextOffSkipsExtraction(t *testing.T) {
	f := loadedFake()
	reg := surface.NewRegistry()
	reg.SetActive(f)
	s := testService(t, reg, Config{})

	snap, err := s.Capture(context.Background(), Options{IncludeText: false})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if snap.TextSnippet != "" {
		t.Errorf("TextSnippet = %q, want empty", snap.TextSnippet)
	}
	if n := f.EvalCount("innerText"); n != 0 {
		t.Errorf("text extraction ran %d times with IncludeText=false", n)
	}
}

func TestCapture_TextFailureDegrades(t *testing.T) {
	f := loadedFake()
	f.EvalFunc = func(js string) (gson.JSON, error) {
		switch {
		case strings.Contains(js, "innerText"):
			return gson.New(nil), errors.New("script blocked")
		case strings.Contains(js, "window.innerWidth"):
			return gson.New(map[string]any{"w": 1280, "h": 720}), nil
		}
		return gson.New(nil), nil
	}
	reg := surface.NewRegistry()
	reg.SetActive(f)
	s := testService(t, reg, Config{})

	snap, err := s.Capture(context.Background(), Options{IncludeText: true})
	if err != nil {
		t.Fatalf("Capture should degrade, got %v", err)
	}
	if snap.TextSnippet != "" {
		t.Errorf("TextSnippet = %q, want empty after degradation", snap.TextSnippet)
	}
	if snap.URL == "" || len(snap.ImagePNG) == 0 {
		t.Error("degraded capture lost its core fields")
	}
}

func TestCapture_SnippetTruncated(t *testing.T) {
	f := loadedFake()
	f.BodyText = strings.Repeat("word ", 1000)
	reg := surface.NewRegistry()
	reg.SetActive(f)
	s := testService(t, reg, Config{SnippetLimit: 50})

	snap, err := s.Capture(context.Background(), Options{IncludeText: true})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if got := len([]rune(snap.TextSnippet)); got != 50 {
		t.Errorf("snippet length = %d, want 50", got)
	}
}

func TestCapture_Markdown(t *testing.T) {
	f := loadedFake()
	f.PageHTML = `<html><body><h1>Heading</h1><p>Some <strong>bold</strong> text.</p><script>evil()</script></body></html>`
	reg := surface.NewRegistry()
	reg.SetActive(f)
	s := testService(t, reg, Config{})

	snap, err := s.Capture(context.Background(), Options{IncludeMarkdown: true})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !strings.Contains(snap.Markdown, "Heading") {
		t.Errorf("Markdown = %q, want heading text", snap.Markdown)
	}
	if strings.Contains(snap.Markdown, "evil()") {
		t.Errorf("Markdown kept script content: %q", snap.Markdown)
	}
}
