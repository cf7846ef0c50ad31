// CLAUDE:SUMMARY Snapshot Service — point-in-time observation of the active surface: PNG, URL, title, viewport, optional text/markdown.
// Package snapshot produces point-in-time observations of the active
// surface: a viewport raster, URL, title, layout dimensions, and an
// optional normalized text excerpt. Each Snapshot is assembled fresh per
// request and has no identity beyond the call that produced it.
//
// The text-extraction routine lives here and is shared with the actions
// package's risk scan, so that "what does the page say" has exactly one
// meaning across the codebase.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/domdrive/surface"
)

// Terminal capture failures. Messages are returned verbatim to
// orchestrators and are part of the wire contract.
var (
	ErrNoPageLoaded     = errors.New("No page is currently loaded.")
	ErrSnapshotEncoding = errors.New("Unable to encode snapshot image.")
)

// Snapshot is a single observation of the active surface.
type Snapshot struct {
	ImagePNG       []byte `json:"image_png,omitempty"`
	URL            string `json:"url"`
	Title          string `json:"title"`
	ViewportWidth  int    `json:"viewport_width"`
	ViewportHeight int    `json:"viewport_height"`
	TextSnippet    string `json:"text_snippet,omitempty"`
	Markdown       string `json:"markdown,omitempty"`
}

// Options controls what a capture includes beyond the raster.
type Options struct {
	// IncludeText runs the text-extraction routine and fills TextSnippet.
	IncludeText bool
	// IncludeMarkdown converts the sanitized page HTML to markdown.
	IncludeMarkdown bool
}

// Config configures the Service.
type Config struct {
	// SnippetLimit caps TextSnippet length in characters. Default: 2000.
	SnippetLimit int
	// MarkdownLimit caps Markdown length in characters. Default: 8000.
	MarkdownLimit int

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.SnippetLimit <= 0 {
		c.SnippetLimit = 2000
	}
	if c.MarkdownLimit <= 0 {
		c.MarkdownLimit = 8000
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Service captures snapshots of whatever surface the registry holds.
type Service struct {
	reg       *surface.Registry
	cfg       Config
	sanitizer *bluemonday.Policy
	md        *converter.Converter
}

// New creates a Service bound to the given registry.
func New(reg *surface.Registry, cfg Config) *Service {
	cfg.defaults()
	return &Service{
		reg:       reg,
		cfg:       cfg,
		sanitizer: bluemonday.UGCPolicy(),
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

const jsViewport = `() => ({w: window.innerWidth, h: window.innerHeight})`

// Capture observes the active surface. Text and markdown extraction are
// best-effort: their failure degrades the result, never fails the call.
func (s *Service) Capture(ctx context.Context, opts Options) (*Snapshot, error) {
	log := s.cfg.Logger

	sf := s.reg.Current()
	if sf == nil {
		return nil, surface.ErrNoActive
	}

	info, err := sf.Info(ctx)
	if err != nil {
		// The surface exists but cannot report a page.
		log.Debug("snapshot: surface info failed", "error", err)
		return nil, ErrNoPageLoaded
	}
	if info.URL == "" {
		return nil, ErrNoPageLoaded
	}

	snap := &Snapshot{URL: info.URL, Title: info.Title}

	if res, err := sf.Eval(ctx, jsViewport); err != nil {
		log.Warn("snapshot: viewport read failed", "error", err)
	} else {
		snap.ViewportWidth = res.Get("w").Int()
		snap.ViewportHeight = res.Get("h").Int()
	}

	png, err := sf.Screenshot(ctx)
	if err != nil || len(png) == 0 {
		log.Warn("snapshot: rasterization failed", "error", err)
		return nil, ErrSnapshotEncoding
	}
	snap.ImagePNG = png

	if opts.IncludeText {
		if pt, err := s.ExtractText(ctx, sf); err != nil {
			log.Warn("snapshot: text extraction failed", "url", info.URL, "error", err)
		} else {
			if pt.Title != "" {
				snap.Title = pt.Title
			}
			snap.TextSnippet = pt.Snippet
		}
	}

	if opts.IncludeMarkdown {
		if md, err := s.captureMarkdown(ctx, sf); err != nil {
			log.Warn("snapshot: markdown extraction failed", "url", info.URL, "error", err)
		} else {
			snap.Markdown = md
		}
	}

	return snap, nil
}

const jsOuterHTML = `() => document.documentElement.outerHTML`

// captureMarkdown renders the page's sanitized HTML as markdown.
func (s *Service) captureMarkdown(ctx context.Context, sf surface.Surface) (string, error) {
	res, err := sf.Eval(ctx, jsOuterHTML)
	if err != nil {
		return "", fmt.Errorf("snapshot: get document HTML: %w", err)
	}
	raw := res.Str()
	if raw == "" {
		return "", fmt.Errorf("snapshot: empty document")
	}

	md, err := s.md.ConvertString(s.sanitizer.Sanitize(raw))
	if err != nil {
		return "", fmt.Errorf("snapshot: convert markdown: %w", err)
	}
	return truncate(md, s.cfg.MarkdownLimit), nil
}
