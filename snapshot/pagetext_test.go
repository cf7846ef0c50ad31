package snapshot

import (
	"context"
	"strings"
	"testing"

	"github.com/hazyhaar/domdrive/surface"
	"github.com/hazyhaar/domdrive/surface/surfacetest"
)

func TestCollapse(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"  \t\n ", ""},
		{"one  two\n\nthree", "one two three"},
		{" padded ", "padded"},
	}
	for _, c := range cases {
		if got := collapse(c.in); got != c.want {
			t.Errorf("collapse(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncate_RuneSafe(t *testing.T) {
	s := "héllo wörld"
	got := truncate(s, 4)
	if got != "héll" {
		t.Errorf("truncate = %q, want %q", got, "héll")
	}
	if got := truncate("short", 100); got != "short" {
		t.Errorf("truncate below limit = %q", got)
	}
	if got := truncate("anything", 0); got != "anything" {
		t.Errorf("truncate with zero limit = %q", got)
	}
}

func TestExtractText_HTMLFallback(t *testing.T) {
	f := &surfacetest.Fake{
		PageURL:   "https://example.com",
		PageTitle: "Fallback",
		BodyText:  "", // innerText defeated
		PageHTML: `<html><head><title>Fallback</title><style>p{color:red}</style></head>
<body><p>Visible   paragraph.</p><script>track()</script><noscript>js off</noscript></body></html>`,
	}
	reg := surface.NewRegistry()
	reg.SetActive(f)
	s := testService(t, reg, Config{})

	pt, err := s.ExtractText(context.Background(), f)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(pt.Snippet, "Visible paragraph.") {
		t.Errorf("Snippet = %q, want visible text", pt.Snippet)
	}
	if strings.Contains(pt.Snippet, "track()") || strings.Contains(pt.Snippet, "color:red") || strings.Contains(pt.Snippet, "js off") {
		t.Errorf("Snippet kept non-visible content: %q", pt.Snippet)
	}
}

func TestExtractText_TitleCollapsed(t *testing.T) {
	f := &surfacetest.Fake{
		PageURL:   "https://example.com",
		PageTitle: "  Spaced \n Title ",
		BodyText:  "body",
	}
	reg := surface.NewRegistry()
	reg.SetActive(f)
	s := testService(t, reg, Config{})

	pt, err := s.ExtractText(context.Background(), f)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if pt.Title != "Spaced Title" {
		t.Errorf("Title = %q", pt.Title)
	}
}
