// CLAUDE:SUMMARY Shared text-extraction routine — page title + visible body text, whitespace-collapsed and truncated.
package snapshot

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hazyhaar/domdrive/surface"
)

// PageText is the normalized "what does the page say" view used both for
// snapshot snippets and for pre-execution risk scanning.
type PageText struct {
	Title   string
	Snippet string
}

const jsPageText = `() => {
	const body = document.body;
	return {
		title: document.title || "",
		text: body ? (document.body.innerText || "") : "",
	};
}`

// ExtractText reads the surface's title and visible body text, collapses
// consecutive whitespace to single spaces, trims, and truncates the text
// to the configured snippet limit. When the script yields no body text
// (some pages defeat innerText), it falls back to walking the document's
// HTML for visible text nodes.
func (s *Service) ExtractText(ctx context.Context, sf surface.Surface) (PageText, error) {
	res, err := sf.Eval(ctx, jsPageText)
	if err != nil {
		return PageText{}, fmt.Errorf("snapshot: page text script: %w", err)
	}

	pt := PageText{
		Title:   collapse(res.Get("title").Str()),
		Snippet: truncate(collapse(res.Get("text").Str()), s.cfg.SnippetLimit),
	}

	if pt.Snippet == "" {
		if text, err := s.extractFromHTML(ctx, sf); err == nil {
			pt.Snippet = truncate(text, s.cfg.SnippetLimit)
		}
	}
	return pt, nil
}

// extractFromHTML parses the document's outer HTML and collects visible
// text, skipping script/style/noscript subtrees.
func (s *Service) extractFromHTML(ctx context.Context, sf surface.Surface) (string, error) {
	res, err := sf.Eval(ctx, jsOuterHTML)
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(res.Str()))
	if err != nil {
		return "", err
	}
	return collectVisibleText(doc), nil
}

// collectVisibleText walks a parsed HTML tree and joins its text nodes.
func collectVisibleText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Head:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapse(sb.String())
}

// collapse reduces all whitespace runs to single spaces and trims.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most limit characters without splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
