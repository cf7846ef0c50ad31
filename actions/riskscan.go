// CLAUDE:SUMMARY Pre-execution risk scan — fixed keyword set matched against the page's title and visible text.
package actions

import (
	"context"
	"strings"

	"github.com/hazyhaar/domdrive/snapshot"
	"github.com/hazyhaar/domdrive/surface"
)

// riskKeywords is the fixed vocabulary of page content that pauses a
// batch when confirmation is required. Substring match, case-insensitive.
var riskKeywords = []string{
	"purchase",
	"buy",
	"pay",
	"checkout",
	"send",
	"post",
	"delete",
	"confirm",
	"submit order",
	"authorize",
	"install",
}

// scanRisk reads the pre-execution page content through the shared
// text-extraction routine and returns the matched keywords. Extraction
// failure degrades the same way snapshots do: the surface's own title is
// scanned and the body text is treated as absent. The returned error is
// non-nil only for cancellation.
func (e *Executor) scanRisk(ctx context.Context, sf surface.Surface) ([]string, error) {
	pt, err := e.text.ExtractText(ctx, sf)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		e.cfg.Logger.Warn("actions: risk scan extraction degraded", "error", err)
		pt = snapshot.PageText{}
		if info, ierr := sf.Info(ctx); ierr == nil {
			pt.Title = info.Title
		}
	}

	haystack := strings.ToLower(pt.Title + " " + pt.Snippet)

	var matched []string
	for _, kw := range riskKeywords {
		if strings.Contains(haystack, kw) {
			matched = append(matched, kw)
		}
	}
	for _, kw := range e.cfg.ExtraRiskKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(haystack, kw) {
			matched = append(matched, kw)
		}
	}
	return matched, nil
}

func joinKeywords(kws []string) string {
	return strings.Join(kws, ", ")
}
