// CLAUDE:SUMMARY Action Executor — validates untrusted batches, risk-scans, runs actions sequentially, aggregates a partial-success Result.
// Package actions executes validated interaction batches against the
// active surface. One bad action never aborts the rest of the batch: the
// orchestrator issues speculative multi-step plans and expects partial
// credit. Only missing surfaces, unparseable input, a tripped risk scan,
// or cancellation stop a run.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/hazyhaar/domdrive/idgen"
	"github.com/hazyhaar/domdrive/snapshot"
	"github.com/hazyhaar/domdrive/surface"
)

// Terminal batch failures. Messages are returned verbatim to
// orchestrators and are part of the wire contract.
var (
	ErrNotUTF8   = errors.New("actionsJson is not valid UTF-8.")
	ErrBadSchema = errors.New("actionsJson is not valid according to the schema.")
)

// Result aggregates the outcome of one execution run. It is built
// incrementally during the run, returned once, and never persisted.
type Result struct {
	ExecutedCount int      `json:"executed_count"`
	SkippedCount  int      `json:"skipped_count"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	FinalURL      string   `json:"final_url,omitempty"`
	FinalTitle    string   `json:"final_title,omitempty"`
	DidNavigate   bool     `json:"did_navigate"`
}

// Options are the per-call knobs of Execute.
type Options struct {
	// RequireConfirmation gates the whole batch behind a risk scan of the
	// pre-execution page content.
	RequireConfirmation bool
	// MaxActions caps how many records are processed. Values below 1 are
	// coerced to 1.
	MaxActions int
}

// Config configures the Executor.
type Config struct {
	// NavigateSettle bounds the ready-state wait after navigate. Default: 5s.
	NavigateSettle time.Duration
	// ClickSettle bounds the ready-state wait after a landed click. Default: 3s.
	ClickSettle time.Duration
	// TypeSettle bounds the ready-state wait after typed input. Default: 1s.
	TypeSettle time.Duration
	// PollInterval is the ready-state probe spacing. Default: 200ms.
	PollInterval time.Duration

	// ExtraRiskKeywords extends the built-in risk keyword set.
	ExtraRiskKeywords []string

	// NewID generates per-run IDs for log correlation.
	NewID idgen.Generator

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavigateSettle <= 0 {
		c.NavigateSettle = 5 * time.Second
	}
	if c.ClickSettle <= 0 {
		c.ClickSettle = 3 * time.Second
	}
	if c.TypeSettle <= 0 {
		c.TypeSettle = time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 200 * time.Millisecond
	}
	if c.NewID == nil {
		c.NewID = idgen.Prefixed("run_", idgen.NanoID(12))
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Executor runs action batches against whatever surface the registry
// holds. It reuses the snapshot service's text-extraction routine for
// risk scanning so scan and snapshot read the page identically.
type Executor struct {
	reg  *surface.Registry
	text *snapshot.Service
	cfg  Config
}

// New creates an Executor.
func New(reg *surface.Registry, text *snapshot.Service, cfg Config) *Executor {
	cfg.defaults()
	return &Executor{reg: reg, text: text, cfg: cfg}
}

// stepOutcome is what one dispatched action reports back.
type stepOutcome struct {
	Success bool
	Warning string
}

// Execute decodes and runs rawBatch against the active surface.
//
// Cancellation is observed between actions, before every script
// evaluation, and inside waits; once tripped, the rest of the batch is
// abandoned and no partial Result is returned.
func (e *Executor) Execute(ctx context.Context, rawBatch string, opts Options) (*Result, error) {
	sf := e.reg.Current()
	if sf == nil {
		return nil, surface.ErrNoActive
	}

	if !utf8.ValidString(rawBatch) {
		return nil, ErrNotUTF8
	}
	var batch Batch
	if err := json.Unmarshal([]byte(rawBatch), &batch); err != nil {
		return nil, ErrBadSchema
	}

	log := e.cfg.Logger.With("run_id", e.cfg.NewID())

	max := opts.MaxActions
	if max < 1 {
		max = 1
	}
	records := batch.Actions
	if len(records) > max {
		log.Debug("actions: batch truncated", "submitted", len(records), "cap", max)
		records = records[:max]
	}

	res := &Result{}
	if len(records) == 0 {
		res.Warnings = append(res.Warnings, "no actions to execute")
		return res, nil
	}

	// The risk scan gates the entire batch and must see the page as it is
	// before anything mutates it.
	if opts.RequireConfirmation {
		matched, err := e.scanRisk(ctx, sf)
		if err != nil {
			return nil, err
		}
		if len(matched) > 0 {
			log.Info("actions: risk scan tripped", "keywords", matched)
			res.Errors = append(res.Errors,
				"Execution blocked: page content matched risk keywords: "+joinKeywords(matched)+".")
			res.Warnings = append(res.Warnings,
				"Execution paused before any action ran; review the page and retry with confirmation disabled to proceed.")
			return res, nil
		}
	}

	var initialURL string
	if info, err := sf.Info(ctx); err == nil {
		initialURL = info.URL
	}

	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		act, err := decodeAction(raw)
		if err != nil {
			res.SkippedCount++
			res.Warnings = append(res.Warnings, fmt.Sprintf("skipped action %d: %v", i+1, err))
			continue
		}

		out, err := e.dispatch(ctx, sf, act)
		if err != nil {
			// Cancellation mid-action: abandon the batch.
			return nil, err
		}

		if out.Warning != "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("action %d: %s", i+1, out.Warning))
		}
		if out.Success {
			res.ExecutedCount++
		} else {
			res.Errors = append(res.Errors, fmt.Sprintf("action %d (%s) failed", i+1, act.Kind))
		}
		if act.Kind == KindNavigate {
			res.DidNavigate = true
		}

		log.Debug("actions: step done",
			"index", i+1, "kind", string(act.Kind), "success", out.Success)
	}

	// A click can navigate too; compare URLs rather than trusting only the
	// explicit navigate marker.
	if info, err := sf.Info(ctx); err == nil {
		res.FinalURL = info.URL
		res.FinalTitle = info.Title
		if initialURL != info.URL {
			res.DidNavigate = true
		}
	}

	log.Info("actions: batch finished",
		"executed", res.ExecutedCount,
		"skipped", res.SkippedCount,
		"errors", len(res.Errors),
		"navigated", res.DidNavigate)
	return res, nil
}

// dispatch routes one typed action to its routine. The returned error is
// non-nil only for cancellation.
func (e *Executor) dispatch(ctx context.Context, sf surface.Surface, act Action) (stepOutcome, error) {
	switch act.Kind {
	case KindNavigate:
		return e.doNavigate(ctx, sf, act.URL)
	case KindClickAt:
		return e.doClickAt(ctx, sf, act.X, act.Y)
	case KindScroll:
		return e.doScroll(ctx, sf, act.DeltaY)
	case KindType:
		return e.doType(ctx, sf, act.Text)
	case KindWait:
		return e.doWait(ctx, act.MS)
	}
	// decodeAction only emits the five kinds above.
	return stepOutcome{}, nil
}

// doNavigate loads the URL and waits best-effort for the document to
// settle. Navigation requests are fire-and-forget at this layer: a load
// that goes nowhere surfaces later as no-page-loaded on the next call.
func (e *Executor) doNavigate(ctx context.Context, sf surface.Surface, url string) (stepOutcome, error) {
	out := stepOutcome{Success: true}

	if err := sf.Navigate(ctx, url); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return stepOutcome{}, cerr
		}
		out.Warning = fmt.Sprintf("navigation to %s reported: %v", url, err)
	}

	if err := e.waitReady(ctx, sf, e.cfg.NavigateSettle); err != nil {
		return stepOutcome{}, err
	}
	return out, nil
}

// doClickAt maps normalized coordinates onto the live viewport and clicks
// whatever is topmost there.
func (e *Executor) doClickAt(ctx context.Context, sf surface.Surface, x, y float64) (stepOutcome, error) {
	w, h, err := e.readViewport(ctx, sf)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return stepOutcome{}, cerr
		}
		return stepOutcome{Warning: fmt.Sprintf("could not read viewport size: %v", err)}, nil
	}

	px, py := pixelPoint(x, y, w, h)

	res, err := sf.Eval(ctx, clickScript(px, py))
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return stepOutcome{}, cerr
		}
		return stepOutcome{Warning: fmt.Sprintf("click script failed: %v", err)}, nil
	}
	if !res.Bool() {
		return stepOutcome{Warning: "no element found at the requested point."}, nil
	}

	if err := e.waitReady(ctx, sf, e.cfg.ClickSettle); err != nil {
		return stepOutcome{}, err
	}
	return stepOutcome{Success: true}, nil
}

// doScroll scrolls the surface vertically. Scrolling is synchronous and
// local, so there is no settle wait.
func (e *Executor) doScroll(ctx context.Context, sf surface.Surface, deltaY float64) (stepOutcome, error) {
	if _, err := sf.Eval(ctx, scrollScript(deltaY)); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return stepOutcome{}, cerr
		}
		return stepOutcome{Warning: fmt.Sprintf("scroll script failed: %v", err)}, nil
	}
	return stepOutcome{Success: true}, nil
}

// doType appends text to the best typing target on the page.
func (e *Executor) doType(ctx context.Context, sf surface.Surface, text string) (stepOutcome, error) {
	js, err := typeScript(text)
	if err != nil {
		return stepOutcome{Warning: fmt.Sprintf("text is not scriptable: %v", err)}, nil
	}

	res, err := sf.Eval(ctx, js)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return stepOutcome{}, cerr
		}
		return stepOutcome{Warning: fmt.Sprintf("type script failed: %v", err)}, nil
	}
	if !res.Bool() {
		return stepOutcome{Warning: "no active form field to type into."}, nil
	}

	if err := e.waitReady(ctx, sf, e.cfg.TypeSettle); err != nil {
		return stepOutcome{}, err
	}
	return stepOutcome{Success: true}, nil
}

// doWait suspends the pipeline without blocking anything else. A
// non-positive duration is a no-op; both paths report success.
func (e *Executor) doWait(ctx context.Context, ms int) (stepOutcome, error) {
	if ms <= 0 {
		return stepOutcome{Success: true}, nil
	}
	select {
	case <-ctx.Done():
		return stepOutcome{}, ctx.Err()
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return stepOutcome{Success: true}, nil
	}
}

const jsViewport = `() => ({w: window.innerWidth, h: window.innerHeight})`

func (e *Executor) readViewport(ctx context.Context, sf surface.Surface) (w, h float64, err error) {
	res, err := sf.Eval(ctx, jsViewport)
	if err != nil {
		return 0, 0, err
	}
	return res.Get("w").Num(), res.Get("h").Num(), nil
}

// pixelPoint clamps normalized [0,1000] coordinates and scales them onto
// the viewport. Clamping happens before scaling, so points never land
// outside the visible area.
func pixelPoint(x, y, vw, vh float64) (px, py float64) {
	return clampNorm(x) / 1000 * vw, clampNorm(y) / 1000 * vh
}

func clampNorm(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1000 {
		return 1000
	}
	return v
}
