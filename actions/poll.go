// CLAUDE:SUMMARY Bounded best-effort ready-state polling after actions that may trigger navigation or re-render.
package actions

import (
	"context"
	"time"

	"github.com/hazyhaar/domdrive/surface"
)

const jsReadyState = `() => document.readyState`

// waitReady polls the document's ready state until it reports interactive
// or complete, the timeout elapses, or ctx is cancelled. Timing out is
// not an error: this is a heuristic settle delay, not a correctness gate.
// The returned error is non-nil only for cancellation.
func (e *Executor) waitReady(ctx context.Context, sf surface.Surface, timeout time.Duration) error {
	if timeout <= 0 {
		return nil
	}
	deadline := time.Now().Add(timeout)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := sf.Eval(ctx, jsReadyState)
		if err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			// A failing probe is absorbed; the next round may succeed.
		} else {
			switch res.Str() {
			case "interactive", "complete":
				return nil
			}
		}

		if !time.Now().Before(deadline) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.cfg.PollInterval):
		}
	}
}
