// CLAUDE:SUMMARY Defines the Surface interface — the opaque capability contract a renderable page presents to domdrive.
// Package surface defines the contract between domdrive and the host's
// renderable page, plus the registry tracking which page is active.
//
// A Surface is a borrowed reference to host-owned state. It can become
// invalid at any moment (tab closed, browser recycled), so every method
// returns an error and consumers re-check validity at time of use rather
// than assuming a previously obtained handle still works.
package surface

import (
	"context"

	"github.com/ysmood/gson"
)

// Info is the identifying state of a surface at a point in time.
type Info struct {
	URL   string
	Title string
}

// Surface is the live renderable document being automated. Implementations
// marshal every call onto whatever execution context owns the page's
// rendering state; callers just see blocking, cancellable methods.
type Surface interface {
	// Info returns the current URL and title.
	Info(ctx context.Context) (Info, error)

	// Eval runs a JavaScript function expression (`() => ...`) against the
	// document and returns its JSON value.
	Eval(ctx context.Context, js string) (gson.JSON, error)

	// Navigate starts loading the given URL. It returns once the load has
	// been requested, not once the page has settled.
	Navigate(ctx context.Context, url string) error

	// Screenshot rasterizes the visible viewport to a PNG.
	Screenshot(ctx context.Context) ([]byte, error)
}
