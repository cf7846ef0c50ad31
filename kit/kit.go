// Package kit provides the transport-agnostic endpoint abstraction shared
// by domdrive's MCP and HTTP surfaces. A tool operation is written once as
// an Endpoint and registered on each transport.
package kit

import "context"

// Endpoint is a single request/response operation.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behaviour.
type Middleware func(Endpoint) Endpoint

// Chain composes middleware left to right: the first middleware is the
// outermost wrapper.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
