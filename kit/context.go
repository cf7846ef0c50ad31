package kit

import "context"

type contextKey string

const (
	// RequestIDKey carries the per-call correlation ID.
	RequestIDKey contextKey = "kit_request_id"
	// TransportKey names the transport a call arrived on: "http" or "mcp".
	TransportKey contextKey = "kit_transport"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}

func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, TransportKey, t)
}
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(TransportKey).(string); ok {
		return v
	}
	return "http"
}
