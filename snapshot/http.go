package snapshot

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/domdrive/kit"
)

// RegisterHTTP mounts the capture operation on a chi router. The endpoint
// mirrors the MCP tool: POST /v1/snapshot with a captureRequest body.
func (s *Service) RegisterHTTP(r chi.Router) {
	decode := func(req *http.Request) (any, error) {
		var cr captureRequest
		if req.Body != nil {
			// An empty body means defaults, same as an empty tool call.
			if err := json.NewDecoder(req.Body).Decode(&cr); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
		}
		return &cr, nil
	}
	r.Post("/v1/snapshot", kit.HTTPHandler(s.endpoint(), decode))
}
