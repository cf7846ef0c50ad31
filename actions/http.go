package actions

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/domdrive/kit"
)

// RegisterHTTP mounts the execute operation on a chi router. The endpoint
// mirrors the MCP tool: POST /v1/actions with an actRequest body.
func (e *Executor) RegisterHTTP(r chi.Router) {
	decode := func(req *http.Request) (any, error) {
		var ar actRequest
		if err := json.NewDecoder(req.Body).Decode(&ar); err != nil {
			return nil, err
		}
		return &ar, nil
	}
	r.Post("/v1/actions", kit.HTTPHandler(e.endpoint(), decode))
}
