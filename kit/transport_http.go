package kit

import (
	"encoding/json"
	"net/http"
)

// HTTPHandler adapts an Endpoint to an http.HandlerFunc. The decode
// function extracts the typed request from the HTTP request; endpoint
// errors are returned as a JSON {"error": ...} body with status 200, so
// HTTP callers see the same error-carrying results as MCP callers.
func HTTPHandler(endpoint Endpoint, decode func(*http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decode(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		resp, err := endpoint(r.Context(), req)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
