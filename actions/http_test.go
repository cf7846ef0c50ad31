package actions

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/domdrive/snapshot"
	"github.com/hazyhaar/domdrive/surface"
	"github.com/hazyhaar/domdrive/surface/surfacetest"
)

func testRouter(t *testing.T, f *surfacetest.Fake) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := surface.NewRegistry()
	if f != nil {
		reg.SetActive(f)
	}
	e := New(reg, snapshot.New(reg, snapshot.Config{Logger: logger}), Config{Logger: logger})
	r := chi.NewRouter()
	e.RegisterHTTP(r)
	return r
}

func TestHTTP_Act(t *testing.T) {
	f := &surfacetest.Fake{PageURL: "https://example.com", BodyText: "plain"}
	r := testRouter(t, f)

	body := `{"actions_json": "{\"actions\":[{\"type\":\"wait\",\"ms\":1}]}"}`
	req := httptest.NewRequest("POST", "/v1/actions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.ExecutedCount != 1 {
		t.Fatalf("ExecutedCount = %d", res.ExecutedCount)
	}
}

func TestHTTP_Act_BadEnvelope(t *testing.T) {
	r := testRouter(t, &surfacetest.Fake{PageURL: "https://example.com"})

	req := httptest.NewRequest("POST", "/v1/actions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
}

func TestHTTP_Act_BadActionsJSON(t *testing.T) {
	r := testRouter(t, &surfacetest.Fake{PageURL: "https://example.com", BodyText: "plain"})

	// The envelope parses; the embedded batch does not. That is a contract
	// error carried in the body, not a transport 400.
	body := `{"actions_json": "{broken"}`
	req := httptest.NewRequest("POST", "/v1/actions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var res struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Error != "actionsJson is not valid according to the schema." {
		t.Fatalf("error = %q", res.Error)
	}
}
