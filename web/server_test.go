package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	textgen "github.com/ncecere/textgen-demo"
	"github.com/ncecere/textgen-demo/engine"
	"github.com/ncecere/textgen-demo/engineutil"
	"github.com/ncecere/textgen-demo/registry"
)

// countingModel records calls and replies with a fixed completion or error.
type countingModel struct {
	calls int
	last  *engine.CompletionRequest
	text  string
	err   error
}

func (m *countingModel) Generate(_ context.Context, req *engine.CompletionRequest) (*engine.CompletionResult, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &engine.CompletionResult{Text: m.text}, nil
}

func newTestServer(t *testing.T, model engine.CompletionModel, cacheTTL time.Duration) *Server {
	t.Helper()
	reg := registry.New()
	reg.Register("175b", model)
	srv := New(Options{Registry: reg, DefaultEngine: "175b", CacheTTL: cacheTTL})
	t.Cleanup(func() { srv.cache.Close() })
	return srv
}

func postCompletion(t *testing.T, srv *Server, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/completions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	return resp
}

func TestCompletions_Success(t *testing.T) {
	model := &countingModel{text: " France."}
	srv := newTestServer(t, model, 0)

	resp := postCompletion(t, srv, `{"prompt":"Paris is the capital city of","max_tokens":64,"temperature":0.7,"top_p":0.5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out.Prompt != "Paris is the capital city of" || out.Completion != " France." {
		t.Fatalf("unexpected response: %+v", out)
	}

	if model.last == nil || model.last.MaxTokens != 64 || model.last.Temperature != 0.7 || model.last.TopP != 0.5 {
		t.Fatalf("form values not propagated to engine: %+v", model.last)
	}
}

func TestCompletions_NormalizesCRLF(t *testing.T) {
	model := &countingModel{text: "ok"}
	srv := newTestServer(t, model, 0)

	resp := postCompletion(t, srv, `{"prompt":"a\r\nb","max_tokens":64,"temperature":0.7,"top_p":0.5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if model.last.Prompt != "a\nb" {
		t.Fatalf("CRLF not normalized before transmission: %q", model.last.Prompt)
	}
}

func TestCompletions_UpstreamFailureSurfacesRawBody(t *testing.T) {
	model := &countingModel{err: &engineutil.RequestFailedError{StatusCode: 503, Body: "all model workers are busy"}}
	srv := newTestServer(t, model, 0)

	resp := postCompletion(t, srv, `{"prompt":"x","max_tokens":64,"temperature":0.7,"top_p":0.5}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "all model workers are busy" {
		t.Fatalf("raw upstream body not surfaced: %q", body)
	}
}

func TestCompletions_OutOfRangeRejected(t *testing.T) {
	model := &countingModel{text: "ok"}
	srv := newTestServer(t, model, 0)

	resp := postCompletion(t, srv, `{"prompt":"x","max_tokens":9999,"temperature":0.7,"top_p":0.5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if model.calls != 0 {
		t.Fatalf("engine called despite invalid form")
	}
}

func TestCompletions_UnknownEngine(t *testing.T) {
	srv := newTestServer(t, &countingModel{text: "ok"}, 0)

	resp := postCompletion(t, srv, `{"prompt":"x","max_tokens":64,"temperature":0.7,"top_p":0.5,"engine":"13b"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestCompletions_CacheAvoidsSecondUpstreamCall(t *testing.T) {
	model := &countingModel{text: "cached completion"}
	srv := newTestServer(t, model, time.Minute)

	body := `{"prompt":"same prompt","max_tokens":64,"temperature":0.7,"top_p":0.5}`
	for i := 0; i < 2; i++ {
		resp := postCompletion(t, srv, body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("unexpected status on request %d: %d", i, resp.StatusCode)
		}
		var out completionResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if out.Completion != "cached completion" {
			t.Fatalf("unexpected completion on request %d: %q", i, out.Completion)
		}
	}
	if model.calls != 1 {
		t.Fatalf("expected exactly one upstream call, got %d", model.calls)
	}

	// Different settings must miss the cache.
	resp := postCompletion(t, srv, `{"prompt":"same prompt","max_tokens":96,"temperature":0.7,"top_p":0.5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if model.calls != 2 {
		t.Fatalf("expected cache miss for changed settings, got %d calls", model.calls)
	}
}

func TestConfig_ExposesEtaConstants(t *testing.T) {
	srv := newTestServer(t, &countingModel{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	var out configResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if out.DefaultEngine != "175b" || len(out.Engines) != 1 || out.Engines[0] != "175b" {
		t.Fatalf("unexpected engine config: %+v", out)
	}
	// The page computes the same ETA formula as the Go side.
	if out.EtaOverheadMs != textgen.EtaOverhead.Milliseconds() || out.EtaPerTokenMs != textgen.EtaPerToken.Milliseconds() {
		t.Fatalf("ETA constants out of sync: %+v", out)
	}
}

func TestExamples_ListsFixedTable(t *testing.T) {
	srv := newTestServer(t, &countingModel{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/examples", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	var out []exampleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	byKey := make(map[string]exampleResponse)
	for _, ex := range out {
		byKey[ex.Key] = ex
	}
	if q, ok := byKey["question"]; !ok || q.MaxTokens != 64 {
		t.Fatalf("question example missing or wrong length: %+v", byKey)
	}
	if ion, ok := byKey["ion"]; !ok || ion.MaxTokens != 128 {
		t.Fatalf("ion example missing or wrong length: %+v", byKey)
	}
}

func TestIndex_ServesDemoPage(t *testing.T) {
	srv := newTestServer(t, &countingModel{}, 0)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, id := range []string{`id="prompt"`, `id="max_tokens"`, `id="temperature"`, `id="top_p"`, `id="submit"`, `id="error"`} {
		if !strings.Contains(string(body), id) {
			t.Fatalf("demo page missing element %s", id)
		}
	}
}
