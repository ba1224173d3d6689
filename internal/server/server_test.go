package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/blobsmith/pkg/blob"
	"github.com/matzehuels/blobsmith/pkg/cache"
	"github.com/matzehuels/blobsmith/pkg/observability"
	"github.com/matzehuels/blobsmith/pkg/render/sink"
)

const testScene = `
width = 200
height = 100

[[slides]]
name = "one"
background = { color = "#F7E1D7" }

  [[slides.blobs]]
  cx = 100
  cy = 50
  rx = 40
  ry = 30
  seed = 3
  style = "wave"
  color = "#E07B6C"

[[slides]]
name = "two"
background = { color = "#2F4858" }
`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(fc, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return e
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "ok" || got.Build.Version == "" {
		t.Errorf("health = %+v", got)
	}
}

func TestStyles(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/v1/styles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []styleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d styles, want 4", len(got))
	}
	if got[2].Name != blob.Cloud || got[2].Points != 10 || got[2].Smooth != 0.20 {
		t.Errorf("cloud = %+v", got[2])
	}
}

func TestBlobJSON(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/v1/blob?cx=100&cy=100&rx=80&ry=60&style=amoeba&seed=42&rotation=15", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var got sink.BlobInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}

	want, err := blob.Generate(blob.Spec{
		Center: blob.Point{X: 100, Y: 100}, RX: 80, RY: 60,
		Style: blob.Amoeba, Rotation: 15, Seed: 42,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.D != want.D() {
		t.Errorf("d mismatch:\n got %s\nwant %s", got.D, want.D())
	}
	if got.Transform != "rotate(15 100 100)" {
		t.Errorf("transform = %q", got.Transform)
	}
	if got.Style != "amoeba" || len(got.Vertices) != 8 {
		t.Errorf("style %q with %d vertices", got.Style, len(got.Vertices))
	}
}

func TestBlobJSON_UnknownStyleFallsBack(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/v1/blob?style=spiky", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got sink.BlobInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Style != "organic" || len(got.Vertices) != 6 {
		t.Errorf("style %q with %d vertices, want organic with 6", got.Style, len(got.Vertices))
	}
}

func TestBlobJSON_Gradient(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/v1/blob?seed=9&from=%23E07B6C&to=%23F2C57C&opacity=0.5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var got sink.BlobInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Style != sink.GradientStyle || got.Gradient == nil {
		t.Fatalf("got %+v, want gradient", got)
	}
	if got.Gradient.ID != "grad_9" || got.Gradient.ToOpacity != 0.3 {
		t.Errorf("gradient = %+v", got.Gradient)
	}
}

func TestBlobErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		code   string
	}{
		{"zero radius", "/v1/blob?rx=0", "INVALID_GEOMETRY"},
		{"negative radius", "/v1/blob.svg?ry=-5", "INVALID_GEOMETRY"},
		{"degenerate points", "/v1/blob?points=2", "INVALID_GEOMETRY"},
		{"bad number", "/v1/blob?cx=abc", "INVALID_INPUT"},
		{"bad seed", "/v1/blob?seed=1.5", "INVALID_INPUT"},
		{"bad color", "/v1/blob.svg?color=%22%3E%3Cscript%3E", "INVALID_COLOR"},
		{"half gradient", "/v1/blob?from=%23fff", "INVALID_INPUT"},
		{"opacity", "/v1/blob?opacity=2", "INVALID_INPUT"},
		{"size", "/v1/blob.svg?width=0", "INVALID_INPUT"},
		{"huge points", "/v1/blob?points=2000000000", "INVALID_GEOMETRY"},
		{"nan rotation", "/v1/blob?rotation=NaN", "INVALID_GEOMETRY"},
		{"nan opacity", "/v1/blob.svg?opacity=NaN", "INVALID_INPUT"},
		{"infinite size", "/v1/blob.svg?width=Inf", "INVALID_INPUT"},
	}
	_, h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
			}
			if e := decodeError(t, rec); string(e.Code) != tt.code {
				t.Errorf("code = %s, want %s (%s)", e.Code, tt.code, e.Message)
			}
		})
	}
}

func TestBlobSVG(t *testing.T) {
	_, h := newTestServer(t)
	target := "/v1/blob.svg?width=300&height=200&rx=50&ry=40&seed=5&color=%23336699&opacity=0.8"

	rec := do(t, h, http.MethodGet, target, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("first request should miss")
	}
	body := rec.Body.String()
	for _, want := range []string{`viewBox="0 0 300.0 200.0"`, `fill="#336699"`, `fill-opacity="0.8"`} {
		if !strings.Contains(body, want) {
			t.Errorf("svg missing %q:\n%s", want, body)
		}
	}

	again := do(t, h, http.MethodGet, target, "")
	if again.Header().Get("X-Cache") != "hit" {
		t.Errorf("second request should hit")
	}
	if again.Body.String() != body {
		t.Error("cached body differs")
	}
}

func TestBlobSVG_Gradient(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/v1/blob.svg?seed=4&from=E07B6C&to=F2C57C", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	for _, want := range []string{`<linearGradient id="grad_4"`, `fill="url(#grad_4)"`} {
		if !strings.Contains(body, want) {
			t.Errorf("svg missing %q:\n%s", want, body)
		}
	}
}

func TestRender(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/v1/render?format=svg&slide=1", testScene)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `fill="#2F4858"`) {
		t.Errorf("slide 1 background missing:\n%s", rec.Body)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Error("first render should miss")
	}
	if again := do(t, h, http.MethodPost, "/v1/render?format=svg&slide=1", testScene); again.Header().Get("X-Cache") != "hit" {
		t.Error("second render should hit")
	}

	png := do(t, h, http.MethodPost, "/v1/render?format=png&scale=0.5", testScene)
	if png.Code != http.StatusOK || png.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("png: status %d type %q", png.Code, png.Header().Get("Content-Type"))
	}
	if !strings.HasPrefix(png.Body.String(), "\x89PNG") {
		t.Error("png body is not a PNG")
	}

	sheet := do(t, h, http.MethodPost, "/v1/render?format=sheet", testScene)
	if sheet.Code != http.StatusOK || !strings.HasPrefix(sheet.Body.String(), "\x89PNG") {
		t.Errorf("sheet: status %d", sheet.Code)
	}

	js := do(t, h, http.MethodPost, "/v1/render?format=JSON", testScene)
	if js.Code != http.StatusOK || js.Header().Get("Content-Type") != "application/json" {
		t.Errorf("json: status %d type %q", js.Code, js.Header().Get("Content-Type"))
	}
}

const unsafeIDScene = `
[[slides]]
[[slides.blobs]]
cx = 50
cy = 50
rx = 20
ry = 20
gradient = { from = "#fff", to = "#000", id = 'x" onload="alert(1)' }
`

func TestRender_NormalizesColors(t *testing.T) {
	_, h := newTestServer(t)
	body := "width = 100\nheight = 100\n[[slides]]\nbackground = { color = \"ffffff\" }\n"

	rec := do(t, h, http.MethodPost, "/v1/render?format=svg", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `fill="#ffffff"`) {
		t.Errorf("background color not normalized:\n%s", rec.Body)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"bad format", "/v1/render?format=gif", testScene, 400, "INVALID_FORMAT"},
		{"bad slide", "/v1/render?slide=5", testScene, 400, "SLIDE_NOT_FOUND"},
		{"bad slide number", "/v1/render?slide=x", testScene, 400, "INVALID_INPUT"},
		{"bad scale", "/v1/render?format=png&scale=100", testScene, 400, "INVALID_INPUT"},
		{"bad toml", "/v1/render", "width = [", 400, "INVALID_SCENE"},
		{"no slides", "/v1/render", "width = 10\nheight = 10\n", 400, "INVALID_SCENE"},
		{"unsafe gradient id", "/v1/render", unsafeIDScene, 400, "INVALID_SCENE"},
		{"nan opacity", "/v1/render", "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 1\nry = 1\ncolor = \"#fff\"\nopacity = nan\n", 400, "INVALID_SCENE"},
	}
	_, h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			if e := decodeError(t, rec); string(e.Code) != tt.code {
				t.Errorf("code = %s, want %s (%s)", e.Code, tt.code, e.Message)
			}
		})
	}
}

func TestRender_MethodNotAllowed(t *testing.T) {
	_, h := newTestServer(t)
	if rec := do(t, h, http.MethodGet, "/v1/render", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	id := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated id %q is not a uuid", id)
	}

	want := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, want)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != want {
		t.Errorf("propagated id = %q, want %q", got, want)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("malformed id should be replaced")
	}
}

func TestStatusFor(t *testing.T) {
	s := New(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s.writeError(rec, req, context.Canceled)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != "INTERNAL_ERROR" || e.Message != "internal error" {
		t.Errorf("body = %+v", e)
	}
}

type httpRecorder struct {
	mu     sync.Mutex
	routes []string
}

func (h *httpRecorder) OnRequest(context.Context, string, string) {}

func (h *httpRecorder) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route+" "+http.StatusText(status))
}

func TestHTTPHooks(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	_, h := newTestServer(t)
	do(t, h, http.MethodGet, "/v1/styles", "")
	do(t, h, http.MethodGet, "/v1/blob?rx=-1", "")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	want := []string{"GET /v1/styles OK", "GET /v1/blob Bad Request"}
	if len(rec.routes) != len(want) {
		t.Fatalf("routes = %v, want %v", rec.routes, want)
	}
	for i := range want {
		if rec.routes[i] != want[i] {
			t.Errorf("route %d = %q, want %q", i, rec.routes[i], want[i])
		}
	}
}
