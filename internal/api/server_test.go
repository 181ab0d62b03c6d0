package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/locate"
	"github.com/dgnsrekt/gchart/internal/store"
)

const testID = "0b7b5f2e-4b4e-4c57-9a43-3f1f6ad2c0aa"

type stubService struct {
	compileErr error
	lastSpec   chart.Spec
	importFmt  string
	importBody string
}

func (s *stubService) Defaults() chart.Defaults { return chart.BuiltinDefaults() }

func (s *stubService) Compile(ctx context.Context, spec chart.Spec) (*assemble.Result, error) {
	s.lastSpec = spec
	if s.compileErr != nil {
		return nil, s.compileErr
	}
	return &assemble.Result{URL: "https://chart.example/chart?cht=lc", TypeCode: "lc", Length: 34}, nil
}

func (s *stubService) Locate(ctx context.Context, shapes []locate.Shape, x, y float64) (locate.Region, bool, error) {
	region, ok := locate.Locate(shapes, x, y)
	return region, ok, nil
}

func (s *stubService) CreateChart(ctx context.Context, name string, spec chart.Spec) (store.Record, error) {
	return store.Record{ID: testID, Name: name, Spec: spec, TypeCode: "lc"}, nil
}

func (s *stubService) ListCharts(ctx context.Context) ([]store.Record, error) { return nil, nil }

func (s *stubService) GetChart(ctx context.Context, id string) (store.Record, error) {
	if id != testID {
		return store.Record{}, chart.NewError(chart.CodeNotFound, "chart not found: "+id, nil)
	}
	return store.Record{ID: id, Image: &store.Image{Format: "png", Thumbnail: true}}, nil
}

func (s *stubService) DeleteChart(ctx context.Context, id string) error { return nil }

func (s *stubService) RenderChart(ctx context.Context, id string) (store.Record, error) {
	return store.Record{}, chart.NewError(chart.CodeFetchFailed, "chart service status=500", nil)
}

func (s *stubService) ChartImage(ctx context.Context, id string, thumbnail bool) ([]byte, string, error) {
	if thumbnail {
		return []byte("thumb"), "png", nil
	}
	return []byte("GIF89a"), "gif", nil
}

func (s *stubService) LocateOnChart(ctx context.Context, id string, x, y float64) (locate.Region, bool, error) {
	return locate.Region{Name: "bar0_3", Type: "bar", Series: 0, Item: 3}, true, nil
}

func (s *stubService) ImportSeries(ctx context.Context, format string, body []byte) ([]chart.Series, error) {
	s.importFmt, s.importBody = format, string(body)
	return []chart.Series{{Label: "A", Data: chart.Data{1, 2}}}, nil
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestDocsDarkMode(t *testing.T) {
	h := NewServer(&stubService{})
	w := do(t, h, http.MethodGet, "/docs", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `data-theme="dark"`) {
		t.Fatalf("docs missing dark theme marker")
	}
	if !strings.Contains(w.Body.String(), `href="/docs/stream"`) || !strings.Contains(w.Body.String(), "Live Compile &amp; Events") {
		t.Fatalf("docs missing stream docs link")
	}
	if w := do(t, h, http.MethodGet, "/docs/stream", ""); !strings.Contains(w.Body.String(), "/ws/compile") {
		t.Fatalf("stream docs missing websocket section")
	}
}

func TestRequestLevel(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   slog.Level
	}{
		{"/api/v1/compile", http.StatusOK, slog.LevelInfo},
		{"/docs", http.StatusOK, slog.LevelDebug},
		{"/openapi.json", http.StatusOK, slog.LevelDebug},
		{"/api/v1/charts/x", http.StatusNotFound, slog.LevelWarn},
		{"/docs", http.StatusBadGateway, slog.LevelError},
	}
	for _, tt := range tests {
		if got := requestLevel(tt.path, tt.status); got != tt.want {
			t.Fatalf("requestLevel(%q, %d) = %v; want %v", tt.path, tt.status, got, tt.want)
		}
	}
}

func TestCompileEndpoint(t *testing.T) {
	svc := &stubService{}
	h := NewServer(svc)
	body := `{"type":"line","max_value":"auto","series":[{"data":[1,null,3]}],"markers":[{"shape":"o","color":"red","series":0,"item":"every2"}]}`
	w := do(t, h, http.MethodPost, "/api/v1/compile", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}
	var res assemble.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TypeCode != "lc" {
		t.Fatalf("type_code = %q; want lc", res.TypeCode)
	}
	if !svc.lastSpec.MaxValue.IsAuto() || !chart.IsMissing(svc.lastSpec.Series[0].Data[1]) {
		t.Fatalf("decoded spec = %+v", svc.lastSpec)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: chart.NewError(chart.CodeValidation, "bad", nil), want: http.StatusBadRequest},
		{name: "not found", err: chart.NewError(chart.CodeNotFound, "gone", nil), want: http.StatusNotFound},
		{name: "range", err: chart.Rangef("channel %d out of range", 300), want: http.StatusUnprocessableEntity},
		{name: "binding", err: chart.NewError(chart.CodeArgumentBinding, "x", nil), want: http.StatusUnprocessableEntity},
		{name: "joined range", err: errors.Join(chart.Rangef("a"), chart.Rangef("b")), want: http.StatusUnprocessableEntity},
		{name: "fetch", err: chart.NewError(chart.CodeFetchFailed, "down", nil), want: http.StatusBadGateway},
		{name: "plain", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewServer(&stubService{compileErr: tt.err})
			w := do(t, h, http.MethodPost, "/api/v1/compile", `{"type":"line"}`)
			if w.Code != tt.want {
				t.Fatalf("status = %d; want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestChartEndpoints(t *testing.T) {
	h := NewServer(&stubService{})

	w := do(t, h, http.MethodPost, "/api/v1/charts", `{"name":"q1","spec":{"type":"line"}}`)
	if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), testID) {
		t.Fatalf("create status = %d; body = %s", w.Code, w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/v1/charts", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"charts":[]`) {
		t.Fatalf("list status = %d; body = %s", w.Code, w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/v1/charts/"+testID, "")
	if !strings.Contains(w.Body.String(), `"thumbnail_url":"/api/v1/charts/`+testID+`/image?thumbnail=true"`) {
		t.Fatalf("get body = %s", w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/v1/charts/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing status = %d; want 404", w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/v1/charts/"+testID+"/image", "")
	if ct := w.Header().Get("Content-Type"); ct != "image/gif" || w.Body.String() != "GIF89a" {
		t.Fatalf("image = %q, %q", ct, w.Body.String())
	}
	w = do(t, h, http.MethodGet, "/api/v1/charts/"+testID+"/image?thumbnail=true", "")
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("thumbnail Content-Type = %q; want image/png", ct)
	}

	w = do(t, h, http.MethodPost, "/api/v1/charts/"+testID+"/render", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("render status = %d; want 502", w.Code)
	}

	w = do(t, h, http.MethodPost, "/api/v1/charts/"+testID+"/locate", `{"x":5,"y":6}`)
	if !strings.Contains(w.Body.String(), `"match":true`) || !strings.Contains(w.Body.String(), `"item":3`) {
		t.Fatalf("locate body = %s", w.Body.String())
	}

	w = do(t, h, http.MethodDelete, "/api/v1/charts/"+testID, "")
	if !strings.Contains(w.Body.String(), `"deleted"`) {
		t.Fatalf("delete body = %s", w.Body.String())
	}
}

func TestLocateEndpoint(t *testing.T) {
	h := NewServer(&stubService{})
	body := `{"shapes":[{"name":"axis0_1","type":"RECT","coords":[10,10,0,0]}],"x":5,"y":5}`
	w := do(t, h, http.MethodPost, "/api/v1/locate", body)
	if !strings.Contains(w.Body.String(), `"match":true`) || !strings.Contains(w.Body.String(), `"type":"axis"`) {
		t.Fatalf("locate body = %s", w.Body.String())
	}
	body = `{"shapes":[{"name":"axis0_1","type":"RECT","coords":[10,10,0,0]}],"x":50,"y":5}`
	w = do(t, h, http.MethodPost, "/api/v1/locate", body)
	if !strings.Contains(w.Body.String(), `"match":false`) || strings.Contains(w.Body.String(), "region") {
		t.Fatalf("locate miss body = %s", w.Body.String())
	}
}

func TestImportEndpoint(t *testing.T) {
	svc := &stubService{}
	h := NewServer(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/series/import", strings.NewReader("label,1,2\nA,1,2\n"))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}
	if svc.importFmt != "text/csv" || !strings.HasPrefix(svc.importBody, "label,") {
		t.Fatalf("ImportSeries got %q, %q", svc.importFmt, svc.importBody)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/series/import?format=xml", strings.NewReader("<chart/>"))
	req.Header.Set("Content-Type", "application/octet-stream")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if svc.importFmt != "xml" {
		t.Fatalf("format = %q; want query parameter to win", svc.importFmt)
	}
}

func TestDefaultsEndpoint(t *testing.T) {
	w := do(t, NewServer(&stubService{}), http.MethodGet, "/api/v1/defaults", "")
	if !strings.Contains(w.Body.String(), `"base_url":"https://chart.googleapis.com/chart?"`) {
		t.Fatalf("defaults body = %s", w.Body.String())
	}
}

func TestCompileSocket(t *testing.T) {
	srv := httptest.NewServer(NewServer(&stubService{}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/compile")
	if err != nil {
		t.Fatalf("ws.Dial() error = %v", err)
	}
	defer conn.Close()

	exchange := func(msg string) socketReply {
		t.Helper()
		if err := wsutil.WriteClientText(conn, []byte(msg)); err != nil {
			t.Fatalf("WriteClientText() error = %v", err)
		}
		data, err := wsutil.ReadServerText(conn)
		if err != nil {
			t.Fatalf("ReadServerText() error = %v", err)
		}
		var reply socketReply
		if err := json.Unmarshal(data, &reply); err != nil {
			t.Fatalf("decode reply %q: %v", data, err)
		}
		return reply
	}

	if r := exchange(`{"type":"line"}`); r.Result == nil || r.Result.TypeCode != "lc" {
		t.Fatalf("reply = %+v; want result", r)
	}
	if r := exchange(`{not json`); r.Error == nil || r.Error.Code != chart.CodeValidation {
		t.Fatalf("reply = %+v; want VALIDATION error", r)
	}
}
