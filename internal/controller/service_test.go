package controller

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/events"
	"github.com/dgnsrekt/gchart/internal/journal"
	"github.com/dgnsrekt/gchart/internal/locate"
	"github.com/dgnsrekt/gchart/internal/notify"
	"github.com/dgnsrekt/gchart/internal/render"
	"github.com/dgnsrekt/gchart/internal/store"
)

type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) Render(ctx context.Context, res *assemble.Result) (render.Image, error) {
	f.calls++
	if f.err != nil {
		return render.Image{}, f.err
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, res.Width, res.Height)))
	return render.Image{Data: buf.Bytes(), ContentType: "image/png", Format: "png", Width: res.Width, Height: res.Height}, nil
}

type fakeShapes struct {
	chof string
}

func (f *fakeShapes) FetchShapes(ctx context.Context, res *assemble.Result) ([]locate.Shape, error) {
	f.chof, _ = res.Get("chof")
	return []locate.Shape{
		{Name: "bar0_0", Kind: locate.Rect, Coords: []float64{0, 0, 10, 10}},
		{Name: "bar0_1", Kind: locate.Rect, Coords: []float64{20, 0, 30, 10}},
	}, nil
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "charts"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	j := journal.NewWriter(t.TempDir(), "events", 64, 1)
	t.Cleanup(func() { _ = j.Close() })
	opts = append([]Option{WithJournal(j)}, opts...)
	return NewService(assemble.NewCompiler(chart.Defaults{}), st, opts...)
}

func barSpec() chart.Spec {
	return chart.Spec{Type: "barVert", Width: 300, Height: 150, Series: []chart.Series{{Data: chart.Data{10, 20}}}}
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	var ce *chart.CodedError
	if !errors.As(err, &ce) || ce.Code != code {
		t.Fatalf("error = %v; want %s", err, code)
	}
}

func TestRequireNonEmpty(t *testing.T) {
	s := &Service{}
	if err := s.requireNonEmpty("abc", "chart id"); err != nil {
		t.Fatalf("requireNonEmpty() = %v; want nil", err)
	}

	err := s.requireNonEmpty("   ", "chart id")
	var got *chart.CodedError
	if !errors.As(err, &got) {
		t.Fatalf("requireNonEmpty() = %T; want *chart.CodedError", err)
	}
	if got.Code != chart.CodeValidation || got.Message != "chart id is required" {
		t.Fatalf("requireNonEmpty() = %q, %q", got.Code, got.Message)
	}
}

func TestCompile(t *testing.T) {
	s := newTestService(t)
	res, err := s.Compile(context.Background(), barSpec())
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if res.TypeCode != "bvs" {
		t.Fatalf("Compile() type = %q; want bvs", res.TypeCode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Compile(ctx, barSpec()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Compile(cancelled) error = %v; want context.Canceled", err)
	}
}

func TestCompilePublishesEvent(t *testing.T) {
	b := events.NewBroker()
	_, ch := b.Subscribe()
	s := newTestService(t, WithEvents(b))
	if _, err := s.Compile(context.Background(), barSpec()); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	evt := <-ch
	if evt.Feed != journal.KindCompile {
		t.Fatalf("event feed = %q; want %q", evt.Feed, journal.KindCompile)
	}
}

func TestChartLifecycle(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestService(t, WithRenderer(r), WithThumbnailSize(100))
	ctx := context.Background()

	rec, err := s.CreateChart(ctx, "  sales  ", barSpec())
	if err != nil {
		t.Fatalf("CreateChart() error = %v", err)
	}
	if rec.Name != "sales" || rec.URL == "" || rec.Width != 300 {
		t.Fatalf("CreateChart() = %+v", rec)
	}

	list, _ := s.ListCharts(ctx)
	if len(list) != 1 || list[0].ID != rec.ID {
		t.Fatalf("ListCharts() = %v", list)
	}

	_, _, err = s.ChartImage(ctx, rec.ID, false)
	wantCode(t, err, chart.CodeNotFound)

	rendered, err := s.RenderChart(ctx, rec.ID)
	if err != nil {
		t.Fatalf("RenderChart() error = %v", err)
	}
	if r.calls != 1 || rendered.Image == nil || !rendered.Image.Thumbnail {
		t.Fatalf("RenderChart() image = %+v, calls = %d", rendered.Image, r.calls)
	}
	thumb, format, err := s.ChartImage(ctx, rec.ID, true)
	if err != nil || format != "png" {
		t.Fatalf("ChartImage(thumbnail) = %s, %v", format, err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(thumb))
	if err != nil || cfg.Width != 100 || cfg.Height != 50 {
		t.Fatalf("thumbnail = %dx%d, %v; want 100x50", cfg.Width, cfg.Height, err)
	}

	if err := s.DeleteChart(ctx, rec.ID); err != nil {
		t.Fatalf("DeleteChart() error = %v", err)
	}
	_, err = s.GetChart(ctx, rec.ID)
	wantCode(t, err, chart.CodeNotFound)
}

func TestRenderChartNotifies(t *testing.T) {
	got := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("Title")
	}))
	defer srv.Close()

	s := newTestService(t, WithRenderer(&fakeRenderer{}), WithNotifier(&notify.Notifier{Endpoint: srv.URL, Client: srv.Client()}))
	rec, _ := s.CreateChart(context.Background(), "n", barSpec())
	if _, err := s.RenderChart(context.Background(), rec.ID); err != nil {
		t.Fatalf("RenderChart() error = %v", err)
	}
	if title := <-got; title != "Chart rendered" {
		t.Fatalf("notification title = %q", title)
	}
}

func TestRenderChartErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	_, err := s.RenderChart(ctx, store.NewID())
	wantCode(t, err, chart.CodeValidation)

	failing := &fakeRenderer{err: chart.NewError(chart.CodeFetchFailed, "down", nil)}
	s = newTestService(t, WithRenderer(failing))
	rec, _ := s.CreateChart(ctx, "", barSpec())
	_, err = s.RenderChart(ctx, rec.ID)
	wantCode(t, err, chart.CodeFetchFailed)
}

func TestLocate(t *testing.T) {
	s := newTestService(t)
	_, _, err := s.Locate(context.Background(), nil, 1, 1)
	wantCode(t, err, chart.CodeValidation)

	shapes := []locate.Shape{{Name: "pie0_2", Kind: locate.Circle, Coords: []float64{50, 50, 10}}}
	region, ok, err := s.Locate(context.Background(), shapes, 55, 50)
	if err != nil || !ok || region.Series != 0 || region.Item != 2 {
		t.Fatalf("Locate() = %+v, %v, %v", region, ok, err)
	}
}

func TestLocatePublishesEvent(t *testing.T) {
	b := events.NewBroker()
	_, ch := b.Subscribe()
	s := newTestService(t, WithEvents(b))
	ctx := context.Background()

	shapes := []locate.Shape{{Name: "bar0_0", Kind: locate.Rect, Coords: []float64{0, 0, 10, 10}}}
	if _, _, err := s.Locate(ctx, shapes, 5, 5); err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if evt := <-ch; evt.Feed != journal.KindLocate || strings.Contains(evt.Payload, `"error"`) {
		t.Fatalf("event = %+v; want successful %s event", evt, journal.KindLocate)
	}

	_, _, _ = s.Locate(ctx, nil, 5, 5)
	if evt := <-ch; evt.Feed != journal.KindLocate || !strings.Contains(evt.Payload, "shapes are required") {
		t.Fatalf("event = %+v; want failed %s event", evt, journal.KindLocate)
	}
}

func TestLocateOnChart(t *testing.T) {
	f := &fakeShapes{}
	s := newTestService(t, WithShapeFetcher(f))
	ctx := context.Background()
	rec, _ := s.CreateChart(ctx, "", barSpec())

	region, ok, err := s.LocateOnChart(ctx, rec.ID, 25, 5)
	if err != nil {
		t.Fatalf("LocateOnChart() error = %v", err)
	}
	if f.chof != "json" {
		t.Fatalf("fetched chof = %q; want json", f.chof)
	}
	if !ok || region.Type != "bar" || region.Item != 1 {
		t.Fatalf("LocateOnChart() = %+v, %v", region, ok)
	}
	if _, ok, _ := s.LocateOnChart(ctx, rec.ID, 100, 100); ok {
		t.Fatal("LocateOnChart(outside) matched; want no match")
	}
}

func TestImportSeries(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	series, err := s.ImportSeries(ctx, "text/csv", []byte("label,color,1,2\nA,red,3,4\n"))
	if err != nil {
		t.Fatalf("ImportSeries() error = %v", err)
	}
	if len(series) != 1 || series[0].Label != "A" {
		t.Fatalf("ImportSeries() = %+v", series)
	}

	tests := []struct {
		name   string
		format string
		body   string
	}{
		{name: "no format", format: " ", body: "a"},
		{name: "no body", format: "csv", body: ""},
		{name: "unknown format", format: "application/pdf", body: "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ImportSeries(ctx, tt.format, []byte(tt.body))
			wantCode(t, err, chart.CodeValidation)
		})
	}
}
