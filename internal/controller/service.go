package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/dataload"
	"github.com/dgnsrekt/gchart/internal/events"
	"github.com/dgnsrekt/gchart/internal/journal"
	"github.com/dgnsrekt/gchart/internal/locate"
	"github.com/dgnsrekt/gchart/internal/notify"
	"github.com/dgnsrekt/gchart/internal/render"
	"github.com/dgnsrekt/gchart/internal/store"
)

// ShapeFetcher retrieves shape metadata for a chart compiled with the
// json output format.
type ShapeFetcher interface {
	FetchShapes(ctx context.Context, res *assemble.Result) ([]locate.Shape, error)
}

// Service ties the compiler to storage, rendering and the journal.
type Service struct {
	compiler *assemble.Compiler
	charts   *store.Store
	journal  *journal.Writer
	events   *events.Broker
	renderer render.Renderer
	shapes   ShapeFetcher
	notifier *notify.Notifier
	thumbMax int
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithJournal(w *journal.Writer) Option { return func(s *Service) { s.journal = w } }

// WithEvents publishes every journal event to b as well.
func WithEvents(b *events.Broker) Option { return func(s *Service) { s.events = b } }

func WithRenderer(r render.Renderer) Option { return func(s *Service) { s.renderer = r } }

// WithNotifier announces finished renders.
func WithNotifier(n *notify.Notifier) Option { return func(s *Service) { s.notifier = n } }

func WithShapeFetcher(f ShapeFetcher) Option { return func(s *Service) { s.shapes = f } }

// WithThumbnailSize sets the longer side of stored thumbnails. Zero
// disables thumbnails.
func WithThumbnailSize(px int) Option { return func(s *Service) { s.thumbMax = px } }

func NewService(compiler *assemble.Compiler, charts *store.Store, opts ...Option) *Service {
	s := &Service{
		compiler: compiler,
		charts:   charts,
		thumbMax: 160,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) requireNonEmpty(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return &chart.CodedError{Code: chart.CodeValidation, Message: fieldName + " is required"}
	}
	return nil
}

func (s *Service) requireStore() error {
	if s.charts == nil {
		return &chart.CodedError{Code: chart.CodeValidation, Message: "chart store is not configured"}
	}
	return nil
}

func (s *Service) record(kind string, start time.Time, ev journal.Event, err error) {
	ev.Kind = kind
	ev.Time = start
	ev.DurationMS = s.now().Sub(start).Milliseconds()
	if err != nil {
		ev.Error = err.Error()
	}
	if werr := s.journal.Write(ev); werr != nil {
		slog.Debug("journal write failed", "kind", kind, "error", werr)
	}
	s.events.PublishJSON(kind, ev)
}

func warningStrings(ws []chart.Warning) []string {
	if len(ws) == 0 {
		return nil
	}
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

// Defaults returns the compile defaults table in use.
func (s *Service) Defaults() chart.Defaults {
	return s.compiler.Defaults()
}

// Compile turns spec into a chart URL.
func (s *Service) Compile(ctx context.Context, spec chart.Spec) (*assemble.Result, error) {
	return s.compile(ctx, "", spec)
}

func (s *Service) compile(ctx context.Context, chartID string, spec chart.Spec) (*assemble.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := s.now()
	res, err := s.compiler.Compile(spec)
	ev := journal.Event{ChartID: chartID}
	if res != nil {
		ev.TypeCode, ev.URL, ev.URLLength, ev.Warnings = res.TypeCode, res.URL, res.Length, warningStrings(res.Warnings)
	}
	s.record(journal.KindCompile, start, ev, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Locate finds the region of shapes containing (x, y).
func (s *Service) Locate(ctx context.Context, shapes []locate.Shape, x, y float64) (locate.Region, bool, error) {
	if err := ctx.Err(); err != nil {
		return locate.Region{}, false, err
	}
	start := s.now()
	if len(shapes) == 0 {
		err := &chart.CodedError{Code: chart.CodeValidation, Message: "shapes are required"}
		s.record(journal.KindLocate, start, journal.Event{}, err)
		return locate.Region{}, false, err
	}
	region, ok := locate.Locate(shapes, x, y)
	s.record(journal.KindLocate, start, journal.Event{}, nil)
	return region, ok, nil
}

// CreateChart compiles spec and stores the result under a new ID.
func (s *Service) CreateChart(ctx context.Context, name string, spec chart.Spec) (store.Record, error) {
	if err := s.requireStore(); err != nil {
		return store.Record{}, err
	}
	id := store.NewID()
	res, err := s.compile(ctx, id, spec)
	if err != nil {
		return store.Record{}, err
	}
	rec := store.Record{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Spec:      spec,
		URL:       res.URL,
		TypeCode:  res.TypeCode,
		Width:     res.Width,
		Height:    res.Height,
		Warnings:  res.Warnings,
		CreatedAt: s.now(),
	}
	if err := s.charts.Save(rec); err != nil {
		return store.Record{}, err
	}
	return rec, nil
}

func (s *Service) ListCharts(ctx context.Context) ([]store.Record, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	return s.charts.List()
}

func (s *Service) GetChart(ctx context.Context, id string) (store.Record, error) {
	if err := s.requireNonEmpty(id, "chart id"); err != nil {
		return store.Record{}, err
	}
	if err := s.requireStore(); err != nil {
		return store.Record{}, err
	}
	return s.charts.Get(strings.TrimSpace(id))
}

func (s *Service) DeleteChart(ctx context.Context, id string) error {
	if err := s.requireNonEmpty(id, "chart id"); err != nil {
		return err
	}
	if err := s.requireStore(); err != nil {
		return err
	}
	return s.charts.Delete(strings.TrimSpace(id))
}

// RenderChart recompiles a stored chart, fetches its image and stores
// the image with a thumbnail.
func (s *Service) RenderChart(ctx context.Context, id string) (store.Record, error) {
	if s.renderer == nil {
		return store.Record{}, &chart.CodedError{Code: chart.CodeValidation, Message: "rendering is not configured"}
	}
	rec, err := s.GetChart(ctx, id)
	if err != nil {
		return store.Record{}, err
	}
	res, err := s.compile(ctx, rec.ID, rec.Spec)
	if err != nil {
		return store.Record{}, err
	}

	start := s.now()
	img, err := s.renderer.Render(ctx, res)
	s.record(journal.KindRender, start, journal.Event{ChartID: rec.ID, TypeCode: res.TypeCode, URLLength: res.Length}, err)
	if err != nil {
		return store.Record{}, err
	}

	var thumb []byte
	if s.thumbMax > 0 {
		thumb, err = render.Thumbnail(img.Data, s.thumbMax)
		if err != nil {
			slog.Warn("thumbnail failed", "chart_id", rec.ID, "format", img.Format, "error", err)
			thumb = nil
		}
	}
	meta := store.Image{Format: img.Format, Width: img.Width, Height: img.Height, RenderedAt: s.now()}
	rec, err = s.charts.SaveImage(rec.ID, meta, img.Data, thumb)
	if err != nil {
		return store.Record{}, err
	}
	if err := s.notifier.ChartRendered(ctx, rec); err != nil {
		slog.Warn("render notification failed", "chart_id", rec.ID, "error", err)
	}
	return rec, nil
}

// ChartImage returns the stored render of a chart. With thumbnail set the
// PNG thumbnail is returned instead.
func (s *Service) ChartImage(ctx context.Context, id string, thumbnail bool) ([]byte, string, error) {
	if err := s.requireNonEmpty(id, "chart id"); err != nil {
		return nil, "", err
	}
	if err := s.requireStore(); err != nil {
		return nil, "", err
	}
	id = strings.TrimSpace(id)
	if thumbnail {
		data, err := s.charts.ReadThumbnail(id)
		return data, "png", err
	}
	return s.charts.ReadImage(id)
}

// LocateOnChart fetches shape metadata for a stored chart and finds the
// region containing (x, y).
func (s *Service) LocateOnChart(ctx context.Context, id string, x, y float64) (locate.Region, bool, error) {
	if s.shapes == nil {
		return locate.Region{}, false, &chart.CodedError{Code: chart.CodeValidation, Message: "shape fetching is not configured"}
	}
	rec, err := s.GetChart(ctx, id)
	if err != nil {
		return locate.Region{}, false, err
	}
	spec := rec.Spec
	spec.Format = "json"
	res, err := s.compile(ctx, rec.ID, spec)
	if err != nil {
		return locate.Region{}, false, err
	}

	start := s.now()
	shapes, err := s.shapes.FetchShapes(ctx, res)
	s.record(journal.KindLocate, start, journal.Event{ChartID: rec.ID, TypeCode: res.TypeCode}, err)
	if err != nil {
		return locate.Region{}, false, err
	}
	region, ok := locate.Locate(shapes, x, y)
	return region, ok, nil
}

// ImportSeries reads series from a CSV, XML or XLSX document. format may
// be a format name, file name or content type.
func (s *Service) ImportSeries(ctx context.Context, format string, body []byte) ([]chart.Series, error) {
	if err := s.requireNonEmpty(format, "format"); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &chart.CodedError{Code: chart.CodeValidation, Message: "body is required"}
	}
	f, ok := dataload.DetectFormat(format)
	if !ok {
		return nil, &chart.CodedError{Code: chart.CodeValidation, Message: fmt.Sprintf("unsupported series format %q", format)}
	}

	start := s.now()
	series, err := dataload.Load(f, body)
	s.record(journal.KindImport, start, journal.Event{}, err)
	if err != nil {
		var ce *chart.CodedError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &chart.CodedError{Code: chart.CodeValidation, Message: "import " + string(f), Cause: err}
	}
	return series, nil
}
