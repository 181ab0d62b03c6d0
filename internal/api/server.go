package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/events"
	"github.com/dgnsrekt/gchart/internal/locate"
	"github.com/dgnsrekt/gchart/internal/store"
)

type Service interface {
	Defaults() chart.Defaults
	Compile(ctx context.Context, spec chart.Spec) (*assemble.Result, error)
	Locate(ctx context.Context, shapes []locate.Shape, x, y float64) (locate.Region, bool, error)
	CreateChart(ctx context.Context, name string, spec chart.Spec) (store.Record, error)
	ListCharts(ctx context.Context) ([]store.Record, error)
	GetChart(ctx context.Context, id string) (store.Record, error)
	DeleteChart(ctx context.Context, id string) error
	RenderChart(ctx context.Context, id string) (store.Record, error)
	ChartImage(ctx context.Context, id string, thumbnail bool) ([]byte, string, error)
	LocateOnChart(ctx context.Context, id string, x, y float64) (locate.Region, bool, error)
	ImportSeries(ctx context.Context, format string, body []byte) ([]chart.Series, error)
}

// Option configures the server.
type Option func(*serverOptions)

type serverOptions struct {
	events *events.Broker
}

// WithEvents exposes b as a server-sent event stream at /api/v1/events.
func WithEvents(b *events.Broker) Option {
	return func(o *serverOptions) { o.events = b }
}

func NewServer(svc Service, opts ...Option) http.Handler {
	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	const title = "Chart URL Compiler API"
	cfg := huma.DefaultConfig(title, "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)
	registerSchemaAliases(api.OpenAPI().Components.Schemas)

	docs := []byte(docsPage(title, "/openapi.json"))
	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write(docs); err != nil {
			slog.Debug("docs response write failed", "error", err)
		}
	})
	router.Get("/docs/stream", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte(streamDocsHTML)); err != nil {
			slog.Debug("stream docs response write failed", "error", err)
		}
	})
	router.Get("/ws/compile", compileSocket(svc))
	if o.events != nil {
		router.Get("/api/v1/events", events.SSEHandler(o.events))
	}

	registerCompileHandlers(api, svc)
	registerChartHandlers(api, svc)
	registerSeriesHandlers(api, svc)

	return router
}

// registerSchemaAliases documents types whose JSON form differs from
// their Go layout.
func registerSchemaAliases(r huma.Registry) {
	anyType := reflect.TypeOf((*any)(nil)).Elem()
	r.RegisterTypeAlias(reflect.TypeOf(chart.Limit{}), anyType)
	r.RegisterTypeAlias(reflect.TypeOf(chart.ItemSelector{}), anyType)
	r.RegisterTypeAlias(reflect.TypeOf(chart.Data{}), reflect.TypeOf([]*float64{}))
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return huma.Error504GatewayTimeout(err.Error())
	}
	var coded *chart.CodedError
	if errors.As(err, &coded) {
		switch coded.Code {
		case chart.CodeValidation:
			return huma.Error400BadRequest(coded.Error())
		case chart.CodeNotFound:
			return huma.Error404NotFound(coded.Message)
		case chart.CodeArgumentBinding, chart.CodeInvalidRange:
			return huma.Error422UnprocessableEntity(err.Error())
		case chart.CodeFetchFailed:
			return huma.Error502BadGateway(coded.Error())
		default:
			return huma.Error500InternalServerError(fmt.Sprintf("%s: %s", coded.Code, coded.Message))
		}
	}
	return huma.Error500InternalServerError(err.Error())
}
