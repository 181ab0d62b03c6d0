package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/store"
)

type chartIDInput struct {
	ChartID string `path:"chart_id"`
}

type chartOutput struct {
	Body struct {
		Chart        store.Record `json:"chart"`
		ImageURL     string       `json:"image_url,omitempty"`
		ThumbnailURL string       `json:"thumbnail_url,omitempty"`
	}
}

func newChartOutput(rec store.Record) *chartOutput {
	out := &chartOutput{}
	out.Body.Chart = rec
	if rec.Image != nil {
		out.Body.ImageURL = "/api/v1/charts/" + rec.ID + "/image"
		if rec.Image.Thumbnail {
			out.Body.ThumbnailURL = out.Body.ImageURL + "?thumbnail=true"
		}
	}
	return out
}

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"gif":  "image/gif",
	"jpeg": "image/jpeg",
}

func registerChartHandlers(api huma.API, svc Service) {
	huma.Register(api, huma.Operation{OperationID: "create-chart", Method: http.MethodPost, Path: "/api/v1/charts", Summary: "Compile and store a chart", Tags: []string{"Charts"}, DefaultStatus: http.StatusCreated, SkipValidateBody: true},
		func(ctx context.Context, input *struct {
			Body struct {
				Name string     `json:"name,omitempty" doc:"Free-form label for the chart"`
				Spec chart.Spec `json:"spec"`
			}
		}) (*chartOutput, error) {
			rec, err := svc.CreateChart(ctx, input.Body.Name, input.Body.Spec)
			if err != nil {
				return nil, mapErr(err)
			}
			return newChartOutput(rec), nil
		})

	type listChartsOutput struct {
		Body struct {
			Charts []store.Record `json:"charts"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-charts", Method: http.MethodGet, Path: "/api/v1/charts", Summary: "List stored charts, newest first", Tags: []string{"Charts"}},
		func(ctx context.Context, input *struct{}) (*listChartsOutput, error) {
			recs, err := svc.ListCharts(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &listChartsOutput{}
			out.Body.Charts = recs
			if out.Body.Charts == nil {
				out.Body.Charts = []store.Record{}
			}
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "get-chart", Method: http.MethodGet, Path: "/api/v1/charts/{chart_id}", Summary: "Get a stored chart", Tags: []string{"Charts"}},
		func(ctx context.Context, input *chartIDInput) (*chartOutput, error) {
			rec, err := svc.GetChart(ctx, input.ChartID)
			if err != nil {
				return nil, mapErr(err)
			}
			return newChartOutput(rec), nil
		})

	type deleteChartOutput struct {
		Body struct {
			Status string `json:"status"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "delete-chart", Method: http.MethodDelete, Path: "/api/v1/charts/{chart_id}", Summary: "Delete a stored chart", Tags: []string{"Charts"}},
		func(ctx context.Context, input *chartIDInput) (*deleteChartOutput, error) {
			if err := svc.DeleteChart(ctx, input.ChartID); err != nil {
				return nil, mapErr(err)
			}
			out := &deleteChartOutput{}
			out.Body.Status = "deleted"
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "render-chart", Method: http.MethodPost, Path: "/api/v1/charts/{chart_id}/render", Summary: "Fetch and store the chart image", Description: "Fetches the image from the chart service (or a headless browser) and stores it with a thumbnail.", Tags: []string{"Charts"}},
		func(ctx context.Context, input *chartIDInput) (*chartOutput, error) {
			rec, err := svc.RenderChart(ctx, input.ChartID)
			if err != nil {
				return nil, mapErr(err)
			}
			return newChartOutput(rec), nil
		})

	type imageOutput struct {
		ContentType  string `header:"Content-Type"`
		CacheControl string `header:"Cache-Control"`
		Body         []byte
	}
	huma.Register(api, huma.Operation{OperationID: "get-chart-image", Method: http.MethodGet, Path: "/api/v1/charts/{chart_id}/image", Summary: "Get the stored chart image", Tags: []string{"Charts"}},
		func(ctx context.Context, input *struct {
			ChartID   string `path:"chart_id"`
			Thumbnail bool   `query:"thumbnail" doc:"Return the PNG thumbnail instead"`
		}) (*imageOutput, error) {
			data, format, err := svc.ChartImage(ctx, input.ChartID, input.Thumbnail)
			if err != nil {
				return nil, mapErr(err)
			}
			ct, ok := imageContentTypes[format]
			if !ok {
				ct = "application/octet-stream"
			}
			return &imageOutput{ContentType: ct, CacheControl: "no-cache", Body: data}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "locate-on-chart", Method: http.MethodPost, Path: "/api/v1/charts/{chart_id}/locate", Summary: "Find the region of a stored chart under a point", Description: "Fetches shape metadata (chof=json) for the chart and locates the point.", Tags: []string{"Charts"}},
		func(ctx context.Context, input *struct {
			ChartID string `path:"chart_id"`
			Body    struct {
				X float64 `json:"x"`
				Y float64 `json:"y"`
			}
		}) (*locateOutput, error) {
			region, ok, err := svc.LocateOnChart(ctx, input.ChartID, input.Body.X, input.Body.Y)
			if err != nil {
				return nil, mapErr(err)
			}
			return newLocateOutput(region, ok), nil
		})
}
