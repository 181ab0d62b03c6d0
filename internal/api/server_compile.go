package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/locate"
)

type locateOutput struct {
	Body struct {
		Match  bool           `json:"match"`
		Region *locate.Region `json:"region,omitempty"`
	}
}

func newLocateOutput(region locate.Region, ok bool) *locateOutput {
	out := &locateOutput{}
	out.Body.Match = ok
	if ok {
		out.Body.Region = &region
	}
	return out
}

func registerCompileHandlers(api huma.API, svc Service) {
	type compileOutput struct {
		Body *assemble.Result
	}
	huma.Register(api, huma.Operation{OperationID: "compile-chart", Method: http.MethodPost, Path: "/api/v1/compile", Summary: "Compile a chart spec into a chart URL", Tags: []string{"Compile"}, SkipValidateBody: true},
		func(ctx context.Context, input *struct {
			Body chart.Spec
		}) (*compileOutput, error) {
			res, err := svc.Compile(ctx, input.Body)
			if err != nil {
				return nil, mapErr(err)
			}
			return &compileOutput{Body: res}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "locate-point", Method: http.MethodPost, Path: "/api/v1/locate", Summary: "Find the chart region under a point", Description: "Shapes are the chartshape list returned by a chof=json request.", Tags: []string{"Compile"}},
		func(ctx context.Context, input *struct {
			Body struct {
				Shapes []locate.Shape `json:"shapes" doc:"Shape metadata from the chart service"`
				X      float64        `json:"x"`
				Y      float64        `json:"y"`
			}
		}) (*locateOutput, error) {
			region, ok, err := svc.Locate(ctx, input.Body.Shapes, input.Body.X, input.Body.Y)
			if err != nil {
				return nil, mapErr(err)
			}
			return newLocateOutput(region, ok), nil
		})

	type defaultsOutput struct {
		Body chart.Defaults
	}
	huma.Register(api, huma.Operation{OperationID: "get-defaults", Method: http.MethodGet, Path: "/api/v1/defaults", Summary: "Get the compile defaults table", Tags: []string{"Compile"}},
		func(ctx context.Context, input *struct{}) (*defaultsOutput, error) {
			return &defaultsOutput{Body: svc.Defaults()}, nil
		})
}
