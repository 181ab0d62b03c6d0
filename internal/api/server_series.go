package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dgnsrekt/gchart/internal/chart"
)

const maxImportBytes = 16 << 20

func registerSeriesHandlers(api huma.API, svc Service) {
	type importOutput struct {
		Body struct {
			Series []chart.Series `json:"series"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "import-series", Method: http.MethodPost, Path: "/api/v1/series/import", Summary: "Read series from CSV, XML or XLSX", Description: "The format comes from the format query parameter, else from Content-Type.", Tags: []string{"Series"}, MaxBodyBytes: maxImportBytes},
		func(ctx context.Context, input *struct {
			Format      string `query:"format" doc:"csv, xml or xlsx"`
			ContentType string `header:"Content-Type"`
			RawBody     []byte
		}) (*importOutput, error) {
			format := strings.TrimSpace(input.Format)
			if format == "" {
				format = input.ContentType
			}
			series, err := svc.ImportSeries(ctx, format, input.RawBody)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &importOutput{}
			out.Body.Series = series
			if out.Body.Series == nil {
				out.Body.Series = []chart.Series{}
			}
			return out, nil
		})
}
