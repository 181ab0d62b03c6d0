// Package render fetches chart images and shape metadata for compiled
// chart URLs.
package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
	"github.com/dgnsrekt/gchart/internal/locate"
)

// maxBody bounds how much of a response is read.
const maxBody = 16 << 20

// Image is a rendered chart.
type Image struct {
	Data        []byte
	ContentType string
	Format      string
	Width       int
	Height      int
}

// Renderer produces an image for a compiled chart.
type Renderer interface {
	Render(ctx context.Context, res *assemble.Result) (Image, error)
}

// HTTPRenderer fetches images from the chart service. URLs longer than
// MaxGETLength are sent as a form POST.
type HTTPRenderer struct {
	Client       *http.Client
	MaxGETLength int
}

// Render implements Renderer.
func (r *HTTPRenderer) Render(ctx context.Context, res *assemble.Result) (Image, error) {
	body, ctype, err := r.fetch(ctx, res)
	if err != nil {
		return Image{}, err
	}
	format := formatOf(ctype)
	if format == "" {
		return Image{}, chart.NewError(chart.CodeFetchFailed, "unexpected content type "+ctype, nil)
	}
	return Image{Data: body, ContentType: ctype, Format: format, Width: res.Width, Height: res.Height}, nil
}

// FetchShapes requests shape metadata for res, which must have been
// compiled with the json output format.
func (r *HTTPRenderer) FetchShapes(ctx context.Context, res *assemble.Result) ([]locate.Shape, error) {
	if v, _ := res.Get("chof"); v != "json" {
		return nil, chart.NewError(chart.CodeValidation, "shape metadata needs chof=json", nil)
	}
	body, _, err := r.fetch(ctx, res)
	if err != nil {
		return nil, err
	}
	return locate.Parse(body)
}

func (r *HTTPRenderer) fetch(ctx context.Context, res *assemble.Result) ([]byte, string, error) {
	c := r.Client
	if c == nil {
		c = http.DefaultClient
	}

	req, err := r.newRequest(ctx, res)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, "", chart.NewError(chart.CodeFetchFailed, "request chart", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, "", chart.NewError(chart.CodeFetchFailed, "read chart response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", chart.NewError(chart.CodeFetchFailed, fmt.Sprintf("chart service status=%d", resp.StatusCode), nil)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (r *HTTPRenderer) newRequest(ctx context.Context, res *assemble.Result) (*http.Request, error) {
	if r.MaxGETLength <= 0 || res.Length <= r.MaxGETLength {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
		if err != nil {
			return nil, chart.NewError(chart.CodeValidation, "bad chart url", err)
		}
		return req, nil
	}
	base := strings.TrimSuffix(res.URL, res.Query)
	base = strings.TrimSuffix(base, "?")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base, strings.NewReader(res.Query))
	if err != nil {
		return nil, chart.NewError(chart.CodeValidation, "bad chart url", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func formatOf(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch ct {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/jpeg":
		return "jpeg"
	}
	return ""
}
