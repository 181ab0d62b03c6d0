package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/chart"
)

// BrowserRenderer screenshots the chart URL in a Chromium reached over
// CDP. Used where the chart service only answers browsers. With an empty
// CDPURL a headless browser is launched per render, keeping its profile
// under ProfileDir.
type BrowserRenderer struct {
	CDPURL     string
	ProfileDir string
	Timeout    time.Duration
}

func (b *BrowserRenderer) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.CDPURL != "" {
		return chromedp.NewRemoteAllocator(ctx, b.CDPURL)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-crash-reporter", true),
	)
	if b.ProfileDir != "" {
		opts = append(opts, chromedp.UserDataDir(b.ProfileDir))
	}
	return chromedp.NewExecAllocator(ctx, opts...)
}

func (b *BrowserRenderer) target() string {
	if b.CDPURL == "" {
		return "local browser"
	}
	return b.CDPURL
}

// Render implements Renderer.
func (b *BrowserRenderer) Render(ctx context.Context, res *assemble.Result) (Image, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, allocCancel := b.allocator(ctx)
	defer allocCancel()
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	var buf []byte
	err := chromedp.Run(tabCtx,
		page.Enable(),
		chromedp.EmulateViewport(int64(res.Width), int64(res.Height)),
		chromedp.Navigate(res.URL),
		chromedp.WaitReady("img", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, err := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{Width: float64(res.Width), Height: float64(res.Height), Scale: 1}).
				Do(ctx)
			if err != nil {
				return err
			}
			buf = data
			return nil
		}),
	)
	if err != nil {
		return Image{}, chart.NewError(chart.CodeFetchFailed, fmt.Sprintf("browser render via %s", b.target()), err)
	}
	return Image{Data: buf, ContentType: "image/png", Format: "png", Width: res.Width, Height: res.Height}, nil
}
