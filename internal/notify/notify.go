// Package notify posts plain-text notifications (ntfy style) when charts
// are rendered.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dgnsrekt/gchart/internal/store"
)

// Notifier posts to Endpoint. A nil *Notifier or an empty Endpoint sends
// nothing.
type Notifier struct {
	Endpoint string
	Client   *http.Client
}

// ChartRendered announces a finished render of rec.
func (n *Notifier) ChartRendered(ctx context.Context, rec store.Record) error {
	if n == nil || n.Endpoint == "" {
		return nil
	}
	return Send(ctx, n.Client, n.Endpoint, "Chart rendered", renderMessage(rec))
}

func renderMessage(rec store.Record) string {
	name := rec.Name
	if name == "" {
		name = rec.ID
	}
	msg := fmt.Sprintf("Chart %s (%s, %dx%d) rendered", name, rec.TypeCode, rec.Width, rec.Height)
	if img := rec.Image; img != nil {
		msg += fmt.Sprintf(" as %s, %d bytes", img.Format, img.SizeBytes)
	}
	if n := len(rec.Warnings); n > 0 {
		msg += fmt.Sprintf(" with %d warning(s)", n)
	}
	return msg + "."
}

// Send posts message to endpoint. title goes in the Title header.
func Send(ctx context.Context, client *http.Client, endpoint, title, message string) error {
	c := client
	if c == nil {
		c = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(message))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "text/plain")
	if title != "" {
		req.Header.Set("Title", title)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification failed: status=%d", resp.StatusCode)
	}
	return nil
}
