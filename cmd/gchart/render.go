package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/gchart/internal/render"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		output    string
		cdpURL    string
		launch    bool
		timeout   time.Duration
		thumbnail int
	)
	cmd := &cobra.Command{
		Use:   "render spec.yaml",
		Short: "Compile a spec and save the rendered image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.compiler()
			if err != nil {
				return err
			}
			spec, err := loadSpec(args[0])
			if err != nil {
				return err
			}
			res, err := c.Compile(spec)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			var r render.Renderer = &render.HTTPRenderer{
				Client:       &http.Client{},
				MaxGETLength: c.Defaults().MaxURLLength,
			}
			if cdpURL != "" || launch {
				r = &render.BrowserRenderer{CDPURL: cdpURL, Timeout: timeout}
			}
			img, err := r.Render(ctx, res)
			if err != nil {
				return err
			}

			data := img.Data
			if thumbnail > 0 {
				if data, err = render.Thumbnail(img.Data, thumbnail); err != nil {
					return err
				}
			}
			if output == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				output = base + "." + img.Format
				if thumbnail > 0 {
					output = base + ".thumb.png"
				}
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			writeLine(cmd, "%s\t%d bytes", output, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: spec name with the image extension)")
	cmd.Flags().StringVar(&cdpURL, "cdp-url", "", "Render through a headless browser at this CDP endpoint")
	cmd.Flags().BoolVar(&launch, "launch-browser", false, "Render through a locally launched headless browser")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Render timeout")
	cmd.Flags().IntVar(&thumbnail, "thumbnail", 0, "Save a PNG thumbnail with this longer side instead")
	return cmd
}
