package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dgnsrekt/gchart/internal/api"
	"github.com/dgnsrekt/gchart/internal/assemble"
	"github.com/dgnsrekt/gchart/internal/config"
	"github.com/dgnsrekt/gchart/internal/controller"
	"github.com/dgnsrekt/gchart/internal/events"
	"github.com/dgnsrekt/gchart/internal/journal"
	"github.com/dgnsrekt/gchart/internal/netutil"
	"github.com/dgnsrekt/gchart/internal/notify"
	"github.com/dgnsrekt/gchart/internal/render"
	"github.com/dgnsrekt/gchart/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := setupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		_, _ = io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n")
		os.Exit(1)
	}

	slog.Info("gchartd config loaded",
		"bind_addr", cfg.BindAddr,
		"port_auto_fallback", cfg.PortAutoFallback,
		"port_candidates", cfg.PortCandidates,
		"store_dir", cfg.StoreDir,
		"journal_dir", cfg.JournalDir,
		"defaults_file", cfg.DefaultsFile,
		"render_mode", cfg.RenderMode,
		"log_level", cfg.LogLevel,
		"log_file", cfg.LogFile,
	)

	defaults, err := config.LoadDefaults(cfg.DefaultsFile)
	if err != nil {
		slog.Error("failed to load compile defaults", "path", cfg.DefaultsFile, "error", err)
		os.Exit(1)
	}

	charts, err := store.NewStore(cfg.StoreDir)
	if err != nil {
		slog.Error("failed to open chart store", "dir", cfg.StoreDir, "error", err)
		os.Exit(1)
	}

	jw := journal.NewWriter(cfg.JournalDir, "events", cfg.JournalBuffer, cfg.JournalMaxSizeMB)
	defer func() {
		if err := jw.Close(); err != nil {
			slog.Error("journal close failed", "error", err)
		}
	}()

	broker := events.NewBroker()
	fetchTimeout := time.Duration(cfg.FetchTimeoutMS) * time.Millisecond
	fetcher := &render.HTTPRenderer{
		Client:       &http.Client{Timeout: fetchTimeout},
		MaxGETLength: defaults.MaxURLLength,
	}
	var renderer render.Renderer = fetcher
	switch cfg.RenderMode {
	case config.RenderBrowser:
		renderer = &render.BrowserRenderer{CDPURL: cfg.CDPURL(), Timeout: fetchTimeout}
		slog.Info("rendering through headless browser", "cdp_url", cfg.CDPURL())
	case config.RenderLaunch:
		if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
			slog.Error("failed to create browser profile dir", "dir", cfg.ProfileDir, "error", err)
			os.Exit(1)
		}
		renderer = &render.BrowserRenderer{ProfileDir: cfg.ProfileDir, Timeout: fetchTimeout}
		slog.Info("rendering through launched browser", "profile_dir", cfg.ProfileDir)
	}

	svc := controller.NewService(
		assemble.NewCompiler(defaults),
		charts,
		controller.WithJournal(jw),
		controller.WithEvents(broker),
		controller.WithRenderer(renderer),
		controller.WithShapeFetcher(fetcher),
		controller.WithThumbnailSize(cfg.ThumbnailMaxSide),
		controller.WithNotifier(&notify.Notifier{Endpoint: cfg.NotifyURL, Client: &http.Client{Timeout: fetchTimeout}}),
	)
	h := api.NewServer(svc, api.WithEvents(broker))

	ln, err := netutil.Listen(cfg.BindAddr, cfg.PortCandidates, cfg.PortAutoFallback)
	if err != nil {
		slog.Error("failed to select bind address", "preferred", cfg.BindAddr, "error", err)
		os.Exit(1)
	}
	bindAddr := ln.Addr().String()

	srv := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		slog.Info("gchartd listening", "addr", bindAddr, "docs", "http://"+bindAddr+"/docs")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("gchartd server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("gchartd shutdown failed", "error", err)
	}
}

func setupLogger(level, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	h := slog.NewTextHandler(io.MultiWriter(os.Stdout, logWriter), &slog.HandlerOptions{Level: parseLevel(level)})
	slog.SetDefault(slog.New(h))
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
