package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Render modes.
const (
	RenderHTTP    = "http"
	RenderBrowser = "browser"
	// RenderLaunch starts a local headless browser instead of attaching.
	RenderLaunch = "launch"
)

// Config holds configuration shared by the server and the CLI.
type Config struct {
	// Listener
	BindAddr         string
	PortCandidates   []string
	PortAutoFallback bool

	// Logging
	LogLevel string
	LogFile  string

	// Storage
	StoreDir         string
	JournalDir       string
	JournalMaxSizeMB int
	JournalBuffer    int
	ThumbnailMaxSide int

	// Compile defaults table (YAML); empty means built-in defaults.
	DefaultsFile string

	// Rendering
	FetchTimeoutMS int
	RenderMode     string
	CDPAddress     string
	CDPPort        int
	ProfileDir     string

	// Render notifications (ntfy topic URL); empty disables them.
	NotifyURL string
}

// Load reads configuration from environment variables and optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	cfg := &Config{
		BindAddr:         getEnvOrDefault("GCHART_BIND_ADDR", "127.0.0.1:8190"),
		PortCandidates:   getEnvListOrDefault("GCHART_PORT_CANDIDATES", []string{"127.0.0.1:8191", "127.0.0.1:8192"}),
		PortAutoFallback: getEnvBoolOrDefault("GCHART_PORT_AUTO_FALLBACK", true),
		LogLevel:         strings.ToLower(getEnvOrDefault("GCHART_LOG_LEVEL", "info")),
		LogFile:          getEnvOrDefault("GCHART_LOG_FILE", "logs/gchartd.log"),
		StoreDir:         getEnvOrDefault("GCHART_STORE_DIR", "./charts"),
		JournalDir:       getEnvOrDefault("GCHART_JOURNAL_DIR", "./journal"),
		JournalMaxSizeMB: getEnvIntOrDefault("GCHART_JOURNAL_MAX_SIZE_MB", 50),
		JournalBuffer:    getEnvIntOrDefault("GCHART_JOURNAL_BUFFER", 1000),
		ThumbnailMaxSide: getEnvIntOrDefault("GCHART_THUMBNAIL_MAX_SIDE", 160),
		DefaultsFile:     getEnvOrDefault("GCHART_DEFAULTS_FILE", ""),
		FetchTimeoutMS:   getEnvIntOrDefault("GCHART_FETCH_TIMEOUT_MS", 10000),
		RenderMode:       strings.ToLower(getEnvOrDefault("GCHART_RENDER_MODE", RenderHTTP)),
		CDPAddress:       getEnvOrDefault("CHROMIUM_CDP_ADDRESS", "127.0.0.1"),
		CDPPort:          getEnvIntOrDefault("CHROMIUM_CDP_PORT", 9220),
		ProfileDir:       getEnvOrDefault("GCHART_BROWSER_PROFILE_DIR", "./browser-profile"),
		NotifyURL:        getEnvOrDefault("GCHART_NOTIFY_URL", ""),
	}
	if cfg.FetchTimeoutMS < 1000 {
		cfg.FetchTimeoutMS = 1000
	}
	switch cfg.RenderMode {
	case RenderBrowser, RenderLaunch:
	default:
		cfg.RenderMode = RenderHTTP
	}
	return cfg, nil
}

// CDPURL returns the CDP endpoint used by the chromedp remote allocator.
func (c *Config) CDPURL() string {
	return "http://" + c.CDPAddress + ":" + strconv.Itoa(c.CDPPort)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
