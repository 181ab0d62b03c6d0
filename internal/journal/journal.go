// Package journal appends compile and render events as JSON lines to
// date-organized, size-rotated files.
package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Event kinds.
const (
	KindCompile = "compile"
	KindRender  = "render"
	KindLocate  = "locate"
	KindImport  = "import"
)

// Event is one journal line.
type Event struct {
	Time       time.Time `json:"time"`
	Kind       string    `json:"kind"`
	ChartID    string    `json:"chart_id,omitempty"`
	TypeCode   string    `json:"type_code,omitempty"`
	URL        string    `json:"url,omitempty"`
	URLLength  int       `json:"url_length,omitempty"`
	URLSHA256  string    `json:"url_sha256,omitempty"`
	Warnings   []string  `json:"warnings,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}

var (
	ErrClosed     = errors.New("journal is closed")
	ErrBufferFull = errors.New("journal buffer full")
)

// MaxURLBytes bounds the URL kept per event. Longer URLs are cut and
// identified by the SHA-256 of the full text.
const MaxURLBytes = 512

func truncateURL(ev *Event) {
	if len(ev.URL) <= MaxURLBytes {
		return
	}
	sum := sha256.Sum256([]byte(ev.URL))
	ev.URLLength = len(ev.URL)
	ev.URLSHA256 = hex.EncodeToString(sum[:])
	ev.URL = ev.URL[:MaxURLBytes]
}

// Writer writes events asynchronously. A nil *Writer discards events.
type Writer struct {
	baseDir     string
	subDir      string
	maxSizeMB   int
	writeCh     chan Event
	done        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
	currentDate string
	logger      *lumberjack.Logger
	mu          sync.Mutex
	now         func() time.Time
}

// NewWriter starts a writer that files events under
// <baseDir>/<date>/<subDir>/<unix>.jsonl.
func NewWriter(baseDir, subDir string, bufferSize, maxSizeMB int) *Writer {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	w := &Writer{
		baseDir:   baseDir,
		subDir:    subDir,
		maxSizeMB: maxSizeMB,
		writeCh:   make(chan Event, bufferSize),
		done:      make(chan struct{}),
		now:       func() time.Time { return time.Now().UTC() },
	}

	w.wg.Add(1)
	go w.writeLoop()

	return w
}

// Write queues ev without blocking. A zero Time is stamped with now.
func (w *Writer) Write(ev Event) error {
	if w == nil {
		return nil
	}
	if ev.Time.IsZero() {
		ev.Time = w.now()
	}
	truncateURL(&ev)
	select {
	case <-w.done:
		return ErrClosed
	default:
	}
	select {
	case w.writeCh <- ev:
		return nil
	default:
		slog.Warn("journal buffer full, dropping event", "kind", ev.Kind, "subdir", w.subDir)
		return ErrBufferFull
	}
}

// Close stops the writer and flushes queued events.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.closeOnce.Do(func() { close(w.done) })
	w.wg.Wait()

	timeout := time.After(5 * time.Second)
drain:
	for {
		select {
		case ev := <-w.writeCh:
			w.writeEvent(ev)
		case <-timeout:
			slog.Warn("journal close timeout, some events may be lost", "subdir", w.subDir)
			break drain
		default:
			break drain
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.logger != nil {
		return w.logger.Close()
	}
	return nil
}

func (w *Writer) writeLoop() {
	defer w.wg.Done()

	for {
		select {
		case ev := <-w.writeCh:
			w.writeEvent(ev)
		case <-w.done:
			return
		}
	}
}

func (w *Writer) writeEvent(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("journal marshal failed", "error", err, "subdir", w.subDir)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	date := ev.Time.UTC().Format("2006-01-02")
	if date != w.currentDate || w.logger == nil {
		if err := w.rotateForDate(date); err != nil {
			slog.Error("journal rotate failed", "error", err, "subdir", w.subDir)
			return
		}
	}

	if _, err := w.logger.Write(append(data, '\n')); err != nil {
		slog.Error("journal write failed", "error", err, "subdir", w.subDir)
	}
}

func (w *Writer) rotateForDate(date string) error {
	if w.logger != nil {
		_ = w.logger.Close()
		w.logger = nil
	}

	dir := filepath.Join(w.baseDir, date, w.subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("%d.jsonl", w.now().Unix()))

	w.logger = &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    w.maxSizeMB,
		MaxBackups: 100,
		MaxAge:     30,
		LocalTime:  false,
	}
	w.currentDate = date
	slog.Info("journal opened file", "file", filename, "subdir", w.subDir)
	return nil
}
