// Package store keeps compiled charts and their rendered images on disk.
// Each chart is a JSON sidecar <id>.json, plus <id>.<format> and
// <id>.thumb.png once rendered.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgnsrekt/gchart/internal/chart"
)

// Image describes a stored render.
type Image struct {
	Format     string    `json:"format"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	SizeBytes  int       `json:"size_bytes"`
	Thumbnail  bool      `json:"thumbnail"`
	RenderedAt time.Time `json:"rendered_at"`
}

// Record is one stored chart.
type Record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Spec      chart.Spec      `json:"spec"`
	URL       string          `json:"url"`
	TypeCode  string          `json:"type_code"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Warnings  []chart.Warning `json:"warnings,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Image     *Image          `json:"image,omitempty"`
}

// Store manages chart files on disk.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a Store and ensures the directory exists.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("chart store: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// NewID returns a fresh chart ID.
func NewID() string { return uuid.NewString() }

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return chart.NewError(chart.CodeValidation, fmt.Sprintf("invalid chart id: %q", id), nil)
	}
	return nil
}

func (s *Store) metaPath(id string) string  { return filepath.Join(s.dir, id+".json") }
func (s *Store) thumbPath(id string) string { return filepath.Join(s.dir, id+".thumb.png") }
func (s *Store) imagePath(id, format string) string {
	return filepath.Join(s.dir, id+"."+format)
}

// Save writes the chart sidecar, replacing any previous version.
func (s *Store) Save(rec Record) error {
	if err := validateID(rec.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeMeta(rec)
}

func (s *Store) writeMeta(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("chart store: marshal meta: %w", err)
	}
	if err := os.WriteFile(s.metaPath(rec.ID), data, 0o644); err != nil {
		return fmt.Errorf("chart store: write meta: %w", err)
	}
	return nil
}

// SaveImage stores a render of chart id and its optional thumbnail and
// returns the updated record.
func (s *Store) SaveImage(id string, img Image, data, thumb []byte) (Record, error) {
	rec, err := s.Get(id)
	if err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old := rec.Image; old != nil && old.Format != img.Format {
		s.remove(s.imagePath(id, old.Format), "stale image")
	}
	path := s.imagePath(id, img.Format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Record{}, fmt.Errorf("chart store: write image: %w", err)
	}
	img.SizeBytes = len(data)
	img.Thumbnail = len(thumb) > 0
	if img.Thumbnail {
		if err := os.WriteFile(s.thumbPath(id), thumb, 0o644); err != nil {
			_ = os.Remove(path)
			return Record{}, fmt.Errorf("chart store: write thumbnail: %w", err)
		}
	} else if old := rec.Image; old != nil && old.Thumbnail {
		s.remove(s.thumbPath(id), "stale thumbnail")
	}
	rec.Image = &img
	if err := s.writeMeta(rec); err != nil {
		_ = os.Remove(path)
		return Record{}, err
	}
	return rec, nil
}

// Get reads chart metadata by ID.
func (s *Store) Get(id string) (Record, error) {
	if err := validateID(id); err != nil {
		return Record{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, chart.NewError(chart.CodeNotFound, "chart not found: "+id, nil)
		}
		return Record{}, fmt.Errorf("chart store: read meta: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("chart store: unmarshal meta: %w", err)
	}
	return rec, nil
}

// List returns all charts, newest first.
func (s *Store) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("chart store: glob: %w", err)
	}
	recs := make([]Record, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Debug("chart store skipped unreadable file", "path", path, "error", err)
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			slog.Debug("chart store skipped malformed file", "path", path, "error", err)
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

// ReadImage returns the rendered image bytes and format.
func (s *Store) ReadImage(id string) ([]byte, string, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, "", err
	}
	if rec.Image == nil {
		return nil, "", chart.NewError(chart.CodeNotFound, "chart not rendered: "+id, nil)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.imagePath(id, rec.Image.Format))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", chart.NewError(chart.CodeNotFound, "chart image not found: "+id, nil)
		}
		return nil, "", fmt.Errorf("chart store: read image: %w", err)
	}
	return data, rec.Image.Format, nil
}

// ReadThumbnail returns the PNG thumbnail of a rendered chart.
func (s *Store) ReadThumbnail(id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.thumbPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, chart.NewError(chart.CodeNotFound, "chart thumbnail not found: "+id, nil)
		}
		return nil, fmt.Errorf("chart store: read thumbnail: %w", err)
	}
	return data, nil
}

// Delete removes the chart and any rendered files.
func (s *Store) Delete(id string) error {
	rec, err := s.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Image != nil {
		s.remove(s.imagePath(id, rec.Image.Format), "image")
		if rec.Image.Thumbnail {
			s.remove(s.thumbPath(id), "thumbnail")
		}
	}
	if err := os.Remove(s.metaPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("chart store: remove meta: %w", err)
	}
	return nil
}

func (s *Store) remove(path, what string) {
	if err := os.Remove(path); err != nil {
		slog.Debug("chart store cleanup failed", "file", what, "path", path, "error", err)
	}
}
