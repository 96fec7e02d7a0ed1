package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"edtctl/pkg/timetable"
)

// Cache stores scraped weeks by key
type Cache interface {
	Get(ctx context.Context, key string) ([]timetable.DaySchedule, bool)
	Set(ctx context.Context, key string, days []timetable.DaySchedule) error
}

// CacheEntry represents the disk data format
type CacheEntry struct {
	Timestamp time.Time               `json:"timestamp"`
	Days      []timetable.DaySchedule `json:"days"`
}

// FileCache keeps one JSON file per week under a cache directory
type FileCache struct {
	dir string
	ttl time.Duration
}

// NewFileCache creates the cache in ~/.edtctl_cache.
func NewFileCache(ttl time.Duration) (*FileCache, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not find user home directory: %w", err)
	}
	return NewFileCacheAt(filepath.Join(homeDir, ".edtctl_cache"), ttl)
}

// NewFileCacheAt creates the cache in dir.
func NewFileCacheAt(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create cache directory: %w", err)
	}
	return &FileCache{dir: dir, ttl: ttl}, nil
}

func (f *FileCache) path(key string) string {
	return filepath.Join(f.dir, filepath.Base(key)+".json")
}

// Get checks if a valid, unexpired entry exists for this key
func (f *FileCache) Get(_ context.Context, key string) ([]timetable.DaySchedule, bool) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false // File doesn't exist or can't be read
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > f.ttl {
		return nil, false // Expired
	}

	return entry.Days, true
}

// Set saves the week to disk. The entry is written to a temporary file and
// renamed into place so concurrent readers never see a partial file.
func (f *FileCache) Set(_ context.Context, key string, days []timetable.DaySchedule) error {
	entry := CacheEntry{
		Timestamp: time.Now(),
		Days:      days,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, filepath.Base(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not write cache file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not write cache file: %w", err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not replace cache file: %w", err)
	}
	return nil
}
