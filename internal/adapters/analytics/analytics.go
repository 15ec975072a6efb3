// Package analytics persists install usage counters under the cache root.
package analytics

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

const usageFileName = "usage.json"

// Recorder implements ports.Analytics with a JSON counter file. Counters are
// advisory: a corrupt or missing file resets to zero instead of failing an
// install.
type Recorder struct {
	path   string
	logger ports.Logger

	mu sync.Mutex
}

// NewRecorder creates a Recorder persisting under the default cache root.
func NewRecorder(logger ports.Logger) (*Recorder, error) {
	return NewRecorderWithRoot(domain.DefaultCacheRoot(), logger)
}

// NewRecorderWithRoot creates a Recorder persisting under the given cache root.
func NewRecorderWithRoot(root string, logger ports.Logger) (*Recorder, error) {
	dir := domain.AnalyticsPath(root)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	return &Recorder{
		path:   filepath.Join(dir, usageFileName),
		logger: logger,
	}, nil
}

// Record folds one install event into the persisted counters.
func (r *Recorder) Record(event ports.InstallEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := r.load()

	summary.Installs++
	if event.CacheHit {
		summary.CacheHits++
		summary.BytesSaved += event.Size
	} else {
		summary.Downloads++
	}
	if event.Strategy != "" {
		if summary.LinkCounts == nil {
			summary.LinkCounts = make(map[domain.LinkStrategy]int64)
		}
		summary.LinkCounts[event.Strategy]++
	}
	summary.LastInstall = time.Now().UTC()

	return r.write(summary)
}

// Summary returns the persisted counters. A missing file yields zero counters.
func (r *Recorder) Summary() (ports.AnalyticsSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(), nil
}

// load reads the counter file, tolerating absence and corruption.
func (r *Recorder) load() ports.AnalyticsSummary {
	var summary ports.AnalyticsSummary

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("could not read analytics counters, starting fresh: " + err.Error())
		}
		return summary
	}

	if err := json.Unmarshal(data, &summary); err != nil {
		r.logger.Warn("analytics counters corrupt, starting fresh: " + err.Error())
		return ports.AnalyticsSummary{}
	}

	return summary
}

// write persists counters with a temp-file rename so a crash mid-write never
// leaves a truncated file.
func (r *Recorder) write(summary ports.AnalyticsSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".usage-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return zerr.Wrap(err, domain.ErrMetadataWriteFailed.Error())
	}
	return nil
}
