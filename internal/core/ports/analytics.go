package ports

import (
	"time"

	"go.trai.ch/pakt/internal/core/domain"
)

// InstallEvent describes one installed entry for analytics purposes.
type InstallEvent struct {
	Identity domain.Identity
	CacheHit bool
	Duration time.Duration
	Size     int64
	Strategy domain.LinkStrategy
}

// AnalyticsSummary aggregates recorded install events.
type AnalyticsSummary struct {
	Installs    int64                         `json:"installs"`
	CacheHits   int64                         `json:"cacheHits"`
	Downloads   int64                         `json:"downloads"`
	BytesSaved  int64                         `json:"bytesSaved"`
	LinkCounts  map[domain.LinkStrategy]int64 `json:"linkCounts"`
	LastInstall time.Time                     `json:"lastInstall"`
}

// Analytics records install counters. It has no algorithmic content and is
// not required for resolution or storage correctness.
//
//go:generate mockgen -source=analytics.go -destination=mocks/mock_analytics.go -package=mocks
type Analytics interface {
	Record(event InstallEvent) error
	Summary() (AnalyticsSummary, error)
}
