package domain

import (
	"fmt"
	"time"
)

// Metadata is the per-identity lifecycle record kept alongside (but
// independent of) a store slot. The two can legitimately diverge after a
// partial failure; callers tolerate that rather than assume consistency.
type Metadata struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	InstalledAt time.Time `json:"installedAt"`
	LastUsed    time.Time `json:"lastUsed"`
	Size        int64     `json:"size"`
	ContentHash string    `json:"contentHash,omitempty"`

	// Extra carries fields written by UpdateMetadata patches that the core
	// does not interpret. They survive merges.
	Extra map[string]any `json:"extra,omitempty"`
}

// MetadataPatch is a shallow patch applied to a Metadata record.
// Zero-valued fields are left untouched; Extra keys overwrite existing ones.
type MetadataPatch struct {
	LastUsed    time.Time
	Size        int64
	SizeSet     bool
	ContentHash string
	Extra       map[string]any
}

// Merge applies a shallow patch: new fields win, absent fields are preserved.
func (m *Metadata) Merge(patch MetadataPatch) {
	if !patch.LastUsed.IsZero() {
		m.LastUsed = patch.LastUsed
	}
	if patch.SizeSet {
		m.Size = patch.Size
	}
	if patch.ContentHash != "" {
		m.ContentHash = patch.ContentHash
	}
	if len(patch.Extra) > 0 && m.Extra == nil {
		m.Extra = make(map[string]any, len(patch.Extra))
	}
	for k, v := range patch.Extra {
		m.Extra[k] = v
	}
}

// StoreStats summarizes the physical contents of the store.
type StoreStats struct {
	PackageCount       int
	TotalSize          int64
	TotalSizeFormatted string
}

// UnusedPackage describes a stored package whose last use predates a cutoff.
type UnusedPackage struct {
	Identity Identity
	LastUsed time.Time
	Size     int64
}

// DeleteResult reports which halves of a package deletion succeeded. The two
// removals are independent best-effort operations, so any combination is a
// possible terminal state.
type DeleteResult struct {
	SlotRemoved     bool
	MetadataRemoved bool
}

// Complete reports whether both the slot and the metadata record are gone.
func (r DeleteResult) Complete() bool {
	return r.SlotRemoved && r.MetadataRemoved
}

// byteUnits are the 1024-based units used by FormatBytes.
var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes converts a byte count to a human string using 1024-based units
// with two-decimal precision, picking the largest unit where the value is >= 1.
func FormatBytes(n int64) string {
	value := float64(n)
	unit := 0
	for unit < len(byteUnits)-1 && value >= 1024 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, byteUnits[unit])
}
