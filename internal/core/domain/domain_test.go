package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/core/domain"
)

func TestIdentity_Slot(t *testing.T) {
	t.Parallel()

	t.Run("deterministic across calls", func(t *testing.T) {
		t.Parallel()
		a := domain.NewIdentity("lodash", "4.17.21")
		b := domain.NewIdentity("lodash", "4.17.21")
		assert.Equal(t, a.Slot(), b.Slot())
	})

	t.Run("distinct versions get distinct slots", func(t *testing.T) {
		t.Parallel()
		a := domain.NewIdentity("lodash", "4.17.20")
		b := domain.NewIdentity("lodash", "4.17.21")
		assert.NotEqual(t, a.Slot(), b.Slot())
	})

	t.Run("readable prefix and digest suffix", func(t *testing.T) {
		t.Parallel()
		slot := domain.NewIdentity("lodash", "4.17.21").Slot()
		assert.True(t, strings.HasPrefix(slot, "lodash@4.17.21-"))
		parts := strings.Split(slot, "-")
		assert.Len(t, parts[len(parts)-1], 12)
	})

	t.Run("scoped names are sanitized", func(t *testing.T) {
		t.Parallel()
		slot := domain.NewIdentity("@babel/core", "7.24.0").Slot()
		assert.NotContains(t, slot, "/")
		assert.Contains(t, slot, "@babel+core@7.24.0")
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int64
		want string
	}{
		{"zero", 0, "0.00 B"},
		{"bytes", 512, "512.00 B"},
		{"exactly one KB", 1024, "1.00 KB"},
		{"fractional MB", 1536 * 1024, "1.50 MB"},
		{"GB cap", 3 * 1024 * 1024 * 1024, "3.00 GB"},
		{"above GB stays GB", 2048 * 1024 * 1024 * 1024, "2048.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.FormatBytes(tt.in))
		})
	}
}

func TestMetadata_Merge(t *testing.T) {
	t.Parallel()

	installed := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	used := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

	meta := domain.Metadata{
		Name:        "lodash",
		Version:     "4.17.21",
		InstalledAt: installed,
		LastUsed:    installed,
		Size:        2048,
		Extra:       map[string]any{"origin": "registry"},
	}

	meta.Merge(domain.MetadataPatch{
		LastUsed: used,
		Extra:    map[string]any{"pinned": true},
	})

	// New fields win, old fields are preserved.
	assert.Equal(t, used, meta.LastUsed)
	assert.Equal(t, installed, meta.InstalledAt)
	assert.Equal(t, int64(2048), meta.Size)
	assert.Equal(t, "registry", meta.Extra["origin"])
	assert.Equal(t, true, meta.Extra["pinned"])
}

func TestDependencySet_Order(t *testing.T) {
	t.Parallel()

	var deps domain.DependencySet
	deps = deps.Add("b", "^1.0.0")
	deps = deps.Add("a", "^2.0.0")
	deps = deps.Add("b", "~1.2.0")

	require.Len(t, deps, 2)
	assert.Equal(t, "b", deps[0].Name)
	assert.Equal(t, "~1.2.0", deps[0].Range)
	assert.Equal(t, "a", deps[1].Name)

	rng, ok := deps.Get("a")
	require.True(t, ok)
	assert.Equal(t, "^2.0.0", rng)

	_, ok = deps.Get("missing")
	assert.False(t, ok)
}

func TestManifest_AllDependencies(t *testing.T) {
	t.Parallel()

	m := domain.Manifest{
		Dependencies:    domain.DependencySet{{Name: "lodash", Range: "^4.17.21"}},
		DevDependencies: domain.DependencySet{{Name: "vitest", Range: "^1.0.0"}, {Name: "lodash", Range: "^3.0.0"}},
	}

	all := m.AllDependencies()
	require.Len(t, all, 2)
	assert.Equal(t, "lodash", all[0].Name)
	// Runtime declaration wins over the dev one.
	assert.Equal(t, "^4.17.21", all[0].Range)
	assert.Equal(t, "vitest", all[1].Name)
}
