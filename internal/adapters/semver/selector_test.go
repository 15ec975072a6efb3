package semver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/semver"
	"go.trai.ch/pakt/internal/core/domain"
)

func TestSelector_Select(t *testing.T) {
	t.Parallel()

	selector := semver.NewSelector()

	tests := []struct {
		name      string
		available []string
		rng       string
		want      string
	}{
		{
			name:      "tilde picks highest patch in minor",
			available: []string{"1.0.0", "1.2.4", "1.3.0", "2.0.0"},
			rng:       "~1.2.3",
			want:      "1.2.4",
		},
		{
			name:      "caret picks highest compatible",
			available: []string{"4.17.19", "4.17.20", "4.17.21", "5.0.0"},
			rng:       "^4.17.20",
			want:      "4.17.21",
		},
		{
			name:      "wildcard picks maximum",
			available: []string{"1.0.0", "2.0.0", "1.9.9"},
			rng:       "*",
			want:      "2.0.0",
		},
		{
			name:      "latest picks maximum",
			available: []string{"0.1.0", "0.2.0"},
			rng:       "latest",
			want:      "0.2.0",
		},
		{
			name:      "exact version",
			available: []string{"1.0.0", "1.1.0"},
			rng:       "1.0.0",
			want:      "1.0.0",
		},
		{
			name:      "comparator",
			available: []string{"1.0.0", "1.5.0", "2.0.0"},
			rng:       ">=1.5.0",
			want:      "2.0.0",
		},
		{
			name:      "prerelease sorts below its release",
			available: []string{"2.0.0-rc.1", "1.9.0"},
			rng:       "*",
			want:      "1.9.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := selector.Select(tt.available, tt.rng)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("nothing satisfies", func(t *testing.T) {
		t.Parallel()
		_, err := selector.Select([]string{"1.0.0", "2.0.0"}, "^5.0.0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrNoMatchingVersion.Error())
	})

	t.Run("non-semver range is reported, not coerced", func(t *testing.T) {
		t.Parallel()
		_, err := selector.Select([]string{"1.0.0"}, "https://example.com/pkg.tgz")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("non-semver available versions are skipped", func(t *testing.T) {
		t.Parallel()
		got, err := selector.Select([]string{"not-a-version", "1.0.0"}, "^1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", got)
	})
}

func TestSelector_Satisfies(t *testing.T) {
	t.Parallel()

	selector := semver.NewSelector()

	assert.True(t, selector.Satisfies("4.17.21", "^4.17.20"))
	assert.True(t, selector.Satisfies("1.2.4", "~1.2.3"))
	assert.False(t, selector.Satisfies("5.0.0", "^4.17.20"))
	assert.False(t, selector.Satisfies("garbage", "^1.0.0"))
	assert.False(t, selector.Satisfies("1.0.0", "not a range"))
}
