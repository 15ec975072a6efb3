// Package semver implements the VersionSelector port on top of semantic
// version range expressions.
package semver

import (
	"sort"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VersionSelector = (*Selector)(nil)

// Selector implements ports.VersionSelector using Masterminds/semver.
type Selector struct{}

// NewSelector creates a new Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select returns the maximum available version that satisfies rng.
// The wildcard forms "*" and "latest" select the maximum release version.
func (s *Selector) Select(available []string, rng string) (string, error) {
	constraint, err := parseRange(rng)
	if err != nil {
		return "", err
	}

	candidates := make([]*semver.Version, 0, len(available))
	for _, raw := range available {
		v, err := semver.NewVersion(raw)
		if err != nil {
			// Not a semver version; it can never satisfy a semver range.
			continue
		}
		if constraint.Check(v) {
			candidates = append(candidates, v)
		}
	}

	if len(candidates) == 0 {
		return "", zerr.With(domain.ErrNoMatchingVersion, "range", rng)
	}

	sort.Sort(semver.Collection(candidates))
	return candidates[len(candidates)-1].Original(), nil
}

// Satisfies reports whether version satisfies rng. Malformed input never
// satisfies.
func (s *Selector) Satisfies(version, rng string) bool {
	constraint, err := parseRange(rng)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}

// parseRange converts a range expression to constraints. "*" and "latest"
// accept any release version; anything unparsable is reported as an invalid
// range rather than coerced, so the resolver can surface it.
func parseRange(rng string) (*semver.Constraints, error) {
	if rng == "*" || rng == "latest" {
		rng = ">= 0.0.0"
	}
	constraint, err := semver.NewConstraint(rng)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.ErrInvalidRange, "range", rng), "detail", err.Error())
	}
	return constraint, nil
}
