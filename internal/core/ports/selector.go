package ports

// VersionSelector picks concrete versions from range expressions. Pure: no
// I/O, no state.
//
//go:generate mockgen -source=selector.go -destination=mocks/mock_selector.go -package=mocks
type VersionSelector interface {
	// Select returns the maximum available version satisfying rng.
	// It returns domain.ErrNoMatchingVersion when nothing satisfies and
	// domain.ErrInvalidRange when rng is not a semver range expression.
	Select(available []string, rng string) (string, error)

	// Satisfies reports whether version satisfies rng. A malformed range or
	// version never satisfies.
	Satisfies(version, rng string) bool
}
