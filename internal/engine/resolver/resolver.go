// Package resolver walks dependency declarations into a flat resolved tree.
package resolver

import (
	"context"
	"sort"
	"sync"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxDepth is a safety backstop against pathologically deep dependency
// chains. Genuine cycles are caught by the per-path visited set well before
// this fires.
const maxDepth = 100

// Resolver implements ports.DependencyResolver. The memo maps literal
// "name@range" keys to the version they resolved to, and lives for the
// Resolver's lifetime so repeated resolve calls reuse it. The key is the
// exact range string: two semantically equivalent ranges memoize
// independently.
type Resolver struct {
	registry ports.Registry
	selector ports.VersionSelector
	logger   ports.Logger

	mu   sync.Mutex
	memo map[string]string
}

// NewResolver creates a Resolver with the given collaborators.
func NewResolver(registry ports.Registry, selector ports.VersionSelector, logger ports.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		selector: selector,
		logger:   logger,
		memo:     make(map[string]string),
	}
}

// Resolve processes declarations in order. Each declaration's transitive
// dependencies are fully resolved depth-first before the next declaration
// begins; that ordering decides which requester wins the flat-tree
// overwrite policy.
func (r *Resolver) Resolve(ctx context.Context, deps domain.DependencySet) (domain.ResolvedTree, error) {
	tree := make(domain.ResolvedTree, len(deps))
	path := make(map[string]bool)

	for _, dep := range deps {
		if _, err := r.resolveDependency(ctx, dep.Name, dep.Range, tree, path, 0); err != nil {
			return nil, err
		}
	}

	return tree, nil
}

// resolveDependency resolves one name@range into tree and returns the chosen
// version. path holds the names on the current recursion path; a revisit
// means a genuine dependency cycle.
func (r *Resolver) resolveDependency(
	ctx context.Context,
	name, rng string,
	tree domain.ResolvedTree,
	path map[string]bool,
	depth int,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if depth > maxDepth {
		err := zerr.With(domain.ErrDepthExceeded, "package", name)
		return "", zerr.With(err, "depth", depth)
	}

	if path[name] {
		return "", zerr.With(domain.ErrCircularDependency, "package", name)
	}

	memoKey := name + "@" + rng

	// Literal-range memo hit: reuse without re-querying metadata. The tree
	// still needs an entry so the installer materializes the package.
	r.mu.Lock()
	if version, ok := r.memo[memoKey]; ok {
		r.mu.Unlock()
		if _, present := tree[name]; !present {
			tree[name] = domain.ResolvedPackage{Version: version}
		}
		return version, nil
	}
	r.mu.Unlock()

	// Conflict-avoidance fast path: a version already in the tree that
	// satisfies this range is reused as-is.
	if entry, ok := tree[name]; ok && r.selector.Satisfies(entry.Version, rng) {
		return entry.Version, nil
	}

	record, err := r.registry.PackageMetadata(ctx, name)
	if err != nil {
		return "", err
	}

	version, err := r.selectVersion(record, name, rng)
	if err != nil {
		return "", err
	}

	versionRecord := record.Versions[version]

	// Flat tree, last writer wins: a later incompatible requester replaces
	// the earlier entry wholesale.
	if prev, ok := tree[name]; ok && prev.Version != version {
		r.logger.Warn("replacing " + name + "@" + prev.Version + " with " + version + " (incompatible range " + rng + ")")
	}
	tree[name] = domain.ResolvedPackage{
		Version:      version,
		Dependencies: versionRecord.Dependencies,
	}

	r.mu.Lock()
	r.memo[memoKey] = version
	r.mu.Unlock()

	path[name] = true
	defer delete(path, name)

	for _, dep := range sortedDependencies(versionRecord.Dependencies) {
		if _, err := r.resolveDependency(ctx, dep.Name, dep.Range, tree, path, depth+1); err != nil {
			return "", err
		}
	}

	return version, nil
}

// selectVersion picks the best available version for rng, preferring the
// dist-tag target for "latest" requests when the registry publishes one.
func (r *Resolver) selectVersion(record *domain.RegistryPackage, name, rng string) (string, error) {
	if rng == "latest" || rng == "*" {
		if tagged, ok := record.DistTags["latest"]; ok {
			if _, published := record.Versions[tagged]; published {
				return tagged, nil
			}
		}
	}

	available := make([]string, 0, len(record.Versions))
	for v := range record.Versions {
		available = append(available, v)
	}

	version, err := r.selector.Select(available, rng)
	if err != nil {
		return "", zerr.With(err, "package", name)
	}
	return version, nil
}

// sortedDependencies returns a declaration map as an ordered set sorted by
// name, so transitive resolution order is deterministic.
func sortedDependencies(deps map[string]string) domain.DependencySet {
	if len(deps) == 0 {
		return nil
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(domain.DependencySet, 0, len(names))
	for _, name := range names {
		out = append(out, domain.Dependency{Name: name, Range: deps[name]})
	}
	return out
}
