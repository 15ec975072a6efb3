// Package app implements the application layer for pakt.
package app

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	resolver  ports.DependencyResolver
	registry  ports.Registry
	store     ports.PackageStore
	linker    ports.Linker
	analytics ports.Analytics
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	resolver ports.DependencyResolver,
	registry ports.Registry,
	store ports.PackageStore,
	linker ports.Linker,
	analytics ports.Analytics,
	log ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		resolver:  resolver,
		registry:  registry,
		store:     store,
		linker:    linker,
		analytics: analytics,
		logger:    log,
	}
}

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	// ProjectDir is the project root holding pakt.yaml. Defaults to ".".
	ProjectDir string

	// Packages are new declarations to add before installing, each either
	// "name" or "name@range". A bare name is declared as a caret range on
	// the version it resolves to.
	Packages []string

	// Dev declares new packages under devDependencies.
	Dev bool

	// Parallel caps concurrent package materializations. Zero means one
	// worker per CPU.
	Parallel int
}

// InstalledEntry describes one materialized package.
type InstalledEntry struct {
	Identity domain.Identity
	CacheHit bool
	Strategy domain.LinkStrategy
}

// InstallResult summarizes one install run.
type InstallResult struct {
	Entries  []InstalledEntry
	Duration time.Duration
}

// CacheHits counts entries served from the store without a download.
func (r InstallResult) CacheHits() int {
	hits := 0
	for _, e := range r.Entries {
		if e.CacheHit {
			hits++
		}
	}
	return hits
}

// Install resolves the project's declarations into a flat tree and
// materializes every entry into the project's module directory.
func (a *App) Install(ctx context.Context, opts InstallOptions) (*InstallResult, error) {
	start := time.Now()

	dir := opts.ProjectDir
	if dir == "" {
		dir = "."
	}

	if err := a.declareNewPackages(ctx, dir, opts); err != nil {
		return nil, err
	}

	manifest, err := a.manifests.Load(dir)
	if err != nil {
		return nil, err
	}

	deps := manifest.AllDependencies()
	tree, err := a.resolver.Resolve(ctx, deps)
	if err != nil {
		return nil, err
	}

	entries, err := a.materialize(ctx, dir, tree, opts.Parallel)
	if err != nil {
		return nil, err
	}

	result := &InstallResult{
		Entries:  entries,
		Duration: time.Since(start),
	}
	a.logger.Info(fmt.Sprintf("installed %d packages (%d from cache) in %s",
		len(result.Entries), result.CacheHits(), result.Duration.Round(time.Millisecond)))

	return result, nil
}

// declareNewPackages resolves each requested package and writes its
// declaration into the manifest before the main resolution pass.
func (a *App) declareNewPackages(ctx context.Context, dir string, opts InstallOptions) error {
	for _, spec := range opts.Packages {
		name, rng := splitPackageSpec(spec)

		declared := rng
		if declared == "" || declared == "latest" {
			// Pin new declarations to a caret range on the resolved version.
			tree, err := a.resolver.Resolve(ctx, domain.DependencySet{{Name: name, Range: "latest"}})
			if err != nil {
				return err
			}
			declared = "^" + tree[name].Version
		}

		if err := a.manifests.AddDependency(dir, name, declared, opts.Dev); err != nil {
			return err
		}
		a.logger.Info("declared " + name + "@" + declared)
	}
	return nil
}

// materialize installs every tree entry: cached slots are linked directly,
// missing ones are downloaded and stored first. Entries install in parallel;
// each one is independent because the tree is flat.
func (a *App) materialize(ctx context.Context, dir string, tree domain.ResolvedTree, parallel int) ([]InstalledEntry, error) {
	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	var mu sync.Mutex
	entries := make([]InstalledEntry, 0, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, name := range names {
		id := domain.Identity{Name: name, Version: tree[name].Version}

		g.Go(func() error {
			entry, err := a.installOne(ctx, dir, id)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "package", id.String())
			}

			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Identity.Name < entries[j].Identity.Name })
	return entries, nil
}

// installOne materializes a single identity into the project tree and
// records its analytics event.
func (a *App) installOne(ctx context.Context, dir string, id domain.Identity) (InstalledEntry, error) {
	start := time.Now()
	cacheHit := a.store.Has(id)

	if !cacheHit {
		staging, err := os.MkdirTemp("", "pakt-install-*")
		if err != nil {
			return InstalledEntry{}, zerr.Wrap(err, domain.ErrDownloadFailed.Error())
		}
		defer func() { _ = os.RemoveAll(staging) }()

		if err := a.registry.Download(ctx, id, staging); err != nil {
			return InstalledEntry{}, err
		}
		if _, err := a.store.Store(id, staging); err != nil {
			return InstalledEntry{}, err
		}
	}

	strategy, err := a.linker.LinkToProject(a.store.PackagePath(id), dir, id.Name)
	if err != nil {
		return InstalledEntry{}, err
	}

	if err := a.store.Touch(id); err != nil {
		a.logger.Warn("could not update last-used for " + id.String() + ": " + err.Error())
	}

	var size int64
	if meta, err := a.store.Metadata(id); err == nil {
		size = meta.Size
	}

	if err := a.analytics.Record(ports.InstallEvent{
		Identity: id,
		CacheHit: cacheHit,
		Duration: time.Since(start),
		Size:     size,
		Strategy: strategy,
	}); err != nil {
		a.logger.Warn("could not record analytics: " + err.Error())
	}

	return InstalledEntry{Identity: id, CacheHit: cacheHit, Strategy: strategy}, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Days is the unused cutoff: packages last used more than Days days ago
	// are candidates.
	Days int

	// All removes every stored package regardless of last use.
	All bool

	// DryRun reports candidates without deleting anything.
	DryRun bool
}

// CleanResult summarizes one clean run.
type CleanResult struct {
	Candidates []domain.UnusedPackage
	Removed    int
	Partial    int
	FreedBytes int64
}

// Clean evicts unused packages from the store.
func (a *App) Clean(_ context.Context, opts CleanOptions) (*CleanResult, error) {
	days := opts.Days
	if opts.All {
		days = 0
	}

	unused, err := a.store.FindUnused(days)
	if err != nil {
		return nil, err
	}

	result := &CleanResult{Candidates: unused}
	if opts.DryRun {
		return result, nil
	}

	for _, pkg := range unused {
		res := a.store.Delete(pkg.Identity)
		switch {
		case res.Complete():
			result.Removed++
			result.FreedBytes += pkg.Size
		case res.SlotRemoved || res.MetadataRemoved:
			// Half-deleted: a later scan will pick up the leftover.
			result.Partial++
			if res.SlotRemoved {
				result.FreedBytes += pkg.Size
			}
		}
	}

	return result, nil
}

// Stats reports the physical contents of the store alongside the recorded
// usage counters.
func (a *App) Stats(_ context.Context) (domain.StoreStats, ports.AnalyticsSummary, error) {
	stats, err := a.store.Stats()
	if err != nil {
		return domain.StoreStats{}, ports.AnalyticsSummary{}, err
	}

	summary, err := a.analytics.Summary()
	if err != nil {
		return stats, ports.AnalyticsSummary{}, err
	}

	return stats, summary, nil
}

// splitPackageSpec splits "name@range" into its parts. Scoped names keep
// their leading "@": "@babel/core@^7.0.0" splits at the last separator.
func splitPackageSpec(spec string) (name, rng string) {
	if i := strings.LastIndex(spec, "@"); i > 0 {
		return spec[:i], spec[i+1:]
	}
	return spec, ""
}
