package app_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/logger"
	"go.trai.ch/pakt/internal/app"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	manifests *mocks.MockManifestLoader
	resolver  *mocks.MockDependencyResolver
	registry  *mocks.MockRegistry
	store     *mocks.MockPackageStore
	linker    *mocks.MockLinker
	analytics *mocks.MockAnalytics
}

func newTestApp(t *testing.T) (*app.App, *testMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &testMocks{
		manifests: mocks.NewMockManifestLoader(ctrl),
		resolver:  mocks.NewMockDependencyResolver(ctrl),
		registry:  mocks.NewMockRegistry(ctrl),
		store:     mocks.NewMockPackageStore(ctrl),
		linker:    mocks.NewMockLinker(ctrl),
		analytics: mocks.NewMockAnalytics(ctrl),
	}

	log := logger.New()
	log.SetOutput(io.Discard)

	a := app.New(m.manifests, m.resolver, m.registry, m.store, m.linker, m.analytics, log)
	return a, m
}

func lodashManifest() *domain.Manifest {
	return &domain.Manifest{
		Name:         "my-app",
		Dependencies: domain.DependencySet{{Name: "lodash", Range: "^4.17.21"}},
	}
}

func lodashTree() domain.ResolvedTree {
	return domain.ResolvedTree{
		"lodash": {Version: "4.17.21"},
	}
}

func TestApp_Install_CacheMiss(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)
	id := domain.Identity{Name: "lodash", Version: "4.17.21"}

	m.manifests.EXPECT().Load(".").Return(lodashManifest(), nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), lodashManifest().AllDependencies()).Return(lodashTree(), nil)

	m.store.EXPECT().Has(id).Return(false)
	m.registry.EXPECT().Download(gomock.Any(), id, gomock.Any()).Return(nil)
	m.store.EXPECT().Store(id, gomock.Any()).Return("/cache/store/slot", nil)
	m.store.EXPECT().PackagePath(id).Return("/cache/store/slot")
	m.linker.EXPECT().LinkToProject("/cache/store/slot", ".", "lodash").Return(domain.LinkHardlink, nil)
	m.store.EXPECT().Touch(id).Return(nil)
	m.store.EXPECT().Metadata(id).Return(&domain.Metadata{Size: 2048}, nil)
	m.analytics.EXPECT().Record(gomock.Any()).DoAndReturn(func(event ports.InstallEvent) error {
		assert.Equal(t, id, event.Identity)
		assert.False(t, event.CacheHit)
		assert.Equal(t, int64(2048), event.Size)
		assert.Equal(t, domain.LinkHardlink, event.Strategy)
		return nil
	})

	result, err := a.Install(context.Background(), app.InstallOptions{})
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, id, result.Entries[0].Identity)
	assert.False(t, result.Entries[0].CacheHit)
	assert.Equal(t, domain.LinkHardlink, result.Entries[0].Strategy)
	assert.Equal(t, 0, result.CacheHits())
}

func TestApp_Install_CacheHit(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)
	id := domain.Identity{Name: "lodash", Version: "4.17.21"}

	m.manifests.EXPECT().Load(".").Return(lodashManifest(), nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(lodashTree(), nil)

	// Cached: no download, no store.
	m.store.EXPECT().Has(id).Return(true)
	m.store.EXPECT().PackagePath(id).Return("/cache/store/slot")
	m.linker.EXPECT().LinkToProject("/cache/store/slot", ".", "lodash").Return(domain.LinkHardlink, nil)
	m.store.EXPECT().Touch(id).Return(nil)
	m.store.EXPECT().Metadata(id).Return(&domain.Metadata{Size: 2048}, nil)
	m.analytics.EXPECT().Record(gomock.Any()).Return(nil)

	result, err := a.Install(context.Background(), app.InstallOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CacheHits())
}

func TestApp_Install_DeclaresNewPackage(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)
	id := domain.Identity{Name: "lodash", Version: "4.17.21"}

	// The bare name resolves at "latest" first, then is declared as a caret
	// range on the chosen version.
	m.resolver.EXPECT().
		Resolve(gomock.Any(), domain.DependencySet{{Name: "lodash", Range: "latest"}}).
		Return(lodashTree(), nil)
	m.manifests.EXPECT().AddDependency(".", "lodash", "^4.17.21", false).Return(nil)

	m.manifests.EXPECT().Load(".").Return(lodashManifest(), nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), lodashManifest().AllDependencies()).Return(lodashTree(), nil)

	m.store.EXPECT().Has(id).Return(true)
	m.store.EXPECT().PackagePath(id).Return("/cache/store/slot")
	m.linker.EXPECT().LinkToProject(gomock.Any(), ".", "lodash").Return(domain.LinkSymlink, nil)
	m.store.EXPECT().Touch(id).Return(nil)
	m.store.EXPECT().Metadata(id).Return(&domain.Metadata{Size: 10}, nil)
	m.analytics.EXPECT().Record(gomock.Any()).Return(nil)

	_, err := a.Install(context.Background(), app.InstallOptions{Packages: []string{"lodash"}})
	require.NoError(t, err)
}

func TestApp_Install_ExplicitRangeIsDeclaredVerbatim(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)

	m.manifests.EXPECT().AddDependency(".", "@babel/core", "^7.24.0", true).Return(nil)
	m.manifests.EXPECT().Load(".").Return(&domain.Manifest{
		DevDependencies: domain.DependencySet{{Name: "@babel/core", Range: "^7.24.0"}},
	}, nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(domain.ResolvedTree{}, nil)

	_, err := a.Install(context.Background(), app.InstallOptions{
		Packages: []string{"@babel/core@^7.24.0"},
		Dev:      true,
	})
	require.NoError(t, err)
}

func TestApp_Install_ResolveErrorPropagates(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)

	m.manifests.EXPECT().Load(".").Return(lodashManifest(), nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, domain.ErrNoMatchingVersion)

	_, err := a.Install(context.Background(), app.InstallOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrNoMatchingVersion.Error())
}

func TestApp_Install_LinkFailureWrapsInstallError(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)
	id := domain.Identity{Name: "lodash", Version: "4.17.21"}

	m.manifests.EXPECT().Load(".").Return(lodashManifest(), nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(lodashTree(), nil)
	m.store.EXPECT().Has(id).Return(true)
	m.store.EXPECT().PackagePath(id).Return("/cache/store/slot")
	m.linker.EXPECT().LinkToProject(gomock.Any(), ".", "lodash").Return(domain.LinkStrategy(""), domain.ErrLinkFailed)

	_, err := a.Install(context.Background(), app.InstallOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInstallFailed.Error())
	assert.Contains(t, err.Error(), domain.ErrLinkFailed.Error())
}

func TestApp_Clean_DryRun(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)
	unused := []domain.UnusedPackage{
		{Identity: domain.Identity{Name: "lodash", Version: "4.17.21"}, Size: 2048},
	}

	m.store.EXPECT().FindUnused(30).Return(unused, nil)
	// No Delete expectations: dry run must not remove anything.

	result, err := a.Clean(context.Background(), app.CleanOptions{Days: 30, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, unused, result.Candidates)
	assert.Zero(t, result.Removed)
	assert.Zero(t, result.FreedBytes)
}

func TestApp_Clean_RemovesUnused(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)
	idA := domain.Identity{Name: "lodash", Version: "4.17.21"}
	idB := domain.Identity{Name: "axios", Version: "0.27.2"}
	unused := []domain.UnusedPackage{
		{Identity: idA, Size: 2048},
		{Identity: idB, Size: 1024},
	}

	m.store.EXPECT().FindUnused(30).Return(unused, nil)
	m.store.EXPECT().Delete(idA).Return(domain.DeleteResult{SlotRemoved: true, MetadataRemoved: true})
	m.store.EXPECT().Delete(idB).Return(domain.DeleteResult{SlotRemoved: true, MetadataRemoved: false})

	result, err := a.Clean(context.Background(), app.CleanOptions{Days: 30})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 1, result.Partial)
	assert.Equal(t, int64(3072), result.FreedBytes)
}

func TestApp_Clean_AllIgnoresCutoff(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)

	m.store.EXPECT().FindUnused(0).Return(nil, nil)

	result, err := a.Clean(context.Background(), app.CleanOptions{Days: 30, All: true})
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
}

func TestApp_Stats(t *testing.T) {
	t.Parallel()

	a, m := newTestApp(t)
	stats := domain.StoreStats{PackageCount: 3, TotalSize: 3072, TotalSizeFormatted: "3.00 KB"}
	summary := ports.AnalyticsSummary{Installs: 12, CacheHits: 9}

	m.store.EXPECT().Stats().Return(stats, nil)
	m.analytics.EXPECT().Summary().Return(summary, nil)

	gotStats, gotSummary, err := a.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, gotStats)
	assert.Equal(t, summary, gotSummary)
}
