package registry_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/adapters/registry"
	"go.trai.ch/pakt/internal/core/domain"
)

// buildTarball produces a gzip-compressed tarball whose entries live under a
// single "package/" wrapper directory, matching the registry convention.
func buildTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     "package/" + name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// tarballHandler serves lodash metadata and its 4.17.21 tarball, counting
// tarball requests.
func tarballHandler(t *testing.T, tarball []byte, fetches *atomic.Int64, release chan struct{}) func(req *http.Request) *http.Response {
	t.Helper()
	return func(req *http.Request) *http.Response {
		switch req.URL.Path {
		case "/lodash":
			return jsonResponse(http.StatusOK, lodashMetadata())
		case "/lodash/-/lodash-4.17.21.tgz":
			fetches.Add(1)
			if release != nil {
				<-release
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader(tarball)),
				Header:     make(http.Header),
			}
		default:
			return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(bytes.NewBufferString(""))}
		}
	}
}

func TestClient_Download(t *testing.T) {
	t.Parallel()

	t.Run("extracts stripping the wrapper directory", func(t *testing.T) {
		t.Parallel()

		tarball := buildTarball(t, map[string]string{
			"package.json": `{"name":"lodash","version":"4.17.21"}`,
			"index.js":     "module.exports = {}",
			"lib/util.js":  "exports.noop = () => {}",
		})

		var fetches atomic.Int64
		c := registry.NewClientWith(
			"https://registry.test",
			newMockClient(tarballHandler(t, tarball, &fetches, nil)),
			testLogger(),
		)

		target := filepath.Join(t.TempDir(), "lodash")
		err := c.Download(context.Background(), domain.NewIdentity("lodash", "4.17.21"), target)
		require.NoError(t, err)

		// The wrapper directory is gone; contents sit directly in target.
		data, err := os.ReadFile(filepath.Join(target, "index.js"))
		require.NoError(t, err)
		assert.Equal(t, "module.exports = {}", string(data))
		data, err = os.ReadFile(filepath.Join(target, "lib", "util.js"))
		require.NoError(t, err)
		assert.Equal(t, "exports.noop = () => {}", string(data))
		_, err = os.Stat(filepath.Join(target, "package"))
		assert.True(t, os.IsNotExist(err))

		assert.Equal(t, int64(1), fetches.Load())
	})

	t.Run("concurrent identical downloads share one fetch", func(t *testing.T) {
		t.Parallel()

		tarball := buildTarball(t, map[string]string{"index.js": "x"})
		release := make(chan struct{})
		var fetches atomic.Int64
		c := registry.NewClientWith(
			"https://registry.test",
			newMockClient(tarballHandler(t, tarball, &fetches, release)),
			testLogger(),
		)

		target := filepath.Join(t.TempDir(), "lodash")
		id := domain.NewIdentity("lodash", "4.17.21")

		var wg sync.WaitGroup
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, c.Download(context.Background(), id, target))
			}()
		}

		// Let every goroutine join the in-flight entry before the tarball
		// request is allowed to complete.
		for fetches.Load() == 0 {
			time.Sleep(time.Millisecond)
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int64(1), fetches.Load())
	})

	t.Run("unknown version", func(t *testing.T) {
		t.Parallel()

		c := registry.NewClientWith(
			"https://registry.test",
			newMockClient(tarballHandler(t, nil, &atomic.Int64{}, nil)),
			testLogger(),
		)

		err := c.Download(context.Background(), domain.NewIdentity("lodash", "9.9.9"), t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrVersionNotFound.Error())
	})

	t.Run("failed download can be retried", func(t *testing.T) {
		t.Parallel()

		tarball := buildTarball(t, map[string]string{"index.js": "x"})
		var attempts atomic.Int64
		client := newMockClient(func(req *http.Request) *http.Response {
			if req.URL.Path == "/lodash" {
				return jsonResponse(http.StatusOK, lodashMetadata())
			}
			// First tarball attempt fails, second succeeds.
			if attempts.Add(1) == 1 {
				return &http.Response{StatusCode: http.StatusBadGateway, Body: io.NopCloser(bytes.NewBufferString(""))}
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader(tarball)),
				Header:     make(http.Header),
			}
		})

		c := registry.NewClientWith("https://registry.test", client, testLogger())
		target := filepath.Join(t.TempDir(), "lodash")
		id := domain.NewIdentity("lodash", "4.17.21")

		err := c.Download(context.Background(), id, target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrDownloadFailed.Error())

		// The in-flight key was cleared on failure, so a retry runs afresh.
		require.NoError(t, c.Download(context.Background(), id, target))
		assert.Equal(t, int64(2), attempts.Load())
	})

	t.Run("corrupt tarball reports extraction failure", func(t *testing.T) {
		t.Parallel()

		client := newMockClient(func(req *http.Request) *http.Response {
			if req.URL.Path == "/lodash" {
				return jsonResponse(http.StatusOK, lodashMetadata())
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("not a tarball")),
				Header:     make(http.Header),
			}
		})

		c := registry.NewClientWith("https://registry.test", client, testLogger())
		err := c.Download(context.Background(), domain.NewIdentity("lodash", "4.17.21"), filepath.Join(t.TempDir(), "x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrExtractFailed.Error())
	})
}

func TestExtractTarball_FileSizeLimit(t *testing.T) {
	t.Parallel()

	writeTarball := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "package.tgz")
		require.NoError(t, os.WriteFile(path, buildTarball(t, map[string]string{
			"blob.bin": content,
		}), 0o644))
		return path
	}

	t.Run("oversized entry fails instead of truncating", func(t *testing.T) {
		t.Parallel()

		path := writeTarball(t, strings.Repeat("a", 65))
		target := filepath.Join(t.TempDir(), "out")

		err := registry.ExtractTarball(path, target, 64)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrExtractFailed)
	})

	t.Run("entry exactly at the limit extracts intact", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("a", 64)
		path := writeTarball(t, content)
		target := filepath.Join(t.TempDir(), "out")

		require.NoError(t, registry.ExtractTarball(path, target, 64))
		data, err := os.ReadFile(filepath.Join(target, "blob.bin"))
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})
}

func TestStripWrapper(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"conventional wrapper", "package/index.js", "index.js", true},
		{"nested", "package/lib/util.js", "lib/util.js", true},
		{"dot prefixed", "./package/index.js", "index.js", true},
		{"wrapper itself", "package/", "", false},
		{"no wrapper", "index.js", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := registry.StripWrapper(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
