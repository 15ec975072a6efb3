package registry

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxTarballFileSize caps a single extracted file to guard against
// decompression bombs.
const maxTarballFileSize int64 = 1 << 30

// Download fetches and extracts the identity's tarball into targetPath.
// Concurrent calls for the same (identity, target) share one execution and
// one outcome; the in-flight entry is cleared when the operation settles.
func (c *Client) Download(ctx context.Context, id domain.Identity, targetPath string) error {
	key := id.String() + ":" + targetPath
	_, err, _ := c.downloads.Do(key, func() (any, error) {
		return nil, c.download(ctx, id, targetPath)
	})
	return err
}

func (c *Client) download(ctx context.Context, id domain.Identity, targetPath string) error {
	pkg, err := c.PackageMetadata(ctx, id.Name)
	if err != nil {
		return err
	}

	record, ok := pkg.Versions[id.Version]
	if !ok {
		return zerr.With(domain.ErrVersionNotFound, "package", id.String())
	}
	if record.Dist.Tarball == "" {
		return zerr.With(zerr.Wrap(errors.New("version record has no tarball"), domain.ErrDownloadFailed.Error()), "package", id.String())
	}

	// Unique staging directory per download, so unrelated concurrent
	// downloads never collide. Removed on every exit path.
	staging, err := os.MkdirTemp("", "pakt-download-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	defer func() {
		_ = os.RemoveAll(staging)
	}()

	tarballPath := filepath.Join(staging, "package.tgz")
	if err := c.fetchTarball(ctx, record.Dist.Tarball, tarballPath); err != nil {
		return zerr.With(err, "package", id.String())
	}

	if err := extractTarball(tarballPath, targetPath, maxTarballFileSize); err != nil {
		return zerr.With(err, "package", id.String())
	}

	return nil
}

// fetchTarball streams the tarball at tarballURL into path.
func (c *Client) fetchTarball(ctx context.Context, tarballURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tarballURL, http.NoBody)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return zerr.With(domain.ErrDownloadFailed, "status_code", resp.StatusCode)
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm) //nolint:gosec // Path is inside our staging directory
	if err != nil {
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return zerr.Wrap(err, domain.ErrDownloadFailed.Error())
	}
	return out.Close()
}

// extractTarball unpacks a gzip-compressed tarball into targetPath, stripping
// exactly one top-level wrapper directory (the archive convention of wrapping
// package contents in a single directory, conventionally "package/"). Any
// single entry larger than limit bytes fails the extraction.
func extractTarball(tarballPath, targetPath string, limit int64) error {
	f, err := os.Open(tarballPath) //nolint:gosec // Path is inside our staging directory
	if err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	gz, err := gzip.NewReader(f)
	if err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}
	defer gz.Close() //nolint:errcheck // Best effort close in defer

	if err := os.MkdirAll(targetPath, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, domain.ErrExtractFailed.Error())
		}

		rel, ok := stripWrapper(header.Name)
		if !ok {
			continue
		}
		dest, err := securePath(targetPath, rel)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
				return zerr.Wrap(err, domain.ErrExtractFailed.Error())
			}
		case tar.TypeReg:
			if err := writeEntry(reader, dest, header, limit); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, dest); err != nil {
				return zerr.Wrap(err, domain.ErrExtractFailed.Error())
			}
		default:
			// Hardlinks, devices and the like do not occur in package
			// tarballs; skip them rather than fail.
		}
	}
}

// stripWrapper drops the first path element of an archive entry name.
// Entries with no content below the wrapper are skipped.
func stripWrapper(name string) (string, bool) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	idx := strings.IndexByte(name, '/')
	if idx < 0 || idx == len(name)-1 {
		return "", false
	}
	return name[idx+1:], true
}

// securePath joins rel under root and rejects traversal outside it.
func securePath(root, rel string) (string, error) {
	dest := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(dest, filepath.Clean(root)+string(os.PathSeparator)) {
		return "", zerr.With(domain.ErrExtractFailed, "entry", rel)
	}
	return dest, nil
}

func writeEntry(reader *tar.Reader, dest string, header *tar.Header, limit int64) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}

	perm := os.FileMode(header.Mode).Perm() //nolint:gosec // Mode comes from the archive, masked to permission bits
	if perm == 0 {
		perm = domain.FilePerm
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec // Path verified by securePath
	if err != nil {
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}

	// Read one byte past the cap so an oversized entry fails loudly
	// instead of being silently truncated.
	written, err := io.Copy(out, io.LimitReader(reader, limit+1))
	if err != nil {
		_ = out.Close()
		return zerr.Wrap(err, domain.ErrExtractFailed.Error())
	}
	if written > limit {
		_ = out.Close()
		return zerr.With(zerr.With(domain.ErrExtractFailed, "entry", header.Name), "limit_bytes", limit)
	}
	return out.Close()
}
