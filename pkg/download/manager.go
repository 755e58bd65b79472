// Package download implements resumable artifact acquisition against a
// shared content cache. A partial cache entry is continued with a byte-range
// request instead of re-transferring what is already on disk.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
	"github.com/glorpus-work/mobdef/pkg/fsutil"
	"github.com/glorpus-work/mobdef/pkg/model"
)

// Item represents one remote artifact to acquire.
type Item struct {
	URL      string // source URL to download
	Filename string // preferred filename; if empty, derived from the URL
}

// Options control where an item is cached and materialized.
type Options struct {
	// CacheDir is the shared content cache. Partial and complete artifacts
	// live here, keyed by filename, and are reused across definitions.
	CacheDir string
	// Dir is the destination directory inside the definition.
	Dir string
}

// ManagerImpl performs HTTP downloads with resume support. The cache file is
// the resumable state: transfers append to it directly, and only the
// materialization into the destination goes through a temp name and rename.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
}

// NewManager creates a new download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if userAgent == "" {
		userAgent = "mobdef/1.0"
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch acquires a single artifact into the shared cache and materializes it
// at its destination. The result reports whether the transfer was full,
// resumed, or skipped because the cache entry was already complete.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (*model.FetchResult, error) {
	if opts.CacheDir == "" || opts.Dir == "" {
		return nil, fmt.Errorf("cache and destination directories are required: %w", pkgerrors.ErrInvalidPath)
	}
	filename := item.Filename
	if filename == "" {
		filename = model.PackageNameFromURL(item.URL)
	}
	if filename == "" {
		return nil, fmt.Errorf("cannot derive filename from %s: %w", item.URL, pkgerrors.ErrInvalidPath)
	}
	if err := fsutil.EnsureDir(opts.CacheDir); err != nil {
		return nil, pkgerrors.Wrap(err, "could not create cache dir")
	}
	if err := fsutil.EnsureDir(opts.Dir); err != nil {
		return nil, pkgerrors.Wrap(err, "could not create download dir")
	}

	cachePath := filepath.Join(opts.CacheDir, filename)
	result, err := m.fillCache(ctx, item.URL, cachePath)
	if err != nil {
		return nil, err
	}

	destPath := filepath.Join(opts.Dir, filename)
	if err := materialize(cachePath, destPath); err != nil {
		return nil, err
	}
	result.Path = destPath
	return result, nil
}

// fillCache brings the cache entry up to the full artifact size, resuming
// from a partial entry when one exists.
func (m *ManagerImpl) fillCache(ctx context.Context, rawURL, cachePath string) (*model.FetchResult, error) {
	offset, err := fsutil.FileSize(cachePath)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "could not stat cache entry")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrDownloadFailed, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		// Full body, even if we asked for a range: restart from scratch.
		n, err := writeCache(cachePath, resp.Body, false)
		if err != nil {
			return nil, err
		}
		return &model.FetchResult{Status: model.FetchStatusFull, BytesTransferred: n}, nil
	case http.StatusPartialContent:
		n, err := writeCache(cachePath, resp.Body, true)
		if err != nil {
			return nil, err
		}
		return &model.FetchResult{Status: model.FetchStatusResumed, BytesTransferred: n, ResumedFrom: offset}, nil
	case http.StatusRequestedRangeNotSatisfiable:
		// Nothing left to transfer: the cache entry already holds the whole
		// artifact.
		return &model.FetchResult{Status: model.FetchStatusAlreadyComplete}, nil
	default:
		return nil, fmt.Errorf("unexpected status code %d for %s: %w", resp.StatusCode, rawURL, pkgerrors.ErrDownloadFailed)
	}
}

func writeCache(cachePath string, body io.Reader, appendMode bool) (int64, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(cachePath, flags, fsutil.FileModeDefault)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "could not open cache entry")
	}
	n, err := io.Copy(f, body)
	if err != nil {
		// Keep whatever made it to disk: the next run resumes from here.
		_ = f.Close()
		return n, pkgerrors.Wrap(pkgerrors.ErrDownloadFailed, err.Error())
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return n, pkgerrors.Wrap(err, "could not sync cache entry")
	}
	if err := f.Close(); err != nil {
		return n, pkgerrors.Wrap(err, "could not close cache entry")
	}
	return n, nil
}

// materialize copies the completed cache entry into the definition. The copy
// goes through a temp name in the destination directory so the final rename
// is atomic.
func materialize(cachePath, destPath string) error {
	src, err := os.Open(cachePath)
	if err != nil {
		return pkgerrors.Wrap(err, "could not open cache entry")
	}
	defer func() { _ = src.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(destPath), "dl-*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not write file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not close file")
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not finalize file")
	}
	if err := os.Chmod(destPath, fsutil.FileModeDefault); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	return nil
}
