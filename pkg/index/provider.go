package index

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/mobdef/internal/logger"
	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
	"github.com/glorpus-work/mobdef/pkg/fsutil"
	"github.com/glorpus-work/mobdef/pkg/model"
)

// RepositoryData couples a repository descriptor with its parsed index for the
// duration of one resolution run.
type RepositoryData struct {
	Repository *model.Repository
	Index      *Index
}

// Provider downloads and locally caches repository index documents. An index
// already present in indexDir is used as-is: staleness is an accepted
// trade-off and the provider never revalidates.
type Provider struct {
	indexDir  string
	client    *http.Client
	userAgent string
}

// NewProvider creates an index provider caching into indexDir.
func NewProvider(indexDir string, timeout time.Duration, userAgent string) *Provider {
	if userAgent == "" {
		userAgent = "mobdef/1.0"
	}
	return &Provider{
		indexDir:  indexDir,
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// IndexPath returns the local cache location for a repository's index.
func (p *Provider) IndexPath(repoID string) string {
	return filepath.Join(p.indexDir, repoID+".index.xml")
}

// Ensure returns the parsed index of the repository, fetching the document
// into the local cache first when it is not already present.
func (p *Provider) Ensure(ctx context.Context, repo *model.Repository) (*Index, error) {
	path := p.IndexPath(repo.ID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := p.fetch(ctx, repo, path); err != nil {
			return nil, err
		}
	}
	return ParseIndexFromFile(path)
}

// LoadAll resolves the index of every repository. A repository whose index
// cannot be fetched or parsed is returned without index data; its
// declarations will resolve as warnings rather than aborting the run.
func (p *Provider) LoadAll(ctx context.Context, repos []*model.Repository) map[string]*RepositoryData {
	data := make(map[string]*RepositoryData, len(repos))
	for _, repo := range repos {
		entry := &RepositoryData{Repository: repo}
		idx, err := p.Ensure(ctx, repo)
		if err != nil {
			logger.Warnf("repository %s (%s): %v", repo.Name, repo.ID, err)
		} else {
			entry.Index = idx
		}
		data[repo.ID] = entry
	}
	return data
}

func (p *Provider) fetch(ctx context.Context, repo *model.Repository, path string) error {
	indexURL := repo.IndexURL()
	logger.Infof("Downloading the %s repository index from %s", repo.Name, indexURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, http.NoBody)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrIndexFetch, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d for %s: %w", resp.StatusCode, indexURL, pkgerrors.ErrIndexFetch)
	}

	if err := fsutil.EnsureFileDir(path); err != nil {
		return pkgerrors.Wrap(err, "could not create resource directory")
	}

	// The document is cached verbatim; write to a temp name so an interrupted
	// fetch never leaves a truncated index behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), "index-*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(pkgerrors.ErrIndexFetch, err.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not close temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(err, "could not finalize index file")
	}
	return nil
}
