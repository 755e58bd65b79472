package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/glorpus-work/mobdef/internal/logger"
	"github.com/glorpus-work/mobdef/pkg/config"
	"github.com/glorpus-work/mobdef/pkg/download"
	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
	"github.com/glorpus-work/mobdef/pkg/hash"
	"github.com/glorpus-work/mobdef/pkg/lockfile"
	"github.com/glorpus-work/mobdef/pkg/model"
	"github.com/glorpus-work/mobdef/pkg/resolve"
)

// archiveDir is the subdirectory of a definition that holds downloaded apps.
const archiveDir = "archive"

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Lock resolves the definition's declared apps and persists the lock file.
// Resolution warnings are aggregated and gated behind an explicit user
// confirmation; declining aborts without touching the lock file.
func (o *Orchestrator) Lock(ctx context.Context, definitionPath string, settings *config.Settings, opts LockOptions) error {
	if o.Index == nil || o.Resolver == nil {
		return fmt.Errorf("index provider and resolver are not configured")
	}

	emit(o.Hooks, Event{Phase: "resolving"})
	repositories := o.Index.LoadAll(ctx, settings.Repositories)

	result := o.Resolver.Resolve(repositories, settings.Apps, resolve.Options{
		DefaultRepository: settings.Defaults.Repository,
		DefaultAppType:    settings.Defaults.AppType,
		DefaultHashType:   settings.Defaults.HashType,
		ForceLatest:       opts.ForceLatest,
	})

	if result.HasWarnings() {
		if o.Prompt == nil || !o.Prompt.Confirm("Warnings found, some APKs will not be downloaded! Continue?", false) {
			return pkgerrors.ErrResolutionDeclined
		}
	}

	emit(o.Hooks, Event{Phase: "locking", Msg: lockfile.Path(definitionPath)})
	logger.Infof("Creating lock file %s", lockfile.Path(definitionPath))
	if err := lockfile.Persist(definitionPath, result.Entries); err != nil {
		return err
	}

	emit(o.Hooks, Event{Phase: "done", Msg: fmt.Sprintf("%d apps locked", len(result.Entries))})
	return nil
}

// DownloadAll replays the lock entries through the resumable fetcher. A fetch
// failure is fatal and halts the remaining batch: every artifact is a hard
// dependency of the build. With Concurrency above 1, independent entries are
// fetched in parallel; outcomes are still reported in entry order.
func (o *Orchestrator) DownloadAll(ctx context.Context, definitionPath string, settings *config.Settings, entries []model.LockEntry, opts DownloadOptions) error {
	if o.DL == nil {
		return fmt.Errorf("download manager is not configured")
	}
	if !filepath.IsAbs(opts.CacheDir) {
		return fmt.Errorf("cache dir must be absolute: %s: %w", opts.CacheDir, pkgerrors.ErrInvalidPath)
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]*model.FetchResult, len(entries))
	errs := make([]error, len(entries))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range entries {
		g.Go(func() error {
			if groupCtx.Err() != nil {
				errs[i] = groupCtx.Err()
				return nil
			}
			entry := entries[i]
			emit(o.Hooks, Event{Phase: "downloading", ID: entry.PackageName, Msg: entry.PackageURL})
			result, err := o.fetchEntry(groupCtx, definitionPath, settings, entry, opts)
			if err != nil {
				errs[i] = err
				return err
			}
			results[i] = result
			return nil
		})
	}
	// The group error is re-derived below in entry order so that reporting is
	// deterministic regardless of completion order.
	_ = g.Wait()

	for i, entry := range entries {
		if errs[i] != nil {
			if errors.Is(errs[i], context.Canceled) {
				continue
			}
			return pkgerrors.Wrapf(errs[i], "failed to download `%s` from %s", entry.PackageName, entry.PackageURL)
		}
		if results[i] != nil {
			narrate(entry, results[i])
		}
	}

	// Entries skipped by a cancellation carry no real error of their own, so
	// an interrupted run must not fall through to the success path.
	if err := ctx.Err(); err != nil {
		return err
	}

	emit(o.Hooks, Event{Phase: "done", Msg: fmt.Sprintf("%d apps downloaded", len(entries))})
	logger.Success("Finished downloading APKs and verifying their hash values")
	return nil
}

func (o *Orchestrator) fetchEntry(ctx context.Context, definitionPath string, settings *config.Settings, entry model.LockEntry, opts DownloadOptions) (*model.FetchResult, error) {
	destDir := filepath.Join(definitionPath, archiveDir, settings.AppDir(entry.Type))

	result, err := o.DL.Fetch(ctx,
		download.Item{URL: entry.PackageURL, Filename: entry.PackageName},
		download.Options{CacheDir: opts.CacheDir, Dir: destDir})
	if err != nil {
		return nil, err
	}

	if entry.Hash != "" {
		if err := hash.VerifyFile(result.Path, entry.HashType, entry.Hash); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func narrate(entry model.LockEntry, result *model.FetchResult) {
	switch result.Status {
	case model.FetchStatusFull:
		logger.Infof(" - downloaded `%s` (%s)", entry.PackageName, formatSize(result.BytesTransferred))
	case model.FetchStatusResumed:
		logger.Infof(" - download continued for `%s` (%s from offset %d)", entry.PackageName, formatSize(result.BytesTransferred), result.ResumedFrom)
	case model.FetchStatusAlreadyComplete:
		logger.Infof(" - `%s` already downloaded, using cached apk", entry.PackageName)
	}
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
