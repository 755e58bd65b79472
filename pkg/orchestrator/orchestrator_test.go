package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/mobdef/pkg/config"
	"github.com/glorpus-work/mobdef/pkg/download"
	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
	"github.com/glorpus-work/mobdef/pkg/index"
	"github.com/glorpus-work/mobdef/pkg/lockfile"
	"github.com/glorpus-work/mobdef/pkg/model"
	"github.com/glorpus-work/mobdef/pkg/orchestrator/mocks"
	"github.com/glorpus-work/mobdef/pkg/resolve"
)

func testSettings() *config.Settings {
	return &config.Settings{
		Defaults: config.Defaults{Repository: "f-droid", AppType: "user", HashType: "sha256"},
		AppTypes: map[string]string{"user": "user-apps", "system": "system-apps"},
		Repositories: []*model.Repository{
			{ID: "f-droid", Name: "F-Droid", URL: "https://repo"},
		},
		Apps: []model.AppDeclaration{
			{ID: "org.example.app"},
			{URL: "https://host/x/custom-1.0.apk"},
		},
	}
}

func TestLockSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()
	definitionPath := t.TempDir()

	entries := []model.LockEntry{
		{ID: "org.example.app", PackageName: "org.example.app_3.apk", PackageURL: "https://repo/org.example.app_3.apk", Repository: "f-droid"},
		{PackageName: "custom-1.0.apk", PackageURL: "https://host/x/custom-1.0.apk"},
	}

	idx := mocks.NewMockIndexProvider(ctrl)
	idx.EXPECT().LoadAll(gomock.Any(), settings.Repositories).Return(map[string]*index.RepositoryData{}).Times(1)

	resolver := mocks.NewMockAppResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), settings.Apps, resolve.Options{
		DefaultRepository: "f-droid",
		DefaultAppType:    "user",
		DefaultHashType:   "sha256",
	}).Return(resolve.Result{Entries: entries}).Times(1)

	// No warnings, so the confirm gate must stay silent.
	prompt := mocks.NewMockConfirmer(ctrl)

	orch := &Orchestrator{Index: idx, Resolver: resolver, Prompt: prompt}
	require.NoError(t, orch.Lock(context.Background(), definitionPath, settings, LockOptions{}))

	loaded, err := lockfile.Load(definitionPath)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestLockForceLatestPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()

	idx := mocks.NewMockIndexProvider(ctrl)
	idx.EXPECT().LoadAll(gomock.Any(), gomock.Any()).Return(nil)

	resolver := mocks.NewMockAppResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Cond(func(opts resolve.Options) bool {
		return opts.ForceLatest
	})).Return(resolve.Result{})

	orch := &Orchestrator{Index: idx, Resolver: resolver}
	require.NoError(t, orch.Lock(context.Background(), t.TempDir(), settings, LockOptions{ForceLatest: true}))
}

func TestLockWarningsDeclined(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()
	definitionPath := t.TempDir()

	idx := mocks.NewMockIndexProvider(ctrl)
	idx.EXPECT().LoadAll(gomock.Any(), gomock.Any()).Return(nil)

	resolver := mocks.NewMockAppResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(resolve.Result{Warnings: []string{"app `org.missing` is missing"}})

	prompt := mocks.NewMockConfirmer(ctrl)
	prompt.EXPECT().Confirm(gomock.Any(), false).Return(false).Times(1)

	orch := &Orchestrator{Index: idx, Resolver: resolver, Prompt: prompt}
	err := orch.Lock(context.Background(), definitionPath, settings, LockOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrResolutionDeclined))

	// Declining must not leave a lock file behind.
	_, statErr := os.Stat(lockfile.Path(definitionPath))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLockWarningsAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()
	definitionPath := t.TempDir()
	entries := []model.LockEntry{{PackageName: "ok.apk", PackageURL: "https://host/ok.apk"}}

	idx := mocks.NewMockIndexProvider(ctrl)
	idx.EXPECT().LoadAll(gomock.Any(), gomock.Any()).Return(nil)

	resolver := mocks.NewMockAppResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(resolve.Result{Entries: entries, Warnings: []string{"app `org.missing` is missing"}})

	prompt := mocks.NewMockConfirmer(ctrl)
	prompt.EXPECT().Confirm(gomock.Any(), false).Return(true).Times(1)

	orch := &Orchestrator{Index: idx, Resolver: resolver, Prompt: prompt}
	require.NoError(t, orch.Lock(context.Background(), definitionPath, settings, LockOptions{}))

	loaded, err := lockfile.Load(definitionPath)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestDownloadAllSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()
	definitionPath := t.TempDir()
	cacheDir := t.TempDir()

	entries := []model.LockEntry{
		{PackageName: "a.apk", PackageURL: "https://host/a.apk", Type: "user"},
		{PackageName: "b.apk", PackageURL: "https://host/b.apk", Type: "system"},
	}

	dl := mocks.NewMockFetcher(ctrl)
	dl.EXPECT().Fetch(gomock.Any(),
		download.Item{URL: "https://host/a.apk", Filename: "a.apk"},
		download.Options{CacheDir: cacheDir, Dir: filepath.Join(definitionPath, "archive", "user-apps")}).
		Return(&model.FetchResult{Status: model.FetchStatusFull, BytesTransferred: 10}, nil).Times(1)
	dl.EXPECT().Fetch(gomock.Any(),
		download.Item{URL: "https://host/b.apk", Filename: "b.apk"},
		download.Options{CacheDir: cacheDir, Dir: filepath.Join(definitionPath, "archive", "system-apps")}).
		Return(&model.FetchResult{Status: model.FetchStatusAlreadyComplete}, nil).Times(1)

	orch := &Orchestrator{DL: dl}
	err := orch.DownloadAll(context.Background(), definitionPath, settings, entries, DownloadOptions{CacheDir: cacheDir})
	require.NoError(t, err)
}

func TestDownloadAllFetchFailureHaltsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()
	definitionPath := t.TempDir()
	cacheDir := t.TempDir()

	entries := []model.LockEntry{
		{PackageName: "a.apk", PackageURL: "https://host/a.apk"},
		{PackageName: "b.apk", PackageURL: "https://host/b.apk"},
	}

	dl := mocks.NewMockFetcher(ctrl)
	// Strict sequential mode: the failing first entry halts the batch and the
	// second entry is never fetched.
	dl.EXPECT().Fetch(gomock.Any(), gomock.Cond(func(item download.Item) bool {
		return item.Filename == "a.apk"
	}), gomock.Any()).Return(nil, pkgerrors.ErrDownloadFailed).Times(1)

	orch := &Orchestrator{DL: dl}
	err := orch.DownloadAll(context.Background(), definitionPath, settings, entries, DownloadOptions{CacheDir: cacheDir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrDownloadFailed))
	assert.Contains(t, err.Error(), "a.apk")
	assert.Contains(t, err.Error(), "https://host/a.apk")
}

func TestDownloadAllVerifiesHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()
	definitionPath := t.TempDir()
	cacheDir := t.TempDir()

	content := []byte("apk content")
	sum := sha256.Sum256(content)
	artifact := filepath.Join(t.TempDir(), "a.apk")
	require.NoError(t, os.WriteFile(artifact, content, 0o644))

	entries := []model.LockEntry{
		{PackageName: "a.apk", PackageURL: "https://host/a.apk", Hash: hex.EncodeToString(sum[:]), HashType: "sha256"},
	}

	dl := mocks.NewMockFetcher(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&model.FetchResult{Status: model.FetchStatusFull, Path: artifact, BytesTransferred: int64(len(content))}, nil)

	orch := &Orchestrator{DL: dl}
	require.NoError(t, orch.DownloadAll(context.Background(), definitionPath, settings, entries, DownloadOptions{CacheDir: cacheDir}))

	// A wrong declared hash is fatal for the batch.
	entries[0].Hash = "deadbeef"
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&model.FetchResult{Status: model.FetchStatusAlreadyComplete, Path: artifact}, nil)

	err := orch.DownloadAll(context.Background(), definitionPath, settings, entries, DownloadOptions{CacheDir: cacheDir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrFileHashMismatch))
}

func TestDownloadAllParallelReportsDeterministically(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()
	definitionPath := t.TempDir()
	cacheDir := t.TempDir()

	entries := []model.LockEntry{
		{PackageName: "a.apk", PackageURL: "https://host/a.apk"},
		{PackageName: "b.apk", PackageURL: "https://host/b.apk"},
		{PackageName: "c.apk", PackageURL: "https://host/c.apk"},
	}

	dl := mocks.NewMockFetcher(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&model.FetchResult{Status: model.FetchStatusFull, BytesTransferred: 1}, nil).Times(3)

	var events []Event
	orch := &Orchestrator{DL: dl, Hooks: Hooks{OnEvent: func(e Event) {
		if e.Phase == "done" {
			events = append(events, e)
		}
	}}}

	err := orch.DownloadAll(context.Background(), definitionPath, settings, entries, DownloadOptions{CacheDir: cacheDir, Concurrency: 3})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "3 apps downloaded", events[0].Msg)
}

func TestDownloadAllCancelledBatchIsNotSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settings := testSettings()
	definitionPath := t.TempDir()
	cacheDir := t.TempDir()

	entries := []model.LockEntry{
		{PackageName: "a.apk", PackageURL: "https://host/a.apk"},
		{PackageName: "b.apk", PackageURL: "https://host/b.apk"},
	}

	// An already-cancelled context (an interrupted run) must not fetch
	// anything and must not report the batch as done.
	dl := mocks.NewMockFetcher(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var events []Event
	orch := &Orchestrator{DL: dl, Hooks: Hooks{OnEvent: func(e Event) {
		if e.Phase == "done" {
			events = append(events, e)
		}
	}}}

	err := orch.DownloadAll(ctx, definitionPath, settings, entries, DownloadOptions{CacheDir: cacheDir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, events)
}

func TestDownloadAllRequiresAbsoluteCacheDir(t *testing.T) {
	orch := &Orchestrator{DL: mocks.NewMockFetcher(gomock.NewController(t))}
	err := orch.DownloadAll(context.Background(), t.TempDir(), testSettings(), nil, DownloadOptions{CacheDir: "relative/cache"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidPath))
}
