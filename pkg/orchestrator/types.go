//go:generate mockgen -destination=./mocks/orchestrator.go -package=mocks . IndexProvider,AppResolver,Fetcher,Confirmer

package orchestrator

import (
	"context"

	"github.com/glorpus-work/mobdef/pkg/download"
	"github.com/glorpus-work/mobdef/pkg/index"
	"github.com/glorpus-work/mobdef/pkg/model"
	"github.com/glorpus-work/mobdef/pkg/resolve"
)

// IndexProvider is the subset of the repository index provider used here.
type IndexProvider interface {
	LoadAll(ctx context.Context, repos []*model.Repository) map[string]*index.RepositoryData
}

// AppResolver converts declarations into lock entries.
type AppResolver interface {
	Resolve(repositories map[string]*index.RepositoryData, apps []model.AppDeclaration, opts resolve.Options) resolve.Result
}

// Fetcher handles resumable artifact downloading.
type Fetcher interface {
	Fetch(ctx context.Context, item download.Item, opts download.Options) (*model.FetchResult, error)
}

// Confirmer asks the user a yes/no question. It gates proceeding past
// resolution warnings.
type Confirmer interface {
	Confirm(prompt string, defaultAnswer bool) bool
}

// Orchestrator ties index provider, resolver, lock file and downloader
// together for the lock and download operations of a definition.
type Orchestrator struct {
	Index    IndexProvider
	Resolver AppResolver
	DL       Fetcher
	Prompt   Confirmer
	Hooks    Hooks
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|locking|downloading|done
	ID    string // app id or package name
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// LockOptions control lock-file creation.
type LockOptions struct {
	// ForceLatest overrides explicit versioncode pins with "latest".
	ForceLatest bool
}

// DownloadOptions control lock-file replay.
type DownloadOptions struct {
	// CacheDir is the shared content cache directory.
	CacheDir string
	// Concurrency is the number of parallel downloads; values below 2 keep
	// the strict sequential behavior.
	Concurrency int
}
