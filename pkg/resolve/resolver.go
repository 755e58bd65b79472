// Package resolve turns the declared app list of a definition into concrete
// lock entries. Resolution is best-effort over the whole declared set:
// unmatched declarations become warnings, never an immediate abort.
package resolve

import (
	"fmt"

	"github.com/glorpus-work/mobdef/internal/logger"
	"github.com/glorpus-work/mobdef/pkg/index"
	"github.com/glorpus-work/mobdef/pkg/model"
)

// LookupFunc matches one declaration against the parsed repository indexes.
// A nil result means no package matches the declared id and version.
type LookupFunc func(repositories map[string]*index.RepositoryData, decl model.AppDeclaration) *model.LockEntry

// Options control one resolution run.
type Options struct {
	// DefaultRepository fills declarations that omit their repository.
	DefaultRepository string
	// DefaultAppType fills declarations that omit their type.
	DefaultAppType string
	// DefaultHashType fills declarations carrying a hash without its type.
	DefaultHashType string
	// ForceLatest overrides explicit versioncode pins with "latest".
	ForceLatest bool
}

// Result is the outcome of resolving a declared app list.
type Result struct {
	// Entries are the resolved lock entries, in declaration order.
	Entries []model.LockEntry
	// Warnings narrate every declaration that could not be resolved.
	Warnings []string
}

// HasWarnings reports whether any declaration failed to resolve.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Resolver converts app declarations into lock entries.
type Resolver struct {
	lookup LookupFunc
}

// New creates a resolver using the given lookup capability. A nil lookup
// falls back to the built-in index lookup.
func New(lookup LookupFunc) *Resolver {
	if lookup == nil {
		lookup = index.Lookup
	}
	return &Resolver{lookup: lookup}
}

// Resolve processes the declarations in order. Direct-URL declarations never
// consult a repository; id declarations are delegated to the lookup with the
// effective version selection applied.
func (r *Resolver) Resolve(repositories map[string]*index.RepositoryData, apps []model.AppDeclaration, opts Options) Result {
	var result Result
	logger.Info("Looking for APKs")

	for _, decl := range apps {
		switch {
		case decl.IsDirect():
			result.Entries = append(result.Entries, directEntry(decl, opts))
			logger.Infof(" - adding `%s`", directLabel(decl))
		case decl.IsLookup():
			r.resolveLookup(repositories, decl, opts, &result)
		default:
			result.warnf("app declaration without url or id (name %q)", decl.Name)
		}
	}
	return result
}

func (r *Resolver) resolveLookup(repositories map[string]*index.RepositoryData, decl model.AppDeclaration, opts Options, result *Result) {
	if decl.Repository == "" {
		decl.Repository = opts.DefaultRepository
	}
	if decl.Type == "" {
		decl.Type = opts.DefaultAppType
	}
	if decl.Hash != "" && decl.HashType == "" {
		decl.HashType = opts.DefaultHashType
	}
	if opts.ForceLatest || decl.VersionCode == "" {
		decl.VersionCode = model.VersionLatest
	}

	entry := r.lookup(repositories, decl)
	if entry == nil {
		result.warnf("app `%s` is missing", decl.ID)
		return
	}

	repoName := entry.Repository
	if data, ok := repositories[entry.Repository]; ok && data.Repository != nil {
		repoName = data.Repository.Name
	}

	if decl.Hash != "" && entry.Hash != "" && decl.Hash != entry.Hash {
		result.warnf("mismatching hash for `%s` in the %s repository", decl.ID, repoName)
		return
	}

	logger.Infof(" - found `%s` in the %s repository", entry.ID, repoName)
	result.Entries = append(result.Entries, *entry)
}

func directEntry(decl model.AppDeclaration, opts Options) model.LockEntry {
	name := decl.Name
	if name == "" {
		name = model.PackageNameFromURL(decl.URL)
	}
	appType := decl.Type
	if appType == "" {
		appType = opts.DefaultAppType
	}
	hashType := decl.HashType
	if decl.Hash != "" && hashType == "" {
		hashType = opts.DefaultHashType
	}
	return model.LockEntry{
		ID:          decl.ID,
		PackageName: name,
		PackageURL:  decl.URL,
		Type:        appType,
		Hash:        decl.Hash,
		HashType:    hashType,
	}
}

func directLabel(decl model.AppDeclaration) string {
	if decl.ID != "" {
		return decl.ID
	}
	return model.PackageNameFromURL(decl.URL)
}

func (r *Result) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Warnf(" - %s", msg)
	r.Warnings = append(r.Warnings, msg)
}
