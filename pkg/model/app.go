// Package model provides the data structures shared by the resolution and
// download engine: app declarations, repositories, lock entries and fetch
// results.
package model

import (
	"net/url"
	"path"
	"strings"
)

// VersionLatest is the version selection that picks the newest available
// package in a repository.
const VersionLatest = "latest"

// AppDeclaration is one entry of the declared app list in a definition's
// settings document. Either URL is set (direct artifact) or ID is set
// (repository lookup).
type AppDeclaration struct {
	ID          string `yaml:"id,omitempty"`
	Name        string `yaml:"name,omitempty"`
	URL         string `yaml:"url,omitempty"`
	Repository  string `yaml:"repository,omitempty"`
	VersionCode string `yaml:"versioncode,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Hash        string `yaml:"hash,omitempty"`
	HashType    string `yaml:"hash_type,omitempty"`
}

// IsDirect reports whether the declaration points at a downloadable artifact
// directly, without a repository lookup.
func (a *AppDeclaration) IsDirect() bool {
	return a.URL != ""
}

// IsLookup reports whether the declaration must be matched against a
// repository index.
func (a *AppDeclaration) IsLookup() bool {
	return !a.IsDirect() && a.ID != ""
}

// LockEntry is one resolved, downloadable artifact in the lock file.
type LockEntry struct {
	ID          string `yaml:"id,omitempty"`
	PackageName string `yaml:"package_name"`
	PackageURL  string `yaml:"package_url"`
	Repository  string `yaml:"repository,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Hash        string `yaml:"hash,omitempty"`
	HashType    string `yaml:"hash_type,omitempty"`
}

// PackageNameFromURL derives a package filename from the final path segment
// of a download URL. Returns an empty string when no usable segment exists.
func PackageNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// Repository describes one package repository a definition can resolve apps
// against. The parsed index is attached for the duration of a single
// resolution run only and is never persisted.
type Repository struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// IndexURL returns the location of the repository's index document.
func (r *Repository) IndexURL() string {
	return strings.TrimSuffix(r.URL, "/") + "/index.xml"
}
