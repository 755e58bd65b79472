// Package lockfile persists and loads the resolved app manifest of a
// definition. The lock file is load-bearing for reproducible downloads, so a
// write either completes atomically or leaves the previous file untouched.
package lockfile

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
	"github.com/glorpus-work/mobdef/pkg/fsutil"
	"github.com/glorpus-work/mobdef/pkg/model"
)

// FileName is the fixed name of the lock document inside a definition.
const FileName = "apps_lock.yaml"

// yamlIndent is the number of spaces used for YAML indentation.
const yamlIndent = 2

// Path returns the lock file location for a definition.
func Path(definitionPath string) string {
	return filepath.Join(definitionPath, FileName)
}

// Persist serializes the ordered lock entries to the definition's lock file.
// The document is written to a temp name and renamed so a failed write never
// leaves a misleadingly valid partial lock file.
func Persist(definitionPath string, entries []model.LockEntry) error {
	path := Path(definitionPath)
	if err := fsutil.EnsureFileDir(path); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrLockWrite, err.Error())
	}

	tmp, err := os.CreateTemp(definitionPath, "apps_lock-*.tmp")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrLockWrite, err.Error())
	}
	tmpPath := tmp.Name()

	encoder := yaml.NewEncoder(tmp)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(entries); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(pkgerrors.ErrLockWrite, err.Error())
	}
	if err := encoder.Close(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(pkgerrors.ErrLockWrite, err.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(pkgerrors.ErrLockWrite, err.Error())
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return pkgerrors.Wrap(pkgerrors.ErrLockWrite, err.Error())
	}
	if err := os.Chmod(path, fsutil.FileModeDefault); err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrLockWrite, err.Error())
	}
	return nil
}

// Load deserializes the definition's lock file. A missing or malformed lock
// file is a fatal precondition failure for downloads.
func Load(definitionPath string) ([]model.LockEntry, error) {
	data, err := os.ReadFile(Path(definitionPath))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrLockLoad, err.Error())
	}

	var entries []model.LockEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrLockLoad, err.Error())
	}
	return entries, nil
}
