package config

import (
	"os"
	"path/filepath"
	"regexp"

	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
)

// definitionNamePattern limits definition names to lowercase letters, digits
// and hyphens, starting with a letter.
var definitionNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]+$`)

// Workspace carries the directory layout of one mobdef workspace. It replaces
// ambient global state: construct it once and pass it into every component.
type Workspace struct {
	Root string
}

// NewWorkspace returns a workspace rooted at the given directory. An empty
// root falls back to the current working directory.
func NewWorkspace(root string) (*Workspace, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to determine working directory")
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrInvalidPath, "workspace root %s: %s", root, err.Error())
	}
	return &Workspace{Root: abs}, nil
}

// ValidateDefinitionName reports whether name is an acceptable definition name.
func ValidateDefinitionName(name string) bool {
	return definitionNamePattern.MatchString(name)
}

// DefinitionPath returns the directory of a named definition.
func (w *Workspace) DefinitionPath(name string) string {
	return filepath.Join(w.Root, "definitions", name)
}

// SettingsPath returns the settings document of a named definition.
func (w *Workspace) SettingsPath(name string) string {
	return filepath.Join(w.DefinitionPath(name), SettingsFileName)
}

// ResourcesDir returns the workspace-wide resource cache directory.
func (w *Workspace) ResourcesDir() string {
	return filepath.Join(w.Root, "resources")
}

// AppCacheDir returns the shared, architecture-specific content cache for
// downloaded app artifacts. It is shared across all definitions in the
// workspace and is never evicted automatically.
func (w *Workspace) AppCacheDir(arch string) string {
	return filepath.Join(w.ResourcesDir(), arch+"-apps")
}
