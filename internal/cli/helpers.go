package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/glorpus-work/mobdef/pkg/config"
	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
)

// These variables will be set by the main package.
var (
	WorkspaceRoot *string
	Verbose       *bool
)

const (
	// defaultHTTPTimeout bounds index and artifact requests.
	defaultHTTPTimeout = 5 * time.Minute
	// userAgent identifies mobdef to repository servers.
	userAgent = "mobdef/" + Version
	// defaultCPU is the device CPU architecture assumed when none is given.
	// It selects the shared app cache directory.
	defaultCPU = "armeabi"
)

// loadWorkspace builds the workspace from the --workspace flag or the current
// directory.
func loadWorkspace() (*config.Workspace, error) {
	root := ""
	if WorkspaceRoot != nil {
		root = *WorkspaceRoot
	}
	return config.NewWorkspace(root)
}

// loadDefinition validates the definition name, checks that the definition
// exists and parses its settings document.
func loadDefinition(ws *config.Workspace, name string) (string, *config.Settings, error) {
	if !config.ValidateDefinitionName(name) {
		return "", nil, fmt.Errorf("invalid definition name %q: %w", name, pkgerrors.ErrInvalidPath)
	}
	definitionPath := ws.DefinitionPath(name)
	if _, err := os.Stat(definitionPath); err != nil {
		return "", nil, pkgerrors.Wrapf(pkgerrors.ErrDefinitionNotFound, "%q", name)
	}
	settings, err := config.LoadSettings(ws.SettingsPath(name))
	if err != nil {
		return "", nil, err
	}
	return definitionPath, settings, nil
}
