package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/mobdef/internal/logger"
	"github.com/glorpus-work/mobdef/pkg/archive"
	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
)

// NewExtractUpdateBinaryCmd creates the extract-update-binary command.
func NewExtractUpdateBinaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract-update-binary <definition>",
		Short: "Extract the update-binary from the definition's OS archive",
		Long: `Extract the recovery update-binary from the OS zip in the workspace
resource cache into the definition's other/ directory. The OS archive file
name is derived from the definition's device codename and OS version.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtractUpdateBinary,
	}

	return cmd
}

func runExtractUpdateBinary(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	definitionPath, settings, err := loadDefinition(ws, args[0])
	if err != nil {
		return err
	}

	osZipPath := filepath.Join(ws.ResourcesDir(), settings.OSZipFileName())
	if _, err := os.Stat(osZipPath); err != nil {
		return pkgerrors.Wrapf(pkgerrors.ErrInvalidPath, "OS archive %q not found in resources", settings.OSZipFileName())
	}

	ok, err := archive.ContainsFile(cmd.Context(), osZipPath, archive.UpdateBinaryPath)
	if err != nil {
		return fmt.Errorf("failed to read OS archive %s: %w", osZipPath, err)
	}
	if !ok {
		return pkgerrors.Wrapf(pkgerrors.ErrInvalidPath, "OS archive %q has no %s", settings.OSZipFileName(), archive.UpdateBinaryPath)
	}

	destPath := filepath.Join(definitionPath, "other", "update-binary")
	if err := archive.ExtractFile(cmd.Context(), osZipPath, archive.UpdateBinaryPath, destPath); err != nil {
		return fmt.Errorf("failed to extract update-binary from %s: %w", osZipPath, err)
	}

	logger.Successf("Update binary extracted to %s", destPath)
	return nil
}
