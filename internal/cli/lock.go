package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/mobdef/internal/logger"
	"github.com/glorpus-work/mobdef/pkg/fsutil"
	"github.com/glorpus-work/mobdef/pkg/index"
	"github.com/glorpus-work/mobdef/pkg/orchestrator"
	"github.com/glorpus-work/mobdef/pkg/resolve"
)

// NewLockCmd creates the lock command.
func NewLockCmd() *cobra.Command {
	var forceLatest bool

	cmd := &cobra.Command{
		Use:   "lock <definition>",
		Short: "Create the apps lock file for a definition",
		Long: `Resolve the definition's declared apps against the configured
repositories and write the apps lock file. Repository indexes are downloaded
into the workspace resource cache on first use and reused afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLock(cmd, args[0], forceLatest)
		},
	}

	cmd.Flags().BoolVar(&forceLatest, "force-latest", false, "Force using the latest app versions, ignoring versioncode pins")

	return cmd
}

func runLock(cmd *cobra.Command, name string, forceLatest bool) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	definitionPath, settings, err := loadDefinition(ws, name)
	if err != nil {
		return err
	}

	if err := fsutil.EnsureDir(ws.ResourcesDir()); err != nil {
		return fmt.Errorf("failed to create resources directory: %w", err)
	}

	prompt := NewTerminalConfirmer()
	orch := &orchestrator.Orchestrator{
		Index:    index.NewProvider(ws.ResourcesDir(), defaultHTTPTimeout, userAgent),
		Resolver: resolve.New(nil),
		DL:       nil,
		Prompt:   prompt,
	}

	if err := orch.Lock(cmd.Context(), definitionPath, settings, orchestrator.LockOptions{ForceLatest: forceLatest}); err != nil {
		return err
	}
	logger.Success("Lock file created", logger.Fields{"definition": name})

	if prompt.Confirm("Download apps now?", true) {
		return downloadApps(cmd, ws, name, defaultCPU, 0)
	}
	return nil
}
