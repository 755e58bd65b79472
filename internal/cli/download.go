package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/mobdef/internal/logger"
	"github.com/glorpus-work/mobdef/pkg/config"
	"github.com/glorpus-work/mobdef/pkg/download"
	"github.com/glorpus-work/mobdef/pkg/lockfile"
	"github.com/glorpus-work/mobdef/pkg/orchestrator"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	var (
		cpu         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:     "download <definition>",
		Aliases: []string{"dl-apps"},
		Short:   "Download the apps listed in a definition's lock file",
		Long: `Download every artifact in the definition's apps lock file.
Downloads go through the workspace-wide content cache: interrupted transfers
are resumed with byte-range requests and completed artifacts are reused
without any network traffic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace()
			if err != nil {
				return err
			}
			return downloadApps(cmd, ws, args[0], cpu, concurrency)
		},
	}

	cmd.Flags().StringVar(&cpu, "cpu", defaultCPU, "Device CPU architecture; selects the shared app cache directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Number of parallel downloads (0 or 1 keeps strict sequential order)")

	return cmd
}

func downloadApps(cmd *cobra.Command, ws *config.Workspace, name, cpu string, concurrency int) error {
	definitionPath, settings, err := loadDefinition(ws, name)
	if err != nil {
		return err
	}

	entries, err := lockfile.Load(definitionPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		logger.Warn("Lock file contains no apps, nothing to download")
		return nil
	}

	verbose := Verbose != nil && *Verbose
	orch := &orchestrator.Orchestrator{
		DL: download.NewManager(defaultHTTPTimeout, userAgent),
		Hooks: orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
			if verbose && e.Phase == "downloading" {
				fmt.Printf(" - downloading: %s\n", e.Msg)
			}
		}},
	}

	return orch.DownloadAll(cmd.Context(), definitionPath, settings, entries, orchestrator.DownloadOptions{
		CacheDir:    ws.AppCacheDir(cpu),
		Concurrency: concurrency,
	})
}
