package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/mobdef/internal/cli"
	"github.com/glorpus-work/mobdef/internal/logger"
)

var (
	workspaceRoot string
	verbose       bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mobdef",
		Short: "Manage mobile OS build definitions",
		Long: `mobdef manages per-project build definitions for mobile OS images:
- lock: resolve declared apps into a reproducible apps lock file
- download: fetch locked artifacts through a resumable, shared cache
- extract-update-binary: pull the recovery update-binary out of the OS zip`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := "info"
			if verbose {
				level = "debug"
			}
			logger.InitLogger(level)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&workspaceRoot, "workspace", "", "workspace root directory (default: current directory)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Set up CLI pkg variables
	cli.WorkspaceRoot = &workspaceRoot
	cli.Verbose = &verbose

	// Add subcommands
	cmd.AddCommand(
		cli.NewLockCmd(),
		cli.NewDownloadCmd(),
		cli.NewExtractUpdateBinaryCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
