package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbergquist/agentdirs/internal/config"
	"github.com/mbergquist/agentdirs/internal/project"
)

// watchDebounce batches bursts of log writes into one change
// notification per project.
const watchDebounce = 500 * time.Millisecond

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the primary store, printing changed project identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			cache := project.NewDirCache()
			w, err := project.NewWatcher(
				cfg.ProjectsDir, watchDebounce, cache,
				func(ids []string) {
					for _, id := range ids {
						fmt.Println(id)
					}
				},
			)
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
}
