package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbergquist/agentdirs/internal/config"
	"github.com/mbergquist/agentdirs/internal/project"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "agentdirs",
		Short:         "Discover and provision coding-agent project directories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newListCmd(),
		newAddCmd(),
		newRenameCmd(),
		newSessionsCmd(),
		newMessagesCmd(),
		newRmSessionCmd(),
		newRmCmd(),
		newCursorCmd(),
		newWatchCmd(),
	)
	return root
}

// newService loads configuration and wires a project service.
func newService() (*project.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return project.NewService(cfg), nil
}

// printJSON writes v to stdout, indented for human eyes and
// still machine-parseable by the UI layer.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
