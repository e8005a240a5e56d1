package main

import "github.com/spf13/cobra"

func newCursorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cursor <project-or-path>",
		Short: "List secondary-store sessions for a project",
		Long: "List sessions from the content-addressed cursor " +
			"store. Accepts a project identifier (resolved to its " +
			"canonical path first) or an absolute path.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			sessions, err := svc.CursorSessions(args[0])
			if err != nil {
				return err
			}
			return printJSON(sessions)
		},
	}
}
