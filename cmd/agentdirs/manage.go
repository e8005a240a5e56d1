package main

import "github.com/spf13/cobra"

func newRmSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-session <project> <session>",
		Short: "Remove one session from a project's logs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			return svc.DeleteSession(args[0], args[1])
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project>",
		Short: "Delete an empty project and its registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			return svc.Delete(args[0])
		},
	}
}
