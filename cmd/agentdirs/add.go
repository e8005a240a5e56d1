package main

import "github.com/spf13/cobra"

func newAddCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Provision and register a project under the workspace root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			res, err := svc.Add(args[0], displayName)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}
	cmd.Flags().StringVar(
		&displayName, "name", "",
		"display name override for the new project",
	)
	return cmd
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <project> <display-name>",
		Short: "Set a project's display name (empty string clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			return svc.Rename(args[0], args[1])
		},
	}
}
