package main

import "github.com/spf13/cobra"

func newSessionsCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "sessions <project>",
		Short: "List a project's aggregated sessions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			page, err := svc.Sessions(args[0], limit, offset)
			if err != nil {
				return err
			}
			return printJSON(page)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}

func newMessagesCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "messages <project> <session>",
		Short: "Dump one session's raw log entries, oldest first",
		Long: "Dump one session's raw log entries sorted by " +
			"timestamp. With --limit, --offset counts back from " +
			"the newest entry, so offset 0 is the latest page.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			page, err := svc.Messages(args[0], args[1], limit, offset)
			if err != nil {
				return err
			}
			return printJSON(page)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (0 = all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "entries back from the newest")
	return cmd
}
