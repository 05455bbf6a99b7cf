package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/achievo/internal/model"
)

func newNotificationsCommand(opts *options) *cobra.Command {
	var (
		limit    int
		unread   bool
		markRead bool
	)

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Args:    cobra.NoArgs,
		Short:   "Show recent task notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()

			var list []model.Notification
			if unread {
				list, err = env.store.GetUnreadNotifications(ctx)
			} else {
				list, err = env.store.GetNotifications(ctx, limit)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "No notifications.")
			}
			for _, n := range list {
				mark := " "
				if !n.Read {
					mark = "*"
				}
				fmt.Fprintf(w, "%s %s  %s  %s\n", mark, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Title, n.Message)
			}

			if markRead {
				return env.store.MarkAllNotificationsRead(ctx)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum number to show")
	cmd.Flags().BoolVar(&unread, "unread", false, "show unread only")
	cmd.Flags().BoolVar(&markRead, "mark-read", false, "mark every notification read")

	return cmd
}
