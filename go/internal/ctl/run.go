package ctl

import (
	"fmt"
	"strings"

	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	var caller models.Caller
	var privilege string

	cmd := &cobra.Command{
		Use:   "run <command line>",
		Short: "Run a chat command as a caller",
		Long: `Run a chat command exactly as if the caller had typed it in game.
Replies meant for the caller are delivered through the usual channels; the
command prints the countdown afterwards.`,
		Example: `  matchclockctl run --login admin --privilege admin /timeleft +5
  matchclockctl run --login admin --privilege masteradmin "/whitelist add bob"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller.Privilege = models.ParsePrivilege(privilege)

			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.rpc().RunCommand(ctx, strings.Join(args, " "), caller)
			if err != nil {
				return fmt.Errorf("failed to run command: %w", err)
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), st)
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}

	cmd.Flags().StringVar(&caller.Login, "login", "", "caller login")
	cmd.Flags().StringVar(&caller.Nickname, "nickname", "", "caller nickname shown in announcements")
	cmd.Flags().StringVar(&privilege, "privilege", "none", "caller privilege: none, operator, admin or masteradmin")
	_ = cmd.MarkFlagRequired("login")
	return cmd
}
