package ctl

import (
	"errors"
	"fmt"

	"github.com/mcdev12/matchclock/go/clients"
	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("daemon is unhealthy")

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the daemon's dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			status, err := clients.NewHealthClient(opts.base()).Check(ctx)
			if err != nil {
				return fmt.Errorf("failed to check health: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				if err := printJSON(out, status); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "database: %s\n", upDown(status.DatabaseConnected))
				fmt.Fprintf(out, "nats:     %s\n", upDown(status.NATSConnected))
				fmt.Fprintf(out, "timer:    %s\n", upDown(status.TimerResponsive))
				for _, e := range status.Errors {
					fmt.Fprintf(out, "error: %s\n", e)
				}
			}
			if !status.Healthy {
				return errUnhealthy
			}
			return nil
		},
	}
}

func upDown(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}
