package ctl

import (
	"fmt"
	"io"

	"github.com/mcdev12/matchclock/go/internal/timer"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.rpc().Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), st)
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func printStatus(w io.Writer, st timer.Status) {
	if !st.Active {
		fmt.Fprintln(w, "no round in progress")
		return
	}
	name := st.Match.Name
	if name == "" {
		name = st.Match.ID
	}
	fmt.Fprintf(w, "match:  %s\n", name)
	fmt.Fprintf(w, "time:   %s\n", st.Text)
	fmt.Fprintf(w, "colour: %s\n", st.Colour)
}
