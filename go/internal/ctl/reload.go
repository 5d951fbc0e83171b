package ctl

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReloadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Re-read the config document and allowlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			warnings, err := opts.rpc().Reload(ctx)
			if err != nil {
				return fmt.Errorf("failed to reload: %w", err)
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), map[string][]string{"warnings": warnings})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "reloaded")
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			return nil
		},
	}
}
