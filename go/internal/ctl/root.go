package ctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mcdev12/matchclock/go/clients"
	"github.com/mcdev12/matchclock/go/internal/api"
	"github.com/spf13/cobra"
)

type options struct {
	server  string
	timeout time.Duration
	json    bool
}

// NewRootCmd builds the matchclockctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "matchclockctl",
		Short: "Inspect and control a running matchclock daemon",
		Long: `matchclockctl talks to the matchclock admin RPC. It can show the
countdown, run chat commands as a given caller, reload the config document
and check the daemon's health.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", envOr("MATCHCLOCK_ADDR", "http://localhost:8080"), "address of the matchclock daemon")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of text")

	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newReloadCmd(opts))
	root.AddCommand(newHealthCmd(opts))
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) base() *clients.BaseClient {
	base := clients.NewBaseClient(o.server)
	base.SetTimeout(o.timeout)
	return base
}

func (o *options) rpc() *api.Client {
	base := o.base()
	return api.NewClient(base.HTTPClient(), base.BaseURL())
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
