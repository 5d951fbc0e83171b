package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/mcdev12/matchclock/go/internal/timer"
)

// Client calls a remote TimerService.
type Client struct {
	getStatus  *connect.Client[GetStatusRequest, GetStatusResponse]
	runCommand *connect.Client[RunCommandRequest, RunCommandResponse]
	reload     *connect.Client[ReloadRequest, ReloadResponse]
}

// NewClient creates a client for the service at baseURL, e.g.
// http://localhost:8080.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &Client{
		getStatus:  connect.NewClient[GetStatusRequest, GetStatusResponse](httpClient, baseURL+GetStatusProcedure, opts...),
		runCommand: connect.NewClient[RunCommandRequest, RunCommandResponse](httpClient, baseURL+RunCommandProcedure, opts...),
		reload:     connect.NewClient[ReloadRequest, ReloadResponse](httpClient, baseURL+ReloadProcedure, opts...),
	}
}

func (c *Client) Status(ctx context.Context) (timer.Status, error) {
	resp, err := c.getStatus.CallUnary(ctx, connect.NewRequest(&GetStatusRequest{}))
	if err != nil {
		return timer.Status{}, err
	}
	return resp.Msg.Status, nil
}

func (c *Client) RunCommand(ctx context.Context, line string, caller models.Caller) (timer.Status, error) {
	resp, err := c.runCommand.CallUnary(ctx, connect.NewRequest(&RunCommandRequest{Line: line, Caller: caller}))
	if err != nil {
		return timer.Status{}, err
	}
	return resp.Msg.Status, nil
}

func (c *Client) Reload(ctx context.Context) ([]string, error) {
	resp, err := c.reload.CallUnary(ctx, connect.NewRequest(&ReloadRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg.Warnings, nil
}
