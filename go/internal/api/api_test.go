package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/mcdev12/matchclock/go/internal/commands"
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/mcdev12/matchclock/go/internal/orchestrator"
	"github.com/mcdev12/matchclock/go/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApp struct {
	status    timer.Status
	lines     []string
	callers   []models.Caller
	runErr    error
	statusErr error
	warnings  []string
}

func (a *fakeApp) Status(context.Context) (timer.Status, error) { return a.status, a.statusErr }

func (a *fakeApp) RunCommand(_ context.Context, line string, caller models.Caller) error {
	a.lines = append(a.lines, line)
	a.callers = append(a.callers, caller)
	return a.runErr
}

func (a *fakeApp) Reload(context.Context) ([]string, error) { return a.warnings, nil }

func newClient(t *testing.T, app *fakeApp) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(NewHandler(NewService(app)))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewClient(server.Client(), server.URL+"/")
}

func TestGetStatus(t *testing.T) {
	app := &fakeApp{status: timer.Status{
		Match:     models.MatchInfo{ID: "uid-1", Name: "A01"},
		Active:    true,
		Remaining: 125,
		Text:      "02:05 (m:s) until round end.",
		Colour:    "fff",
	}}
	c := newClient(t, app)

	st, err := c.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, app.status, st)
}

func TestRunCommand(t *testing.T) {
	app := &fakeApp{status: timer.Status{Remaining: 900}}
	c := newClient(t, app)
	caller := models.Caller{Login: "console", Privilege: models.PrivilegeMasterAdmin}

	st, err := c.RunCommand(context.Background(), "/timeleft 15", caller)

	require.NoError(t, err)
	assert.Equal(t, 900, st.Remaining)
	assert.Equal(t, []string{"/timeleft 15"}, app.lines)
	assert.Equal(t, []models.Caller{caller}, app.callers)
}

func TestRunCommand_RequiresLogin(t *testing.T) {
	c := newClient(t, &fakeApp{})

	_, err := c.RunCommand(context.Background(), "/timeleft", models.Caller{})

	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestRunCommand_ErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		code connect.Code
	}{
		{fmt.Errorf("%w: %q", commands.ErrUnknownCommand, "nope"), connect.CodeInvalidArgument},
		{commands.ErrPermissionDenied, connect.CodePermissionDenied},
		{timer.ErrNegativeResult, connect.CodeFailedPrecondition},
		{orchestrator.ErrStopped, connect.CodeUnavailable},
		{fmt.Errorf("disk full"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			c := newClient(t, &fakeApp{runErr: tt.err})

			_, err := c.RunCommand(context.Background(), "/timeleft +1", models.Caller{Login: "console"})

			assert.Equal(t, tt.code, connect.CodeOf(err))
		})
	}
}

func TestReload(t *testing.T) {
	c := newClient(t, &fakeApp{warnings: []string{"max_time: out of range, using 1440"}})

	warnings, err := c.Reload(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"max_time: out of range, using 1440"}, warnings)
}

func TestHandler_UnknownProcedure(t *testing.T) {
	path, h := NewHandler(NewService(&fakeApp{}))
	assert.Equal(t, "/matchclock.v1.TimerService/", path)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matchclock.v1.TimerService/Nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
