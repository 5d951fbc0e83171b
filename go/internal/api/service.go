package api

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/mcdev12/matchclock/go/internal/allowlist"
	"github.com/mcdev12/matchclock/go/internal/commands"
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/mcdev12/matchclock/go/internal/orchestrator"
	"github.com/mcdev12/matchclock/go/internal/timer"
)

// TimerApp defines what the service layer needs from the orchestrator.
type TimerApp interface {
	Status(ctx context.Context) (timer.Status, error)
	RunCommand(ctx context.Context, line string, caller models.Caller) error
	Reload(ctx context.Context) ([]string, error)
}

// Service implements the TimerService RPCs.
type Service struct {
	app TimerApp
}

func NewService(app TimerApp) *Service {
	return &Service{app: app}
}

// GetStatus returns the current timer state.
func (s *Service) GetStatus(ctx context.Context, _ *connect.Request[GetStatusRequest]) (*connect.Response[GetStatusResponse], error) {
	st, err := s.app.Status(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetStatusResponse{Status: st}), nil
}

// RunCommand runs a command line and returns the state afterwards.
func (s *Service) RunCommand(ctx context.Context, req *connect.Request[RunCommandRequest]) (*connect.Response[RunCommandResponse], error) {
	if req.Msg.Caller.Login == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("caller login is required"))
	}
	if err := s.app.RunCommand(ctx, req.Msg.Line, req.Msg.Caller); err != nil {
		return nil, toConnectError(err)
	}

	st, err := s.app.Status(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&RunCommandResponse{Status: st}), nil
}

// Reload re-reads the configuration document and the allowlist.
func (s *Service) Reload(ctx context.Context, _ *connect.Request[ReloadRequest]) (*connect.Response[ReloadResponse], error) {
	warnings, err := s.app.Reload(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ReloadResponse{Warnings: warnings}), nil
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, commands.ErrUnknownCommand),
		errors.Is(err, commands.ErrInvalidParameter),
		errors.Is(err, allowlist.ErrEmptyID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, commands.ErrPermissionDenied):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, timer.ErrNegativeResult),
		errors.Is(err, timer.ErrEmergencyThreshold),
		errors.Is(err, timer.ErrNoRound),
		errors.Is(err, commands.ErrDisabled),
		errors.Is(err, allowlist.ErrAlreadyPresent),
		errors.Is(err, allowlist.ErrNotPresent):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, orchestrator.ErrStopped):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// NewHandler builds the HTTP handler for the service and returns the path
// to mount it on.
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	getStatus := connect.NewUnaryHandler(GetStatusProcedure, svc.GetStatus, opts...)
	runCommand := connect.NewUnaryHandler(RunCommandProcedure, svc.RunCommand, opts...)
	reload := connect.NewUnaryHandler(ReloadProcedure, svc.Reload, opts...)

	return "/" + ServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GetStatusProcedure:
			getStatus.ServeHTTP(w, r)
		case RunCommandProcedure:
			runCommand.ServeHTTP(w, r)
		case ReloadProcedure:
			reload.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
