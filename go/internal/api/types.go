package api

import (
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/mcdev12/matchclock/go/internal/timer"
)

const (
	ServiceName = "matchclock.v1.TimerService"

	GetStatusProcedure  = "/" + ServiceName + "/GetStatus"
	RunCommandProcedure = "/" + ServiceName + "/RunCommand"
	ReloadProcedure     = "/" + ServiceName + "/Reload"
)

type GetStatusRequest struct{}

type GetStatusResponse struct {
	Status timer.Status `json:"status"`
}

// RunCommandRequest runs a chat-style command line such as "/timeleft +5"
// as if Caller had typed it.
type RunCommandRequest struct {
	Line   string        `json:"line"`
	Caller models.Caller `json:"caller"`
}

type RunCommandResponse struct {
	Status timer.Status `json:"status"`
}

type ReloadRequest struct{}

type ReloadResponse struct {
	Warnings []string `json:"warnings"`
}
