package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Status is the result of one health check.
type Status struct {
	Healthy           bool      `json:"healthy"`
	DatabaseConnected bool      `json:"database_connected"`
	NATSConnected     bool      `json:"nats_connected"`
	TimerResponsive   bool      `json:"timer_responsive"`
	CheckedAt         time.Time `json:"checked_at"`
	Errors            []string  `json:"errors"`
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ConnStatus is satisfied by *nats.Conn.
type ConnStatus interface {
	IsConnected() bool
}

// Prober asks the timer loop for a round trip.
type Prober func(ctx context.Context) error

// Checker probes the daemon's dependencies. Nil dependencies are skipped and
// reported as connected.
type Checker struct {
	db    Pinger
	nats  ConnStatus
	probe Prober
	now   func() time.Time
}

func NewChecker(db Pinger, nats ConnStatus, probe Prober, now func() time.Time) *Checker {
	if now == nil {
		now = time.Now
	}
	return &Checker{db: db, nats: nats, probe: probe, now: now}
}

func (c *Checker) Check(ctx context.Context) Status {
	status := Status{
		Healthy:           true,
		DatabaseConnected: true,
		NATSConnected:     true,
		TimerResponsive:   true,
		CheckedAt:         c.now().UTC(),
		Errors:            []string{},
	}

	if c.db != nil {
		if err := c.db.PingContext(ctx); err != nil {
			status.DatabaseConnected = false
			status.Healthy = false
			status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
		}
	}

	if c.nats != nil && !c.nats.IsConnected() {
		status.NATSConnected = false
		status.Healthy = false
		status.Errors = append(status.Errors, "NATS disconnected")
	}

	if c.probe != nil {
		if err := c.probe(ctx); err != nil {
			status.TimerResponsive = false
			status.Healthy = false
			status.Errors = append(status.Errors, fmt.Sprintf("timer loop not responding: %v", err))
		}
	}

	return status
}

// ServeHTTP writes the status as JSON, with 503 when unhealthy.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := c.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Error().Err(err).Msg("failed to write health response")
	}
}
