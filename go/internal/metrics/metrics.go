// Package metrics exposes Prometheus metrics for the match clock.
package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "matchclock"

// Record functions are no-ops until Init has run.
var (
	ticksTotal       atomic.Pointer[prometheus.CounterVec]
	adjustmentsTotal atomic.Pointer[prometheus.CounterVec]
	roundsTotal      atomic.Pointer[prometheus.CounterVec]
	advancesTotal    atomic.Pointer[prometheus.Counter]
	commandsTotal    atomic.Pointer[prometheus.CounterVec]
	hostEventsTotal  atomic.Pointer[prometheus.CounterVec]
	remainingSeconds atomic.Pointer[prometheus.Gauge]
	pausedGauge      atomic.Pointer[prometheus.Gauge]
)

// Init registers every metric with reg. Call it once at startup.
func Init(reg prometheus.Registerer, version string) error {
	ticks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "timer", Name: "ticks_total",
		Help: "Timer ticks processed, by pause state",
	}, []string{"state"})
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "timer", Name: "adjustments_total",
		Help: "Timer mutations, by kind and result",
	}, []string{"kind", "result"})
	rounds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "timer", Name: "rounds_started_total",
		Help: "Rounds initialized, by the source of the initial time",
	}, []string{"source"})
	advances := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "timer", Name: "round_advances_total",
		Help: "Rounds ended because the timer reached zero",
	})
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "commands", Name: "handled_total",
		Help: "Chat commands handled, by command and result",
	}, []string{"command", "result"})
	hostEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "host", Name: "events_total",
		Help: "Host events consumed, by type and result",
	}, []string{"event_type", "result"})
	remaining := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "timer", Name: "remaining_seconds",
		Help: "Seconds left in the current round",
	})
	paused := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "timer", Name: "paused",
		Help: "1 while the timer is paused",
	})
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Name: "info",
		Help: "Build information",
	}, []string{"version"})

	collectors := map[string]prometheus.Collector{
		"ticks":       ticks,
		"adjustments": adjustments,
		"rounds":      rounds,
		"advances":    advances,
		"commands":    commands,
		"host_events": hostEvents,
		"remaining":   remaining,
		"paused":      paused,
		"info":        info,
	}
	for name, c := range collectors {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("failed to register %s: %w", name, err)
		}
	}
	info.WithLabelValues(version).Set(1)

	var advancesCounter prometheus.Counter = advances
	var remainingG, pausedG prometheus.Gauge = remaining, paused
	ticksTotal.Store(ticks)
	adjustmentsTotal.Store(adjustments)
	roundsTotal.Store(rounds)
	advancesTotal.Store(&advancesCounter)
	commandsTotal.Store(commands)
	hostEventsTotal.Store(hostEvents)
	remainingSeconds.Store(&remainingG)
	pausedGauge.Store(&pausedG)
	return nil
}

// RecordTick counts one processed tick.
func RecordTick(paused bool) {
	if c := ticksTotal.Load(); c != nil {
		state := "running"
		if paused {
			state = "paused"
		}
		c.WithLabelValues(state).Inc()
	}
}

// RecordAdjustment counts a timer mutation. Results are "committed",
// "clamped" or "rejected".
func RecordAdjustment(kind, result string) {
	if c := adjustmentsTotal.Load(); c != nil {
		c.WithLabelValues(kind, result).Inc()
	}
}

// RecordRoundStart counts a round initialization by time source.
func RecordRoundStart(source string) {
	if c := roundsTotal.Load(); c != nil {
		c.WithLabelValues(source).Inc()
	}
}

// RecordAdvance counts a zero-crossing.
func RecordAdvance() {
	if c := advancesTotal.Load(); c != nil {
		(*c).Inc()
	}
}

// RecordCommand counts a handled chat command.
func RecordCommand(command, result string) {
	if c := commandsTotal.Load(); c != nil {
		c.WithLabelValues(command, result).Inc()
	}
}

// RecordHostEvent counts a consumed host event.
func RecordHostEvent(eventType, result string) {
	if c := hostEventsTotal.Load(); c != nil {
		c.WithLabelValues(eventType, result).Inc()
	}
}

// SetTimerState publishes the remaining seconds and pause flag.
func SetTimerState(remaining int, paused bool) {
	if g := remainingSeconds.Load(); g != nil {
		(*g).Set(float64(remaining))
	}
	if g := pausedGauge.Load(); g != nil {
		v := 0.0
		if paused {
			v = 1
		}
		(*g).Set(v)
	}
}

// Handler serves the metrics gathered by g in text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
