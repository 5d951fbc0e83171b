package timer

import (
	"context"
	"fmt"
	"math"

	"github.com/mcdev12/matchclock/go/internal/customtime"
	"github.com/mcdev12/matchclock/go/internal/metrics"
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/mcdev12/matchclock/go/internal/notify"
	"github.com/mcdev12/matchclock/go/internal/settings"
	"github.com/rs/zerolog/log"
)

// CustomTimes looks up the stored per-match time limit.
type CustomTimes interface {
	Get(ctx context.Context, matchID string) (string, bool, error)
}

// RoundAdvancer ends the current round on the host.
type RoundAdvancer interface {
	Advance(ctx context.Context) error
}

// Kind selects how an adjustment combines with the remaining time.
type Kind int

const (
	SetAbsolute Kind = iota
	AddRelative
	SubtractRelative
)

func (k Kind) String() string {
	switch k {
	case AddRelative:
		return "add"
	case SubtractRelative:
		return "subtract"
	default:
		return "set"
	}
}

// Outcome reports the result of a committed mutation.
type Outcome struct {
	Remaining int
	Clamped   bool // the maximum was exceeded and the value was capped
	Advanced  bool // the round was advanced because the timer hit zero
}

// Status is a read-only view of the timer.
type Status struct {
	Match      models.MatchInfo `json:"match"`
	Active     bool             `json:"active"`
	Remaining  int              `json:"remaining_sec"`
	AuthorTime int              `json:"author_time_sec"`
	Paused     bool             `json:"paused"`
	Text       string           `json:"text"`
	Colour     string           `json:"colour"`
}

// Engine owns the countdown for the current round. It is not safe for
// concurrent use; the orchestrator serializes every call.
type Engine struct {
	cfg         settings.Snapshot
	customTimes CustomTimes
	notifier    notify.Notifier
	advancer    RoundAdvancer

	match      models.MatchInfo
	active     bool
	remaining  int
	authorSecs int
	paused     bool
}

// NewEngine creates an engine that waits for the first round.
func NewEngine(cfg settings.Snapshot, customTimes CustomTimes, notifier notify.Notifier, advancer RoundAdvancer) *Engine {
	return &Engine{
		cfg:         cfg,
		customTimes: customTimes,
		notifier:    notifier,
		advancer:    advancer,
		paused:      true,
	}
}

// SetConfig swaps the snapshot. The running countdown is kept.
func (e *Engine) SetConfig(cfg settings.Snapshot) {
	e.cfg = cfg
}

// Config returns the snapshot in use.
func (e *Engine) Config() settings.Snapshot {
	return e.cfg
}

// InitializeForRound resets the timer for a new round on match.
func (e *Engine) InitializeForRound(ctx context.Context, match models.MatchInfo) {
	e.match = match
	e.active = true
	e.paused = false
	e.authorSecs = match.AuthorTimeSeconds()

	source := "default"
	e.remaining = e.cfg.DefaultTime * 60
	if secs, ok := e.customSeconds(ctx, match.ID); ok {
		e.remaining = secs
		source = "custom"
	} else if e.cfg.AuthorMult != 0 {
		secs := int(math.Ceil(float64(e.authorSecs)/60*e.cfg.AuthorMult)) * 60
		switch {
		case secs > e.cfg.DefaultTime*60:
			secs = e.cfg.DefaultTime * 60
		case secs < e.cfg.MinTime*60:
			secs = e.cfg.MinTime * 60
		}
		e.remaining = secs
		source = "author"
	}

	log.Info().
		Str("match_id", match.ID).
		Str("source", source).
		Int("remaining_sec", e.remaining).
		Int("author_time_sec", e.authorSecs).
		Msg("initialized timer for round")
	metrics.RecordRoundStart(source)
	e.observe()

	e.render(ctx)
	if e.cfg.UseChat {
		e.notifier.Announce(ctx, e.TimeLeftText())
	}
}

func (e *Engine) customSeconds(ctx context.Context, matchID string) (int, bool) {
	if !e.cfg.CustomTime || e.customTimes == nil || matchID == "" {
		return 0, false
	}
	v, ok, err := e.customTimes.Get(ctx, matchID)
	if err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("failed to look up custom time")
		return 0, false
	}
	if !ok {
		return 0, false
	}
	secs, err := customtime.ParseValue(v)
	if err != nil {
		log.Warn().Err(err).Str("match_id", matchID).Msg("ignoring stored custom time")
		return 0, false
	}
	return secs, true
}

// Tick advances the countdown by one second.
func (e *Engine) Tick(ctx context.Context) {
	if !e.active {
		return
	}
	if !e.paused && e.remaining > 0 {
		e.remaining--
	}
	metrics.RecordTick(e.paused)
	e.observe()

	e.render(ctx)
	if e.cfg.UseChat && !e.paused && announceAt(e.remaining) {
		e.notifier.Announce(ctx, e.TimeLeftText())
	}
	if !e.paused && e.remaining <= 0 {
		e.advance(ctx)
	}
}

// announceAt reports whether secs falls on a chat announcement boundary.
func announceAt(secs int) bool {
	mins, s := secs/60, secs%60
	if s == 0 && (mins%10 == 0 || (mins < 60 && mins%5 == 0) || mins == 1) {
		return true
	}
	return mins == 0 && (s == 30 || s == 10 || s == 0)
}

// Adjust applies a set, add or subtract of minutes on behalf of caller.
// Exceeding the configured maximum caps the value and still commits; a
// negative result is rejected with ErrNegativeResult.
func (e *Engine) Adjust(ctx context.Context, kind Kind, minutes int, caller models.Caller) (Outcome, error) {
	if !e.active {
		return Outcome{}, ErrNoRound
	}

	value := toSeconds(minutes)
	candidate := value
	switch kind {
	case AddRelative:
		candidate = addSaturating(e.remaining, value)
	case SubtractRelative:
		candidate = addSaturating(e.remaining, -value)
	}

	var out Outcome
	if e.cfg.MaxTime > 0 && candidate > e.cfg.MaxTime*60 {
		candidate = e.cfg.MaxTime * 60
		out.Clamped = true
	}
	if candidate < 0 {
		metrics.RecordAdjustment(kind.String(), "rejected")
		log.Info().
			Str("login", caller.Login).
			Str("kind", kind.String()).
			Int("minutes", minutes).
			Int("remaining_sec", e.remaining).
			Msg("rejected negative adjustment")
		return Outcome{Remaining: e.remaining}, ErrNegativeResult
	}

	result := "committed"
	if out.Clamped {
		result = "clamped"
	}
	metrics.RecordAdjustment(kind.String(), result)
	log.Info().
		Str("login", caller.Login).
		Str("kind", kind.String()).
		Int("minutes", minutes).
		Int("remaining_sec", candidate).
		Bool("clamped", out.Clamped).
		Msg("adjusted timer")

	return e.commit(ctx, out, candidate, caller.DisplayName()+" changed time left: "), nil
}

// SetPaused pauses or resumes the countdown. Repeating the current state is
// not an error.
func (e *Engine) SetPaused(ctx context.Context, paused bool, caller models.Caller) {
	e.paused = paused
	e.observe()

	verb := "unpaused"
	if paused {
		verb = "paused"
	}
	metrics.RecordAdjustment(verb, "committed")
	log.Info().Str("login", caller.Login).Bool("paused", paused).Msg("changed pause state")

	if e.active {
		e.render(ctx)
	}
	e.notifier.Announce(ctx, fmt.Sprintf("%s %s the timer.", caller.DisplayName(), verb))
}

// Emergency adds the configured emergency minutes. It is refused while more
// than the emergency minimum remains and is never capped by the maximum.
func (e *Engine) Emergency(ctx context.Context, caller models.Caller) (Outcome, error) {
	if !e.active {
		return Outcome{}, ErrNoRound
	}
	if e.cfg.EmergencyMin > 0 && e.remaining > e.cfg.EmergencyMin*60 {
		metrics.RecordAdjustment("emergency", "rejected")
		return Outcome{Remaining: e.remaining}, ErrEmergencyThreshold
	}

	candidate := e.remaining + e.cfg.EmergencyTime*60
	metrics.RecordAdjustment("emergency", "committed")
	log.Info().
		Str("login", caller.Login).
		Int("emergency_min", e.cfg.EmergencyTime).
		Int("remaining_sec", candidate).
		Msg("added emergency time")

	return e.commit(ctx, Outcome{}, candidate, caller.DisplayName()+" added emergency time: "), nil
}

func (e *Engine) commit(ctx context.Context, out Outcome, remaining int, prefix string) Outcome {
	e.remaining = remaining
	e.observe()
	e.render(ctx)
	e.notifier.Announce(ctx, prefix+e.TimeLeftText())

	if e.remaining == 0 {
		e.advance(ctx)
		out.Advanced = true
	}
	out.Remaining = e.remaining
	return out
}

// HideForRoundEnd pauses the countdown and hides the panel.
func (e *Engine) HideForRoundEnd(ctx context.Context) {
	e.paused = true
	e.observe()
	e.notifier.HidePanel(ctx)
	log.Info().Str("match_id", e.match.ID).Int("remaining_sec", e.remaining).Msg("round ended")
}

func (e *Engine) advance(ctx context.Context) {
	e.paused = true
	e.observe()
	metrics.RecordAdvance()
	log.Info().Str("match_id", e.match.ID).Msg("timer expired, advancing round")

	if err := e.advancer.Advance(ctx); err != nil {
		log.Error().Err(err).Str("match_id", e.match.ID).Msg("failed to advance round")
	}
}

func (e *Engine) render(ctx context.Context) {
	if !e.cfg.ShowPanel {
		return
	}
	e.notifier.RenderPanel(ctx, notify.Panel{
		Text:      e.TimeLeftString(),
		Colour:    e.PanelColour(),
		Paused:    e.paused,
		Remaining: e.remaining,
	})
}

func (e *Engine) observe() {
	metrics.SetTimerState(e.remaining, e.paused)
}

// TimeLeftString returns the panel form of the remaining time.
func (e *Engine) TimeLeftString() string {
	return FormatClock(e.remaining)
}

// TimeLeftText returns the chat form of the remaining time.
func (e *Engine) TimeLeftText() string {
	return FormatText(e.remaining, e.paused)
}

// PanelColour picks the panel colour for the remaining time.
func (e *Engine) PanelColour() string {
	switch {
	case e.remaining < e.cfg.DangerSecs:
		return e.cfg.DangerColour
	case e.remaining < e.cfg.WarnSecs || e.remaining < e.authorSecs:
		return e.cfg.WarnColour
	default:
		return e.cfg.ClockColour
	}
}

// Remaining returns the remaining seconds.
func (e *Engine) Remaining() int { return e.remaining }

// Paused reports whether the countdown is paused.
func (e *Engine) Paused() bool { return e.paused }

// Match returns the current match.
func (e *Engine) Match() models.MatchInfo { return e.match }

// Status returns a snapshot of the timer.
func (e *Engine) Status() Status {
	return Status{
		Match:      e.match,
		Active:     e.active,
		Remaining:  e.remaining,
		AuthorTime: e.authorSecs,
		Paused:     e.paused,
		Text:       e.TimeLeftText(),
		Colour:     e.PanelColour(),
	}
}

// toSeconds converts minutes to seconds, saturating at the int range.
func toSeconds(minutes int) int {
	switch {
	case minutes > math.MaxInt/60:
		return math.MaxInt
	case minutes < -(math.MaxInt / 60):
		return -math.MaxInt
	}
	return minutes * 60
}

func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
