package timer

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/mcdev12/matchclock/go/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = models.Caller{Login: "boss", Nickname: "Boss", Privilege: models.PrivilegeMasterAdmin}

type harness struct {
	engine   *Engine
	notifier *recordingNotifier
	advancer *countingAdvancer
	custom   *mapCustomTimes
}

func newHarness(cfg settings.Snapshot) *harness {
	h := &harness{
		notifier: &recordingNotifier{},
		advancer: &countingAdvancer{},
		custom:   &mapCustomTimes{values: map[string]string{}},
	}
	h.engine = NewEngine(cfg, h.custom, h.notifier, h.advancer)
	return h
}

// startAt begins a round whose stored custom time is secs.
func (h *harness) startAt(secs int) {
	h.custom.values["m1"] = secsValue(secs)
	h.engine.InitializeForRound(context.Background(), models.MatchInfo{ID: "m1"})
}

func TestInitializeForRound_Default(t *testing.T) {
	cfg := settings.Defaults()
	cfg.DefaultTime = 120
	h := newHarness(cfg)

	h.engine.InitializeForRound(context.Background(), models.MatchInfo{ID: "m1", AuthorTimeMsec: 45000})

	assert.Equal(t, 7200, h.engine.Remaining())
	assert.False(t, h.engine.Paused())
	assert.Equal(t, "02:00:00", h.engine.TimeLeftString())
	require.Len(t, h.notifier.panels, 1)
	assert.Equal(t, h.engine.TimeLeftString(), h.notifier.lastPanel().Text)
	assert.Empty(t, h.notifier.announcements)
}

func TestInitializeForRound_AuthorMultiplier(t *testing.T) {
	tests := []struct {
		name       string
		authorMsec int64
		mult       float64
		want       int
	}{
		{"clamped up to min", 90000, 2, 900},
		{"within range", 600000, 2, 1200},
		{"clamped down to default", 5400000, 2, 7200},
		{"fractional multiplier rounds up", 61000, 1.5, 900},
		{"rounded author time", 899600, 1, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := settings.Defaults()
			cfg.AuthorMult = tt.mult
			cfg.MinTime = 15
			cfg.DefaultTime = 120
			h := newHarness(cfg)

			h.engine.InitializeForRound(context.Background(), models.MatchInfo{ID: "m1", AuthorTimeMsec: tt.authorMsec})

			assert.Equal(t, tt.want, h.engine.Remaining())
		})
	}
}

func TestInitializeForRound_CustomTime(t *testing.T) {
	t.Run("stored value wins over multiplier", func(t *testing.T) {
		cfg := settings.Defaults()
		cfg.AuthorMult = 3
		h := newHarness(cfg)
		h.custom.values["m1"] = "45:30"

		h.engine.InitializeForRound(context.Background(), models.MatchInfo{ID: "m1", AuthorTimeMsec: 60000})

		assert.Equal(t, 2730, h.engine.Remaining())
	})

	t.Run("custom mode disabled", func(t *testing.T) {
		cfg := settings.Defaults()
		cfg.CustomTime = false
		h := newHarness(cfg)
		h.custom.values["m1"] = "45:30"

		h.engine.InitializeForRound(context.Background(), models.MatchInfo{ID: "m1"})

		assert.Equal(t, 7200, h.engine.Remaining())
	})

	t.Run("lookup failure falls back", func(t *testing.T) {
		h := newHarness(settings.Defaults())
		h.custom.err = errors.New("db down")

		h.engine.InitializeForRound(context.Background(), models.MatchInfo{ID: "m1"})

		assert.Equal(t, 7200, h.engine.Remaining())
	})

	t.Run("unparseable value falls back", func(t *testing.T) {
		h := newHarness(settings.Defaults())
		h.custom.values["m1"] = "soon"

		h.engine.InitializeForRound(context.Background(), models.MatchInfo{ID: "m1"})

		assert.Equal(t, 7200, h.engine.Remaining())
	})
}

func TestInitializeForRound_ChatAnnouncement(t *testing.T) {
	cfg := settings.Defaults()
	cfg.UseChat = true
	h := newHarness(cfg)

	h.startAt(300)

	assert.Equal(t, []string{"05:00 (m:s) until round end."}, h.notifier.announcements)
}

func TestTick_BeforeFirstRoundDoesNothing(t *testing.T) {
	h := newHarness(settings.Defaults())

	h.engine.Tick(context.Background())

	assert.Empty(t, h.notifier.panels)
	assert.Zero(t, h.advancer.calls)
}

func TestTick_SixtyTicksWithoutReachingZero(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(90)

	for i := 0; i < 60; i++ {
		h.engine.Tick(context.Background())
	}

	assert.Equal(t, 30, h.engine.Remaining())
	assert.Zero(t, h.advancer.calls)
}

func TestTick_ReachingZeroAdvancesOnce(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(45)

	for i := 0; i < 60; i++ {
		h.engine.Tick(context.Background())
	}

	assert.Equal(t, 0, h.engine.Remaining())
	assert.Equal(t, 1, h.advancer.calls)
	assert.True(t, h.engine.Paused())
}

func TestTick_AdvanceFailureStillPauses(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.advancer.err = errors.New("host unreachable")
	h.startAt(1)

	h.engine.Tick(context.Background())
	h.engine.Tick(context.Background())

	assert.Equal(t, 1, h.advancer.calls)
	assert.True(t, h.engine.Paused())
}

func TestTick_PausedRendersWithoutCountingDown(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(120)
	h.engine.SetPaused(context.Background(), true, admin)
	before := len(h.notifier.panels)

	h.engine.Tick(context.Background())

	assert.Equal(t, 120, h.engine.Remaining())
	assert.Len(t, h.notifier.panels, before+1)
	assert.True(t, h.notifier.lastPanel().Paused)
}

func TestTick_PanelDisabled(t *testing.T) {
	cfg := settings.Defaults()
	cfg.ShowPanel = false
	h := newHarness(cfg)
	h.startAt(120)

	h.engine.Tick(context.Background())

	assert.Empty(t, h.notifier.panels)
	assert.Equal(t, 119, h.engine.Remaining())
}

func TestTick_ChatBoundaries(t *testing.T) {
	cfg := settings.Defaults()
	cfg.UseChat = true
	h := newHarness(cfg)
	h.startAt(301)
	h.notifier.announcements = nil

	h.engine.Tick(context.Background())

	assert.Equal(t, []string{"05:00 (m:s) until round end."}, h.notifier.announcements)
}

func TestTick_NoChatWhenDisabled(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(301)

	h.engine.Tick(context.Background())

	assert.Empty(t, h.notifier.announcements)
}

func TestAnnounceAt(t *testing.T) {
	tests := []struct {
		secs int
		want bool
	}{
		{7200, true},  // 120 minutes, multiple of 10
		{6300, false}, // 105 minutes, multiple of 5 but over an hour
		{3000, true},  // 50 minutes
		{2700, true},  // 45 minutes
		{2640, false}, // 44 minutes
		{120, false},  // 2 minutes
		{60, true},    // 1 minute
		{59, false},
		{30, true},
		{10, true},
		{0, true},
		{3030, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, announceAt(tt.secs), "secs=%d", tt.secs)
	}
}

func TestAdjust_NegativeIsRejected(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(100)
	h.notifier.announcements = nil

	out, err := h.engine.Adjust(context.Background(), SubtractRelative, 200, admin)

	assert.ErrorIs(t, err, ErrNegativeResult)
	assert.Equal(t, 100, out.Remaining)
	assert.Equal(t, 100, h.engine.Remaining())
	assert.Empty(t, h.notifier.announcements)
}

func TestAdjust_ClampsToMax(t *testing.T) {
	cfg := settings.Defaults()
	cfg.MaxTime = 60
	h := newHarness(cfg)
	h.startAt(3000)

	out, err := h.engine.Adjust(context.Background(), AddRelative, 120, admin)

	require.NoError(t, err)
	assert.True(t, out.Clamped)
	assert.Equal(t, 3600, h.engine.Remaining())
	assert.Contains(t, h.notifier.announcements, "Boss changed time left: 01:00:00 (h:m:s) until round end.")
}

func TestAdjust_UnlimitedMax(t *testing.T) {
	cfg := settings.Defaults()
	cfg.MaxTime = 0
	h := newHarness(cfg)
	h.startAt(60)

	out, err := h.engine.Adjust(context.Background(), SetAbsolute, 5000, admin)

	require.NoError(t, err)
	assert.False(t, out.Clamped)
	assert.Equal(t, 300000, h.engine.Remaining())
}

func TestAdjust_SetToZeroAdvances(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(600)

	out, err := h.engine.Adjust(context.Background(), SetAbsolute, 0, admin)

	require.NoError(t, err)
	assert.True(t, out.Advanced)
	assert.Equal(t, 1, h.advancer.calls)

	h.engine.Tick(context.Background())
	assert.Equal(t, 1, h.advancer.calls)
}

func TestAdjust_BeforeFirstRound(t *testing.T) {
	h := newHarness(settings.Defaults())

	_, err := h.engine.Adjust(context.Background(), AddRelative, 5, admin)

	assert.ErrorIs(t, err, ErrNoRound)
}

func TestAdjust_CommittedValueStaysInBounds(t *testing.T) {
	cfg := settings.Defaults()
	cfg.MaxTime = 90
	h := newHarness(cfg)
	h.startAt(1800)
	rng := rand.New(rand.NewSource(7))
	kinds := []Kind{SetAbsolute, AddRelative, SubtractRelative}
	huge := []int{math.MaxInt / 60, math.MaxInt/60 + 1, 307445734561825861, math.MaxInt}

	for i := 0; i < 500; i++ {
		if h.engine.Paused() {
			h.startAt(1800)
		}
		minutes := rng.Intn(200)
		if i%10 == 0 {
			minutes = huge[rng.Intn(len(huge))]
		}
		before := h.engine.Remaining()
		_, err := h.engine.Adjust(context.Background(), kinds[rng.Intn(len(kinds))], minutes, admin)
		got := h.engine.Remaining()
		if err != nil {
			assert.Equal(t, before, got)
		}
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, cfg.MaxTime*60)
	}
}

func TestAdjust_HugeMinutesSaturate(t *testing.T) {
	cfg := settings.Defaults()
	cfg.MaxTime = 60
	h := newHarness(cfg)
	h.startAt(600)
	ctx := context.Background()

	out, err := h.engine.Adjust(ctx, SetAbsolute, 307445734561825861, admin)
	require.NoError(t, err)
	assert.True(t, out.Clamped)
	assert.Equal(t, 3600, h.engine.Remaining())

	_, err = h.engine.Adjust(ctx, SubtractRelative, 307445734561825861, admin)
	assert.ErrorIs(t, err, ErrNegativeResult)
	assert.Equal(t, 3600, h.engine.Remaining())

	out, err = h.engine.Adjust(ctx, AddRelative, math.MaxInt, admin)
	require.NoError(t, err)
	assert.True(t, out.Clamped)
	assert.Equal(t, 3600, h.engine.Remaining())
}

func TestSetPaused_Idempotent(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(600)
	ctx := context.Background()

	h.engine.SetPaused(ctx, true, admin)
	h.engine.SetPaused(ctx, true, admin)
	assert.True(t, h.engine.Paused())

	h.engine.SetPaused(ctx, false, admin)
	h.engine.SetPaused(ctx, false, admin)
	assert.False(t, h.engine.Paused())

	assert.Equal(t, []string{
		"Boss paused the timer.",
		"Boss paused the timer.",
		"Boss unpaused the timer.",
		"Boss unpaused the timer.",
	}, h.notifier.announcements)
}

func TestEmergency_BlockedAboveThreshold(t *testing.T) {
	cfg := settings.Defaults()
	cfg.EmergencyMin = 10
	h := newHarness(cfg)
	h.startAt(900)

	_, err := h.engine.Emergency(context.Background(), admin)

	assert.ErrorIs(t, err, ErrEmergencyThreshold)
	assert.Equal(t, 900, h.engine.Remaining())
}

func TestEmergency_AddsWithoutClamp(t *testing.T) {
	cfg := settings.Defaults()
	cfg.EmergencyMin = 10
	cfg.EmergencyTime = 30
	cfg.MaxTime = 20
	h := newHarness(cfg)
	h.startAt(600)

	out, err := h.engine.Emergency(context.Background(), admin)

	require.NoError(t, err)
	assert.False(t, out.Clamped)
	assert.Equal(t, 2400, h.engine.Remaining())
	assert.Contains(t, h.notifier.announcements, "Boss added emergency time: 40:00 (m:s) until round end.")
}

func TestEmergency_NoThreshold(t *testing.T) {
	cfg := settings.Defaults()
	cfg.EmergencyMin = 0
	cfg.EmergencyTime = 5
	h := newHarness(cfg)
	h.startAt(7200)

	_, err := h.engine.Emergency(context.Background(), admin)

	require.NoError(t, err)
	assert.Equal(t, 7500, h.engine.Remaining())
}

func TestHideForRoundEnd(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(600)

	h.engine.HideForRoundEnd(context.Background())

	assert.True(t, h.engine.Paused())
	assert.Equal(t, 1, h.notifier.hides)
	assert.Equal(t, 600, h.engine.Remaining())
}

func TestPanelColour(t *testing.T) {
	cfg := settings.Defaults()
	cfg.WarnSecs = 300
	cfg.DangerSecs = 60
	tests := []struct {
		name       string
		remaining  int
		authorMsec int64
		want       string
	}{
		{"plenty left", 1200, 0, cfg.ClockColour},
		{"under warn", 299, 0, cfg.WarnColour},
		{"under author time", 500, 600000, cfg.WarnColour},
		{"under danger", 59, 0, cfg.DangerColour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(cfg)
			h.custom.values["m1"] = secsValue(tt.remaining)
			h.engine.InitializeForRound(context.Background(), models.MatchInfo{ID: "m1", AuthorTimeMsec: tt.authorMsec})

			assert.Equal(t, tt.want, h.engine.PanelColour())
			assert.Equal(t, tt.want, h.notifier.lastPanel().Colour)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		secs   int
		paused bool
		clock  string
		text   string
	}{
		{0, false, "00:00", "00:00 (m:s) until round end."},
		{59, true, "00:59", "00:59 (m:s) until round end (paused)."},
		{3599, false, "59:59", "59:59 (m:s) until round end."},
		{3600, false, "01:00:00", "01:00:00 (h:m:s) until round end."},
		{86399, true, "23:59:59", "23:59:59 (h:m:s) until round end (paused)."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.clock, FormatClock(tt.secs))
		assert.Equal(t, tt.text, FormatText(tt.secs, tt.paused))
	}
}

func TestStatus(t *testing.T) {
	h := newHarness(settings.Defaults())
	h.startAt(125)

	st := h.engine.Status()

	assert.True(t, st.Active)
	assert.Equal(t, "m1", st.Match.ID)
	assert.Equal(t, 125, st.Remaining)
	assert.Equal(t, "02:05 (m:s) until round end.", st.Text)
}
