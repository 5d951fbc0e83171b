package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFunctions(t *testing.T) {
	RecordTick(false)
	RecordTick(true)
	RecordAdjustment("add", "clamped")
	RecordRoundStart("custom")
	RecordAdvance()
	RecordCommand("timeleft", "ok")
	RecordHostEvent("Tick", "ok")
	SetTimerState(90, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(ticksTotal.Load().WithLabelValues("running")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ticksTotal.Load().WithLabelValues("paused")))
	assert.Equal(t, 1.0, testutil.ToFloat64(adjustmentsTotal.Load().WithLabelValues("add", "clamped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(roundsTotal.Load().WithLabelValues("custom")))
	assert.Equal(t, 1.0, testutil.ToFloat64(*advancesTotal.Load()))
	assert.Equal(t, 90.0, testutil.ToFloat64(*remainingSeconds.Load()))
	assert.Equal(t, 1.0, testutil.ToFloat64(*pausedGauge.Load()))
}

func TestInit_DuplicateRegistrationFails(t *testing.T) {
	assert.Error(t, Init(testRegistry, "again"))
}

func TestInit_FreshRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Init(reg, "1.2.3"))
	t.Cleanup(func() { require.NoError(t, Init(prometheus.NewRegistry(), "test")) })

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["matchclock_info"])
	assert.True(t, names["matchclock_timer_remaining_seconds"])
}

func TestHandler_ServesText(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(testRegistry).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "matchclock_info")
}
