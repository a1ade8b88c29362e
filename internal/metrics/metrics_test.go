package metrics

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shahar-caura/deskhand/internal/assistant"
	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve_CountsByIntentAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	require.NoError(t, r.Observe(assistant.Event{
		Utterance: "mute the volume",
		Intent:    intent.KindSystem,
		Command:   command.MuteVolume,
		Outcome:   assistant.Outcome{Status: assistant.StatusOK, Message: "Volume muted."},
		Duration:  20 * time.Millisecond,
	}))
	require.NoError(t, r.Observe(assistant.Event{
		Utterance: "set volume to 150",
		Intent:    intent.KindSystem,
		Command:   command.SetVolume,
		Outcome: assistant.Outcome{
			Status:  assistant.StatusFailed,
			Message: "Volume must be between 0 and 100.",
			Err:     fmt.Errorf("%w: out of range", assistant.ErrValidation),
		},
	}))
	require.NoError(t, r.Observe(assistant.Event{
		Utterance: "who are you",
		Intent:    intent.KindGeneral,
		Outcome:   assistant.Outcome{Status: assistant.StatusFailed, Message: assistant.NoResponse, Err: assistant.ErrLanguage},
	}))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.utterances.WithLabelValues("system", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.utterances.WithLabelValues("system", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.utterances.WithLabelValues("general", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.commands.WithLabelValues("MuteVolume", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.commands.WithLabelValues("SetVolume", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("language")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.commands))
}

func TestObserve_HistogramExposed(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	require.NoError(t, r.Observe(assistant.Event{
		Utterance: "screenshot",
		Intent:    intent.KindSystem,
		Command:   command.Screenshot,
		Outcome:   assistant.Outcome{Status: assistant.StatusOK, Message: "Screenshot saved as x.png"},
		Duration:  30 * time.Millisecond,
	}))

	expected := `
# HELP deskhand_utterances_total Handled utterances by routing intent and outcome status.
# TYPE deskhand_utterances_total counter
deskhand_utterances_total{intent="system",status="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "deskhand_utterances_total"))

	count, err := testutil.GatherAndCount(reg, "deskhand_handle_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "unknown"},
		{fmt.Errorf("%w: x", assistant.ErrValidation), "validation"},
		{fmt.Errorf("%w: x", assistant.ErrBackend), "backend"},
		{fmt.Errorf("%w: x", assistant.ErrLanguage), "language"},
		{fmt.Errorf("%w: x", assistant.ErrUnknownCommand), "unknown_command"},
		{fmt.Errorf("boom"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reason(tt.err))
	}
}

func TestNewRecorder_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}
