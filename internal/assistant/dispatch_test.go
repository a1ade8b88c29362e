package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_AlwaysFailingBackendYieldsWellFormedOutcome(t *testing.T) {
	b, _ := allBackends(provider.Result{OK: false, Message: ""})
	d := NewDispatcher(b, time.Second, testLogger())

	utterances := map[command.ID]string{
		command.GoogleSearch:     "search google for go generics",
		command.Youtube:          "play jazz music",
		command.SetBrightness:    "set brightness to 50",
		command.SetVolume:        "set volume to 50",
		command.Screenshot:       "screenshot",
		command.StartWordProject: "open word",
	}

	for _, id := range command.IDs() {
		t.Run(string(id), func(t *testing.T) {
			out := d.Dispatch(context.Background(), id, utterances[id])
			assert.NotEmpty(t, out.Message)
			if id == command.DownloadMusicPlaceholder {
				assert.Equal(t, StatusOK, out.Status)
				return
			}
			assert.Equal(t, StatusFailed, out.Status)
			assert.Error(t, out.Err)
		})
	}
}

func TestDispatch_PanickingBackend(t *testing.T) {
	b := Backends{command.CategoryCapture: &stubAction{panics: true}}
	d := NewDispatcher(b, time.Second, testLogger())

	out := d.Dispatch(context.Background(), command.Screenshot, "take a screenshot")

	assert.Equal(t, StatusFailed, out.Status)
	assert.Contains(t, out.Message, "failed unexpectedly")
	assert.True(t, errors.Is(out.Err, ErrBackend))
}

func TestDispatch_BackendMessagePreservedVerbatim(t *testing.T) {
	const msg = "Opening Word is not natively supported on Linux. Try LibreOffice Writer."
	b := Backends{command.CategoryProcess: &stubAction{result: provider.Unsupported(msg)}}
	d := NewDispatcher(b, time.Second, testLogger())

	out := d.Dispatch(context.Background(), command.StartWordProject, "open word")

	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, msg, out.Message)
	assert.True(t, errors.Is(out.Err, ErrBackend))
}

func TestDispatch_MissingBackend(t *testing.T) {
	d := NewDispatcher(Backends{}, time.Second, testLogger())

	out := d.Dispatch(context.Background(), command.Screenshot, "screenshot")

	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, "No capture backend is available.", out.Message)
	assert.True(t, errors.Is(out.Err, ErrBackend))
}

func TestDispatch_UnknownCommand(t *testing.T) {
	d := NewDispatcher(Backends{}, time.Second, testLogger())

	out := d.Dispatch(context.Background(), command.ID("LaunchRockets"), "launch rockets")

	assert.Equal(t, StatusFailed, out.Status)
	assert.NotEmpty(t, out.Message)
	assert.True(t, errors.Is(out.Err, ErrUnknownCommand))
	assert.False(t, errors.Is(out.Err, ErrBackend))
}

func TestDispatch_LookupOverride(t *testing.T) {
	d := NewDispatcher(Backends{}, time.Second, testLogger())
	d.lookup = func(command.ID) (command.Spec, bool) { return command.Spec{}, false }

	out := d.Dispatch(context.Background(), command.MuteVolume, "mute volume")
	assert.True(t, errors.Is(out.Err, ErrUnknownCommand))
}

func TestDispatch_PercentValidation(t *testing.T) {
	tests := []struct {
		name      string
		id        command.ID
		utterance string
		wantMsg   string
		wantValue int
		wantCall  bool
	}{
		{"brightness missing number", command.SetBrightness, "set brightness to max", "Invalid brightness value. Please include a number.", 0, false},
		{"volume missing number", command.SetVolume, "set volume to loud", "Invalid volume value. Please include a number.", 0, false},
		{"volume too high", command.SetVolume, "set volume to 101", "Volume must be between 0 and 100.", 0, false},
		{"volume overflow", command.SetVolume, "set volume to 99999999999999999999999", "Volume must be between 0 and 100.", 0, false},
		{"zero accepted", command.SetVolume, "set volume to 0", "ok", 0, true},
		{"hundred accepted", command.SetBrightness, "set brightness to 100", "ok", 100, true},
		{"anchored after phrase", command.SetVolume, "in 10 minutes set volume to 50", "ok", 50, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, stubs := allBackends(provider.Result{OK: true, Message: "ok"})
			d := NewDispatcher(b, time.Second, testLogger())

			spec, _ := command.Lookup(tt.id)
			out := d.Dispatch(context.Background(), tt.id, tt.utterance)

			assert.Equal(t, tt.wantMsg, out.Message)
			calls := stubs[spec.Category].Calls()
			if !tt.wantCall {
				assert.Equal(t, StatusFailed, out.Status)
				assert.True(t, errors.Is(out.Err, ErrValidation))
				assert.Empty(t, calls)
				return
			}
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantValue, calls[0].Percent)
		})
	}
}

func TestDispatch_RelativeCommandsCarryStep(t *testing.T) {
	b, stubs := allBackends(provider.Result{OK: true, Message: "ok"})
	d := NewDispatcher(b, time.Second, testLogger())

	d.Dispatch(context.Background(), command.LowerBrightness, "lower brightness")
	d.Dispatch(context.Background(), command.RaiseVolume, "volume up")

	display := stubs[command.CategoryDisplay].Calls()
	require.Len(t, display, 1)
	assert.Equal(t, 10, display[0].Step)

	audio := stubs[command.CategoryAudio].Calls()
	require.Len(t, audio, 1)
	assert.Equal(t, 5, audio[0].Step)
}

func TestDispatch_QueryExtraction(t *testing.T) {
	b, stubs := allBackends(provider.Result{OK: true, Message: "Searching Google for: golang"})
	d := NewDispatcher(b, time.Second, testLogger())

	out := d.Dispatch(context.Background(), command.GoogleSearch, "Search Google for golang")
	assert.True(t, out.OK())
	calls := stubs[command.CategoryWeb].Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "golang", calls[0].Query)

	out = d.Dispatch(context.Background(), command.GoogleSearch, "search google")
	assert.Equal(t, "No query provided for Google search.", out.Message)
	assert.True(t, errors.Is(out.Err, ErrValidation))

	out = d.Dispatch(context.Background(), command.Youtube, "youtube")
	assert.Equal(t, "Please provide something to search on YouTube.", out.Message)
	assert.Len(t, stubs[command.CategoryWeb].Calls(), 1)
}

func TestDispatch_Placeholder(t *testing.T) {
	d := NewDispatcher(Backends{}, time.Second, testLogger())

	out := d.Dispatch(context.Background(), command.DownloadMusicPlaceholder, "download music")
	assert.Equal(t, Outcome{Status: StatusOK, Message: "Download music feature is a placeholder."}, out)
}

// slowAction blocks until its context ends and reports nothing.
type slowAction struct{}

func (slowAction) Execute(ctx context.Context, _ provider.Request) provider.Result {
	<-ctx.Done()
	return provider.Result{}
}

func TestDispatch_TimeoutIsBackendFailure(t *testing.T) {
	d := NewDispatcher(Backends{command.CategoryCapture: slowAction{}}, 20*time.Millisecond, testLogger())

	out := d.Dispatch(context.Background(), command.Screenshot, "screenshot")

	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, "The Screenshot command timed out.", out.Message)
	assert.True(t, errors.Is(out.Err, ErrBackend))
}
