package bridge

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/trackbind/internal/domain/event"
	"github.com/osa030/trackbind/internal/domain/options"
	"github.com/osa030/trackbind/internal/domain/player"
	"github.com/osa030/trackbind/internal/domain/resource"
	"github.com/osa030/trackbind/internal/domain/track"
	"github.com/osa030/trackbind/internal/infra/simnative"
	"github.com/osa030/trackbind/internal/native"
)

func ptr[T any](v T) *T { return &v }

// countingModule wraps the simulated module to count UpdateOptions calls.
type countingModule struct {
	*simnative.Module
	mu      sync.Mutex
	updates int
}

func (c *countingModule) UpdateOptions(ctx context.Context, opts map[string]any) error {
	c.mu.Lock()
	c.updates++
	c.mu.Unlock()
	return c.Module.UpdateOptions(ctx, opts)
}

// brokenModule exports no constants, as when the native module failed to load.
type brokenModule struct {
	*simnative.Module
}

func (brokenModule) Constants(ctx context.Context) (map[string]any, error) {
	return map[string]any{}, nil
}

func newSim(t *testing.T, profile string) *simnative.Module {
	t.Helper()
	p, err := simnative.LoadProfile(profile)
	require.NoError(t, err)
	return simnative.New(p)
}

func newReadyPlayer(t *testing.T) (*Player, *simnative.Module) {
	t.Helper()
	sim := newSim(t, "android")
	p := New(sim, Config{})
	require.NoError(t, p.Init(context.Background()))
	require.NoError(t, p.Setup(context.Background(), options.PlayerOptions{}))
	return p, sim
}

func song(id string) track.Track {
	return track.Track{
		ID:       id,
		URL:      resource.NewURI("https://example.com/" + id + ".mp3"),
		Metadata: track.Metadata{Title: "Song " + id},
	}
}

func TestPlayer_RequiresInit(t *testing.T) {
	p := New(newSim(t, "android"), Config{})
	ctx := context.Background()

	assert.ErrorIs(t, p.Setup(ctx, options.PlayerOptions{}), native.ErrUninitialized)
	assert.ErrorIs(t, p.UpdateOptions(ctx, options.MetadataOptions{}), native.ErrUninitialized)
	assert.ErrorIs(t, p.Add(ctx, []track.Track{song("a")}, ""), native.ErrUninitialized)
	assert.ErrorIs(t, p.Remove(ctx, "a"), native.ErrUninitialized)
	assert.ErrorIs(t, p.Run(ctx), native.ErrUninitialized)

	// Listeners may be registered early.
	_, err := p.AddEventListener(event.RemotePlay, func(ctx context.Context, msg event.Message) {})
	assert.NoError(t, err)
}

func TestPlayer_InitFailsLoudlyWithoutConstants(t *testing.T) {
	p := New(brokenModule{newSim(t, "android")}, Config{})

	err := p.Init(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, native.ErrMissingConstant)
	assert.Contains(t, errors.FlattenHints(err), "native module")
	assert.False(t, p.Constants().Ready())
}

func TestPlayer_SetupOnlyWaitForBuffer(t *testing.T) {
	sim := newSim(t, "android")
	p := New(sim, Config{})
	ctx := context.Background()
	require.NoError(t, p.Init(ctx))

	require.NoError(t, p.Setup(ctx, options.PlayerOptions{WaitForBuffer: ptr(true)}))

	resolved, ok := sim.Resolved()
	require.True(t, ok)
	assert.True(t, resolved.WaitForBuffer)
	assert.Equal(t, 15.0, resolved.MinBuffer)
	assert.Equal(t, 50.0, resolved.MaxBuffer)
	assert.Equal(t, 2.5, resolved.PlayBuffer)
}

func TestPlayer_UpdateOptions(t *testing.T) {
	p0, err := simnative.LoadProfile("android")
	require.NoError(t, err)
	mod := &countingModule{Module: simnative.New(p0)}
	p := New(mod, Config{})
	ctx := context.Background()
	require.NoError(t, p.Init(ctx))
	require.NoError(t, p.Setup(ctx, options.PlayerOptions{}))

	opts := options.MetadataOptions{
		Capabilities:        []player.Capability{player.CapabilityPlay, player.CapabilityPause, player.CapabilitySkip},
		CompactCapabilities: []player.Capability{player.CapabilityPlay},
		StopWithApp:         ptr(true),
	}
	require.NoError(t, p.UpdateOptions(ctx, opts))
	require.NoError(t, p.UpdateOptions(ctx, opts))
	assert.Equal(t, 1, mod.updates)

	sent := mod.Metadata()
	assert.Equal(t, []int{4, 2, 4096}, sent["capabilities"])
	assert.Equal(t, []int{4}, sent["compactCapabilities"])
	assert.Equal(t, true, sent["stopWithApp"])

	opts.StopWithApp = ptr(false)
	require.NoError(t, p.UpdateOptions(ctx, opts))
	assert.Equal(t, 2, mod.updates)
}

func TestPlayer_UpdateOptionsEmptyListIsNotUnset(t *testing.T) {
	p0, err := simnative.LoadProfile("android")
	require.NoError(t, err)
	mod := &countingModule{Module: simnative.New(p0)}
	p := New(mod, Config{})
	ctx := context.Background()
	require.NoError(t, p.Init(ctx))
	require.NoError(t, p.Setup(ctx, options.PlayerOptions{}))

	require.NoError(t, p.UpdateOptions(ctx, options.MetadataOptions{}))
	assert.Equal(t, 1, mod.updates)
	assert.NotContains(t, mod.Metadata(), "capabilities")

	// Clearing every control is a distinct update from leaving the default.
	require.NoError(t, p.UpdateOptions(ctx, options.MetadataOptions{Capabilities: []player.Capability{}}))
	assert.Equal(t, 2, mod.updates)
	assert.Equal(t, []int{}, mod.Metadata()["capabilities"])

	require.NoError(t, p.UpdateOptions(ctx, options.MetadataOptions{Capabilities: []player.Capability{}}))
	assert.Equal(t, 2, mod.updates)
}

func TestPlayer_AddAndRemove(t *testing.T) {
	p, sim := newReadyPlayer(t)
	ctx := context.Background()

	require.NoError(t, p.Add(ctx, []track.Track{song("a"), song("c")}, ""))
	require.NoError(t, p.Add(ctx, []track.Track{song("b")}, "c"))
	assert.Equal(t, []string{"a", "b", "c"}, sim.Queue())

	var ids []string
	for _, tr := range p.Queue() {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	got, ok := p.Track("b")
	require.True(t, ok)
	assert.Equal(t, "Song b", got.Title)

	require.NoError(t, p.Remove(ctx, "b"))
	assert.Equal(t, []string{"a", "c"}, sim.Queue())
	assert.ErrorIs(t, p.Remove(ctx, "b"), ErrTrackNotFound)
}

func TestPlayer_AddRejects(t *testing.T) {
	p, sim := newReadyPlayer(t)
	ctx := context.Background()
	require.NoError(t, p.Add(ctx, []track.Track{song("a")}, ""))

	tests := []struct {
		name    string
		tracks  []track.Track
		before  string
		wantErr error
	}{
		{name: "id already queued", tracks: []track.Track{song("a")}, wantErr: ErrDuplicateTrack},
		{name: "duplicate within batch", tracks: []track.Track{song("x"), song("x")}, wantErr: ErrDuplicateTrack},
		{name: "missing url", tracks: []track.Track{{ID: "y"}}, wantErr: track.ErrInvalidTrack},
		{name: "missing id", tracks: []track.Track{{URL: resource.NewHandle(1)}}, wantErr: track.ErrInvalidTrack},
		{name: "unknown anchor", tracks: []track.Track{song("z")}, before: "nope", wantErr: ErrTrackNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Add(ctx, tt.tracks, tt.before)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{"a"}, sim.Queue())
		})
	}
}

func TestPlayer_AddEncodesExtras(t *testing.T) {
	p, _ := newReadyPlayer(t)
	ctx := context.Background()

	tr := song("e")
	require.NoError(t, tr.SetExtra("headers", map[string]any{"Cookie": "x"}))
	music := player.PitchAlgorithmMusic
	tr.PitchAlgorithm = &music
	require.NoError(t, p.Add(ctx, []track.Track{tr}, ""))

	got, ok := p.Track("e")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"Cookie": "x"}, got.Extras["headers"])
}

func TestPlayer_RunDispatchesEvents(t *testing.T) {
	p, sim := newReadyPlayer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan event.Message, 4)
	_, err := p.AddEventListener(event.PlaybackState, func(ctx context.Context, msg event.Message) { received <- msg })
	require.NoError(t, err)
	_, err = p.AddEventListener(event.RemoteSeek, func(ctx context.Context, msg event.Message) { received <- msg })
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.NoError(t, sim.Emit(native.RawEvent{Name: "remote-bogus"}))
	require.NoError(t, sim.Emit(native.RawEvent{Name: "playback-state", Data: map[string]any{"state": 3}}))
	require.NoError(t, sim.Emit(native.RawEvent{Name: "playback-state", Data: map[string]any{"state": 2}}))
	require.NoError(t, sim.Emit(native.RawEvent{Name: "playback-state", Data: map[string]any{"state": 99}}))
	require.NoError(t, sim.Emit(native.RawEvent{Name: "remote-seek", Data: map[string]any{"position": 42.0}}))
	sim.Close()

	require.NoError(t, <-done)
	close(received)

	var msgs []event.Message
	for m := range received {
		msgs = append(msgs, m)
	}
	require.Len(t, msgs, 4)

	require.NotNil(t, msgs[0].State)
	assert.Equal(t, player.StatePlaying, *msgs[0].State)
	require.NotNil(t, msgs[1].State)
	assert.Equal(t, player.StatePaused, *msgs[1].State)
	assert.Nil(t, msgs[2].State)
	assert.Equal(t, 99, msgs[2].Data["state"])
	assert.Equal(t, event.RemoteSeek, msgs[3].Type)
	assert.Equal(t, 42.0, msgs[3].Data["position"])
}

func TestPlayer_RunStopsOnContext(t *testing.T) {
	p, _ := newReadyPlayer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
}
