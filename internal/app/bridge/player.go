// Package bridge connects application code to the native playback module.
package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/hashstructure/v2"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/trackbind/internal/app/dispatch"
	"github.com/osa030/trackbind/internal/domain/event"
	"github.com/osa030/trackbind/internal/domain/options"
	"github.com/osa030/trackbind/internal/domain/track"
	"github.com/osa030/trackbind/internal/native"
)

// Errors
var (
	ErrDuplicateTrack = errors.New("track id is already queued")
	ErrTrackNotFound  = errors.New("track is not in the queue")
)

// Config holds bridge configuration.
type Config struct {
	ListenerTimeout time.Duration // Per-listener delivery timeout
}

// Player is the application-facing side of the native module. It owns the
// constant table, encodes outbound calls and relays inbound events.
type Player struct {
	mu sync.RWMutex

	module     native.Module
	consts     *native.Constants
	encoder    *native.Encoder
	dispatcher *dispatch.Manager

	// Mirror of the native queue
	queue []track.Track

	// Fingerprint of the last applied metadata options
	metadataHash    uint64
	metadataApplied bool
}

// New creates a player bound to module. Call Init before anything else.
func New(module native.Module, cfg Config) *Player {
	consts := native.NewConstants()
	return &Player{
		module:     module,
		consts:     consts,
		encoder:    native.NewEncoder(consts),
		dispatcher: dispatch.NewManager(cfg.ListenerTimeout),
		queue:      make([]track.Track, 0),
	}
}

// Constants returns the constant table.
func (p *Player) Constants() *native.Constants {
	return p.consts
}

// Init reads the native module's constants. It must succeed before any other
// call except AddEventListener.
func (p *Player) Init(ctx context.Context) error {
	exported, err := p.module.Constants(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read native constants")
	}
	if err := p.consts.Init(exported); err != nil {
		return err
	}
	zlog.Info().Int("constants", len(exported)).Msg("Native constants bound")
	return nil
}

func (p *Player) requireReady(op string) error {
	if !p.consts.Ready() {
		return errors.WithHint(
			errors.Wrapf(native.ErrUninitialized, "%s", op),
			"call Init before using the player",
		)
	}
	return nil
}

// Setup initializes the native player.
func (p *Player) Setup(ctx context.Context, opts options.PlayerOptions) error {
	if err := p.requireReady("setup"); err != nil {
		return err
	}
	logAdvisories("player options", opts.Advisories())

	payload, err := p.encoder.PlayerOptions(opts)
	if err != nil {
		return errors.Wrap(err, "failed to encode player options")
	}
	if err := p.module.SetupPlayer(ctx, payload); err != nil {
		return errors.Wrap(err, "native setup failed")
	}
	return nil
}

// UpdateOptions applies metadata options. An update identical to the last
// applied one is skipped.
func (p *Player) UpdateOptions(ctx context.Context, opts options.MetadataOptions) error {
	if err := p.requireReady("update options"); err != nil {
		return err
	}

	payload, err := p.encoder.MetadataOptions(opts)
	if err != nil {
		return errors.Wrap(err, "failed to encode metadata options")
	}
	// Fingerprint what the native module receives: a nil list and an empty
	// list encode differently.
	hash, err := hashstructure.Hash(payload, hashstructure.FormatV2, nil)
	if err != nil {
		return errors.Wrap(err, "failed to fingerprint metadata options")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.metadataApplied && p.metadataHash == hash {
		zlog.Debug().Msg("Metadata options unchanged, skipping update")
		return nil
	}

	logAdvisories("metadata options", opts.Advisories())
	if err := p.module.UpdateOptions(ctx, payload); err != nil {
		return errors.Wrap(err, "native update failed")
	}
	p.metadataHash = hash
	p.metadataApplied = true
	return nil
}

// Add enqueues tracks before insertBeforeID, or at the end when it is empty.
// Every track must be valid and carry an id not already queued.
func (p *Player) Add(ctx context.Context, tracks []track.Track, insertBeforeID string) error {
	if err := p.requireReady("add"); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[string]bool, len(p.queue)+len(tracks))
	for _, t := range p.queue {
		seen[t.ID] = true
	}
	for _, t := range tracks {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.ID] {
			return errors.Wrapf(ErrDuplicateTrack, "%q", t.ID)
		}
		seen[t.ID] = true
	}

	pos := len(p.queue)
	if insertBeforeID != "" {
		pos = p.indexLocked(insertBeforeID)
		if pos < 0 {
			return errors.Wrapf(ErrTrackNotFound, "%q", insertBeforeID)
		}
	}

	payload, err := p.encoder.Tracks(tracks)
	if err != nil {
		return errors.Wrap(err, "failed to encode tracks")
	}
	if err := p.module.Add(ctx, payload, insertBeforeID); err != nil {
		return errors.Wrap(err, "native add failed")
	}

	next := make([]track.Track, 0, len(p.queue)+len(tracks))
	next = append(next, p.queue[:pos]...)
	next = append(next, tracks...)
	next = append(next, p.queue[pos:]...)
	p.queue = next

	zlog.Debug().Int("added", len(tracks)).Int("queue_length", len(p.queue)).Msg("Tracks queued")
	return nil
}

// Remove removes queued tracks by id.
func (p *Player) Remove(ctx context.Context, ids ...string) error {
	if err := p.requireReady("remove"); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if p.indexLocked(id) < 0 {
			return errors.Wrapf(ErrTrackNotFound, "%q", id)
		}
		drop[id] = true
	}

	if err := p.module.Remove(ctx, ids); err != nil {
		return errors.Wrap(err, "native remove failed")
	}

	kept := make([]track.Track, 0, len(p.queue))
	for _, t := range p.queue {
		if !drop[t.ID] {
			kept = append(kept, t)
		}
	}
	p.queue = kept
	return nil
}

func (p *Player) indexLocked(id string) int {
	for i, t := range p.queue {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Queue returns a copy of the queued tracks.
func (p *Player) Queue() []track.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]track.Track, len(p.queue))
	copy(out, p.queue)
	return out
}

// Track returns a queued track by id.
func (p *Player) Track(id string) (track.Track, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if i := p.indexLocked(id); i >= 0 {
		return p.queue[i], true
	}
	return track.Track{}, false
}

// AddEventListener registers handler for ev and returns a subscription ID.
func (p *Player) AddEventListener(ev event.Event, handler dispatch.Handler) (string, error) {
	return p.dispatcher.Subscribe(ev, handler)
}

// RemoveEventListener removes a subscription.
func (p *Player) RemoveEventListener(subscriptionID string) {
	p.dispatcher.Unsubscribe(subscriptionID)
}

// Close removes all listeners.
func (p *Player) Close() {
	p.dispatcher.Close()
}

func logAdvisories(what string, advisories []options.Advisory) {
	for _, a := range advisories {
		zlog.Warn().Str("field", a.Field).Msgf("Advisory in %s: %s", what, a.Message)
	}
}
