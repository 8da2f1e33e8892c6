package bridge

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/trackbind/internal/domain/event"
	"github.com/osa030/trackbind/internal/native"
)

// Run relays native events to listeners until ctx is done or the module
// closes its event channel.
func (p *Player) Run(ctx context.Context) error {
	if err := p.requireReady("run"); err != nil {
		return err
	}

	events := p.module.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-events:
			if !ok {
				zlog.Debug().Msg("Native event channel closed")
				return nil
			}
			msg, err := p.decode(raw)
			if err != nil {
				zlog.Warn().Str("event", raw.Name).Msgf("Dropping native event: %v", err)
				continue
			}
			p.dispatcher.Dispatch(ctx, msg)
		}
	}
}

// decode turns a raw native event into a message. PlaybackState codes that
// cannot be resolved still produce a message, with State left nil.
func (p *Player) decode(raw native.RawEvent) (event.Message, error) {
	ev, err := event.Parse(raw.Name)
	if err != nil {
		return event.Message{}, err
	}
	msg := event.Message{Type: ev, Data: raw.Data}

	if ev == event.PlaybackState {
		payload, err := msg.DecodeState()
		if err != nil {
			zlog.Warn().Msgf("Malformed state payload: %v", err)
			return msg, nil
		}
		state, err := native.DecodeState(p.consts, payload.State)
		if err != nil {
			if errors.Is(err, native.ErrUninitialized) {
				return event.Message{}, err
			}
			zlog.Warn().Int("code", payload.State).Msg("Unknown native state code")
			return msg, nil
		}
		msg.State = &state
	}
	return msg, nil
}
