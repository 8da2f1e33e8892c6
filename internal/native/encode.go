package native

import (
	"github.com/cockroachdb/errors"

	"github.com/osa030/trackbind/internal/domain/options"
	"github.com/osa030/trackbind/internal/domain/player"
	"github.com/osa030/trackbind/internal/domain/resource"
	"github.com/osa030/trackbind/internal/domain/track"
)

// Encoder turns options and tracks into the payloads the native module
// expects. Values pass through unchanged except native-backed enum members,
// which become their resolved codes, and variants, which become plain values.
type Encoder struct {
	consts *Constants
}

// NewEncoder creates an encoder backed by consts.
func NewEncoder(consts *Constants) *Encoder {
	return &Encoder{consts: consts}
}

// PlayerOptions encodes setup options.
func (e *Encoder) PlayerOptions(o options.PlayerOptions) (map[string]any, error) {
	out := make(map[string]any)
	putFloat(out, "minBuffer", o.MinBuffer)
	putFloat(out, "maxBuffer", o.MaxBuffer)
	putFloat(out, "playBuffer", o.PlayBuffer)
	putFloat(out, "maxCacheSize", o.MaxCacheSize)
	if o.IOSCategory != nil {
		out["iosCategory"] = string(*o.IOSCategory)
	}
	if o.IOSCategoryMode != nil {
		out["iosCategoryMode"] = string(*o.IOSCategoryMode)
	}
	if o.IOSCategoryOptions != nil {
		opts := make([]string, len(o.IOSCategoryOptions))
		for i, v := range o.IOSCategoryOptions {
			opts[i] = string(v)
		}
		out["iosCategoryOptions"] = opts
	}
	putBool(out, "waitForBuffer", o.WaitForBuffer)
	return out, nil
}

// MetadataOptions encodes metadata update options.
func (e *Encoder) MetadataOptions(o options.MetadataOptions) (map[string]any, error) {
	out := make(map[string]any)
	if o.RatingType != nil {
		v, err := Resolve(e.consts, *o.RatingType)
		if err != nil {
			return nil, errors.Wrap(err, "ratingType")
		}
		out["ratingType"] = v
	}
	putFloat(out, "jumpInterval", o.JumpInterval)
	putFeedback(out, "likeOptions", o.LikeOptions)
	putFeedback(out, "dislikeOptions", o.DislikeOptions)
	putFeedback(out, "bookmarkOptions", o.BookmarkOptions)
	putBool(out, "stopWithApp", o.StopWithApp)
	putBool(out, "alwaysPauseOnInterruption", o.AlwaysPauseOnInterruption)
	putFloat(out, "duckingVolumeMultiplier", o.DuckingVolumeMultiplier)

	for key, list := range map[string][]player.Capability{
		"capabilities":             o.Capabilities,
		"notificationCapabilities": o.NotificationCapabilities,
		"compactCapabilities":      o.CompactCapabilities,
	} {
		if list == nil {
			continue
		}
		codes, err := ResolveAll(e.consts, list)
		if err != nil {
			return nil, errors.Wrap(err, key)
		}
		out[key] = codes
	}

	for name, h := range o.Icons() {
		out[name] = int(h)
	}
	if o.Color != nil {
		out["color"] = int64(*o.Color)
	}
	return out, nil
}

// Track encodes a track, extras included.
func (e *Encoder) Track(t track.Track) (map[string]any, error) {
	fields := t.Fields()
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch x := v.(type) {
		case resource.Source:
			out[k] = x.Native()
		case track.Rating:
			out[k] = x.Native()
		case track.TrackType:
			out[k] = string(x)
		case player.PitchAlgorithm:
			code, err := Resolve(e.consts, x)
			if err != nil {
				return nil, errors.Wrap(err, k)
			}
			out[k] = code
		default:
			out[k] = v
		}
	}
	return out, nil
}

// Tracks encodes a list of tracks.
func (e *Encoder) Tracks(ts []track.Track) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(ts))
	for _, t := range ts {
		m, err := e.Track(t)
		if err != nil {
			return nil, errors.Wrapf(err, "track %q", t.ID)
		}
		out = append(out, m)
	}
	return out, nil
}

func putFloat(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

func putBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

func putFeedback(m map[string]any, key string, v *options.FeedbackOptions) {
	if v != nil {
		m[key] = map[string]any{"isActive": v.IsActive, "title": v.Title}
	}
}
