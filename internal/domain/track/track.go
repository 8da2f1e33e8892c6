// Package track provides the Track descriptor handed to the native player queue.
package track

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/osa030/trackbind/internal/domain/player"
	"github.com/osa030/trackbind/internal/domain/resource"
)

// TrackType identifies the streaming protocol of a track.
type TrackType string

const (
	TypeDefault         TrackType = "default"
	TypeDash            TrackType = "dash"
	TypeHLS             TrackType = "hls"
	TypeSmoothStreaming TrackType = "smoothstreaming"
)

// Valid reports whether t is a known track type.
func (t TrackType) Valid() bool {
	switch t {
	case TypeDefault, TypeDash, TypeHLS, TypeSmoothStreaming:
		return true
	}
	return false
}

// Errors
var (
	ErrInvalidTrack = errors.New("invalid track")
	ErrReservedKey  = errors.New("key is a typed track field")
)

// Metadata holds the descriptive fields shown by the system media controls.
type Metadata struct {
	Duration    *float64 // Seconds
	Title       string
	Artist      string
	Album       string
	Description string
	Genre       string
	Date        string
	Rating      Rating
	Artwork     resource.Source
}

// Track describes a playable item. Keys without a typed field are kept in
// Extras and passed through to the native module untouched.
type Track struct {
	Metadata

	ID             string          `validate:"required"`
	URL            resource.Source // URI or bundled resource
	Type           TrackType       `validate:"omitempty,oneof=default dash hls smoothstreaming"`
	UserAgent      string
	ContentType    string
	PitchAlgorithm *player.PitchAlgorithm
	Extras         map[string]any
}

// Wire keys of the typed fields.
const (
	KeyID             = "id"
	KeyURL            = "url"
	KeyType           = "type"
	KeyUserAgent      = "userAgent"
	KeyContentType    = "contentType"
	KeyPitchAlgorithm = "pitchAlgorithm"
	KeyDuration       = "duration"
	KeyTitle          = "title"
	KeyArtist         = "artist"
	KeyAlbum          = "album"
	KeyDescription    = "description"
	KeyGenre          = "genre"
	KeyDate           = "date"
	KeyRating         = "rating"
	KeyArtwork        = "artwork"
)

var reservedKeys = map[string]bool{
	KeyID: true, KeyURL: true, KeyType: true, KeyUserAgent: true, KeyContentType: true,
	KeyPitchAlgorithm: true, KeyDuration: true, KeyTitle: true, KeyArtist: true,
	KeyAlbum: true, KeyDescription: true, KeyGenre: true, KeyDate: true,
	KeyRating: true, KeyArtwork: true,
}

// IsReservedKey reports whether key names a typed field.
func IsReservedKey(key string) bool { return reservedKeys[key] }

// wireFields mirrors the typed keys for mapstructure decoding.
type wireFields struct {
	ID             string   `mapstructure:"id"`
	URL            any      `mapstructure:"url"`
	Type           string   `mapstructure:"type"`
	UserAgent      string   `mapstructure:"userAgent"`
	ContentType    string   `mapstructure:"contentType"`
	PitchAlgorithm any      `mapstructure:"pitchAlgorithm"`
	Duration       *float64 `mapstructure:"duration"`
	Title          string   `mapstructure:"title"`
	Artist         string   `mapstructure:"artist"`
	Album          string   `mapstructure:"album"`
	Description    string   `mapstructure:"description"`
	Genre          string   `mapstructure:"genre"`
	Date           string   `mapstructure:"date"`
	Rating         any      `mapstructure:"rating"`
	Artwork        any      `mapstructure:"artwork"`
}

// FromMap builds a Track from a decoded key-value object.
// Unknown keys are preserved in Extras.
func FromMap(m map[string]any) (Track, error) {
	var w wireFields
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    &w,
		Metadata:  &md,
		MatchName: func(key, field string) bool { return key == field },
	})
	if err != nil {
		return Track{}, errors.Wrap(err, "failed to create decoder")
	}
	if err := dec.Decode(m); err != nil {
		return Track{}, errors.Wrap(err, "failed to decode track")
	}

	t := Track{
		ID:          w.ID,
		Type:        TrackType(w.Type),
		UserAgent:   w.UserAgent,
		ContentType: w.ContentType,
		Metadata: Metadata{
			Duration:    w.Duration,
			Title:       w.Title,
			Artist:      w.Artist,
			Album:       w.Album,
			Description: w.Description,
			Genre:       w.Genre,
			Date:        w.Date,
		},
	}
	if t.URL, err = resource.Parse(w.URL); err != nil {
		return Track{}, errors.Wrap(err, "url")
	}
	if t.Artwork, err = resource.Parse(w.Artwork); err != nil {
		return Track{}, errors.Wrap(err, "artwork")
	}
	if t.Rating, err = ParseRating(w.Rating); err != nil {
		return Track{}, errors.Wrap(err, "rating")
	}
	if t.PitchAlgorithm, err = parsePitch(w.PitchAlgorithm); err != nil {
		return Track{}, errors.Wrap(err, "pitchAlgorithm")
	}

	for _, key := range md.Unused {
		if t.Extras == nil {
			t.Extras = make(map[string]any)
		}
		t.Extras[key] = m[key]
	}
	return t, nil
}

func parsePitch(v any) (*player.PitchAlgorithm, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case player.PitchAlgorithm:
		return &x, nil
	case string:
		p, err := player.ParsePitchAlgorithm(x)
		if err != nil {
			return nil, err
		}
		return &p, nil
	default:
		return nil, errors.Newf("expected pitch algorithm name, got %T", v)
	}
}

// Fields returns the merged view of typed fields and extras.
// Typed fields win over extras with the same key; unset optional fields are omitted.
func (t Track) Fields() map[string]any {
	out := make(map[string]any, len(t.Extras)+8)
	for k, v := range t.Extras {
		out[k] = v
	}
	out[KeyID] = t.ID
	if !t.URL.IsZero() {
		out[KeyURL] = t.URL
	}
	if t.Type != "" {
		out[KeyType] = t.Type
	}
	setString(out, KeyUserAgent, t.UserAgent)
	setString(out, KeyContentType, t.ContentType)
	if t.PitchAlgorithm != nil {
		out[KeyPitchAlgorithm] = *t.PitchAlgorithm
	}
	if t.Duration != nil {
		out[KeyDuration] = *t.Duration
	}
	setString(out, KeyTitle, t.Title)
	setString(out, KeyArtist, t.Artist)
	setString(out, KeyAlbum, t.Album)
	setString(out, KeyDescription, t.Description)
	setString(out, KeyGenre, t.Genre)
	setString(out, KeyDate, t.Date)
	if !t.Rating.IsZero() {
		out[KeyRating] = t.Rating
	}
	if !t.Artwork.IsZero() {
		out[KeyArtwork] = t.Artwork
	}
	return out
}

func setString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

// Get returns a field from the merged view.
func (t Track) Get(key string) (any, bool) {
	v, ok := t.Fields()[key]
	return v, ok
}

// SetExtra stores an untyped field. Typed keys are rejected.
func (t *Track) SetExtra(key string, v any) error {
	if IsReservedKey(key) {
		return errors.Wrapf(ErrReservedKey, "%q", key)
	}
	if t.Extras == nil {
		t.Extras = make(map[string]any)
	}
	t.Extras[key] = v
	return nil
}

// ExtraKeys returns the extra keys in sorted order.
func (t Track) ExtraKeys() []string {
	keys := make([]string, 0, len(t.Extras))
	for k := range t.Extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var validate = validator.New()

// Validate checks that the track carries an id and a playable url.
// Uniqueness of the id is up to the queue owner.
func (t Track) Validate() error {
	if err := validate.Struct(t); err != nil {
		return errors.Wrapf(ErrInvalidTrack, "%v", err)
	}
	if t.URL.IsZero() {
		return errors.Wrapf(ErrInvalidTrack, "track %q has no url", t.ID)
	}
	return nil
}

// MarshalJSON encodes the merged view.
func (t Track) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Fields())
}

// UnmarshalJSON decodes a JSON object, keeping unknown keys as extras.
func (t *Track) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes the merged view.
func (t Track) MarshalYAML() (any, error) {
	return t.Fields(), nil
}

// UnmarshalYAML decodes a YAML mapping, keeping unknown keys as extras.
func (t *Track) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalTOML decodes a TOML table, keeping unknown keys as extras.
func (t *Track) UnmarshalTOML(v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return errors.Newf("expected table for track, got %T", v)
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
