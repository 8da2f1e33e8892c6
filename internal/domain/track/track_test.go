package track

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/osa030/trackbind/internal/domain/player"
	"github.com/osa030/trackbind/internal/domain/resource"
)

func ptr[T any](v T) *T { return &v }

func TestTrack_Validate(t *testing.T) {
	tests := []struct {
		name    string
		track   Track
		wantErr bool
	}{
		{
			name:  "id and uri",
			track: Track{ID: "t1", URL: resource.NewURI("https://example.com/a.mp3")},
		},
		{
			name:  "id and resource handle",
			track: Track{ID: "t1", URL: resource.NewHandle(3)},
		},
		{
			name:    "missing id",
			track:   Track{URL: resource.NewURI("https://example.com/a.mp3")},
			wantErr: true,
		},
		{
			name:    "missing url",
			track:   Track{ID: "t1"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			track:   Track{ID: "t1", URL: resource.NewURI("x"), Type: "rtsp"},
			wantErr: true,
		},
		{
			name: "everything else optional",
			track: Track{
				ID:   "t1",
				URL:  resource.NewURI("x"),
				Type: TypeHLS,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.track.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTrack)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromMap_KeepsExtras(t *testing.T) {
	tr, err := FromMap(map[string]any{
		"id":             "abc",
		"url":            "https://example.com/a.m3u8",
		"type":           "hls",
		"title":          "Song",
		"duration":       215,
		"rating":         true,
		"artwork":        12,
		"pitchAlgorithm": "voice",
		"episodeNumber":  4,
		"chapters":       []any{"intro", "outro"},
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", tr.ID)
	assert.Equal(t, resource.NewURI("https://example.com/a.m3u8"), tr.URL)
	assert.Equal(t, TypeHLS, tr.Type)
	assert.Equal(t, "Song", tr.Title)
	require.NotNil(t, tr.Duration)
	assert.Equal(t, 215.0, *tr.Duration)
	b, ok := tr.Rating.Boolean()
	assert.True(t, ok)
	assert.True(t, b)
	assert.Equal(t, resource.NewHandle(12), tr.Artwork)
	require.NotNil(t, tr.PitchAlgorithm)
	assert.Equal(t, player.PitchAlgorithmVoice, *tr.PitchAlgorithm)

	assert.Equal(t, []string{"chapters", "episodeNumber"}, tr.ExtraKeys())
	v, ok := tr.Get("episodeNumber")
	assert.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestFromMap_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
	}{
		{name: "title not a string", input: map[string]any{"id": "a", "url": "u", "title": 3}},
		{name: "rating is a string", input: map[string]any{"id": "a", "url": "u", "rating": "five"}},
		{name: "url is a bool", input: map[string]any{"id": "a", "url": true}},
		{name: "unknown pitch", input: map[string]any{"id": "a", "url": "u", "pitchAlgorithm": "robot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestTrack_JSONRoundTrip(t *testing.T) {
	music := player.PitchAlgorithmMusic
	original := Track{
		ID:             "42",
		URL:            resource.NewHandle(5),
		Type:           TypeDash,
		UserAgent:      "trackbind/1.0",
		ContentType:    "audio/mpeg",
		PitchAlgorithm: &music,
		Metadata: Metadata{
			Duration:    ptr(61.5),
			Title:       "Title",
			Artist:      "Artist",
			Album:       "Album",
			Description: "Desc",
			Genre:       "Jazz",
			Date:        "2020-01-01",
			Rating:      NewNumericRating(4),
			Artwork:     resource.NewURI("https://example.com/cover.png"),
		},
		Extras: map[string]any{"headers": map[string]any{"X-Token": "t"}},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "42", "url": 5, "type": "dash", "userAgent": "trackbind/1.0",
		"contentType": "audio/mpeg", "pitchAlgorithm": "music", "duration": 61.5,
		"title": "Title", "artist": "Artist", "album": "Album", "description": "Desc",
		"genre": "Jazz", "date": "2020-01-01", "rating": 4,
		"artwork": "https://example.com/cover.png",
		"headers": {"X-Token": "t"}
	}`, string(data))

	var back Track
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, original.Metadata, back.Metadata)
	assert.Equal(t, original.ID, back.ID)
	assert.Equal(t, original.URL, back.URL)
	assert.Equal(t, original.PitchAlgorithm, back.PitchAlgorithm)
	assert.Equal(t, original.Extras, back.Extras)

	again, err := json.Marshal(back)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestTrack_TypedFieldsWinOverExtras(t *testing.T) {
	tr := Track{ID: "a", URL: resource.NewURI("u"), Metadata: Metadata{Title: "Typed"}}
	tr.Extras = map[string]any{"title": "shadow"}

	v, ok := tr.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Typed", v)

	err := tr.SetExtra("title", "again")
	assert.ErrorIs(t, err, ErrReservedKey)
	require.NoError(t, tr.SetExtra("mood", "calm"))
	assert.Equal(t, "calm", tr.Extras["mood"])
}

func TestTrack_YAML(t *testing.T) {
	src := `
id: local-1
url: 17
title: Bundled
rating: 3.5
loop: true
`
	var tr Track
	require.NoError(t, yaml.Unmarshal([]byte(src), &tr))
	assert.Equal(t, resource.NewHandle(17), tr.URL)
	n, ok := tr.Rating.Numeric()
	assert.True(t, ok)
	assert.Equal(t, 3.5, n)
	assert.Equal(t, true, tr.Extras["loop"])
	assert.NoError(t, tr.Validate())
}

func TestTrack_TOML(t *testing.T) {
	src := `
[[tracks]]
id = "remote-1"
url = "https://example.com/live.m3u8"
type = "hls"
station = "KEXP"
`
	var doc struct {
		Tracks []Track `toml:"tracks"`
	}
	_, err := toml.Decode(src, &doc)
	require.NoError(t, err)
	require.Len(t, doc.Tracks, 1)
	assert.Equal(t, TypeHLS, doc.Tracks[0].Type)
	assert.Equal(t, "KEXP", doc.Tracks[0].Extras["station"])
}

func TestRating_Variants(t *testing.T) {
	r, err := ParseRating(false)
	require.NoError(t, err)
	assert.Equal(t, RatingBoolean, r.Kind())
	assert.Equal(t, false, r.Native())

	r, err = ParseRating(json.Number("80"))
	require.NoError(t, err)
	assert.Equal(t, 80.0, r.Native())

	_, err = ParseRating("good")
	assert.ErrorIs(t, err, ErrInvalidRating)

	assert.True(t, Rating{}.IsZero())
}
