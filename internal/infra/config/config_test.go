package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/trackbind/internal/domain/player"
	"github.com/osa030/trackbind/internal/domain/resource"
	"github.com/osa030/trackbind/internal/domain/track"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const yamlConfig = `
profile: sequential
log:
  level: debug
player:
  waitForBuffer: true
  iosCategory: playback
  iosCategoryOptions: [allowBluetooth, duckOthers]
metadata:
  ratingType: heart
  jumpInterval: 15
  duckingVolumeMultiplier: 0.4
  capabilities: [play, pause, jump-forward]
  compactCapabilities: [play]
  likeOptions:
    isActive: true
    title: Like
tracks:
  - id: intro
    url: 3
    title: Intro
  - id: stream
    url: https://example.com/live.m3u8
    type: hls
    station: KEXP
`

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "trackbind.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, "sequential", cfg.Profile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, 500, cfg.Dispatch.ListenerTimeoutMs)

	require.NotNil(t, cfg.Player.WaitForBuffer)
	assert.True(t, *cfg.Player.WaitForBuffer)
	assert.Nil(t, cfg.Player.MinBuffer)
	assert.Equal(t, []player.IOSCategoryOptions{player.IOSCategoryOptionsAllowBluetooth, player.IOSCategoryOptionsDuckOthers},
		cfg.Player.IOSCategoryOptions)

	require.NotNil(t, cfg.Metadata.RatingType)
	assert.Equal(t, player.RatingHeart, *cfg.Metadata.RatingType)
	assert.Equal(t, []player.Capability{player.CapabilityPlay, player.CapabilityPause, player.CapabilityJumpForward},
		cfg.Metadata.Capabilities)
	assert.True(t, cfg.Metadata.LikeOptions.IsActive)

	require.Len(t, cfg.Tracks, 2)
	assert.Equal(t, resource.NewHandle(3), cfg.Tracks[0].URL)
	assert.Equal(t, track.TypeHLS, cfg.Tracks[1].Type)
	assert.Equal(t, "KEXP", cfg.Tracks[1].Extras["station"])
}

func TestLoad_TOML(t *testing.T) {
	src := `
profile = "android"

[player]
minBuffer = 10.0
waitForBuffer = true

[metadata]
ratingType = "five-stars"
capabilities = ["play", "stop"]

[[tracks]]
id = "a"
url = "https://example.com/a.mp3"
rating = 4.5
`
	cfg, err := Load(writeFile(t, "trackbind.toml", src))
	require.NoError(t, err)

	assert.Equal(t, "android", cfg.Profile)
	require.NotNil(t, cfg.Player.MinBuffer)
	assert.Equal(t, 10.0, *cfg.Player.MinBuffer)
	require.NotNil(t, cfg.Metadata.RatingType)
	assert.Equal(t, player.RatingFiveStars, *cfg.Metadata.RatingType)
	require.Len(t, cfg.Tracks, 1)
	n, ok := cfg.Tracks[0].Rating.Numeric()
	assert.True(t, ok)
	assert.Equal(t, 4.5, n)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "android", cfg.Profile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 500, cfg.Dispatch.ListenerTimeoutMs)
	assert.Empty(t, cfg.Tracks)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TRACKBIND_PROFILE", "sequential")
	t.Setenv("TRACKBIND_LOG_LEVEL", "warn")

	cfg, err := Load(writeFile(t, "c.yaml", "profile: android\n"))
	require.NoError(t, err)
	assert.Equal(t, "sequential", cfg.Profile)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{
			name:    "invalid log level",
			file:    "a.yaml",
			content: "log:\n  level: loud\n",
			errMsg:  "Level",
		},
		{
			name:    "track without url",
			file:    "b.yaml",
			content: "tracks:\n  - id: a\n",
			errMsg:  "tracks[0]",
		},
		{
			name:    "unknown capability",
			file:    "c.yaml",
			content: "metadata:\n  capabilities: [fly]\n",
			errMsg:  "fly",
		},
		{
			name:    "listener timeout out of range",
			file:    "d.yaml",
			content: "dispatch:\n  listener_timeout_ms: 120000\n",
			errMsg:  "ListenerTimeoutMs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_AdvisoryRangesDoNotFailValidation(t *testing.T) {
	cfg, err := Load(writeFile(t, "e.yaml", "metadata:\n  duckingVolumeMultiplier: 3\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Metadata.Advisories())
}
