// Package simnative provides an in-process stand-in for the native playback
// module, driven by a platform profile.
package simnative

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// ErrUnknownProfile is returned for a profile name with no embedded file.
var ErrUnknownProfile = errors.New("unknown platform profile")

// PlayerDefaults are the values applied when PlayerOptions leave a field unset.
type PlayerDefaults struct {
	MinBuffer     float64 `yaml:"minBuffer" mapstructure:"minBuffer" default:"15" validate:"gte=0"`
	MaxBuffer     float64 `yaml:"maxBuffer" mapstructure:"maxBuffer" default:"50" validate:"gtefield=MinBuffer"`
	PlayBuffer    float64 `yaml:"playBuffer" mapstructure:"playBuffer" default:"2.5" validate:"gte=0"`
	MaxCacheSize  float64 `yaml:"maxCacheSize" mapstructure:"maxCacheSize" validate:"gte=0"`
	WaitForBuffer bool    `yaml:"waitForBuffer" mapstructure:"waitForBuffer"`
}

// Profile describes what a platform's native module exports.
type Profile struct {
	Name      string         `yaml:"name" validate:"required"`
	Constants map[string]int `yaml:"constants" validate:"required"`
	Defaults  PlayerDefaults `yaml:"defaults"`
}

// ProfileNames lists the embedded profiles.
func ProfileNames() []string {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// LoadProfile loads an embedded profile by name.
func LoadProfile(name string) (Profile, error) {
	data, err := profileFS.ReadFile(path.Join("profiles", name+".yaml"))
	if err != nil {
		return Profile{}, errors.Wrapf(ErrUnknownProfile, "%q (available: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	return ParseProfile(data)
}

// ParseProfile parses a profile document.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.Wrap(err, "failed to parse profile")
	}
	if err := defaults.Set(&p); err != nil {
		return Profile{}, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(p); err != nil {
		return Profile{}, errors.Wrap(err, "profile validation failed")
	}
	return p, nil
}
