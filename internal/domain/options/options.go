// Package options provides the configuration shapes passed to the native
// player on setup and on metadata updates.
//
// Every field is optional. An unset field means the platform default, and
// validation or defaulting is left to the native module.
package options

import (
	"github.com/osa030/trackbind/internal/domain/player"
	"github.com/osa030/trackbind/internal/domain/resource"
)

// PlayerOptions configures buffering, caching and the iOS audio session.
type PlayerOptions struct {
	MinBuffer    *float64 `json:"minBuffer,omitempty" yaml:"minBuffer,omitempty" validate:"omitempty,gte=0"`       // Seconds
	MaxBuffer    *float64 `json:"maxBuffer,omitempty" yaml:"maxBuffer,omitempty" validate:"omitempty,gte=0"`       // Seconds
	PlayBuffer   *float64 `json:"playBuffer,omitempty" yaml:"playBuffer,omitempty" validate:"omitempty,gte=0"`     // Seconds buffered before playback starts
	MaxCacheSize *float64 `json:"maxCacheSize,omitempty" yaml:"maxCacheSize,omitempty" validate:"omitempty,gte=0"` // Kilobytes, 0 disables the cache

	// iOS only
	IOSCategory        *player.IOSCategory         `json:"iosCategory,omitempty" yaml:"iosCategory,omitempty" validate:"omitempty,ios_category"`
	IOSCategoryMode    *player.IOSCategoryMode     `json:"iosCategoryMode,omitempty" yaml:"iosCategoryMode,omitempty" validate:"omitempty,ios_category_mode"`
	IOSCategoryOptions []player.IOSCategoryOptions `json:"iosCategoryOptions,omitempty" yaml:"iosCategoryOptions,omitempty" validate:"omitempty,dive,ios_category_option"`

	WaitForBuffer *bool `json:"waitForBuffer,omitempty" yaml:"waitForBuffer,omitempty"`
}

// FeedbackOptions describes a toggle action (like, dislike, bookmark).
type FeedbackOptions struct {
	// Whether the option is shown as active or "done".
	IsActive bool `json:"isActive" yaml:"isActive"`
	// Title of the action (used on iOS).
	Title string `json:"title" yaml:"title"`
}

// MetadataOptions configures the now-playing controls surfaced by the system.
//
// Capabilities, NotificationCapabilities and CompactCapabilities are
// independent lists; membership in one implies nothing about the others.
type MetadataOptions struct {
	RatingType   *player.RatingType `json:"ratingType,omitempty" yaml:"ratingType,omitempty"`
	JumpInterval *float64           `json:"jumpInterval,omitempty" yaml:"jumpInterval,omitempty" validate:"omitempty,gt=0"` // Seconds

	LikeOptions     *FeedbackOptions `json:"likeOptions,omitempty" yaml:"likeOptions,omitempty"`
	DislikeOptions  *FeedbackOptions `json:"dislikeOptions,omitempty" yaml:"dislikeOptions,omitempty"`
	BookmarkOptions *FeedbackOptions `json:"bookmarkOptions,omitempty" yaml:"bookmarkOptions,omitempty"`

	StopWithApp               *bool    `json:"stopWithApp,omitempty" yaml:"stopWithApp,omitempty"`
	AlwaysPauseOnInterruption *bool    `json:"alwaysPauseOnInterruption,omitempty" yaml:"alwaysPauseOnInterruption,omitempty"`
	DuckingVolumeMultiplier   *float64 `json:"duckingVolumeMultiplier,omitempty" yaml:"duckingVolumeMultiplier,omitempty" validate:"omitempty,gte=0,lte=1"`

	Capabilities             []player.Capability `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	NotificationCapabilities []player.Capability `json:"notificationCapabilities,omitempty" yaml:"notificationCapabilities,omitempty"`
	CompactCapabilities      []player.Capability `json:"compactCapabilities,omitempty" yaml:"compactCapabilities,omitempty" validate:"omitempty,max=3"`

	Icon         *resource.Object `json:"icon,omitempty" yaml:"icon,omitempty"`
	PlayIcon     *resource.Object `json:"playIcon,omitempty" yaml:"playIcon,omitempty"`
	PauseIcon    *resource.Object `json:"pauseIcon,omitempty" yaml:"pauseIcon,omitempty"`
	StopIcon     *resource.Object `json:"stopIcon,omitempty" yaml:"stopIcon,omitempty"`
	PreviousIcon *resource.Object `json:"previousIcon,omitempty" yaml:"previousIcon,omitempty"`
	NextIcon     *resource.Object `json:"nextIcon,omitempty" yaml:"nextIcon,omitempty"`
	RewindIcon   *resource.Object `json:"rewindIcon,omitempty" yaml:"rewindIcon,omitempty"`
	ForwardIcon  *resource.Object `json:"forwardIcon,omitempty" yaml:"forwardIcon,omitempty"`

	Color *uint32 `json:"color,omitempty" yaml:"color,omitempty"` // ARGB notification accent (Android)
}

// HasCapability reports whether list contains c.
func HasCapability(list []player.Capability, c player.Capability) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

// Icons returns the set icon handles keyed by their wire name.
func (o MetadataOptions) Icons() map[string]resource.Object {
	icons := make(map[string]resource.Object)
	for name, h := range map[string]*resource.Object{
		"icon":         o.Icon,
		"playIcon":     o.PlayIcon,
		"pauseIcon":    o.PauseIcon,
		"stopIcon":     o.StopIcon,
		"previousIcon": o.PreviousIcon,
		"nextIcon":     o.NextIcon,
		"rewindIcon":   o.RewindIcon,
		"forwardIcon":  o.ForwardIcon,
	} {
		if h != nil {
			icons[name] = *h
		}
	}
	return icons
}
