package player

// RatingType selects the rating style shown by the system media controls.
type RatingType int

const (
	RatingHeart RatingType = iota
	RatingThumbsUpDown
	RatingThreeStars
	RatingFourStars
	RatingFiveStars
	RatingPercentage
)

var ratingTable = []entry{
	{"heart", "RATING_HEART"},
	{"thumbs-up-down", "RATING_THUMBS_UP_DOWN"},
	{"three-stars", "RATING_3_STARS"},
	{"four-stars", "RATING_4_STARS"},
	{"five-stars", "RATING_5_STARS"},
	{"percentage", "RATING_PERCENTAGE"},
}

// AllRatingTypes returns every rating type in declaration order.
func AllRatingTypes() []RatingType { return members[RatingType](ratingTable) }

// ParseRatingType parses a rating type wire name.
func ParseRatingType(name string) (RatingType, error) {
	return parse[RatingType]("rating type", ratingTable, name)
}

// String returns the string representation of the rating type.
func (r RatingType) String() string { return nameOf(ratingTable, int(r)) }

// ConstantName returns the native constant name.
func (r RatingType) ConstantName() string { return constantOf(ratingTable, int(r)) }

// MarshalText implements encoding.TextMarshaler.
func (r RatingType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RatingType) UnmarshalText(b []byte) error {
	v, err := ParseRatingType(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
