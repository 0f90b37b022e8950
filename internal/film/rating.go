// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

// RatingScale is the ordinal value a user assigns to one aspect of a film.
type RatingScale int

const (
	// RatingBad is the lowest mark.
	RatingBad RatingScale = 1
	// RatingFine is a below-average mark.
	RatingFine RatingScale = 2
	// RatingGood is an above-average mark.
	RatingGood RatingScale = 3
	// RatingAwesome is the highest mark.
	RatingAwesome RatingScale = 4
)

// IsValid reports whether s is a recognised [RatingScale] value.
func (s RatingScale) IsValid() bool {
	return s >= RatingBad && s <= RatingAwesome
}

// Label returns the human-readable name of the mark.
func (s RatingScale) Label() string {
	switch s {
	case RatingBad:
		return "bad"
	case RatingFine:
		return "fine"
	case RatingGood:
		return "good"
	case RatingAwesome:
		return "awesome"
	}
	return "unknown"
}

// ComplexRating is a user's multi-aspect assessment of one film.
//
// Every aspect is optional: a nil aspect was simply not rated. The record is
// stored as a jsonb document on the user-film row and replaced wholesale on
// update.
type ComplexRating struct {
	Storyline   *RatingScale `json:"storyline,omitempty"`
	Music       *RatingScale `json:"music,omitempty"`
	Montage     *RatingScale `json:"montage,omitempty"`
	ActingGame  *RatingScale `json:"acting_game,omitempty"`
	Atmosphere  *RatingScale `json:"atmosphere,omitempty"`
	Originality *RatingScale `json:"originality,omitempty"`
}

// Validate reports the first aspect carrying an out-of-scale value, or empty
// when the whole record is acceptable.
func (r *ComplexRating) Validate() (string, bool) {
	aspects := []struct {
		name  string
		value *RatingScale
	}{
		{"storyline", r.Storyline},
		{"music", r.Music},
		{"montage", r.Montage},
		{"acting_game", r.ActingGame},
		{"atmosphere", r.Atmosphere},
		{"originality", r.Originality},
	}
	for _, aspect := range aspects {
		if aspect.value != nil && !aspect.value.IsValid() {
			return aspect.name, false
		}
	}
	return "", true
}
