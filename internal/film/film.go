// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import (
	"strings"
	"time"
)

// Film is the central aggregate of the Cinelog domain.
//
// # Overview
//
// It represents a single catalog entry: either a standalone movie, a series
// header as delivered by the external catalog, or a per-season entry produced
// by [TransformSeries]. After the transform a season entry carries the
// composite id "{seriesID}-{season}" and IsSeries=false; the transform is
// one-way.
//
// Personalization fields (IsWatched, UserRating, AddedAt) belong to the
// requesting user, not to the catalog entry. They are populated only by
// identity-scoped repository lookups and stay zero-valued everywhere else.
type Film struct {
	FilmID          string             `json:"film_id"`
	Name            string             `json:"name"`
	AlternativeName *string            `json:"alternative_name,omitempty"`
	ReleaseYear     *int               `json:"release_year,omitempty"`
	EndYear         *int               `json:"end_year,omitempty"`
	IsSeries        bool               `json:"is_series"`
	Season          *int               `json:"season,omitempty"`
	SeasonsInfo     []SeasonInfo       `json:"seasons_info,omitempty"`
	Slogan          *string            `json:"slogan,omitempty"`
	Description     *string            `json:"description,omitempty"`
	PosterLink      *string            `json:"poster_link,omitempty"`
	Genres          []string           `json:"genres,omitempty"`
	Countries       []string           `json:"countries,omitempty"`
	Director        *string            `json:"director,omitempty"`
	Persons         []Person           `json:"persons,omitempty"`
	TimeMinutes     *int               `json:"time_minutes,omitempty"`
	AgeRating       *int               `json:"age_rating,omitempty"`
	Ratings         map[string]float64 `json:"ratings,omitempty"`
	Trailers        []string           `json:"trailers,omitempty"`
	Status          *string            `json:"status,omitempty"`
	Episodes        []Episode          `json:"episodes,omitempty"`
	LastUpdated     time.Time          `json:"last_updated"`

	// # Per-User Personalization
	IsWatched  *bool          `json:"is_watched,omitempty"`
	UserRating *ComplexRating `json:"user_rating,omitempty"`
	AddedAt    *time.Time     `json:"added_at,omitempty"`

	// AlreadyAdded marks an external search candidate that the requesting
	// user already tracks locally. Never persisted.
	AlreadyAdded bool `json:"already_added,omitempty"`
}

// RatingSourceKP is the key under [Film.Ratings] holding the aggregate
// catalog rating that range filters target.
const RatingSourceKP = "kp"

// CatalogRating returns the aggregate catalog rating, or nil when the entry
// has none.
func (f *Film) CatalogRating() *float64 {
	if f.Ratings == nil {
		return nil
	}
	if rating, ok := f.Ratings[RatingSourceKP]; ok {
		return &rating
	}
	return nil
}

// Person is a cast or crew member attached to a [Film].
type Person struct {
	Name       string  `json:"name"`
	Profession *string `json:"profession,omitempty"`
}

// SeasonInfo describes one season of a series header entry.
type SeasonInfo struct {
	Number        int `json:"number"`
	EpisodesCount int `json:"episodes_count"`
}

// Episode is a single episode of a season entry.
type Episode struct {
	Number int     `json:"number"`
	Name   *string `json:"name,omitempty"`
	Date   *string `json:"date,omitempty"`
}

// BaseID strips the season suffix from a composite film id.
//
// "123-2" becomes "123"; an id without a suffix is returned unchanged.
// Everything after the first dash is discarded, so ids that were never
// composite must not contain dashes.
func BaseID(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 {
		return id[:i]
	}
	return id
}
