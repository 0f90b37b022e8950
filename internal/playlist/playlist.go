// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package playlist implements shared film collections: owned, optionally
public, optionally collaborative, and optionally auto-filling from a saved
search filter.

# Access

Every operation resolves permissions through the access package. Reads not
permitted are masked as NotFound so a private playlist's existence is never
confirmed; writes on a readable playlist that the requester may not mutate
fail visibly with Forbidden.
*/
package playlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/cinelog/cinelog/internal/film"
)

// Playlist is the collection aggregate.
//
// UserID is the owning user; Collaborators is the unordered set of user ids
// with content-contribution rights. GenAttrs, when set, is the saved search
// filter that makes the playlist auto-filling on owner reads.
type Playlist struct {
	PlaylistID     string       `json:"playlist_id"`
	UserID         string       `json:"user_id"`
	Name           string       `json:"name"`
	Description    *string      `json:"description,omitempty"`
	IsPublic       bool         `json:"is_public"`
	AdditionsCount int          `json:"additions_count"`
	GenAttrs       *film.Filter `json:"gen_attrs,omitempty"`
	Collaborators  []string     `json:"collaborators,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Item is one film in one playlist. CreatorID is the user who contributed
// it and keeps removal rights independently of collaborator membership.
type Item struct {
	PlaylistID string    `json:"playlist_id"`
	FilmID     string    `json:"film_id"`
	CreatorID  string    `json:"creator_id"`
	AddedAt    time.Time `json:"added_at"`
}

// ListFilter narrows playlist listings.
type ListFilter struct {
	OwnerID  *string
	Name     *string
	IsPublic *bool
}

// DescribeFilter renders a saved search filter as the generated description
// of an auto-filling playlist.
func DescribeFilter(filter *film.Filter) string {
	var parts []string

	if filter.Name != nil {
		parts = append(parts, fmt.Sprintf("title contains %q", *filter.Name))
	}
	if filter.Person != nil {
		parts = append(parts, fmt.Sprintf("with %s", *filter.Person))
	}
	if len(filter.Genres) > 0 {
		parts = append(parts, "genres: "+strings.Join(filter.Genres, ", "))
	}
	if len(filter.Countries) > 0 {
		parts = append(parts, "countries: "+strings.Join(filter.Countries, ", "))
	}
	if filter.Year != nil {
		parts = append(parts, "year "+describeBounds(filter.Year))
	}
	if filter.Rating != nil {
		parts = append(parts, "rating "+describeBounds(filter.Rating))
	}
	if filter.Length != nil {
		parts = append(parts, "length "+describeBounds(filter.Length))
	}
	if filter.IsSeries != nil {
		if *filter.IsSeries {
			parts = append(parts, "series only")
		} else {
			parts = append(parts, "films only")
		}
	}

	if len(parts) == 0 {
		return "Auto-filled playlist"
	}
	return "Auto-filled: " + strings.Join(parts, "; ")
}

func describeBounds(bounds *film.Bounds) string {
	switch {
	case bounds.IsExact():
		return formatBound(*bounds.Lower)
	case bounds.Lower != nil && bounds.Upper != nil:
		return fmt.Sprintf("%s to %s", formatBound(*bounds.Lower), formatBound(*bounds.Upper))
	case bounds.Lower != nil:
		return "above " + formatBound(*bounds.Lower)
	default:
		return "below " + formatBound(*bounds.Upper)
	}
}

func formatBound(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.1f", value)
}
