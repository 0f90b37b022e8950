// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package catalog

import (
	"strconv"
	"time"

	"github.com/cinelog/cinelog/internal/film"
)

// # Wire Shapes
//
// The catalog's JSON is nested where our domain is flat; these DTOs exist
// only to absorb that shape before conversion.

type movieDTO struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	AlternativeName *string       `json:"alternativeName"`
	Year            *int          `json:"year"`
	EndYear         *int          `json:"endYear"`
	IsSeries        bool          `json:"isSeries"`
	Season          *int          `json:"season"`
	SeasonsInfo     []seasonDTO   `json:"seasonsInfo"`
	Slogan          *string       `json:"slogan"`
	Description     *string       `json:"description"`
	Poster          *posterDTO    `json:"poster"`
	Genres          []nameDTO     `json:"genres"`
	Countries       []nameDTO     `json:"countries"`
	Persons         []personDTO   `json:"persons"`
	MovieLength     *int          `json:"movieLength"`
	AgeRating       *int          `json:"ageRating"`
	Rating          *ratingDTO    `json:"rating"`
	Videos          *videosDTO    `json:"videos"`
	Status          *string       `json:"status"`
	Episodes        []episodeDTO  `json:"episodes"`
}

type seasonDTO struct {
	Number        int `json:"number"`
	EpisodesCount int `json:"episodesCount"`
}

type posterDTO struct {
	URL string `json:"url"`
}

type nameDTO struct {
	Name string `json:"name"`
}

type personDTO struct {
	Name       string  `json:"name"`
	Profession *string `json:"profession"`
}

type ratingDTO struct {
	KP   *float64 `json:"kp"`
	IMDB *float64 `json:"imdb"`
}

type videosDTO struct {
	Trailers []trailerDTO `json:"trailers"`
}

type trailerDTO struct {
	URL string `json:"url"`
}

type episodeDTO struct {
	Number int     `json:"number"`
	Name   *string `json:"name"`
	Date   *string `json:"airDate"`
}

// toFilm flattens the wire shape into the domain record, stamping the fetch
// time so cache staleness is observable.
func (dto *movieDTO) toFilm() *film.Film {
	entry := &film.Film{
		FilmID:          strconv.FormatInt(dto.ID, 10),
		Name:            dto.Name,
		AlternativeName: dto.AlternativeName,
		ReleaseYear:     dto.Year,
		EndYear:         dto.EndYear,
		IsSeries:        dto.IsSeries,
		Season:          dto.Season,
		Slogan:          dto.Slogan,
		Description:     dto.Description,
		TimeMinutes:     dto.MovieLength,
		AgeRating:       dto.AgeRating,
		Status:          dto.Status,
		LastUpdated:     time.Now().UTC(),
	}

	if dto.Poster != nil && dto.Poster.URL != "" {
		entry.PosterLink = &dto.Poster.URL
	}

	for _, season := range dto.SeasonsInfo {
		entry.SeasonsInfo = append(entry.SeasonsInfo, film.SeasonInfo{
			Number:        season.Number,
			EpisodesCount: season.EpisodesCount,
		})
	}
	for _, genre := range dto.Genres {
		entry.Genres = append(entry.Genres, genre.Name)
	}
	for _, country := range dto.Countries {
		entry.Countries = append(entry.Countries, country.Name)
	}
	for _, person := range dto.Persons {
		entry.Persons = append(entry.Persons, film.Person{
			Name:       person.Name,
			Profession: person.Profession,
		})
		if person.Profession != nil && *person.Profession == "director" && entry.Director == nil {
			name := person.Name
			entry.Director = &name
		}
	}
	for _, episode := range dto.Episodes {
		entry.Episodes = append(entry.Episodes, film.Episode{
			Number: episode.Number,
			Name:   episode.Name,
			Date:   episode.Date,
		})
	}
	if dto.Videos != nil {
		for _, trailer := range dto.Videos.Trailers {
			entry.Trailers = append(entry.Trailers, trailer.URL)
		}
	}
	if dto.Rating != nil {
		entry.Ratings = map[string]float64{}
		if dto.Rating.KP != nil {
			entry.Ratings[film.RatingSourceKP] = *dto.Rating.KP
		}
		if dto.Rating.IMDB != nil {
			entry.Ratings["imdb"] = *dto.Rating.IMDB
		}
	}

	return entry
}
