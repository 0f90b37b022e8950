// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/film"
)

func TestTransformSeries(t *testing.T) {
	entry := &film.Film{FilmID: "301", IsSeries: true, Season: intPtr(2)}

	require.NoError(t, film.TransformSeries(entry))

	assert.Equal(t, "301-2", entry.FilmID)
	assert.False(t, entry.IsSeries)
}

// A second application must fail, otherwise composite ids would nest.
func TestTransformSeries_NotIdempotent(t *testing.T) {
	entry := &film.Film{FilmID: "301", IsSeries: true, Season: intPtr(2)}

	require.NoError(t, film.TransformSeries(entry))
	err := film.TransformSeries(entry)

	require.Error(t, err)
	assert.ErrorIs(t, err, film.ErrNotTransformable)
	assert.Equal(t, "301-2", entry.FilmID)
}

func TestTransformSeries_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		entry *film.Film
	}{
		{"plain_film", &film.Film{FilmID: "301", IsSeries: false}},
		{"series_without_season", &film.Film{FilmID: "301", IsSeries: true}},
		{"season_without_flag", &film.Film{FilmID: "301", Season: intPtr(1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := film.TransformSeries(tc.entry)
			assert.ErrorIs(t, err, film.ErrNotTransformable)
		})
	}
}

func TestBaseID(t *testing.T) {
	assert.Equal(t, "301", film.BaseID("301-2"))
	assert.Equal(t, "301", film.BaseID("301"))
	assert.Equal(t, "301", film.BaseID("301-2-extra"))
}
