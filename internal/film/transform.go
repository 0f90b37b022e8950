// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import (
	"errors"
	"fmt"
)

// ErrNotTransformable reports a record that cannot be converted into a
// season entry: it is not flagged as a series, carries no season number,
// or has already been transformed.
var ErrNotTransformable = errors.New("film is not a transformable series season")

// TransformSeries converts a catalog-delivered series season into the
// locally stored entry form, in place.
//
// The id becomes the composite "{seriesID}-{season}" and the series flag is
// cleared. The operation is one-way: applying it to an already transformed
// record fails, which keeps composite ids from nesting.
func TransformSeries(film *Film) error {
	if !film.IsSeries || film.Season == nil {
		return fmt.Errorf("transform %q: %w", film.FilmID, ErrNotTransformable)
	}
	film.FilmID = fmt.Sprintf("%s-%d", film.FilmID, *film.Season)
	film.IsSeries = false
	return nil
}
