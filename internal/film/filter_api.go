// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// # External Catalog Translator
//
// Renders the filter as query parameters for the external catalog's search
// endpoints. The catalog only accepts closed ranges, so a single-sided
// bounds criterion is completed with the domain ceiling or floor listed
// below before encoding.
//
// Person has no catalog parameter and is not registered here; it constrains
// only the SQL translator.

// Catalog range defaults for single-sided bounds.
const (
	apiYearFloor   = 1900
	apiYearCeiling = 2050
	apiLengthFloor = 0
	apiLengthCeil  = 300
	apiAgeFloor    = 0
	apiAgeCeiling  = 18
	apiRatingFloor = 0
	apiSeasonFloor = 1
	apiSeasonCeil  = 50
)

// ratingCeiling is the upper bound substituted when only a rating floor is
// given. The catalog accepts any numeric ceiling; the value tracks the
// current year plus one.
func ratingCeiling() float64 {
	return float64(time.Now().Year() + 1)
}

// apiStrategy renders one present criterion into the query values.
type apiStrategy func(f *APIFilter, values url.Values)

var apiStrategies = map[Field]apiStrategy{
	FieldFilmID:    apiFilmID,
	FieldFilmIDs:   apiFilmIDs,
	FieldName:      apiName,
	FieldIsSeries:  apiIsSeries,
	FieldYear:      apiYear,
	FieldRating:    apiRating,
	FieldLength:    apiLength,
	FieldAgeRating: apiAgeRating,
	FieldGenres:    apiGenres,
	FieldCountries: apiCountries,
}

// Values encodes the filter as external catalog query parameters, including
// the pagination and sort extension knobs.
func (f *APIFilter) Values() url.Values {
	values := url.Values{}
	for _, field := range fieldOrder {
		if !f.has(field) {
			continue
		}
		if strategy, ok := apiStrategies[field]; ok {
			strategy(f, values)
		}
	}

	if f.Page != nil {
		values.Set("page", strconv.Itoa(*f.Page))
	}
	if f.Limit != nil {
		values.Set("limit", strconv.Itoa(*f.Limit))
	}
	for _, sortField := range f.SortFields {
		values.Add("sortField", sortField)
	}
	if f.SeasonsRange != nil {
		values.Set("seasonsInfo.number",
			rangeParam(f.SeasonsRange, apiSeasonFloor, apiSeasonCeil))
	}

	return values
}

func apiFilmID(f *APIFilter, values url.Values) {
	values.Set("id", *f.FilmID)
}

func apiFilmIDs(f *APIFilter, values url.Values) {
	for _, id := range f.FilmIDs {
		values.Add("id", id)
	}
}

func apiName(f *APIFilter, values url.Values) {
	values.Set("query", *f.Name)
}

func apiIsSeries(f *APIFilter, values url.Values) {
	values.Set("isSeries", strconv.FormatBool(*f.IsSeries))
}

func apiYear(f *APIFilter, values url.Values) {
	values.Set("year", rangeParam(f.Year, apiYearFloor, apiYearCeiling))
}

func apiRating(f *APIFilter, values url.Values) {
	values.Set("rating.kp", rangeParam(f.Rating, apiRatingFloor, ratingCeiling()))
}

func apiLength(f *APIFilter, values url.Values) {
	values.Set("movieLength", rangeParam(f.Length, apiLengthFloor, apiLengthCeil))
}

func apiAgeRating(f *APIFilter, values url.Values) {
	values.Set("ageRating", rangeParam(f.AgeRating, apiAgeFloor, apiAgeCeiling))
}

func apiGenres(f *APIFilter, values url.Values) {
	for _, genre := range f.Genres {
		values.Add("genres.name", genre)
	}
}

func apiCountries(f *APIFilter, values url.Values) {
	for _, country := range f.Countries {
		values.Add("countries.name", country)
	}
}

// rangeParam encodes bounds in the catalog's "lower-upper" form, completing
// a missing side with the supplied default. An exact criterion encodes as
// the bare value.
func rangeParam(bounds *Bounds, floor, ceiling float64) string {
	if bounds.IsExact() {
		return formatNumber(*bounds.Lower)
	}
	lower, upper := floor, ceiling
	if bounds.Lower != nil {
		lower = *bounds.Lower
	}
	if bounds.Upper != nil {
		upper = *bounds.Upper
	}
	return fmt.Sprintf("%s-%s", formatNumber(lower), formatNumber(upper))
}

// formatNumber renders integral values without a decimal point.
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
