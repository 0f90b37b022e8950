// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import "strings"

// # In-Memory Translator
//
// Applies the filter directly to hydrated [Film] records, used to narrow
// external catalog search results after a name lookup.
//
// Boundary contract, intentionally not identical to the SQL translator:
//
//   - both bounds set and unequal: strict on BOTH ends (> lower AND < upper),
//     where SQL keeps the upper bound inclusive;
//   - a bare upper bound is always strict, where SQL is inclusive everywhere
//     except the catalog rating;
//   - a record whose value is absent never matches a bounds criterion;
//   - Person is not evaluated at all: records already filtered by name pass
//     through regardless of the person criterion.

// listStrategy reports whether one present criterion accepts the film.
type listStrategy func(f *Filter, film *Film) bool

var listStrategies = map[Field]listStrategy{
	FieldFilmID:    listFilmID,
	FieldFilmIDs:   listFilmIDs,
	FieldName:      listName,
	FieldIsSeries:  listIsSeries,
	FieldYear:      listYear,
	FieldRating:    listRating,
	FieldLength:    listLength,
	FieldAgeRating: listAgeRating,
	FieldGenres:    listGenres,
	FieldCountries: listCountries,
}

// Matches reports whether the film satisfies every present criterion.
func (f *Filter) Matches(film *Film) bool {
	for _, field := range fieldOrder {
		if !f.has(field) {
			continue
		}
		strategy, ok := listStrategies[field]
		if !ok {
			continue
		}
		if !strategy(f, film) {
			return false
		}
	}
	return true
}

// Apply filters the slice, preserving order. The input is never mutated.
func (f *Filter) Apply(films []*Film) []*Film {
	matched := make([]*Film, 0, len(films))
	for _, film := range films {
		if f.Matches(film) {
			matched = append(matched, film)
		}
	}
	return matched
}

func listFilmID(f *Filter, film *Film) bool {
	return film.FilmID == *f.FilmID
}

func listFilmIDs(f *Filter, film *Film) bool {
	for _, id := range f.FilmIDs {
		if film.FilmID == id || strings.HasPrefix(film.FilmID, id+"-") {
			return true
		}
	}
	return false
}

func listName(f *Filter, film *Film) bool {
	name := strings.ToLower(film.Name)
	alternative := ""
	if film.AlternativeName != nil {
		alternative = strings.ToLower(*film.AlternativeName)
	}
	for _, token := range strings.Fields(strings.ToLower(*f.Name)) {
		if !strings.Contains(name, token) &&
			(alternative == "" || !strings.Contains(alternative, token)) {
			return false
		}
	}
	return true
}

func listIsSeries(f *Filter, film *Film) bool {
	return film.IsSeries == *f.IsSeries
}

func listYear(f *Filter, film *Film) bool {
	return matchBounds(f.Year, intValue(film.ReleaseYear))
}

func listRating(f *Filter, film *Film) bool {
	return matchBounds(f.Rating, film.CatalogRating())
}

func listLength(f *Filter, film *Film) bool {
	return matchBounds(f.Length, intValue(film.TimeMinutes))
}

func listAgeRating(f *Filter, film *Film) bool {
	return matchBounds(f.AgeRating, intValue(film.AgeRating))
}

func listGenres(f *Filter, film *Film) bool {
	return overlaps(film.Genres, f.Genres)
}

func listCountries(f *Filter, film *Film) bool {
	return overlaps(film.Countries, f.Countries)
}

// matchBounds evaluates the in-memory boundary contract against an optional
// record value.
func matchBounds(bounds *Bounds, value *float64) bool {
	if value == nil {
		return false
	}
	switch {
	case bounds.IsExact():
		return *value == *bounds.Lower
	case bounds.Lower != nil && bounds.Upper != nil:
		return *value > *bounds.Lower && *value < *bounds.Upper
	case bounds.Lower != nil:
		return *value > *bounds.Lower
	default:
		return *value < *bounds.Upper
	}
}

// overlaps reports a case-insensitive non-empty intersection.
func overlaps(stored, requested []string) bool {
	folded := make(map[string]struct{}, len(stored))
	for _, value := range stored {
		folded[strings.ToLower(value)] = struct{}{}
	}
	for _, value := range requested {
		if _, ok := folded[strings.ToLower(value)]; ok {
			return true
		}
	}
	return false
}

// intValue widens an optional int record field for bounds comparison.
func intValue(value *int) *float64 {
	if value == nil {
		return nil
	}
	widened := float64(*value)
	return &widened
}
