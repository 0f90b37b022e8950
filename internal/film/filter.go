// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

/*
Package film implements the catalog domain: film records, user
personalization, the typed filter model with its three query translators
(SQL, external catalog URL, in-memory), and the resolution engine that
chains local storage and the external catalog.
*/
package film

import (
	"net/url"
	"strconv"

	"github.com/cinelog/cinelog/pkg/query"
)

// Bounds is an optional numeric range criterion.
//
// Either side may be nil. Both sides set to the same value mean equality;
// a single side means a half-open comparison. How the open side and the
// boundary itself are treated is translator-specific, see the per-translator
// files.
type Bounds struct {
	Lower *float64 `json:"lower,omitempty"`
	Upper *float64 `json:"upper,omitempty"`
}

// IsExact reports whether the bounds collapse to a single value.
func (b *Bounds) IsExact() bool {
	return b.Lower != nil && b.Upper != nil && *b.Lower == *b.Upper
}

// Exact builds bounds matching exactly v.
func Exact(v float64) *Bounds {
	return &Bounds{Lower: &v, Upper: &v}
}

// Between builds bounds with both sides set.
func Between(lower, upper float64) *Bounds {
	return &Bounds{Lower: &lower, Upper: &upper}
}

// Above builds lower-only bounds.
func Above(lower float64) *Bounds {
	return &Bounds{Lower: &lower}
}

// Below builds upper-only bounds.
func Below(upper float64) *Bounds {
	return &Bounds{Upper: &upper}
}

// Field identifies one criterion of the [Filter] model.
//
// The set of fields is closed: translators dispatch through per-field
// strategy tables keyed by Field, and [ParseFilter] ignores query parameters
// that do not name a registered field. An unrecognised key never constrains
// and never errors.
type Field string

const (
	FieldFilmID    Field = "film_id"
	FieldFilmIDs   Field = "film_ids"
	FieldName      Field = "name"
	FieldPerson    Field = "person"
	FieldIsSeries  Field = "is_series"
	FieldYear      Field = "year"
	FieldRating    Field = "rating"
	FieldLength    Field = "length"
	FieldAgeRating Field = "age_rating"
	FieldGenres    Field = "genres"
	FieldCountries Field = "countries"
)

// fieldOrder fixes the canonical iteration order for every translator so
// that rendered queries are deterministic.
var fieldOrder = []Field{
	FieldFilmID, FieldFilmIDs, FieldName, FieldPerson, FieldIsSeries,
	FieldYear, FieldRating, FieldLength, FieldAgeRating,
	FieldGenres, FieldCountries,
}

// Filter is the typed criteria set shared by all three translators.
//
// Every field is optional; an absent field never constrains. The same
// present field selects the same logical relation in every translator
// (see the boundary notes in filter_list.go for the one deliberate
// exception on bounded ranges).
type Filter struct {
	// FilmID matches exactly one catalog id.
	FilmID *string `json:"film_id,omitempty"`
	// FilmIDs matches an id equal to any entry or carrying it as the base
	// of a composite "{base}-{season}" id.
	FilmIDs []string `json:"film_ids,omitempty"`
	// Name is whitespace-tokenized; every token must appear
	// case-insensitively in the primary or alternative name.
	Name *string `json:"name,omitempty"`
	// Person is whitespace-tokenized free text matched against the cast and
	// crew list. Storage-only: the in-memory translator skips it.
	Person *string `json:"person,omitempty"`
	// IsSeries matches the series flag exactly.
	IsSeries *bool `json:"is_series,omitempty"`

	Year      *Bounds `json:"year,omitempty"`
	Rating    *Bounds `json:"rating,omitempty"`
	Length    *Bounds `json:"length,omitempty"`
	AgeRating *Bounds `json:"age_rating,omitempty"`

	// Genres and Countries match when the stored set and the requested set
	// intersect, case-insensitively.
	Genres    []string `json:"genres,omitempty"`
	Countries []string `json:"countries,omitempty"`
}

// has reports whether the given criterion is present on the filter.
func (f *Filter) has(field Field) bool {
	switch field {
	case FieldFilmID:
		return f.FilmID != nil
	case FieldFilmIDs:
		return len(f.FilmIDs) > 0
	case FieldName:
		return f.Name != nil && *f.Name != ""
	case FieldPerson:
		return f.Person != nil && *f.Person != ""
	case FieldIsSeries:
		return f.IsSeries != nil
	case FieldYear:
		return f.Year != nil
	case FieldRating:
		return f.Rating != nil
	case FieldLength:
		return f.Length != nil
	case FieldAgeRating:
		return f.AgeRating != nil
	case FieldGenres:
		return len(f.Genres) > 0
	case FieldCountries:
		return len(f.Countries) > 0
	}
	return false
}

// IsEmpty reports whether no criterion is present.
func (f *Filter) IsEmpty() bool {
	for _, field := range fieldOrder {
		if f.has(field) {
			return false
		}
	}
	return true
}

// APIFilter extends [Filter] with knobs that only exist on the external
// catalog search endpoints: pagination, sort order, and a season-count
// range. They never participate in SQL or in-memory filtering.
type APIFilter struct {
	Filter

	Page         *int     `json:"page,omitempty"`
	Limit        *int     `json:"limit,omitempty"`
	SortFields   []string `json:"sort_fields,omitempty"`
	SeasonsRange *Bounds  `json:"seasons_range,omitempty"`
}

// # Query-String Parsing

// ParseFilter builds an [APIFilter] from request query parameters.
//
// Only registered keys are consulted; anything else in the query string is
// silently ignored. Malformed numeric values drop the single criterion they
// belong to rather than failing the request.
func ParseFilter(values url.Values) *APIFilter {
	filter := &APIFilter{}

	if v := values.Get("film_id"); v != "" {
		filter.FilmID = &v
	}
	if ids := splitMulti(values["film_ids"]); len(ids) > 0 {
		filter.FilmIDs = ids
	}
	if v := values.Get("name"); v != "" {
		filter.Name = &v
	}
	if v := values.Get("person"); v != "" {
		filter.Person = &v
	}
	if v := values.Get("is_series"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.IsSeries = &b
		}
	}

	filter.Year = parseBounds(values, "year")
	filter.Rating = parseBounds(values, "rating")
	filter.Length = parseBounds(values, "length")
	filter.AgeRating = parseBounds(values, "age_rating")
	filter.SeasonsRange = parseBounds(values, "seasons")

	if genres := splitMulti(values["genres"]); len(genres) > 0 {
		filter.Genres = genres
	}
	if countries := splitMulti(values["countries"]); len(countries) > 0 {
		filter.Countries = countries
	}

	if v := values.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Page = &n
		}
	}
	if v := values.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = &n
		}
	}
	if sort := splitMulti(values["sort"]); len(sort) > 0 {
		filter.SortFields = sort
	}

	return filter
}

// parseBounds reads "<key>_from" and "<key>_to" into optional bounds.
func parseBounds(values url.Values, key string) *Bounds {
	bounds := &Bounds{}
	if v := values.Get(key + "_from"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			bounds.Lower = &n
		}
	}
	if v := values.Get(key + "_to"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			bounds.Upper = &n
		}
	}
	if bounds.Lower == nil && bounds.Upper == nil {
		return nil
	}
	return bounds
}

// splitMulti flattens repeated params and comma-separated lists into one
// trimmed slice.
func splitMulti(raw []string) []string {
	var out []string
	for _, entry := range raw {
		out = append(out, query.StringSlice(entry)...)
	}
	return out
}
