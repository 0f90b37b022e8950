// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package film

import (
	"fmt"
	"strings"

	"github.com/cinelog/cinelog/internal/platform/database/schema"
)

// # SQL Translator
//
// Renders the filter as dynamic WHERE conjuncts over films.film, using
// positional bind arguments. Each present field dispatches through
// [sqlStrategies]; fields without a strategy never reach SQL.

// sqlWriter carries the shared query-building state through the per-field
// strategies.
type sqlWriter struct {
	builder *strings.Builder
	args    *[]any
	argID   *int
	alias   string
}

// bind registers a bind argument and returns its positional placeholder.
func (w *sqlWriter) bind(value any) string {
	placeholder := fmt.Sprintf("$%d", *w.argID)
	*w.args = append(*w.args, value)
	*w.argID++
	return placeholder
}

// col qualifies a column name with the query's table alias.
func (w *sqlWriter) col(name string) string {
	if w.alias == "" {
		return name
	}
	return w.alias + "." + name
}

// and appends one WHERE conjunct.
func (w *sqlWriter) and(condition string) {
	w.builder.WriteString(" AND ")
	w.builder.WriteString(condition)
}

// sqlStrategy renders one present criterion onto the writer.
type sqlStrategy func(f *Filter, w *sqlWriter)

var sqlStrategies = map[Field]sqlStrategy{
	FieldFilmID:    sqlFilmID,
	FieldFilmIDs:   sqlFilmIDs,
	FieldName:      sqlName,
	FieldPerson:    sqlPerson,
	FieldIsSeries:  sqlIsSeries,
	FieldYear:      sqlYear,
	FieldRating:    sqlRating,
	FieldLength:    sqlLength,
	FieldAgeRating: sqlAgeRating,
	FieldGenres:    sqlGenres,
	FieldCountries: sqlCountries,
}

// AppendSQL renders every present criterion as " AND (...)" conjuncts onto
// builder, appending bind values to args and advancing argID. alias
// qualifies column references ("" for unqualified).
//
// The caller owns the SELECT head and the leading WHERE; this translator
// only ever appends conjuncts, so a query with no criteria is left intact.
func (f *Filter) AppendSQL(builder *strings.Builder, args *[]any, argID *int, alias string) {
	writer := &sqlWriter{builder: builder, args: args, argID: argID, alias: alias}
	for _, field := range fieldOrder {
		if !f.has(field) {
			continue
		}
		if strategy, ok := sqlStrategies[field]; ok {
			strategy(f, writer)
		}
	}
}

func sqlFilmID(f *Filter, w *sqlWriter) {
	w.and(fmt.Sprintf("%s = %s", w.col(schema.Film.FilmID), w.bind(*f.FilmID)))
}

// sqlFilmIDs matches each requested id exactly or as the base of a
// composite "{id}-{season}" id.
func sqlFilmIDs(f *Filter, w *sqlWriter) {
	clauses := make([]string, 0, len(f.FilmIDs))
	for _, id := range f.FilmIDs {
		clauses = append(clauses, fmt.Sprintf("%s = %s OR %s LIKE %s",
			w.col(schema.Film.FilmID), w.bind(id),
			w.col(schema.Film.FilmID), w.bind(id+"-%"),
		))
	}
	w.and("(" + strings.Join(clauses, " OR ") + ")")
}

// sqlName requires every whitespace token to appear case-insensitively in
// the primary or alternative name.
func sqlName(f *Filter, w *sqlWriter) {
	w.and(fmt.Sprintf("%s IS NOT NULL", w.col(schema.Film.Name)))
	for _, token := range strings.Fields(*f.Name) {
		pattern := "%" + strings.ToLower(token) + "%"
		placeholder := w.bind(pattern)
		w.and(fmt.Sprintf("(LOWER(%s) LIKE %s OR LOWER(%s) LIKE %s)",
			w.col(schema.Film.Name), placeholder,
			w.col(schema.Film.AlternativeName), placeholder,
		))
	}
}

// sqlPerson probes the jsonb cast/crew list with one jsonpath per word.
func sqlPerson(f *Filter, w *sqlWriter) {
	for _, word := range strings.Fields(*f.Person) {
		path := fmt.Sprintf(`$[*] ? (@.name like_regex "%s" flag "i")`, jsonPathEscape(word))
		w.and(fmt.Sprintf("jsonb_path_exists(%s, %s::jsonpath)",
			w.col(schema.Film.Persons), w.bind(path)))
	}
}

// sqlIsSeries relies on season entries being the only locally stored form
// of a series: a row with a season came from a series, a row without one is
// a standalone film.
func sqlIsSeries(f *Filter, w *sqlWriter) {
	if *f.IsSeries {
		w.and(fmt.Sprintf("%s IS NOT NULL", w.col(schema.Film.Season)))
		return
	}
	w.and(fmt.Sprintf("%s IS NULL", w.col(schema.Film.Season)))
}

func sqlYear(f *Filter, w *sqlWriter) {
	sqlBounds(w, w.col(schema.Film.ReleaseYear), f.Year, false)
}

// sqlRating targets the aggregate catalog rating inside the jsonb ratings
// document. The upper-only comparison is strict, unlike the other ranges.
func sqlRating(f *Filter, w *sqlWriter) {
	column := fmt.Sprintf("(%s->>'%s')::numeric", w.col(schema.Film.Ratings), RatingSourceKP)
	sqlBounds(w, column, f.Rating, true)
}

func sqlLength(f *Filter, w *sqlWriter) {
	sqlBounds(w, w.col(schema.Film.TimeMinutes), f.Length, false)
}

func sqlAgeRating(f *Filter, w *sqlWriter) {
	sqlBounds(w, w.col(schema.Film.AgeRating), f.AgeRating, false)
}

func sqlGenres(f *Filter, w *sqlWriter) {
	sqlOverlap(w, w.col(schema.Film.Genres), f.Genres)
}

func sqlCountries(f *Filter, w *sqlWriter) {
	sqlOverlap(w, w.col(schema.Film.Countries), f.Countries)
}

// sqlBounds renders an optional range criterion.
//
// Boundary treatment: both sides equal collapse to equality; a bare lower
// bound is exclusive; an inclusive upper bound is the default, with
// strictUpper switching the bare upper bound to exclusive (the catalog
// rating range behaves that way).
func sqlBounds(w *sqlWriter, column string, bounds *Bounds, strictUpper bool) {
	switch {
	case bounds.IsExact():
		w.and(fmt.Sprintf("%s = %s", column, w.bind(*bounds.Lower)))
	case bounds.Lower != nil && bounds.Upper != nil:
		w.and(fmt.Sprintf("%s > %s AND %s <= %s",
			column, w.bind(*bounds.Lower), column, w.bind(*bounds.Upper)))
	case bounds.Lower != nil:
		w.and(fmt.Sprintf("%s > %s", column, w.bind(*bounds.Lower)))
	case bounds.Upper != nil:
		operator := "<="
		if strictUpper {
			operator = "<"
		}
		w.and(fmt.Sprintf("%s %s %s", column, operator, w.bind(*bounds.Upper)))
	}
}

// sqlOverlap matches when the stored jsonb string array and the requested
// set intersect, case-insensitively. The stored side is lowercased through
// a text round-trip so the ?| operator compares folded values.
func sqlOverlap(w *sqlWriter, column string, values []string) {
	lowered := make([]string, len(values))
	for i, value := range values {
		lowered[i] = strings.ToLower(value)
	}
	w.and(fmt.Sprintf("LOWER(%s::text)::jsonb ?| %s", column, w.bind(lowered)))
}

// jsonPathEscape guards the like_regex literal inside a jsonpath string.
func jsonPathEscape(word string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return replacer.Replace(word)
}
