package schema

// UserFilmTable represents the 'films.userfilm' table.
//
// One row per (user, film) pair; carries the per-user personalization
// attached to a shared catalog entry.
type UserFilmTable struct {
	Table      string
	UserID     string
	FilmID     string
	IsWatched  string
	UserRating string
	AddedAt    string
}

// UserFilm is the schema definition for films.userfilm
var UserFilm = UserFilmTable{
	Table:      "films.userfilm",
	UserID:     "userid",
	FilmID:     "filmid",
	IsWatched:  "iswatched",
	UserRating: "userrating",
	AddedAt:    "addedat",
}

// Columns returns all standard column names
func (t UserFilmTable) Columns() []string {
	return []string{t.UserID, t.FilmID, t.IsWatched, t.UserRating, t.AddedAt}
}
