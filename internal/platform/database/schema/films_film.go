package schema

// FilmTable represents the 'films.film' table
type FilmTable struct {
	Table           string
	FilmID          string
	Name            string
	AlternativeName string
	ReleaseYear     string
	EndYear         string
	Season          string
	SeasonsInfo     string
	Slogan          string
	Description     string
	PosterLink      string
	Genres          string
	Countries       string
	Director        string
	Persons         string
	TimeMinutes     string
	AgeRating       string
	Ratings         string
	Trailers        string
	Status          string
	Episodes        string
	LastUpdated     string
}

// Film is the schema definition for films.film
var Film = FilmTable{
	Table:           "films.film",
	FilmID:          "filmid",
	Name:            "name",
	AlternativeName: "alternativename",
	ReleaseYear:     "releaseyear",
	EndYear:         "endyear",
	Season:          "season",
	SeasonsInfo:     "seasonsinfo",
	Slogan:          "slogan",
	Description:     "description",
	PosterLink:      "posterlink",
	Genres:          "genres",
	Countries:       "countries",
	Director:        "director",
	Persons:         "persons",
	TimeMinutes:     "timeminutes",
	AgeRating:       "agerating",
	Ratings:         "ratings",
	Trailers:        "trailers",
	Status:          "status",
	Episodes:        "episodes",
	LastUpdated:     "lastupdated",
}

// Columns returns all standard column names
func (t FilmTable) Columns() []string {
	return []string{
		t.FilmID, t.Name, t.AlternativeName, t.ReleaseYear, t.EndYear,
		t.Season, t.SeasonsInfo, t.Slogan, t.Description, t.PosterLink,
		t.Genres, t.Countries, t.Director, t.Persons, t.TimeMinutes,
		t.AgeRating, t.Ratings, t.Trailers, t.Status, t.Episodes, t.LastUpdated,
	}
}
