package schema

// PlaylistItemTable represents the 'playlists.item' table.
//
// (PlaylistID, FilmID) is unique: a film appears at most once per playlist.
type PlaylistItemTable struct {
	Table      string
	PlaylistID string
	FilmID     string
	CreatorID  string
	AddedAt    string
}

// PlaylistItem is the schema definition for playlists.item
var PlaylistItem = PlaylistItemTable{
	Table:      "playlists.item",
	PlaylistID: "playlistid",
	FilmID:     "filmid",
	CreatorID:  "creatorid",
	AddedAt:    "addedat",
}

// Columns returns all standard column names
func (t PlaylistItemTable) Columns() []string {
	return []string{t.PlaylistID, t.FilmID, t.CreatorID, t.AddedAt}
}
