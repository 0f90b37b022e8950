package schema

// PlaylistTable represents the 'playlists.playlist' table
type PlaylistTable struct {
	Table          string
	PlaylistID     string
	UserID         string
	Name           string
	Description    string
	IsPublic       string
	AdditionsCount string
	GenAttrs       string
	Collaborators  string
	CreatedAt      string
	UpdatedAt      string
}

// Playlist is the schema definition for playlists.playlist
var Playlist = PlaylistTable{
	Table:          "playlists.playlist",
	PlaylistID:     "playlistid",
	UserID:         "userid",
	Name:           "name",
	Description:    "description",
	IsPublic:       "ispublic",
	AdditionsCount: "additionscount",
	GenAttrs:       "genattrs",
	Collaborators:  "collaborators",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t PlaylistTable) Columns() []string {
	return []string{
		t.PlaylistID, t.UserID, t.Name, t.Description, t.IsPublic,
		t.AdditionsCount, t.GenAttrs, t.Collaborators, t.CreatedAt, t.UpdatedAt,
	}
}
