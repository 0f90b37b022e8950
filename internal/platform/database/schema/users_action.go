package schema

// UserActionTable represents the 'users.action' table.
//
// Append-only history of notable user events (subscriptions, playlist
// creation). Attributes is a jsonb bag of event parameters.
type UserActionTable struct {
	Table      string
	ActionID   string
	UserID     string
	Name       string
	Date       string
	Attributes string
}

// UserAction is the schema definition for users.action
var UserAction = UserActionTable{
	Table:      "users.action",
	ActionID:   "actionid",
	UserID:     "userid",
	Name:       "name",
	Date:       "date",
	Attributes: "attributes",
}

// Columns returns all standard column names
func (t UserActionTable) Columns() []string {
	return []string{t.ActionID, t.UserID, t.Name, t.Date, t.Attributes}
}
