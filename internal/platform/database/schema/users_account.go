package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Login     string
	Password  string
	Role      string
	Status    string
	Username  string
	Bio       string
	Location  string
	BirthDate string
	Email     string
	Avatar    string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Login:     "login",
	Password:  "passwordhash",
	Role:      "role",
	Status:    "status",
	Username:  "username",
	Bio:       "bio",
	Location:  "location",
	BirthDate: "birthdate",
	Email:     "email",
	Avatar:    "avatar",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Login, t.Password, t.Role, t.Status, t.Username,
		t.Bio, t.Location, t.BirthDate, t.Email, t.Avatar,
		t.CreatedAt, t.UpdatedAt,
	}
}
