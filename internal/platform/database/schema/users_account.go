package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	DisplayName  string
	Phone        string
	BirthDate    string
	Gender       string
	PasswordHash string
	PasswordSalt string
	Email        string
	Role         string
	IsActive     string
	CreatedAt    string
	LastLoginAt  string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	DisplayName:  "displayname",
	Phone:        "phone",
	BirthDate:    "birthdate",
	Gender:       "gender",
	PasswordHash: "passwordhash",
	PasswordSalt: "passwordsalt",
	Email:        "email",
	Role:         "role",
	IsActive:     "isactive",
	CreatedAt:    "createdat",
	LastLoginAt:  "lastloginat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.DisplayName, t.Phone, t.BirthDate, t.Gender,
		t.PasswordHash, t.PasswordSalt, t.Email, t.Role, t.IsActive,
		t.CreatedAt, t.LastLoginAt,
	}
}

// ProfileColumns returns the columns safe to expose, without credential material.
func (t UserAccountTable) ProfileColumns() []string {
	return []string{
		t.ID, t.Username, t.DisplayName, t.Phone, t.BirthDate, t.Gender,
		t.Email, t.Role, t.IsActive, t.CreatedAt, t.LastLoginAt,
	}
}
