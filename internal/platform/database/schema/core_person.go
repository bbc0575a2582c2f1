package schema

// PersonTable represents the 'core.person' table
type PersonTable struct {
	Table     string
	ID        string
	Name      string
	Phone     string
	BirthDate string
	Gender    string
	IsActive  string
}

// Person is the schema definition for core.person
var Person = PersonTable{
	Table:     "core.person",
	ID:        "id",
	Name:      "name",
	Phone:     "phone",
	BirthDate: "birthdate",
	Gender:    "gender",
	IsActive:  "isactive",
}

// Columns returns all standard column names
func (t PersonTable) Columns() []string {
	return []string{t.ID, t.Name, t.Phone, t.BirthDate, t.Gender, t.IsActive}
}
